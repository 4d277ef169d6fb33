package services

import (
	portsrepo "github.com/SscSPs/money_transfer_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_transfer_service/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, transferOptions ...TransferServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Currencies first: accounts, rates and the converter resolve names through it.
	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Account = NewAccountService(repos.AccountRepo, container.Currency)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency)

	container.RateTable = NewRateTableService(repos.ExchangeRateRepo)
	container.Converter = NewConverterService(container.RateTable, container.Currency)
	container.Ledger = NewLedgerService(repos.LedgerRepo)
	container.Transfer = NewTransferService(
		repos.AccountRepo,
		repos.LedgerRepo,
		container.Converter,
		container.Ledger,
		transferOptions...,
	)

	return container
}
