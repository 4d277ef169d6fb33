// Package memory keeps all repository state in process. It backs
// STORAGE_BACKEND=memory and the service tests that need real locking.
package memory

import (
	"sort"
	"sync"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portsrepo "github.com/SscSPs/money_transfer_service/internal/core/ports/repositories"
)

type rateKey struct {
	currencyID     string
	baseCurrencyID string
	unixSec        int64
	nanos          int
}

// Store is the shared state behind every in-memory repository.
// mu guards the maps; accountLocks serialise ledger units per account.
type Store struct {
	mu sync.RWMutex

	currencies     map[string]domain.Currency
	currencyByName map[string]string

	rates    []domain.ExchangeRate
	rateKeys map[rateKey]struct{}

	accounts          map[string]domain.Account
	accountByUserCurr map[string]string

	transfers    []domain.Transfer
	transferByID map[string]int

	locksMu      sync.Mutex
	accountLocks map[string]*sync.Mutex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		currencies:        make(map[string]domain.Currency),
		currencyByName:    make(map[string]string),
		rateKeys:          make(map[rateKey]struct{}),
		accounts:          make(map[string]domain.Account),
		accountByUserCurr: make(map[string]string),
		transferByID:      make(map[string]int),
		accountLocks:      make(map[string]*sync.Mutex),
	}
}

func (s *Store) accountLock(accountID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.accountLocks[accountID]
	if !ok {
		l = &sync.Mutex{}
		s.accountLocks[accountID] = l
	}
	return l
}

// lockAccounts locks each distinct id in ascending order and returns the
// matching unlock function.
func (s *Store) lockAccounts(accountIDs []string) func() {
	ids := sortedUnique(accountIDs)
	held := make([]*sync.Mutex, 0, len(ids))
	for _, id := range ids {
		l := s.accountLock(id)
		l.Lock()
		held = append(held, l)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

func sortedUnique(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// NewRepositoryProvider exposes a store through the repository ports.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      &accountRepository{store},
		CurrencyRepo:     &currencyRepository{store},
		ExchangeRateRepo: &exchangeRateRepository{store},
		LedgerRepo:       &ledgerRepository{store},
	}
}
