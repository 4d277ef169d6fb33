package dto

import (
	"time"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	"github.com/SscSPs/money_transfer_service/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateTransferRequest defines the data needed to move money between accounts.
type CreateTransferRequest struct {
	SenderAccountID   string          `json:"senderAccountID" binding:"required"`
	ReceiverAccountID string          `json:"receiverAccountID" binding:"required"`
	Amount            decimal.Decimal `json:"amount"`
}

// TransferResponse defines the data returned for a transfer.
type TransferResponse struct {
	TransferID        string    `json:"transferID"`
	SenderAccountID   string    `json:"senderAccountID"`
	ReceiverAccountID string    `json:"receiverAccountID"`
	Amount            string    `json:"amount"`
	ConvertedAmount   string    `json:"convertedAmount"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ToTransferResponse converts a domain.Transfer to TransferResponse DTO
func ToTransferResponse(t *domain.Transfer) TransferResponse {
	return TransferResponse{
		TransferID:        t.TransferID,
		SenderAccountID:   t.SenderAccountID,
		ReceiverAccountID: t.ReceiverAccountID,
		Amount:            utils.FormatAmount(t.Amount),
		ConvertedAmount:   utils.FormatAmount(t.ConvertedAmount),
		CreatedAt:         t.CreatedAt,
	}
}

// ListTransfersParams defines query parameters for listing transfers.
type ListTransfersParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListTransfersResponse wraps a page of transfers.
type ListTransfersResponse struct {
	Transfers []TransferResponse `json:"transfers"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToListTransfersResponse converts a page of transfers to its response DTO.
func ToListTransfersResponse(transfers []domain.Transfer, nextToken *string) ListTransfersResponse {
	res := make([]TransferResponse, len(transfers))
	for i := range transfers {
		res[i] = ToTransferResponse(&transfers[i])
	}
	return ListTransfersResponse{Transfers: res, NextToken: nextToken}
}
