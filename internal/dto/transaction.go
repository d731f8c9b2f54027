package dto

import (
	"time"

	"github.com/SscSPs/org_banking/internal/core/domain"
	"github.com/SscSPs/org_banking/internal/utils"
	"github.com/shopspring/decimal"
)

// InitiateTransactionRequest is the body of POST /transactions/initiate.
type InitiateTransactionRequest struct {
	AccountID        string                 `json:"accountId" binding:"required"`
	Type             domain.TransactionType `json:"type" binding:"required,oneof=INCOMING OUTGOING INTERNAL TAX_PAYMENT"`
	Amount           decimal.Decimal        `json:"amount" binding:"required,positive_decimal" swaggertype:"string" example:"100.00"`
	Description      string                 `json:"description" binding:"required,max=500"`
	RecipientAccount *string                `json:"recipientAccount,omitempty" binding:"omitempty,max=64"`
}

// ToDraft converts the request into the domain's transaction draft.
func (r InitiateTransactionRequest) ToDraft() domain.TransactionDraft {
	return domain.TransactionDraft{
		Type:             r.Type,
		Amount:           r.Amount,
		Description:      r.Description,
		RecipientAccount: r.RecipientAccount,
	}
}

// BankApproveRequest is the body of POST /transactions/{id}/bank-approve.
type BankApproveRequest struct {
	Approve *bool  `json:"approve" binding:"required"`
	Note    string `json:"note" binding:"max=500"`
}

// ListTransactionsParams defines query parameters for listing an account's transactions.
type ListTransactionsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING CLIENT_APPROVED COMPLETED REJECTED CANCELLED"`
	PageParams
}

// SignatureResponse is one client signature.
type SignatureResponse struct {
	UserID         string    `json:"userId"`
	SignedAt       time.Time `json:"signedAt"`
	SignatureToken string    `json:"signatureToken"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID     string                    `json:"transactionId"`
	AccountID         string                    `json:"accountId"`
	Type              domain.TransactionType    `json:"type"`
	Amount            decimal.Decimal           `json:"amount" swaggertype:"string"`
	AmountDisplay     string                    `json:"amountDisplay"`
	Currency          string                    `json:"currency"`
	Description       string                    `json:"description"`
	RecipientAccount  *string                   `json:"recipientAccount,omitempty"`
	InitiatorID       string                    `json:"initiatorId"`
	ClientSignatures  []SignatureResponse       `json:"clientSignatures"`
	ClientApproved    bool                      `json:"clientApproved"`
	Status            domain.TransactionStatus  `json:"status"`
	BankApproverID    *string                   `json:"bankApproverId,omitempty"`
	BankApprovalLevel *domain.BankApprovalLevel `json:"bankApprovalLevel,omitempty"`
	BankApproved      *bool                     `json:"bankApproved,omitempty"`
	BankApprovalNote  *string                   `json:"bankApprovalNote,omitempty"`
	CompletedAt       *time.Time                `json:"completedAt,omitempty"`
	CancelledAt       *time.Time                `json:"cancelledAt,omitempty"`
	ReportDate        time.Time                 `json:"reportDate"`
	ReportID          *string                   `json:"reportId,omitempty"`
	ReportedAt        *time.Time                `json:"reportedAt,omitempty"`
	CreatedAt         time.Time                 `json:"createdAt"`
	LastUpdatedAt     time.Time                 `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	sigs := make([]SignatureResponse, len(txn.ClientSignatures))
	for i, s := range txn.ClientSignatures {
		sigs[i] = SignatureResponse{UserID: s.UserID, SignedAt: s.SignedAt, SignatureToken: s.Token}
	}
	return TransactionResponse{
		TransactionID:     txn.TransactionID,
		AccountID:         txn.AccountID,
		Type:              txn.Type,
		Amount:            txn.Amount,
		AmountDisplay:     utils.FormatAmount(txn.Amount, txn.CurrencyCode),
		Currency:          txn.CurrencyCode,
		Description:       txn.Description,
		RecipientAccount:  txn.RecipientAccount,
		InitiatorID:       txn.InitiatorID,
		ClientSignatures:  sigs,
		ClientApproved:    txn.ClientApproved,
		Status:            txn.Status,
		BankApproverID:    txn.BankApproverID,
		BankApprovalLevel: txn.BankApprovalLevel,
		BankApproved:      txn.BankApproved,
		BankApprovalNote:  txn.BankApprovalNote,
		CompletedAt:       txn.CompletedAt,
		CancelledAt:       txn.CancelledAt,
		ReportDate:        txn.ReportDate,
		ReportID:          txn.ReportID,
		ReportedAt:        txn.ReportedAt,
		CreatedAt:         txn.CreatedAt,
		LastUpdatedAt:     txn.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// ListTransactionsResponse wraps one page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationResponse    `json:"pagination"`
}

// ListPendingTransactionsResponse wraps an account's open transactions.
type ListPendingTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
