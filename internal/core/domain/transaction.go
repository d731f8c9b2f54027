package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType determines whether a transaction credits or debits its account.
type TransactionType string

const (
	Incoming   TransactionType = "INCOMING"
	Outgoing   TransactionType = "OUTGOING"
	Internal   TransactionType = "INTERNAL"
	TaxPayment TransactionType = "TAX_PAYMENT"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	switch t {
	case Incoming, Outgoing, Internal, TaxPayment:
		return true
	}
	return false
}

// IsDebit reports whether executing t lowers the balance.
func (t TransactionType) IsDebit() bool {
	return t == Outgoing || t == TaxPayment
}

// IsCredit reports whether executing t raises the balance.
func (t TransactionType) IsCredit() bool {
	return t == Incoming
}

// BalanceDelta is the signed change executing a transaction applies to its
// account. INTERNAL transfers move nothing.
func BalanceDelta(t TransactionType, amount decimal.Decimal) decimal.Decimal {
	switch {
	case t.IsDebit():
		return amount.Neg()
	case t.IsCredit():
		return amount
	default:
		return decimal.Zero
	}
}

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusPending        TransactionStatus = "PENDING"
	StatusClientApproved TransactionStatus = "CLIENT_APPROVED"
	StatusCompleted      TransactionStatus = "COMPLETED"
	StatusRejected       TransactionStatus = "REJECTED"
	StatusCancelled      TransactionStatus = "CANCELLED"
)

// OpenStatuses are the states in which money has not moved yet.
var OpenStatuses = []TransactionStatus{StatusPending, StatusClientApproved}

// IsValid reports whether s is a known status.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusClientApproved, StatusCompleted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// IsOpen reports whether the transaction may still be signed, reviewed or cancelled.
func (s TransactionStatus) IsOpen() bool {
	return s == StatusPending || s == StatusClientApproved
}

// IsTerminal reports whether no further lifecycle change is allowed.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected || s == StatusCancelled
}

// TransactionDraft is the caller-supplied part of a new transaction.
type TransactionDraft struct {
	Type             TransactionType
	Amount           decimal.Decimal
	Description      string
	RecipientAccount *string
}

// Validate checks the draft independently of any account.
func (d TransactionDraft) Validate() error {
	if !d.Type.IsValid() {
		return ErrInvalidTransactionType
	}
	if !d.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(d.Description) == "" {
		return ErrDescriptionMissing
	}
	return nil
}

// Transaction is one money-movement attempt on an organization account.
type Transaction struct {
	TransactionID     string             `json:"transactionID"`
	AccountID         string             `json:"accountID"`
	Type              TransactionType    `json:"type"`
	Amount            decimal.Decimal    `json:"amount"`
	CurrencyCode      string             `json:"currencyCode"`
	Description       string             `json:"description"`
	RecipientAccount  *string            `json:"recipientAccount,omitempty"`
	InitiatorID       string             `json:"initiatorID"`
	ClientSignatures  ClientSignatures   `json:"clientSignatures"`
	ClientApproved    bool               `json:"clientApproved"`
	Status            TransactionStatus  `json:"status"`
	BankApproverID    *string            `json:"bankApproverID,omitempty"`
	BankApprovalLevel *BankApprovalLevel `json:"bankApprovalLevel,omitempty"`
	BankApproved      *bool              `json:"bankApproved,omitempty"`
	BankApprovalNote  *string            `json:"bankApprovalNote,omitempty"`
	CompletedAt       *time.Time         `json:"completedAt,omitempty"`
	CancelledAt       *time.Time         `json:"cancelledAt,omitempty"`
	ReportDate        time.Time          `json:"reportDate"`
	ReportID          *string            `json:"reportID,omitempty"`
	ReportedAt        *time.Time         `json:"reportedAt,omitempty"`
	AuditFields
}

// NewTransaction opens a transaction with the initiator as first signer.
// It is CLIENT_APPROVED straight away when the account needs one signature.
func NewTransaction(id string, account Account, initiatorID string, draft TransactionDraft, first ClientSignature, now time.Time) Transaction {
	tx := Transaction{
		TransactionID:    id,
		AccountID:        account.AccountID,
		Type:             draft.Type,
		Amount:           draft.Amount,
		CurrencyCode:     account.CurrencyCode,
		Description:      draft.Description,
		RecipientAccount: draft.RecipientAccount,
		InitiatorID:      initiatorID,
		ClientSignatures: ClientSignatures{first},
		Status:           StatusPending,
		ReportDate:       now,
		AuditFields: AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	tx.recomputeQuorum(account.RequiredSignatures())
	return tx
}

func (t *Transaction) recomputeQuorum(required int) {
	t.ClientApproved = len(t.ClientSignatures) >= required
	if t.ClientApproved && t.Status == StatusPending {
		t.Status = StatusClientApproved
	}
}

// CheckCanSign validates a sign request by signerID.
func (t Transaction) CheckCanSign(signerID string) error {
	if t.Status != StatusPending {
		return ErrNotPending
	}
	if t.ClientSignatures.Has(signerID) {
		return ErrAlreadySigned
	}
	return nil
}

// AddSignature appends sig and moves PENDING to CLIENT_APPROVED once the
// quorum is reached. Callers must hold the row for the whole read-modify-write.
func (t *Transaction) AddSignature(sig ClientSignature, required int) error {
	if t.Status != StatusPending {
		return ErrNotPending
	}
	sigs, err := t.ClientSignatures.Append(sig)
	if err != nil {
		return err
	}
	t.ClientSignatures = sigs
	t.LastUpdatedAt = sig.SignedAt
	t.recomputeQuorum(required)
	return nil
}

// CheckCanBankReview validates that an officer may act on the transaction.
func (t Transaction) CheckCanBankReview() error {
	if t.Status != StatusClientApproved {
		return ErrNotClientApproved
	}
	return nil
}

// CheckCanCancel validates a cancel request; only the initiator may cancel
// and only while money has not moved.
func (t Transaction) CheckCanCancel(requesterID string) error {
	if t.InitiatorID != requesterID {
		return ErrNotInitiator
	}
	if !t.Status.IsOpen() {
		return ErrNotCancellable
	}
	return nil
}

// RecordDecision stamps the officer decision and the resulting status.
func (t *Transaction) RecordDecision(d BankDecision, now time.Time) {
	officer := d.OfficerID
	level := d.Level
	approved := d.Approve
	t.BankApproverID = &officer
	t.BankApprovalLevel = &level
	t.BankApproved = &approved
	if note := d.NoteOrDefault(); note != "" {
		t.BankApprovalNote = &note
	} else {
		t.BankApprovalNote = nil
	}
	if d.Approve {
		t.Status = StatusCompleted
		t.CompletedAt = &now
	} else {
		t.Status = StatusRejected
	}
	t.LastUpdatedAt = now
}

// MarkCancelled moves the transaction to CANCELLED.
func (t *Transaction) MarkCancelled(now time.Time) {
	t.Status = StatusCancelled
	t.CancelledAt = &now
	t.LastUpdatedAt = now
}

// Clone returns a deep copy safe to hand out of a store.
func (t Transaction) Clone() Transaction {
	out := t
	out.ClientSignatures = t.ClientSignatures.Clone()
	out.RecipientAccount = clonePtr(t.RecipientAccount)
	out.BankApproverID = clonePtr(t.BankApproverID)
	out.BankApprovalLevel = clonePtr(t.BankApprovalLevel)
	out.BankApproved = clonePtr(t.BankApproved)
	out.BankApprovalNote = clonePtr(t.BankApprovalNote)
	out.CompletedAt = clonePtr(t.CompletedAt)
	out.CancelledAt = clonePtr(t.CancelledAt)
	out.ReportID = clonePtr(t.ReportID)
	out.ReportedAt = clonePtr(t.ReportedAt)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
