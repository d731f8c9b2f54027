package mapping

import (
	"database/sql"
	"time"

	"github.com/SscSPs/org_banking/internal/core/domain"
	"github.com/SscSPs/org_banking/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction,
// signatures included.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID:    d.TransactionID,
		AccountID:        d.AccountID,
		TransactionType:  string(d.Type),
		Amount:           d.Amount,
		CurrencyCode:     d.CurrencyCode,
		Description:      d.Description,
		RecipientAccount: nullString(d.RecipientAccount),
		InitiatorID:      d.InitiatorID,
		ClientApproved:   d.ClientApproved,
		Status:           string(d.Status),
		BankApproverID:   nullString(d.BankApproverID),
		BankApprovalNote: nullString(d.BankApprovalNote),
		CompletedAt:      nullTime(d.CompletedAt),
		CancelledAt:      nullTime(d.CancelledAt),
		ReportDate:       d.ReportDate,
		ReportID:         nullString(d.ReportID),
		ReportedAt:       nullTime(d.ReportedAt),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	if d.BankApprovalLevel != nil {
		m.BankApprovalLevel = sql.NullString{String: string(*d.BankApprovalLevel), Valid: true}
	}
	if d.BankApproved != nil {
		m.BankApproved = sql.NullBool{Bool: *d.BankApproved, Valid: true}
	}
	m.Signatures = make([]models.Signature, len(d.ClientSignatures))
	for i, sig := range d.ClientSignatures {
		m.Signatures[i] = ToModelSignature(d.TransactionID, i, sig)
	}
	return m
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID:    m.TransactionID,
		AccountID:        m.AccountID,
		Type:             domain.TransactionType(m.TransactionType),
		Amount:           m.Amount,
		CurrencyCode:     m.CurrencyCode,
		Description:      m.Description,
		RecipientAccount: stringPtr(m.RecipientAccount),
		InitiatorID:      m.InitiatorID,
		ClientSignatures: ToDomainSignatures(m.Signatures),
		ClientApproved:   m.ClientApproved,
		Status:           domain.TransactionStatus(m.Status),
		BankApproverID:   stringPtr(m.BankApproverID),
		BankApprovalNote: stringPtr(m.BankApprovalNote),
		CompletedAt:      timePtr(m.CompletedAt),
		CancelledAt:      timePtr(m.CancelledAt),
		ReportDate:       m.ReportDate,
		ReportID:         stringPtr(m.ReportID),
		ReportedAt:       timePtr(m.ReportedAt),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	if m.BankApprovalLevel.Valid {
		level := domain.BankApprovalLevel(m.BankApprovalLevel.String)
		d.BankApprovalLevel = &level
	}
	if m.BankApproved.Valid {
		approved := m.BankApproved.Bool
		d.BankApproved = &approved
	}
	return d
}

// ToModelSignature converts the signature at position in a transaction's list.
func ToModelSignature(transactionID string, position int, sig domain.ClientSignature) models.Signature {
	return models.Signature{
		TransactionID:  transactionID,
		Position:       position,
		UserID:         sig.UserID,
		SignatureToken: sig.Token,
		SignedAt:       sig.SignedAt,
	}
}

// ToDomainSignatures converts signature rows, already ordered by position.
func ToDomainSignatures(ms []models.Signature) domain.ClientSignatures {
	sigs := make(domain.ClientSignatures, len(ms))
	for i, m := range ms {
		sigs[i] = domain.ClientSignature{
			UserID:   m.UserID,
			SignedAt: m.SignedAt,
			Token:    m.SignatureToken,
		}
	}
	return sigs
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func stringPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	s := n.String
	return &s
}

func nullTime(p *time.Time) sql.NullTime {
	if p == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *p, Valid: true}
}

func timePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}
