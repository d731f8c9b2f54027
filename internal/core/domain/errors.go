package domain

import (
	"fmt"

	"github.com/SscSPs/org_banking/internal/apperrors"
)

// Precondition failures. Each wraps an apperrors sentinel so callers can map
// the category while clients still see the specific reason.
var (
	ErrAccountNotFound     = fmt.Errorf("%w: account not found", apperrors.ErrNotFound)
	ErrTransactionNotFound = fmt.Errorf("%w: transaction not found", apperrors.ErrNotFound)
	ErrReportNotFound      = fmt.Errorf("%w: daily report not found", apperrors.ErrNotFound)

	ErrAccountInactive        = fmt.Errorf("%w: account is inactive", apperrors.ErrValidation)
	ErrInsufficientFunds      = fmt.Errorf("%w: insufficient funds", apperrors.ErrValidation)
	ErrInvalidAmount          = fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	ErrInvalidTransactionType = fmt.Errorf("%w: unknown transaction type", apperrors.ErrValidation)
	ErrDescriptionMissing     = fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	ErrNotPending             = fmt.Errorf("%w: transaction is not pending, cannot sign", apperrors.ErrValidation)
	ErrAlreadySigned          = fmt.Errorf("%w: already signed", apperrors.ErrValidation)
	ErrNotClientApproved      = fmt.Errorf("%w: transaction must be client-approved first", apperrors.ErrValidation)
	ErrNotCancellable         = fmt.Errorf("%w: transaction can no longer be cancelled", apperrors.ErrValidation)
	ErrInvalidStatusFilter    = fmt.Errorf("%w: unknown transaction status", apperrors.ErrValidation)

	ErrNotMember            = fmt.Errorf("%w: you are not a member of this organization", apperrors.ErrForbidden)
	ErrNoTreasuryPermission = fmt.Errorf("%w: you do not have treasury management permissions", apperrors.ErrForbidden)
	ErrNotInitiator         = fmt.Errorf("%w: only the initiator can cancel", apperrors.ErrForbidden)
	ErrOfficerNotRecognized = fmt.Errorf("%w: approver is not a bank officer", apperrors.ErrForbidden)
	ErrOfficerLevelTooLow   = fmt.Errorf("%w: officer seniority is below the account's approval level", apperrors.ErrForbidden)

	ErrTransactionRaceLost = fmt.Errorf("%w: transaction status changed concurrently", apperrors.ErrConflict)
	ErrReportAlreadyExists = fmt.Errorf("%w: daily report already exists", apperrors.ErrDuplicate)
)
