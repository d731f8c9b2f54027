package domain

// BankApprovalLevel is the seniority tier an officer must hold to approve
// transactions on an account.
type BankApprovalLevel string

const (
	LevelManager       BankApprovalLevel = "MANAGER"
	LevelSeniorManager BankApprovalLevel = "SENIOR_MANAGER"
	LevelChairman      BankApprovalLevel = "CHAIRMAN"
)

var approvalLevelRank = map[BankApprovalLevel]int{
	LevelManager:       1,
	LevelSeniorManager: 2,
	LevelChairman:      3,
}

// Rank orders levels by seniority. Unknown levels rank 0.
func (l BankApprovalLevel) Rank() int {
	return approvalLevelRank[l]
}

// IsValid reports whether l is one of the known tiers.
func (l BankApprovalLevel) IsValid() bool {
	return l.Rank() > 0
}

// Satisfies reports whether an officer at level l may approve for an account
// requiring the given level.
func (l BankApprovalLevel) Satisfies(required BankApprovalLevel) bool {
	if !l.IsValid() {
		return false
	}
	if !required.IsValid() {
		// Misconfigured accounts fall back to the highest tier.
		return l == LevelChairman
	}
	return l.Rank() >= required.Rank()
}

// BankDecision is the officer-side outcome recorded on a transaction.
type BankDecision struct {
	OfficerID string
	Level     BankApprovalLevel
	Approve   bool
	Note      string
}

// DefaultRejectionNote is recorded when an officer rejects without a note.
const DefaultRejectionNote = "Rejected by bank officer"

// NoteOrDefault returns the note to persist for this decision.
func (d BankDecision) NoteOrDefault() string {
	if d.Note == "" && !d.Approve {
		return DefaultRejectionNote
	}
	return d.Note
}
