package domain_test

import (
	"testing"

	"github.com/SscSPs/org_banking/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestBankApprovalLevel_Satisfies(t *testing.T) {
	tests := []struct {
		officer  domain.BankApprovalLevel
		required domain.BankApprovalLevel
		want     bool
	}{
		{domain.LevelManager, domain.LevelManager, true},
		{domain.LevelManager, domain.LevelSeniorManager, false},
		{domain.LevelSeniorManager, domain.LevelManager, true},
		{domain.LevelChairman, domain.LevelSeniorManager, true},
		{domain.LevelSeniorManager, domain.LevelChairman, false},
		{"INTERN", domain.LevelManager, false},
		{domain.LevelSeniorManager, "UNKNOWN", false},
		{domain.LevelChairman, "UNKNOWN", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.officer)+"_for_"+string(tt.required), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.officer.Satisfies(tt.required))
		})
	}
}

func TestBankDecision_NoteOrDefault(t *testing.T) {
	assert.Equal(t, domain.DefaultRejectionNote, domain.BankDecision{Approve: false}.NoteOrDefault())
	assert.Equal(t, "bad payee", domain.BankDecision{Approve: false, Note: "bad payee"}.NoteOrDefault())
	assert.Equal(t, "", domain.BankDecision{Approve: true}.NoteOrDefault())
}

func TestClientSignatures_Append(t *testing.T) {
	var sigs domain.ClientSignatures
	sigs, err := sigs.Append(domain.ClientSignature{UserID: "a"})
	assert.NoError(t, err)

	grown, err := sigs.Append(domain.ClientSignature{UserID: "b"})
	assert.NoError(t, err)
	assert.Len(t, grown, 2)
	assert.Len(t, sigs, 1)

	_, err = grown.Append(domain.ClientSignature{UserID: "a"})
	assert.ErrorIs(t, err, domain.ErrAlreadySigned)
}
