package accounting

import (
	"testing"

	"github.com/SscSPs/org_banking/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyExecution(t *testing.T) {
	account := domain.Account{AccountID: "acc-1", Balance: decimal.NewFromInt(5000)}
	mk := func(txType domain.TransactionType, amount int64) domain.Transaction {
		return domain.Transaction{TransactionID: "tx", AccountID: "acc-1", Type: txType, Amount: decimal.NewFromInt(amount)}
	}

	got, err := ApplyExecution(account, mk(domain.Outgoing, 100))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(4900).Equal(got))

	got, err = ApplyExecution(account, mk(domain.Incoming, 100))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5100).Equal(got))

	got, err = ApplyExecution(account, mk(domain.Internal, 100))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5000).Equal(got))

	_, err = ApplyExecution(account, mk(domain.TaxPayment, 5001))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	other := mk(domain.Incoming, 1)
	other.AccountID = "acc-2"
	_, err = ApplyExecution(account, other)
	assert.Error(t, err)
}

func TestNetFlow(t *testing.T) {
	txns := []domain.Transaction{
		{Type: domain.Incoming, Amount: decimal.NewFromInt(300), Status: domain.StatusCompleted},
		{Type: domain.Outgoing, Amount: decimal.NewFromInt(100), Status: domain.StatusCompleted},
		{Type: domain.TaxPayment, Amount: decimal.NewFromInt(50), Status: domain.StatusCompleted},
		{Type: domain.Outgoing, Amount: decimal.NewFromInt(999), Status: domain.StatusRejected},
		{Type: domain.Incoming, Amount: decimal.NewFromInt(999), Status: domain.StatusPending},
	}
	assert.True(t, decimal.NewFromInt(150).Equal(NetFlow(txns)))
}
