package accounting

import (
	"fmt"

	"github.com/SscSPs/org_banking/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApplyExecution returns the balance the account holds after txn executes.
// This is used by every BalanceLedger implementation so that credit/debit
// direction and the overdraft guard stay identical across stores.
func ApplyExecution(account domain.Account, txn domain.Transaction) (decimal.Decimal, error) {
	if txn.AccountID != account.AccountID {
		return decimal.Zero, fmt.Errorf("transaction %s does not belong to account %s", txn.TransactionID, account.AccountID)
	}
	if err := account.CheckFunds(txn.Type, txn.Amount); err != nil {
		return account.Balance, err
	}
	return account.Balance.Add(domain.BalanceDelta(txn.Type, txn.Amount)), nil
}

// NetFlow sums the signed effect of the completed transactions in txns.
func NetFlow(txns []domain.Transaction) decimal.Decimal {
	net := decimal.Zero
	for _, txn := range txns {
		if txn.Status != domain.StatusCompleted {
			continue
		}
		net = net.Add(domain.BalanceDelta(txn.Type, txn.Amount))
	}
	return net
}
