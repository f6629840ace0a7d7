package memory

import (
	"context"
	"sync"

	"quiz-arena-service/internal/domain"
)

// Ledger is an in-memory token ledger. A transfer must leave the sender with
// at least the existential deposit so the account stays alive.
type Ledger struct {
	mu                 sync.Mutex
	balances           map[domain.AccountID]domain.Amount
	existentialDeposit domain.Amount
}

func NewLedger(existentialDeposit domain.Amount, genesis map[domain.AccountID]domain.Amount) *Ledger {
	balances := make(map[domain.AccountID]domain.Amount, len(genesis))
	for account, amount := range genesis {
		balances[account] = amount
	}
	return &Ledger{balances: balances, existentialDeposit: existentialDeposit}
}

func (l *Ledger) FreeBalance(_ context.Context, account domain.AccountID) (domain.Amount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[account], nil
}

func (l *Ledger) Transfer(_ context.Context, from, to domain.AccountID, amount domain.Amount) error {
	if amount == 0 || from == to {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	free := l.balances[from]
	if free < amount || free-amount < l.existentialDeposit {
		return domain.ErrInsufficientBalance
	}
	l.balances[from] = free - amount
	l.balances[to] += amount
	return nil
}

// Refund moves amount without the keep-alive check; from may end below the
// existential deposit.
func (l *Ledger) Refund(_ context.Context, from, to domain.AccountID, amount domain.Amount) error {
	if amount == 0 || from == to {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balances[from] < amount {
		return domain.ErrInsufficientBalance
	}
	l.balances[from] -= amount
	l.balances[to] += amount
	return nil
}

// Deposit credits amount to account.
func (l *Ledger) Deposit(_ context.Context, account domain.AccountID, amount domain.Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[account] += amount
	return nil
}
