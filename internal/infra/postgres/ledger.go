package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quiz-arena-service/internal/domain"
)

// Ledger keeps account balances in Postgres and journals every transfer.
// A transfer must leave the sender with at least the existential deposit.
type Ledger struct {
	pool               *pgxpool.Pool
	existentialDeposit domain.Amount
}

func NewLedger(pool *pgxpool.Pool, existentialDeposit domain.Amount) *Ledger {
	return &Ledger{pool: pool, existentialDeposit: existentialDeposit}
}

func (l *Ledger) FreeBalance(ctx context.Context, account domain.AccountID) (domain.Amount, error) {
	var balance int64
	err := l.pool.QueryRow(ctx, `SELECT balance FROM accounts WHERE account=$1`, string(account)).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load balance: %w", err)
	}
	return domain.Amount(balance), nil
}

func (l *Ledger) Transfer(ctx context.Context, from, to domain.AccountID, amount domain.Amount) error {
	return l.move(ctx, from, to, amount, l.existentialDeposit)
}

// Refund moves amount without the keep-alive check.
func (l *Ledger) Refund(ctx context.Context, from, to domain.AccountID, amount domain.Amount) error {
	return l.move(ctx, from, to, amount, 0)
}

// move debits from, credits to and journals the transfer in one transaction.
// from must keep at least floor afterwards.
func (l *Ledger) move(ctx context.Context, from, to domain.AccountID, amount, floor domain.Amount) error {
	if amount == 0 || from == to {
		return nil
	}

	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transfer: %w", err)
	}
	defer tx.Rollback(ctx)

	var balance int64
	err = tx.QueryRow(ctx, `SELECT balance FROM accounts WHERE account=$1 FOR UPDATE`, string(from)).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrInsufficientBalance
	}
	if err != nil {
		return fmt.Errorf("lock sender: %w", err)
	}
	free := domain.Amount(balance)
	if free < amount || free-amount < floor {
		return domain.ErrInsufficientBalance
	}

	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = balance - $2, updated_at = now() WHERE account=$1`, string(from), int64(amount)); err != nil {
		return fmt.Errorf("debit sender: %w", err)
	}
	if err := credit(ctx, tx, to, amount); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO transfers (from_account, to_account, amount) VALUES ($1, $2, $3)`, string(from), string(to), int64(amount)); err != nil {
		return fmt.Errorf("journal transfer: %w", err)
	}
	return tx.Commit(ctx)
}

// Deposit credits amount to account, creating the account if needed.
func (l *Ledger) Deposit(ctx context.Context, account domain.AccountID, amount domain.Amount) error {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin deposit: %w", err)
	}
	defer tx.Rollback(ctx)
	if err := credit(ctx, tx, account, amount); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func credit(ctx context.Context, tx pgx.Tx, account domain.AccountID, amount domain.Amount) error {
	_, err := tx.Exec(ctx, `INSERT INTO accounts (account, balance) VALUES ($1, $2)
		ON CONFLICT (account) DO UPDATE SET balance = accounts.balance + EXCLUDED.balance, updated_at = now()`,
		string(account), int64(amount))
	if err != nil {
		return fmt.Errorf("credit %s: %w", account, err)
	}
	return nil
}
