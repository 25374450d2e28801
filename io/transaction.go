package io

import (
	"context"
	"database/sql"
	"fmt"
)

//Transaction represents locally managed transaction
type Transaction struct {
	*sql.Tx
	done bool
}

//Begin starts a transaction
func Begin(ctx context.Context, db *sql.DB) (*Transaction, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Transaction{Tx: tx}, nil
}

//Rollback rolls back transaction unless it was already completed
func (t *Transaction) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	return t.Tx.Rollback()
}

//RollbackWithErr rolls back transaction and returns err annotated with rollback failure if any
func (t *Transaction) RollbackWithErr(err error) error {
	if rErr := t.Rollback(); rErr != nil {
		return fmt.Errorf("failed to rollback: %w, %v", err, rErr)
	}
	return err
}

//Commit commits transaction
func (t *Transaction) Commit() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	return t.Tx.Commit()
}

//Run runs fn within a transaction: commits on success, rolls back on error
func Run(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := Begin(ctx, db)
	if err != nil {
		return err
	}
	if err = fn(tx.Tx); err != nil {
		return tx.RollbackWithErr(err)
	}
	if err = tx.Commit(); err != nil {
		return tx.RollbackWithErr(err)
	}
	return nil
}
