// Package database provides SQLite-backed storage for account activity and
// transaction history, following database/marketdata.go's prepared-statement
// and batch-transaction pattern from the teacher's trade/orderbook/OHLCV
// tables, repurposed here to the activity and transaction history rows
// SPEC_FULL.md §2.1 calls for instead of market tick data.
package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/gurre/ig-client-go/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS activities (
	date           TEXT NOT NULL,
	deal_id        TEXT,
	epic           TEXT,
	period         TEXT,
	deal_reference TEXT,
	type           TEXT NOT NULL,
	status         TEXT,
	description    TEXT,
	fetched_at     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
	date              TEXT NOT NULL,
	date_utc          TEXT NOT NULL,
	open_date_utc      TEXT,
	instrument_name    TEXT,
	period             TEXT,
	profit_and_loss    TEXT,
	transaction_type   TEXT NOT NULL,
	reference          TEXT,
	open_level         TEXT,
	close_level        TEXT,
	size               TEXT,
	currency           TEXT,
	cash_transaction   INTEGER NOT NULL,
	fetched_at         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activities_deal_reference ON activities(deal_reference);
CREATE INDEX IF NOT EXISTS idx_transactions_reference ON transactions(reference);
`

const insertActivityQuery = `
INSERT INTO activities (date, deal_id, epic, period, deal_reference, type, status, description, fetched_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const insertTransactionQuery = `
INSERT INTO transactions (date, date_utc, open_date_utc, instrument_name, period, profit_and_loss, transaction_type, reference, open_level, close_level, size, currency, cash_transaction, fetched_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// HistoryDb provides SQLite storage for account activity and transaction
// history. Prepared statements are initialized once at construction and
// reused for every batch insert, avoiding SQL parsing overhead per row.
type HistoryDb struct {
	db *sql.DB

	stmtActivity    *sql.Stmt
	stmtTransaction *sql.Stmt
}

// NewHistoryDb opens (creating if absent) the sqlite file at dbPath and
// ensures its schema and prepared statements are ready for use.
func NewHistoryDb(dbPath string) (*HistoryDb, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	hdb := &HistoryDb{db: db}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %v", err)
	}

	if hdb.stmtActivity, err = db.Prepare(insertActivityQuery); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare activity statement: %v", err)
	}
	if hdb.stmtTransaction, err = db.Prepare(insertTransactionQuery); err != nil {
		_ = hdb.stmtActivity.Close()
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare transaction statement: %v", err)
	}

	logrus.WithField("path", dbPath).Info("database: history store initialized")
	return hdb, nil
}

// Close releases the prepared statements and the underlying connection.
func (hdb *HistoryDb) Close() error {
	if hdb.stmtActivity != nil {
		_ = hdb.stmtActivity.Close()
	}
	if hdb.stmtTransaction != nil {
		_ = hdb.stmtTransaction.Close()
	}
	return hdb.db.Close()
}

// StoreActivity persists one activity record, using fetchedAt (caller-supplied
// so the store stays deterministic and testable) as the row's ingestion
// timestamp.
func (hdb *HistoryDb) StoreActivity(a model.Activity, fetchedAt string) error {
	_, err := hdb.db.Exec(insertActivityQuery,
		a.Date, derefStr(a.DealID), derefStr(a.Epic), derefStr(a.Period), derefStr(a.DealReference),
		string(a.Type), derefStr(a.Status), derefStr(a.Description), fetchedAt)
	return err
}

// StoreTransaction persists one transaction record.
func (hdb *HistoryDb) StoreTransaction(tx model.AccountTransaction, fetchedAt string) error {
	_, err := hdb.db.Exec(insertTransactionQuery,
		tx.Date, tx.DateUTC, tx.OpenDateUTC, tx.InstrumentName, tx.Period, tx.ProfitAndLoss,
		tx.TransactionType, tx.Reference, tx.OpenLevel, tx.CloseLevel, tx.Size, tx.Currency,
		boolToInt(tx.CashTransaction), fetchedAt)
	return err
}

// BeginBatch opens a transaction for a batch of activity/transaction inserts.
func (hdb *HistoryDb) BeginBatch() (*sql.Tx, error) {
	return hdb.db.Begin()
}

// StoreActivityBatch inserts a within a transaction, binding the prepared
// statement to tx via tx.Stmt.
func (hdb *HistoryDb) StoreActivityBatch(tx *sql.Tx, a model.Activity, fetchedAt string) error {
	_, err := tx.Stmt(hdb.stmtActivity).Exec(
		a.Date, derefStr(a.DealID), derefStr(a.Epic), derefStr(a.Period), derefStr(a.DealReference),
		string(a.Type), derefStr(a.Status), derefStr(a.Description), fetchedAt)
	return err
}

// StoreTransactionBatch inserts tx within a batch transaction.
func (hdb *HistoryDb) StoreTransactionBatch(dbTx *sql.Tx, tr model.AccountTransaction, fetchedAt string) error {
	_, err := dbTx.Stmt(hdb.stmtTransaction).Exec(
		tr.Date, tr.DateUTC, tr.OpenDateUTC, tr.InstrumentName, tr.Period, tr.ProfitAndLoss,
		tr.TransactionType, tr.Reference, tr.OpenLevel, tr.CloseLevel, tr.Size, tr.Currency,
		boolToInt(tr.CashTransaction), fetchedAt)
	return err
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
