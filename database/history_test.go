package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurre/ig-client-go/model"
)

func openTestDb(t *testing.T) *HistoryDb {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	db, err := NewHistoryDb(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestStoreActivityPersistsRow(t *testing.T) {
	db := openTestDb(t)
	epic := "CS.D.EURUSD.CFD.IP"
	ref := "REF1"
	a := model.Activity{Date: "2024-01-01T00:00:00", Epic: &epic, DealReference: &ref, Type: model.ActivityPosition}

	require.NoError(t, db.StoreActivity(a, "2024-01-01T00:00:01"))

	var count int
	require.NoError(t, db.db.QueryRow("SELECT COUNT(*) FROM activities WHERE deal_reference = ?", ref).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestStoreTransactionPersistsRow(t *testing.T) {
	db := openTestDb(t)
	tr := model.AccountTransaction{
		Date: "01/01/24", DateUTC: "2024-01-01T00:00:00", InstrumentName: "Germany 40",
		TransactionType: "DEAL", Reference: "REF2", CashTransaction: false,
	}

	require.NoError(t, db.StoreTransaction(tr, "2024-01-01T00:00:01"))

	var profitAndLoss string
	require.NoError(t, db.db.QueryRow("SELECT profit_and_loss FROM transactions WHERE reference = ?", "REF2").Scan(&profitAndLoss))
	assert.Equal(t, "", profitAndLoss)
}

func TestStoreActivityBatchCommitsWithinTransaction(t *testing.T) {
	db := openTestDb(t)
	tx, err := db.BeginBatch()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		ref := "BATCH"
		a := model.Activity{Date: "2024-01-01T00:00:00", DealReference: &ref, Type: model.ActivityPosition}
		require.NoError(t, db.StoreActivityBatch(tx, a, "2024-01-01T00:00:01"))
	}
	require.NoError(t, tx.Commit())

	var count int
	require.NoError(t, db.db.QueryRow("SELECT COUNT(*) FROM activities WHERE deal_reference = ?", "BATCH").Scan(&count))
	assert.Equal(t, 3, count)
}

func TestStoreActivityBatchRollsBackOnAbort(t *testing.T) {
	db := openTestDb(t)
	tx, err := db.BeginBatch()
	require.NoError(t, err)

	ref := "ABORTED"
	a := model.Activity{Date: "2024-01-01T00:00:00", DealReference: &ref, Type: model.ActivityPosition}
	require.NoError(t, db.StoreActivityBatch(tx, a, "2024-01-01T00:00:01"))
	require.NoError(t, tx.Rollback())

	var count int
	require.NoError(t, db.db.QueryRow("SELECT COUNT(*) FROM activities WHERE deal_reference = ?", ref).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestDerefStrHandlesNil(t *testing.T) {
	assert.Equal(t, "", derefStr(nil))
	v := "x"
	assert.Equal(t, "x", derefStr(&v))
}

func TestNewHistoryDbRejectsUnwritablePath(t *testing.T) {
	_, err := NewHistoryDb("/nonexistent-dir-xyz/history.db")
	assert.Error(t, err)
}
