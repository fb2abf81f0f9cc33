package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the shared in-memory database free of table locks between tx and non-tx calls
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createPaymentTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payment_records (
		id TEXT PRIMARY KEY,
		business_id TEXT NOT NULL,
		category TEXT NOT NULL,
		status TEXT NOT NULL,
		total_amount TEXT NOT NULL,
		token TEXT NOT NULL,
		gas_limit INTEGER NOT NULL,
		payroll_period TEXT,
		payroll_date DATETIME NOT NULL,
		transaction_hash TEXT,
		error_details TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE payment_recipients (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		payment_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		recipient_id TEXT NOT NULL,
		name TEXT,
		email TEXT,
		wallet_address TEXT NOT NULL,
		amount TEXT NOT NULL
	);`)
	mustExec(t, db, `CREATE TABLE payment_history (
		id TEXT PRIMARY KEY,
		business_id TEXT NOT NULL,
		payment_id TEXT NOT NULL,
		transaction_id TEXT,
		category TEXT NOT NULL,
		amount TEXT NOT NULL,
		status TEXT NOT NULL,
		transaction_hash TEXT,
		recipient_wallet_address TEXT,
		recipient_name TEXT,
		created_at DATETIME
	);`)
}

func createPayeeTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payees (
		id TEXT PRIMARY KEY,
		business_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT,
		role TEXT,
		salary TEXT,
		status TEXT NOT NULL,
		wallet_address TEXT,
		invite_link TEXT,
		note TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createBusinessTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE businesses (
		id TEXT PRIMARY KEY,
		name TEXT,
		email TEXT,
		payment_interval TEXT,
		payment_day TEXT,
		specific_date INTEGER,
		next_payment_date DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE payroll_schedules (
		business_id TEXT PRIMARY KEY,
		payment_interval TEXT NOT NULL,
		payment_day TEXT NOT NULL,
		specific_date INTEGER,
		next_payment_date DATETIME NOT NULL,
		status TEXT NOT NULL,
		last_updated DATETIME
	);`)
}

func createMailQueueTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE mail_queue (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		recipient TEXT NOT NULL,
		subject TEXT NOT NULL,
		text TEXT,
		html TEXT,
		attachments TEXT,
		created_at DATETIME
	);`)
}
