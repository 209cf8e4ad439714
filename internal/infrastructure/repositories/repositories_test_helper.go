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
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createWalletTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallets (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		balance NUMERIC NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE wallet_transactions (
		id TEXT PRIMARY KEY,
		wallet_id TEXT NOT NULL,
		type TEXT NOT NULL,
		amount NUMERIC NOT NULL,
		source TEXT NOT NULL,
		created_at DATETIME
	);`)
}

func createLoyaltyPointTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE loyalty_points (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		points INTEGER NOT NULL,
		source TEXT NOT NULL,
		expires_at DATETIME,
		created_at DATETIME
	);`)
}

func createReferralTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE referrals (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		referrer_id TEXT NOT NULL,
		referred_id TEXT,
		status TEXT NOT NULL,
		created_at DATETIME,
		applied_at DATETIME,
		rewarded_at DATETIME
	);`)
}

func createRewardsTables(t *testing.T, db *gorm.DB) {
	createWalletTables(t, db)
	createLoyaltyPointTable(t, db)
	createReferralTable(t, db)
}
