// Package moneywell reads a MoneyWell document's persistent store into a
// bucketcheck.Snapshot. A MoneyWell document is a bundle directory whose
// sqlite database lives at StoreContent/persistentStore; Open accepts either
// the bundle path or the database path directly.
//
// The reader is the untrusted seam: it validates dates and referential
// structure so the reconciliation core can assume a well-formed snapshot.
package moneywell

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mwell/bucketcheck"
	"github.com/mwell/bucketcheck/date"
)

// DataFile is an open MoneyWell persistent store.
type DataFile struct {
	db *sql.DB
}

// Open opens the persistent store at path, or at
// path/StoreContent/persistentStore when path is a document bundle.
func Open(path string) (*DataFile, error) {
	store := path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		store = filepath.Join(path, "StoreContent", "persistentStore")
	}
	if _, err := os.Stat(store); err != nil {
		return nil, fmt.Errorf("could not find persistent store: %w", err)
	}

	db, err := sql.Open("sqlite", store)
	if err != nil {
		return nil, fmt.Errorf("could not open persistent store %q: %w", store, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not read persistent store %q: %w", store, err)
	}
	return &DataFile{db: db}, nil
}

// Close releases the underlying database.
func (f *DataFile) Close() error { return f.db.Close() }

// ReadSnapshot materializes the whole document: accounts, buckets, the
// cash-flow start date, starting bucket balances, transactions and money
// flows. Amounts are denominated in the given currency.
func (f *DataFile) ReadSnapshot(currency string) (bucketcheck.Snapshot, error) {
	s := bucketcheck.Snapshot{Currency: currency}
	var err error

	if s.Accounts, err = f.readAccounts(); err != nil {
		return s, err
	}
	if s.Buckets, err = f.readBuckets(); err != nil {
		return s, err
	}
	if s.CashFlowStart, err = f.readCashFlowStart(); err != nil {
		return s, err
	}
	if s.StartingBucketBalances, err = f.readStartingBucketBalances(currency); err != nil {
		return s, err
	}
	if s.Transactions, err = f.readTransactions(currency); err != nil {
		return s, err
	}
	if s.MoneyFlows, err = f.readMoneyFlows(currency); err != nil {
		return s, err
	}
	return s, nil
}

func (f *DataFile) readAccounts() (map[bucketcheck.AccountID]bucketcheck.Account, error) {
	rows, err := f.db.Query(`select Z_PK, ZNAME, ZINCLUDEINCASHFLOW from ZACCOUNT`)
	if err != nil {
		return nil, fmt.Errorf("could not read accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[bucketcheck.AccountID]bucketcheck.Account)
	for rows.Next() {
		var (
			key      int
			name     sql.NullString
			bucketed sql.NullInt64
		)
		if err := rows.Scan(&key, &name, &bucketed); err != nil {
			return nil, fmt.Errorf("could not read accounts: %w", err)
		}
		accounts[bucketcheck.AccountID(key)] = bucketcheck.Account{
			ID:       bucketcheck.AccountID(key),
			Name:     name.String,
			Bucketed: bucketed.Int64 != 0,
		}
	}
	return accounts, rows.Err()
}

func (f *DataFile) readBuckets() (map[bucketcheck.BucketID]bucketcheck.Bucket, error) {
	rows, err := f.db.Query(`select Z_PK, ZNAME, ZISHIDDEN from ZBUCKET`)
	if err != nil {
		return nil, fmt.Errorf("could not read buckets: %w", err)
	}
	defer rows.Close()

	buckets := make(map[bucketcheck.BucketID]bucketcheck.Bucket)
	for rows.Next() {
		var (
			key    int
			name   sql.NullString
			hidden sql.NullInt64
		)
		if err := rows.Scan(&key, &name, &hidden); err != nil {
			return nil, fmt.Errorf("could not read buckets: %w", err)
		}
		buckets[bucketcheck.BucketID(key)] = bucketcheck.Bucket{
			ID:     bucketcheck.BucketID(key),
			Name:   name.String,
			Hidden: hidden.Int64 != 0,
		}
	}
	return buckets, rows.Err()
}

func (f *DataFile) readCashFlowStart() (date.Date, error) {
	var ymd int
	if err := f.db.QueryRow(`select ZCASHFLOWSTARTDATEYMD from ZSETTINGS`).Scan(&ymd); err != nil {
		return date.Date{}, fmt.Errorf("could not read cash flow start date: %w", err)
	}
	start, err := date.FromYMD(ymd)
	if err != nil {
		return date.Date{}, fmt.Errorf("could not read cash flow start date: %w", err)
	}
	return start, nil
}

func (f *DataFile) readStartingBucketBalances(currency string) (map[bucketcheck.BucketID]bucketcheck.Money, error) {
	rows, err := f.db.Query(`select ZBUCKET, ZAMOUNT from ZBUCKETSTARTINGBALANCE where ZBUCKET is not null`)
	if err != nil {
		return nil, fmt.Errorf("could not read starting bucket balances: %w", err)
	}
	defer rows.Close()

	balances := make(map[bucketcheck.BucketID]bucketcheck.Money)
	for rows.Next() {
		var (
			bucket int
			amount float64
		)
		if err := rows.Scan(&bucket, &amount); err != nil {
			return nil, fmt.Errorf("could not read starting bucket balances: %w", err)
		}
		balances[bucketcheck.BucketID(bucket)] = bucketcheck.M(amount, currency)
	}
	return balances, rows.Err()
}

func (f *DataFile) readTransactions(currency string) (map[bucketcheck.TxID]bucketcheck.Transaction, error) {
	rows, err := f.db.Query(`select Z_PK, ZDATEYMD, ZACCOUNT2, ZISBUCKETOPTIONAL, ZBUCKET2,
		ZTRANSFERSIBLING, ZSPLITPARENT, ZPAYEE, ZMEMO, ZAMOUNT from ZACTIVITY`)
	if err != nil {
		return nil, fmt.Errorf("could not read transactions: %w", err)
	}
	defer rows.Close()

	transactions := make(map[bucketcheck.TxID]bucketcheck.Transaction)
	for rows.Next() {
		var (
			key            int
			ymd            int
			account        sql.NullInt64
			bucketOptional sql.NullInt64
			bucket         sql.NullInt64
			sibling        sql.NullInt64
			splitParent    sql.NullInt64
			payee          sql.NullString
			memo           sql.NullString
			amount         float64
		)
		if err := rows.Scan(&key, &ymd, &account, &bucketOptional, &bucket, &sibling, &splitParent, &payee, &memo, &amount); err != nil {
			return nil, fmt.Errorf("could not read transactions: %w", err)
		}
		// Some stores contain rows with an invalid zero date; they carry no
		// money and are safe to drop, anything else is a real defect.
		if ymd == 0 && amount == 0 {
			continue
		}
		on, err := date.FromYMD(ymd)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", key, err)
		}
		transactions[bucketcheck.TxID(key)] = bucketcheck.Transaction{
			ID:              bucketcheck.TxID(key),
			Date:            on,
			Account:         bucketcheck.AccountID(account.Int64),
			Bucket:          bucketcheck.BucketID(bucket.Int64),
			BucketOptional:  bucketOptional.Int64 != 0,
			TransferSibling: bucketcheck.TxID(sibling.Int64),
			SplitParent:     bucketcheck.TxID(splitParent.Int64),
			Payee:           payee.String,
			Memo:            memo.String,
			Amount:          bucketcheck.M(amount, currency),
		}
	}
	return transactions, rows.Err()
}

func (f *DataFile) readMoneyFlows(currency string) (map[bucketcheck.FlowID]bucketcheck.MoneyFlow, error) {
	rows, err := f.db.Query(`select Z_PK, ZDATEYMD, ZBUCKET, ZTRANSFERSIBLING, ZMEMO, ZAMOUNT from ZBUCKETTRANSFER`)
	if err != nil {
		return nil, fmt.Errorf("could not read money flows: %w", err)
	}
	defer rows.Close()

	flows := make(map[bucketcheck.FlowID]bucketcheck.MoneyFlow)
	for rows.Next() {
		var (
			key     int
			ymd     int
			bucket  sql.NullInt64
			sibling sql.NullInt64
			memo    sql.NullString
			amount  float64
		)
		if err := rows.Scan(&key, &ymd, &bucket, &sibling, &memo, &amount); err != nil {
			return nil, fmt.Errorf("could not read money flows: %w", err)
		}
		on, err := date.FromYMD(ymd)
		if err != nil {
			return nil, fmt.Errorf("money flow %d: %w", key, err)
		}
		flows[bucketcheck.FlowID(key)] = bucketcheck.MoneyFlow{
			ID:              bucketcheck.FlowID(key),
			Date:            on,
			Bucket:          bucketcheck.BucketID(bucket.Int64),
			TransferSibling: bucketcheck.FlowID(sibling.Int64),
			Memo:            memo.String,
			Amount:          bucketcheck.M(amount, currency),
		}
	}
	return flows, rows.Err()
}

// ReadLedger is the one-call path from a document to a ready Ledger: it
// reads the snapshot, builds the ledger, and applies the ledger config. A
// nil config means the defaults: reporting in DefaultCurrency, no bucketed
// period overrides.
func ReadLedger(path string, cfg *bucketcheck.Config) (*bucketcheck.Ledger, error) {
	if cfg == nil {
		cfg = &bucketcheck.Config{Currency: bucketcheck.DefaultCurrency}
	}
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := f.ReadSnapshot(cfg.Currency)
	if err != nil {
		return nil, err
	}
	l := bucketcheck.New(s)
	if err := l.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	return l, nil
}
