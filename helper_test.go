package bucketcheck

import (
	"testing"
	"time"

	"github.com/mwell/bucketcheck/date"
)

// USD is a helper for tests to create US dollar money from a const.
func USD(v float64) Money { return M(v, "USD") }

func day(y int, m time.Month, d int) date.Date { return date.New(y, m, d) }

func mustDay(t *testing.T, s string) date.Date {
	t.Helper()
	d, err := date.Parse(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

// The shared fixture is a small well-formed ledger:
//
//   account 1 "Main Checking"  bucketed
//   account 2 "Brokerage"      unbucketed
//   account 3 "Savings"        unbucketed (tests add period overrides)
//
//   bucket 10 "Groceries", 11 "Rent", 12 "Buffer" (hidden)
//
// Cash flow starts 2012-01-01 with bucket balances 300 + 200 = 500, matching
// the 500 sitting in Main Checking on that date. Post-start activity covers
// plain spends, a bucket-to-bucket flow, a bucketed-to-unbucketed transfer,
// and a split, all recorded correctly, so every check comes back clean.
func testSnapshot() Snapshot {
	txns := []Transaction{
		// pre-start history establishing the 500 starting balance
		{ID: 100, Date: day(2011, time.December, 15), Account: 1, Payee: "opening", Amount: USD(400)},
		{ID: 101, Date: day(2012, time.January, 1), Account: 1, Payee: "salary", Amount: USD(100)},
		// plain bucketed spends
		{ID: 102, Date: day(2012, time.February, 1), Account: 1, Bucket: 10, Payee: "grocer", Amount: USD(-50)},
		{ID: 103, Date: day(2012, time.March, 1), Account: 1, Bucket: 11, Payee: "landlord", Amount: USD(-100)},
		// transfer to the unbucketed brokerage: bucketed leg carries the bucket
		{ID: 104, Date: day(2012, time.April, 1), Account: 1, Bucket: 11, TransferSibling: 105, Payee: "transfer", Amount: USD(-150)},
		{ID: 105, Date: day(2012, time.April, 1), Account: 2, TransferSibling: 104, Payee: "transfer", Amount: USD(150)},
		// split: parent carries no bucket, children do
		{ID: 106, Date: day(2012, time.May, 1), Account: 1, BucketOptional: true, Payee: "market", Amount: USD(-80)},
		{ID: 107, Date: day(2012, time.May, 1), Account: 1, Bucket: 10, SplitParent: 106, Payee: "market", Amount: USD(-50)},
		{ID: 108, Date: day(2012, time.May, 1), Account: 1, Bucket: 11, SplitParent: 106, Payee: "market", Amount: USD(-30)},
	}
	flows := []MoneyFlow{
		// move 20 from Groceries to Rent
		{ID: 200, Date: day(2012, time.February, 10), Bucket: 10, TransferSibling: 201, Memo: "rebalance", Amount: USD(-20)},
		{ID: 201, Date: day(2012, time.February, 10), Bucket: 11, TransferSibling: 200, Memo: "rebalance", Amount: USD(20)},
	}

	s := Snapshot{
		Accounts: map[AccountID]Account{
			1: {ID: 1, Name: "Main Checking", Bucketed: true},
			2: {ID: 2, Name: "Brokerage"},
			3: {ID: 3, Name: "Savings"},
		},
		Buckets: map[BucketID]Bucket{
			10: {ID: 10, Name: "Groceries"},
			11: {ID: 11, Name: "Rent"},
			12: {ID: 12, Name: "Buffer", Hidden: true},
		},
		CashFlowStart: day(2012, time.January, 1),
		StartingBucketBalances: map[BucketID]Money{
			10: USD(300),
			11: USD(200),
		},
		Transactions: make(map[TxID]Transaction, len(txns)),
		MoneyFlows:   make(map[FlowID]MoneyFlow, len(flows)),
		Currency:     "USD",
	}
	for _, t := range txns {
		s.Transactions[t.ID] = t
	}
	for _, f := range flows {
		s.MoneyFlows[f.ID] = f
	}
	return s
}

// testLedger builds the shared fixture ledger, appending any extra
// transactions first.
func testLedger(extra ...Transaction) *Ledger {
	s := testSnapshot()
	for _, t := range extra {
		s.Transactions[t.ID] = t
	}
	return New(s)
}

// txIDs extracts the identities of a transaction list, in order.
func txIDs(txns []Transaction) []TxID {
	ids := make([]TxID, 0, len(txns))
	for _, t := range txns {
		ids = append(ids, t.ID)
	}
	return ids
}
