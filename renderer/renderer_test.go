package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/mwell/bucketcheck"
	"github.com/mwell/bucketcheck/date"
)

func day(y int, m time.Month, d int) date.Date { return date.New(y, m, d) }

func usd(v float64) bucketcheck.Money { return bucketcheck.M(v, "USD") }

// fixture builds a small ledger with one deliberate entry error: an
// unbucketed spend in the bucketed checking account.
func fixture() *bucketcheck.Ledger {
	return bucketcheck.New(bucketcheck.Snapshot{
		Accounts: map[bucketcheck.AccountID]bucketcheck.Account{
			1: {ID: 1, Name: "Checking", Bucketed: true},
			2: {ID: 2, Name: "Brokerage"},
		},
		Buckets: map[bucketcheck.BucketID]bucketcheck.Bucket{
			10: {ID: 10, Name: "Groceries"},
			11: {ID: 11, Name: "Buffer", Hidden: true},
		},
		CashFlowStart: day(2012, time.January, 1),
		StartingBucketBalances: map[bucketcheck.BucketID]bucketcheck.Money{
			10: usd(500),
		},
		Transactions: map[bucketcheck.TxID]bucketcheck.Transaction{
			100: {ID: 100, Date: day(2011, time.December, 1), Account: 1, Payee: "opening", Amount: usd(500)},
			101: {ID: 101, Date: day(2012, time.February, 1), Account: 1, Bucket: 10, Payee: "grocer", Amount: usd(-50)},
			102: {ID: 102, Date: day(2012, time.March, 1), Account: 1, Payee: "atm", Memo: "cash", Amount: usd(-25)},
		},
		Currency: "USD",
	})
}

func TestReportMarkdown(t *testing.T) {
	l := fixture()
	report := l.Reconcile(date.Max())
	got := ReportMarkdown(l, report)

	for _, want := range []string{
		"# Reconciliation on 9999-12-31",
		"disagree",
		"## Cash flow start (2012-01-01)",
		"## Unbucketed transactions in bucketed accounts",
		"atm",
		"cash",
		"Checking",
		"## Splits that do not add up",
		"None found.",
		"## Error sum",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ReportMarkdown() missing %q in:\n%s", want, got)
		}
	}
}

func TestReportMarkdown_CleanLedger(t *testing.T) {
	// drop the offending transaction: everything agrees
	l := bucketcheck.New(bucketcheck.Snapshot{
		Accounts: map[bucketcheck.AccountID]bucketcheck.Account{
			1: {ID: 1, Name: "Checking", Bucketed: true},
		},
		Buckets: map[bucketcheck.BucketID]bucketcheck.Bucket{
			10: {ID: 10, Name: "Groceries"},
		},
		CashFlowStart: day(2012, time.January, 1),
		StartingBucketBalances: map[bucketcheck.BucketID]bucketcheck.Money{
			10: usd(500),
		},
		Transactions: map[bucketcheck.TxID]bucketcheck.Transaction{
			100: {ID: 100, Date: day(2011, time.December, 1), Account: 1, Payee: "opening", Amount: usd(500)},
		},
		Currency: "USD",
	})
	got := ReportMarkdown(l, l.Reconcile(date.Max()))

	if !strings.Contains(got, "agree") {
		t.Errorf("ReportMarkdown() should state that the views agree:\n%s", got)
	}
	if strings.Contains(got, "disagree") {
		t.Errorf("ReportMarkdown() reports a drift on a clean ledger:\n%s", got)
	}
}

func TestBalancesMarkdown(t *testing.T) {
	l := fixture()
	got := BalancesMarkdown(l, date.Max())

	for _, want := range []string{
		"## Accounts",
		"Checking",
		"Brokerage",
		"## Buckets",
		"Groceries",
		"Buffer (hidden)",
		"Total over bucketed accounts",
		"Total over all buckets",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("BalancesMarkdown() missing %q in:\n%s", want, got)
		}
	}
}

func TestAccountsMarkdown(t *testing.T) {
	got := AccountsMarkdown(fixture(), day(2012, time.June, 1))
	if !strings.Contains(got, "Checking") || !strings.Contains(got, "yes") {
		t.Errorf("AccountsMarkdown() missing classification:\n%s", got)
	}
}

func TestBucketsMarkdown(t *testing.T) {
	got := BucketsMarkdown(fixture())
	if !strings.Contains(got, "Groceries") || !strings.Contains(got, "Buffer") {
		t.Errorf("BucketsMarkdown() missing buckets:\n%s", got)
	}
}
