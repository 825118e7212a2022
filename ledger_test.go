package bucketcheck

import (
	"slices"
	"testing"
	"time"

	"github.com/mwell/bucketcheck/date"
)

func TestLedger_SortsChronologically(t *testing.T) {
	l := testLedger()
	txns := l.Transactions()
	for i := 1; i < len(txns); i++ {
		if txns[i].Date.Before(txns[i-1].Date) {
			t.Fatalf("transactions out of order at %d: %v after %v", i, txns[i].Date, txns[i-1].Date)
		}
	}
	if got, want := txIDs(txns[:2]), []TxID{100, 101}; !slices.Equal(got, want) {
		t.Errorf("first transactions = %v, want %v", got, want)
	}
}

func TestLedger_TransferSibling(t *testing.T) {
	l := testLedger(
		// a leg whose sibling does not exist
		Transaction{ID: 300, Date: day(2012, time.June, 1), Account: 1, TransferSibling: 9999, Amount: USD(-10)},
	)

	leg, _ := l.Transaction(104)
	sibling, ok := l.TransferSibling(leg)
	if !ok || sibling.ID != 105 {
		t.Errorf("TransferSibling(104) = %v, %v; want 105, true", sibling.ID, ok)
	}

	orphan, _ := l.Transaction(300)
	if _, ok := l.TransferSibling(orphan); ok {
		t.Errorf("TransferSibling of an unresolvable leg should report not found")
	}

	plain, _ := l.Transaction(102)
	if _, ok := l.TransferSibling(plain); ok {
		t.Errorf("TransferSibling of a non-transfer should report not found")
	}
}

func TestLedger_IsSplit(t *testing.T) {
	l := testLedger()
	parent, _ := l.Transaction(106)
	if !l.IsSplit(parent) {
		t.Errorf("transaction 106 has children, IsSplit should be true")
	}
	child, _ := l.Transaction(107)
	if l.IsSplit(child) {
		t.Errorf("transaction 107 is a child, not a split parent")
	}
	if got, want := txIDs(l.SplitChildren(106)), []TxID{107, 108}; !slices.Equal(got, want) {
		t.Errorf("SplitChildren(106) = %v, want %v", got, want)
	}
}

func TestLedger_AccountIDByName(t *testing.T) {
	l := testLedger()
	if id, ok := l.AccountIDByName("Main Checking"); !ok || id != 1 {
		t.Errorf("AccountIDByName(Main Checking) = %v, %v; want 1, true", id, ok)
	}
	if _, ok := l.AccountIDByName("No Such Account"); ok {
		t.Errorf("AccountIDByName should report unknown names")
	}
}

func TestLedger_StartingBucketBalance(t *testing.T) {
	l := testLedger()
	if got := l.StartingBucketBalance(10); !got.Equal(USD(300)) {
		t.Errorf("StartingBucketBalance(10) = %v, want 300", got)
	}
	// absent from the mapping means implicit zero
	if got := l.StartingBucketBalance(12); !got.IsZero() {
		t.Errorf("StartingBucketBalance(12) = %v, want 0", got)
	}
}

func TestIsAccountBucketed_StaticFlag(t *testing.T) {
	l := testLedger()
	on := day(2012, time.June, 1)
	if !l.IsAccountBucketed(1, on) {
		t.Errorf("account 1 is statically bucketed")
	}
	if l.IsAccountBucketed(2, on) {
		t.Errorf("account 2 is statically unbucketed")
	}
}

func TestIsAccountBucketed_Override(t *testing.T) {
	// An account with static bucketed=false but an override range must be
	// classified bucketed inside the range and unbucketed outside it,
	// overriding the static flag entirely.
	l := testLedger()
	r := date.NewRange(day(2012, time.September, 29), day(2013, time.June, 12))
	if err := l.OverrideBucketedPeriods(3, r); err != nil {
		t.Fatalf("OverrideBucketedPeriods() error = %v", err)
	}

	testCases := []struct {
		name string
		on   date.Date
		want bool
	}{
		{name: "before the range", on: day(2012, time.September, 28), want: false},
		{name: "range start", on: day(2012, time.September, 29), want: true},
		{name: "inside the range", on: day(2013, time.January, 15), want: true},
		{name: "range end", on: day(2013, time.June, 12), want: true},
		{name: "after the range", on: day(2013, time.June, 13), want: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := l.IsAccountBucketed(3, tc.on); got != tc.want {
				t.Errorf("IsAccountBucketed(3, %v) = %v, want %v", tc.on, got, tc.want)
			}
		})
	}
}

func TestIsAccountBucketed_OverrideBeatsStaticFlag(t *testing.T) {
	// Overriding a statically bucketed account makes it unbucketed outside
	// its ranges.
	l := testLedger()
	if err := l.OverrideBucketedPeriods(1, date.NewRange(day(2012, time.January, 1), day(2012, time.June, 30))); err != nil {
		t.Fatalf("OverrideBucketedPeriods() error = %v", err)
	}
	if l.IsAccountBucketed(1, day(2012, time.July, 1)) {
		t.Errorf("account 1 should be unbucketed outside its override ranges despite the static flag")
	}
}

func TestOverrideBucketedPeriods_UnknownAccount(t *testing.T) {
	l := testLedger()
	if err := l.OverrideBucketedPeriods(99); err == nil {
		t.Errorf("OverrideBucketedPeriods(99) should fail for an unknown account")
	}
}

func TestAccountPartitions(t *testing.T) {
	l := testLedger()
	if err := l.OverrideBucketedPeriods(3, date.NewRange(day(2012, time.September, 29), day(2013, time.June, 12))); err != nil {
		t.Fatalf("OverrideBucketedPeriods() error = %v", err)
	}

	inside := day(2013, time.January, 1)
	if got, want := l.BucketedAccounts(inside), []AccountID{1, 3}; !slices.Equal(got, want) {
		t.Errorf("BucketedAccounts(%v) = %v, want %v", inside, got, want)
	}
	if got, want := l.UnbucketedAccounts(inside), []AccountID{2}; !slices.Equal(got, want) {
		t.Errorf("UnbucketedAccounts(%v) = %v, want %v", inside, got, want)
	}

	outside := day(2014, time.January, 1)
	if got, want := l.BucketedAccounts(outside), []AccountID{1}; !slices.Equal(got, want) {
		t.Errorf("BucketedAccounts(%v) = %v, want %v", outside, got, want)
	}

	// permanent partitions ignore overridden accounts entirely
	if got, want := l.PermanentlyBucketedAccounts(), []AccountID{1}; !slices.Equal(got, want) {
		t.Errorf("PermanentlyBucketedAccounts() = %v, want %v", got, want)
	}
	if got, want := l.PermanentlyUnbucketedAccounts(), []AccountID{2}; !slices.Equal(got, want) {
		t.Errorf("PermanentlyUnbucketedAccounts() = %v, want %v", got, want)
	}

	// candidate sets for the date-restricted checks
	if got, want := l.everBucketedAccounts(), []AccountID{1, 3}; !slices.Equal(got, want) {
		t.Errorf("everBucketedAccounts() = %v, want %v", got, want)
	}
	if got, want := l.everUnbucketedAccounts(), []AccountID{2, 3}; !slices.Equal(got, want) {
		t.Errorf("everUnbucketedAccounts() = %v, want %v", got, want)
	}
}
