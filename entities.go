package bucketcheck

import (
	"fmt"

	"github.com/mwell/bucketcheck/date"
)

// Identities are the backing store's primary keys. Zero is the "unset"
// sentinel wherever a reference is optional.
type (
	// AccountID identifies an Account.
	AccountID int
	// BucketID identifies a Bucket.
	BucketID int
	// TxID identifies a Transaction.
	TxID int
	// FlowID identifies a MoneyFlow.
	FlowID int
)

// Account is a bank or credit account. Bucketed is the account's static
// cash-flow flag; Ledger.IsAccountBucketed is the authoritative per-date
// predicate once semi-bucketed overrides exist.
type Account struct {
	ID       AccountID
	Name     string
	Bucketed bool
}

func (a Account) String() string {
	if a.Bucketed {
		return fmt.Sprintf("account %d: %s (bucketed)", a.ID, a.Name)
	}
	return fmt.Sprintf("account %d: %s", a.ID, a.Name)
}

// Bucket is a budgeting envelope tracked independently of any account.
// Hidden buckets still participate in balance math, only display differs.
type Bucket struct {
	ID     BucketID
	Name   string
	Hidden bool
}

func (b Bucket) String() string {
	if b.Hidden {
		return fmt.Sprintf("bucket %d: %s (hidden)", b.ID, b.Name)
	}
	return fmt.Sprintf("bucket %d: %s", b.ID, b.Name)
}

// Transaction is a real transaction on an account, as opposed to a MoneyFlow
// that just moves money between buckets.
type Transaction struct {
	ID      TxID
	Date    date.Date
	Account AccountID
	// Bucket is the assigned bucket, zero when unassigned.
	Bucket BucketID
	// BucketOptional marks records that are allowed to have no bucket.
	BucketOptional bool
	// TransferSibling names the other leg of an inter-account transfer,
	// zero when the transaction is not a transfer.
	TransferSibling TxID
	// SplitParent, when non-zero, marks this record as a child of a split.
	SplitParent TxID
	Payee       string
	Memo        string
	Amount      Money
}

// HasBucket reports whether a bucket is assigned.
func (t Transaction) HasBucket() bool { return t.Bucket != 0 }

// IsTransfer reports whether the transaction names a transfer sibling.
func (t Transaction) IsTransfer() bool { return t.TransferSibling != 0 }

// IsSplitChild reports whether the transaction is a child of a split.
func (t Transaction) IsSplitChild() bool { return t.SplitParent != 0 }

func (t Transaction) String() string {
	bucket := "UNASSIGNED"
	switch {
	case t.HasBucket():
		bucket = fmt.Sprintf("%d", t.Bucket)
	case t.BucketOptional:
		bucket = "(optional)"
	}
	xfer := ""
	if t.IsTransfer() {
		xfer = fmt.Sprintf(" (transfer partner %d)", t.TransferSibling)
	}
	return fmt.Sprintf("[%d] %s: %s %s (%s) [acct %d] [bkt %s]%s",
		t.ID, t.Date, t.Amount.SignedString(), t.Payee, t.Memo, t.Account, bucket, xfer)
}

// MoneyFlow is one leg of a transfer of funds between two buckets. It never
// touches an account.
type MoneyFlow struct {
	ID              FlowID
	Date            date.Date
	Bucket          BucketID
	TransferSibling FlowID
	Memo            string
	Amount          Money
}

func (f MoneyFlow) String() string {
	return fmt.Sprintf("[%d] %s: %s %s [bkt %d] (xfer partner %d)",
		f.ID, f.Date, f.Amount.SignedString(), f.Memo, f.Bucket, f.TransferSibling)
}
