package bucketcheck

import (
	"maps"
	"sort"

	"github.com/mwell/bucketcheck/date"
)

// Snapshot is the loader-to-core contract: a fully materialized ledger as
// read from the backing store. The core assumes the loader has already
// validated structural integrity (every referenced account and bucket
// identity exists in the respective mapping).
type Snapshot struct {
	Accounts               map[AccountID]Account
	Buckets                map[BucketID]Bucket
	CashFlowStart          date.Date
	StartingBucketBalances map[BucketID]Money
	Transactions           map[TxID]Transaction
	MoneyFlows             map[FlowID]MoneyFlow
	// Currency is the ledger-wide reporting currency.
	Currency string
}

// Ledger is the immutable in-memory ledger every balance and check operates
// on. The only post-construction step is OverrideBucketedPeriods, which must
// complete before the first check runs.
type Ledger struct {
	accounts         map[AccountID]Account
	buckets          map[BucketID]Bucket
	cashFlowStart    date.Date
	startingBalances map[BucketID]Money
	transactions     []Transaction // sorted by date, then by ID
	flows            []MoneyFlow   // sorted by date, then by ID
	byID             map[TxID]Transaction
	splitParents     map[TxID]bool
	// periods overrides the static Bucketed flag for "sometimes bucketed"
	// accounts: presence means the per-date status is decided solely by
	// range membership.
	periods  map[AccountID][]date.Range
	currency string
}

// New builds a Ledger from a snapshot. Transactions and money flows are
// sorted chronologically and the split-parent relation is derived.
func New(s Snapshot) *Ledger {
	l := &Ledger{
		accounts:         maps.Clone(s.Accounts),
		buckets:          maps.Clone(s.Buckets),
		cashFlowStart:    s.CashFlowStart,
		startingBalances: maps.Clone(s.StartingBucketBalances),
		byID:             make(map[TxID]Transaction, len(s.Transactions)),
		splitParents:     make(map[TxID]bool),
		periods:          make(map[AccountID][]date.Range),
		currency:         s.Currency,
	}
	if l.accounts == nil {
		l.accounts = make(map[AccountID]Account)
	}
	if l.buckets == nil {
		l.buckets = make(map[BucketID]Bucket)
	}
	if l.startingBalances == nil {
		l.startingBalances = make(map[BucketID]Money)
	}

	l.transactions = make([]Transaction, 0, len(s.Transactions))
	for _, tx := range s.Transactions {
		l.transactions = append(l.transactions, tx)
		l.byID[tx.ID] = tx
		if tx.IsSplitChild() {
			l.splitParents[tx.SplitParent] = true
		}
	}
	sortTransactions(l.transactions)

	l.flows = make([]MoneyFlow, 0, len(s.MoneyFlows))
	for _, f := range s.MoneyFlows {
		l.flows = append(l.flows, f)
	}
	sort.Slice(l.flows, func(i, j int) bool {
		if l.flows[i].Date != l.flows[j].Date {
			return l.flows[i].Date.Before(l.flows[j].Date)
		}
		return l.flows[i].ID < l.flows[j].ID
	})

	return l
}

// sortTransactions orders transactions by date, breaking ties by identity so
// that reports are deterministic.
func sortTransactions(txns []Transaction) {
	sort.Slice(txns, func(i, j int) bool {
		if txns[i].Date != txns[j].Date {
			return txns[i].Date.Before(txns[j].Date)
		}
		return txns[i].ID < txns[j].ID
	})
}

// Currency returns the ledger-wide reporting currency.
func (l *Ledger) Currency() string { return l.currency }

// CashFlowStart returns the date bucket accounting began. Prior activity is
// captured only via the starting bucket balances.
func (l *Ledger) CashFlowStart() date.Date { return l.cashFlowStart }

// zero returns a zero amount in the ledger currency.
func (l *Ledger) zero() Money { return M(0, l.currency) }

// Account returns the account with this identity.
func (l *Ledger) Account(id AccountID) (Account, bool) {
	a, ok := l.accounts[id]
	return a, ok
}

// Bucket returns the bucket with this identity.
func (l *Ledger) Bucket(id BucketID) (Bucket, bool) {
	b, ok := l.buckets[id]
	return b, ok
}

// Accounts returns all accounts, sorted by identity.
func (l *Ledger) Accounts() []Account {
	var accounts []Account
	for _, a := range l.accounts {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts
}

// Buckets returns all buckets, sorted by identity. Hidden buckets are
// included: they differ only in display.
func (l *Ledger) Buckets() []Bucket {
	var buckets []Bucket
	for _, b := range l.buckets {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].ID < buckets[j].ID })
	return buckets
}

// AccountIDByName returns the identity of the account with this display
// name, or false if no account has it.
func (l *Ledger) AccountIDByName(name string) (AccountID, bool) {
	for id, a := range l.accounts {
		if a.Name == name {
			return id, true
		}
	}
	return 0, false
}

// StartingBucketBalance returns the balance recorded for this bucket as of
// the cash-flow start date. Buckets absent from the starting balances have
// an implicit starting balance of zero.
func (l *Ledger) StartingBucketBalance(b BucketID) Money {
	if m, ok := l.startingBalances[b]; ok {
		return m
	}
	return l.zero()
}

// Transactions returns all transactions sorted chronologically. The caller
// must not modify the returned slice.
func (l *Ledger) Transactions() []Transaction { return l.transactions }

// MoneyFlows returns all money flows sorted chronologically. The caller must
// not modify the returned slice.
func (l *Ledger) MoneyFlows() []MoneyFlow { return l.flows }

// Transaction returns the transaction with this identity.
func (l *Ledger) Transaction(id TxID) (Transaction, bool) {
	tx, ok := l.byID[id]
	return tx, ok
}

// TransferSibling resolves the other leg of a transfer. A false result means
// the sibling identity is unset or does not resolve to an existing record: a
// well-formed ledger keeps the relation symmetric, but the engine tolerates
// a missing sibling instead of failing.
func (l *Ledger) TransferSibling(t Transaction) (Transaction, bool) {
	if !t.IsTransfer() {
		return Transaction{}, false
	}
	sibling, ok := l.byID[t.TransferSibling]
	return sibling, ok
}

// IsSplit reports whether this transaction has split children.
func (l *Ledger) IsSplit(t Transaction) bool { return l.splitParents[t.ID] }

// SplitChildren returns the children of a split parent, sorted by date.
func (l *Ledger) SplitChildren(parent TxID) []Transaction {
	var children []Transaction
	for _, tx := range l.transactions {
		if tx.SplitParent == parent {
			children = append(children, tx)
		}
	}
	return children
}
