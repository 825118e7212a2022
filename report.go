package bucketcheck

import "github.com/mwell/bucketcheck/date"

// Every check result carries a signed error amount under one fixed sign
// convention: account-side total minus bucket-side total for the class of
// entries examined. A positive error means the account side overstates money
// relative to the bucket side. Offending record lists are always sorted by
// date so reports are deterministic and human-scannable.

// DriftResult is the top-level go/no-go comparison of the two views of the
// ledger: total bucketed-account balance against total bucket balance as of
// a date.
type DriftResult struct {
	Date         date.Date
	AccountTotal Money
	BucketTotal  Money
}

// Err returns the account-side total minus the bucket-side total.
func (r DriftResult) Err() Money { return r.AccountTotal.Sub(r.BucketTotal) }

// Good reports whether the two views agree.
func (r DriftResult) Good() bool { return r.Err().IsZero() }

// AccountBalanceLine is one account's balance within a result, with the
// account record attached for rendering.
type AccountBalanceLine struct {
	Account Account
	Balance Money
}

// CashFlowStartResult compares the sum of the starting bucket balances
// against the balance of the examined accounts on the cash-flow start date.
// A mismatch means the ledger's starting snapshot itself is inconsistent,
// independent of any later activity.
type CashFlowStartResult struct {
	Start        date.Date
	BucketTotal  Money
	AccountTotal Money
	// Accounts holds the per-account balances at the start date.
	Accounts []AccountBalanceLine
}

func (r CashFlowStartResult) Err() Money { return r.AccountTotal.Sub(r.BucketTotal) }
func (r CashFlowStartResult) Good() bool { return r.Err().IsZero() }

// StrayResult reports transactions recorded on the wrong side of the
// bucketed/unbucketed divide: unbucketed transactions in bucketed accounts,
// or bucketed transactions in unbucketed accounts.
type StrayResult struct {
	// Amount is the signed error contribution of the listed transactions.
	Amount Money
	// Transactions are the offending records, sorted by date.
	Transactions []Transaction
}

func (r StrayResult) Err() Money { return r.Amount }
func (r StrayResult) Good() bool { return r.Amount.IsZero() && len(r.Transactions) == 0 }

// SplitMismatch is one split parent whose amount does not equal the sum of
// its children's amounts.
type SplitMismatch struct {
	Parent   Transaction
	Children []Transaction
	// Residual is the parent amount minus the children sum.
	Residual Money
	// Counted reports whether the residual contributes to the returned
	// error: only mismatches in accounts bucketed on the parent's date, and
	// dated after the cash-flow start, can cause an account/bucket drift.
	// The rest are still reported.
	Counted bool
}

// SplitResult reports split parents whose children's amounts do not add up.
type SplitResult struct {
	// Amount aggregates the counted residuals.
	Amount Money
	// Mismatches are sorted by parent date.
	Mismatches []SplitMismatch
}

func (r SplitResult) Err() Money { return r.Amount }
func (r SplitResult) Good() bool { return r.Amount.IsZero() && len(r.Mismatches) == 0 }

// TransferResult reports transfer legs whose bucket assignment contradicts
// the classification of the two accounts involved.
type TransferResult struct {
	// Amount is the signed error contribution of the spurious and missing
	// legs together.
	Amount Money
	// Spurious lists legs carrying a bucket they must not carry, sorted by
	// date.
	Spurious []Transaction
	// Missing lists legs that must carry a bucket but do not, sorted by
	// date.
	Missing []Transaction
	// Unresolved lists legs whose sibling identity does not resolve to an
	// existing transaction. They are reported, never summed: an unresolvable
	// sibling means the leg cannot be classified, not that it is wrong.
	Unresolved []Transaction
}

func (r TransferResult) Err() Money { return r.Amount }
func (r TransferResult) Good() bool {
	return r.Amount.IsZero() && len(r.Spurious) == 0 && len(r.Missing) == 0
}

// Report bundles the top-level comparison with the six localizing checks.
type Report struct {
	Date                 date.Date
	Drift                DriftResult
	CashFlowStart        CashFlowStartResult
	UnbucketedInBucketed StrayResult
	BucketedInUnbucketed StrayResult
	Splits               SplitResult
	BucketedTransfers    TransferResult
	UnbucketedTransfers  TransferResult
}

// ErrorSum sums the six check errors. It decomposes the global account minus
// bucket discrepancy by cause, so it should approximate Drift.Err().
func (r *Report) ErrorSum() Money {
	return r.CashFlowStart.Err().
		Add(r.UnbucketedInBucketed.Err()).
		Add(r.BucketedInUnbucketed.Err()).
		Add(r.Splits.Err()).
		Add(r.BucketedTransfers.Err()).
		Add(r.UnbucketedTransfers.Err()).
		Round(2)
}
