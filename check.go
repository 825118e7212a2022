package bucketcheck

import "github.com/mwell/bucketcheck/date"

// splitTolerance is the smallest split residual worth reporting. Amounts are
// kept in cents, so anything below one cent is rounding noise.
const splitTolerance = 0.01

// Drift compares the total bucketed-account balance against the total bucket
// balance as of the given date. Pass date.Max() to compare over all time.
// The remaining checks explain why this comparison failed.
func (l *Ledger) Drift(on date.Date) DriftResult {
	return DriftResult{
		Date:         on,
		AccountTotal: l.TotalBucketedAccountBalance(on),
		BucketTotal:  l.TotalBucketBalance(on),
	}
}

// CheckCashFlowStart compares the sum of all starting bucket balances
// against the sum of account balances at the cash-flow start date, over the
// given accounts. With no accounts given, the accounts bucketed as of the
// start date are used.
func (l *Ledger) CheckCashFlowStart(accounts ...AccountID) CashFlowStartResult {
	if len(accounts) == 0 {
		accounts = l.BucketedAccounts(l.cashFlowStart)
	}

	bucketTotal := l.zero()
	for _, b := range l.Buckets() {
		bucketTotal = bucketTotal.Add(l.StartingBucketBalance(b.ID))
	}

	result := CashFlowStartResult{
		Start:       l.cashFlowStart,
		BucketTotal: bucketTotal.Round(2),
	}
	accountTotal := l.zero()
	for _, id := range accounts {
		account, _ := l.Account(id)
		balance := l.AccountBalance(id, l.cashFlowStart)
		accountTotal = accountTotal.Add(balance)
		result.Accounts = append(result.Accounts, AccountBalanceLine{Account: account, Balance: balance})
	}
	result.AccountTotal = accountTotal.Round(2)
	return result
}

// CheckUnbucketedInBucketed finds proper, non-transfer, non-split
// transactions with no bucket assigned and a non-zero amount, in accounts
// bucketed on the transaction's date, dated after the cash-flow start. Such
// a transaction inflates the account total but never reaches any bucket, so
// the offenders' total is the error.
func (l *Ledger) CheckUnbucketedInBucketed() StrayResult {
	var offending []Transaction
	for _, id := range l.everBucketedAccounts() {
		for _, t := range InAccount(Proper(l.transactions), id) {
			if t.IsTransfer() || l.IsSplit(t) {
				continue
			}
			if t.HasBucket() || t.Amount.IsZero() {
				continue
			}
			if !t.Date.After(l.cashFlowStart) {
				continue
			}
			if !l.IsAccountBucketed(id, t.Date) {
				continue
			}
			offending = append(offending, t)
		}
	}
	sortTransactions(offending)
	return StrayResult{
		Amount:       l.zero().Add(SumAmounts(offending)),
		Transactions: offending,
	}
}

// CheckBucketedInUnbucketed is the symmetric check: proper, non-transfer,
// non-split transactions with a bucket assigned and a non-zero amount, in
// accounts not bucketed on the transaction's date, dated after the cash-flow
// start. A bucket is credited for money outside any bucketed account, so the
// error is the negated sum.
func (l *Ledger) CheckBucketedInUnbucketed() StrayResult {
	var offending []Transaction
	for _, id := range l.everUnbucketedAccounts() {
		for _, t := range InAccount(Proper(l.transactions), id) {
			if t.IsTransfer() || l.IsSplit(t) {
				continue
			}
			if !t.HasBucket() || t.Amount.IsZero() {
				continue
			}
			if !t.Date.After(l.cashFlowStart) {
				continue
			}
			if l.IsAccountBucketed(id, t.Date) {
				continue
			}
			offending = append(offending, t)
		}
	}
	sortTransactions(offending)
	return StrayResult{
		Amount:       l.zero().Sub(SumAmounts(offending)),
		Transactions: offending,
	}
}

// CheckSplits compares every split parent's amount against the sum of its
// children's amounts. Every non-trivial residual is reported; only residuals
// of parents whose account was bucketed on the parent's date, dated after
// the cash-flow start, count toward the returned error. An unsplit amount
// in an unbucketed account cannot cause an account/bucket mismatch.
func (l *Ledger) CheckSplits() SplitResult {
	result := SplitResult{Amount: l.zero()}
	tolerance := M(splitTolerance, l.currency)
	// transactions are already sorted, so mismatches come out sorted by
	// parent date.
	for _, parent := range l.transactions {
		if !l.IsSplit(parent) {
			continue
		}
		children := l.SplitChildren(parent.ID)
		residual := parent.Amount.Sub(SumAmounts(children)).Round(2)
		if residual.Abs().LessThan(tolerance) {
			continue
		}
		counted := parent.Date.After(l.cashFlowStart) && l.IsAccountBucketed(parent.Account, parent.Date)
		if counted {
			result.Amount = result.Amount.Add(residual)
		}
		result.Mismatches = append(result.Mismatches, SplitMismatch{
			Parent:   parent,
			Children: children,
			Residual: residual,
			Counted:  counted,
		})
	}
	result.Amount = result.Amount.Round(2)
	return result
}

// CheckBucketedTransfers inspects the transfer legs recorded in bucketed
// accounts (on dates the account was bucketed, after the cash-flow start).
// A transfer between two bucketed accounts must carry no bucket on either
// leg: the money never leaves bucket accounting, so a bucket assignment
// credits a bucket twice (error contribution is the negated leg amount). A
// transfer to an unbucketed account must carry a bucket on the bucketed leg:
// the money leaves bucket accounting and some bucket has to pay for it
// (error contribution is the leg amount). Legs whose sibling cannot be
// resolved are reported separately and never summed.
func (l *Ledger) CheckBucketedTransfers() TransferResult {
	result := TransferResult{Amount: l.zero()}
	for _, id := range l.everBucketedAccounts() {
		for _, t := range InAccount(Proper(l.transactions), id) {
			if !t.IsTransfer() || l.IsSplit(t) {
				continue
			}
			if !t.Date.After(l.cashFlowStart) {
				continue
			}
			if !l.IsAccountBucketed(id, t.Date) {
				continue
			}
			sibling, ok := l.TransferSibling(t)
			if !ok {
				result.Unresolved = append(result.Unresolved, t)
				continue
			}
			if l.IsAccountBucketed(sibling.Account, sibling.Date) {
				if t.HasBucket() {
					result.Spurious = append(result.Spurious, t)
					result.Amount = result.Amount.Sub(t.Amount)
				}
			} else {
				if !t.HasBucket() {
					result.Missing = append(result.Missing, t)
					result.Amount = result.Amount.Add(t.Amount)
				}
			}
		}
	}
	sortTransactions(result.Spurious)
	sortTransactions(result.Missing)
	sortTransactions(result.Unresolved)
	result.Amount = result.Amount.Round(2)
	return result
}

// CheckUnbucketedTransfers is the symmetric check over unbucketed accounts:
// any transfer leg recorded there (on a date the account was unbucketed,
// after the cash-flow start) carrying a bucket is an error, regardless of
// which side the sibling is on. The sign is negated, matching the
// account-minus-bucket convention.
func (l *Ledger) CheckUnbucketedTransfers() TransferResult {
	result := TransferResult{Amount: l.zero()}
	for _, id := range l.everUnbucketedAccounts() {
		for _, t := range InAccount(Proper(l.transactions), id) {
			if !t.IsTransfer() || l.IsSplit(t) {
				continue
			}
			if !t.Date.After(l.cashFlowStart) {
				continue
			}
			if l.IsAccountBucketed(id, t.Date) {
				continue
			}
			if t.HasBucket() {
				result.Spurious = append(result.Spurious, t)
				result.Amount = result.Amount.Sub(t.Amount)
			}
		}
	}
	sortTransactions(result.Spurious)
	result.Amount = result.Amount.Round(2)
	return result
}

// Reconcile runs the top-level comparison and all six checks as of the given
// date. All checks run regardless of whether earlier ones found problems:
// the point is to decompose the drift by cause.
func (l *Ledger) Reconcile(on date.Date) *Report {
	return &Report{
		Date:                 on,
		Drift:                l.Drift(on),
		CashFlowStart:        l.CheckCashFlowStart(),
		UnbucketedInBucketed: l.CheckUnbucketedInBucketed(),
		BucketedInUnbucketed: l.CheckBucketedInUnbucketed(),
		Splits:               l.CheckSplits(),
		BucketedTransfers:    l.CheckBucketedTransfers(),
		UnbucketedTransfers:  l.CheckUnbucketedTransfers(),
	}
}
