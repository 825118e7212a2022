package bucketcheck

import (
	"github.com/shopspring/decimal"

	"github.com/mwell/bucketcheck/date"
)

// Pure filters over slices of transactions and money flows: the substrate
// every balance and check is built from. All take and return ordered slices;
// none mutates its input.

// Proper filters out split children. A child's amount is already represented
// inside its parent, so counting both would double-count at the account
// level.
func Proper(txns []Transaction) []Transaction {
	return filter(txns, func(t Transaction) bool { return !t.IsSplitChild() })
}

// InAccount returns the transactions owned by the given account.
func InAccount(txns []Transaction, account AccountID) []Transaction {
	return filter(txns, func(t Transaction) bool { return t.Account == account })
}

// InBucket returns the transactions assigned to the given bucket.
func InBucket(txns []Transaction, bucket BucketID) []Transaction {
	return filter(txns, func(t Transaction) bool { return t.Bucket == bucket })
}

// Between returns the transactions dated within [from, to], both bounds
// included.
func Between(txns []Transaction, from, to date.Date) []Transaction {
	r := date.NewRange(from, to)
	return filter(txns, func(t Transaction) bool { return r.Contains(t.Date) })
}

// AtOrBefore returns the transactions dated on or before the given date.
func AtOrBefore(txns []Transaction, on date.Date) []Transaction {
	return Between(txns, date.Min(), on)
}

// SumAmounts sums transaction amounts, rounding to 2 decimal places after
// summation (never per item) so rounding error does not compound.
func SumAmounts(txns []Transaction) Money {
	sum := Money{value: decimal.Zero}
	for _, t := range txns {
		sum = sum.Add(t.Amount)
	}
	return sum.Round(2)
}

// FlowsInBucket returns the money flows affecting the given bucket.
func FlowsInBucket(flows []MoneyFlow, bucket BucketID) []MoneyFlow {
	return filter(flows, func(f MoneyFlow) bool { return f.Bucket == bucket })
}

// FlowsBetween returns the money flows dated within [from, to], both bounds
// included.
func FlowsBetween(flows []MoneyFlow, from, to date.Date) []MoneyFlow {
	r := date.NewRange(from, to)
	return filter(flows, func(f MoneyFlow) bool { return r.Contains(f.Date) })
}

// SumFlowAmounts sums money-flow amounts with the same rounding discipline
// as SumAmounts.
func SumFlowAmounts(flows []MoneyFlow) Money {
	sum := Money{value: decimal.Zero}
	for _, f := range flows {
		sum = sum.Add(f.Amount)
	}
	return sum.Round(2)
}

func filter[T any](items []T, keep func(T) bool) []T {
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			kept = append(kept, item)
		}
	}
	return kept
}
