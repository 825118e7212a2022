package bucketcheck

import "github.com/mwell/bucketcheck/date"

// AccountBalance returns the balance of the account at the end of the given
// date. Pass date.Max() for the balance over all time. Only proper
// transactions count: split children do not represent real money movement at
// the account level.
func (l *Ledger) AccountBalance(account AccountID, on date.Date) Money {
	txns := AtOrBefore(InAccount(Proper(l.transactions), account), on)
	return l.zero().Add(SumAmounts(txns))
}

// TotalAccountBalance returns the sum of the balances of the given accounts
// as of the given date.
func (l *Ledger) TotalAccountBalance(accounts []AccountID, on date.Date) Money {
	total := l.zero()
	for _, account := range accounts {
		total = total.Add(l.AccountBalance(account, on))
	}
	return total.Round(2)
}

// TotalBucketedAccountBalance returns the total balance over whichever
// accounts are bucketed as of the given date. Classification is
// date-sensitive, so the account set itself varies with the query date.
func (l *Ledger) TotalBucketedAccountBalance(on date.Date) Money {
	return l.TotalAccountBalance(l.BucketedAccounts(on), on)
}

// BucketBalance returns the balance of the bucket at the end of the given
// date: its starting balance plus the transactions assigned to it and the
// money flows affecting it, both restricted to dates strictly after the
// cash-flow start date. The starting balance already accounts for everything
// up to and including the start date; including that date again would
// double-count.
func (l *Ledger) BucketBalance(bucket BucketID, on date.Date) Money {
	balance := l.StartingBucketBalance(bucket)
	if on.Before(l.cashFlowStart) {
		return balance.Round(2)
	}
	from := l.cashFlowStart.Add(1)
	txns := Between(InBucket(l.transactions, bucket), from, on)
	flows := FlowsBetween(FlowsInBucket(l.flows, bucket), from, on)
	return balance.Add(SumAmounts(txns)).Add(SumFlowAmounts(flows)).Round(2)
}

// TotalBucketBalance returns the sum of BucketBalance over every bucket in
// the ledger, hidden buckets included.
func (l *Ledger) TotalBucketBalance(on date.Date) Money {
	total := l.zero()
	for _, b := range l.Buckets() {
		total = total.Add(l.BucketBalance(b.ID, on))
	}
	return total.Round(2)
}
