package bucketcheck

import (
	"fmt"
	"sort"

	"github.com/mwell/bucketcheck/date"
)

// OverrideBucketedPeriods declares that an account's bucketed status is not
// static: for any query date, the account counts as bucketed iff the date
// falls inside one of the given ranges, overriding the static flag entirely.
// This encodes real-world knowledge the backing store does not have (an
// account changed budgeting treatment at a known date) and must be called
// before any check runs.
func (l *Ledger) OverrideBucketedPeriods(id AccountID, ranges ...date.Range) error {
	if _, ok := l.accounts[id]; !ok {
		return fmt.Errorf("unknown account %d", id)
	}
	l.periods[id] = append(l.periods[id], ranges...)
	return nil
}

// IsAccountBucketed reports whether the account is bucketed on the given
// date. This is the single authoritative predicate: accounts with period
// overrides are bucketed iff the date falls in one of their ranges, all
// others follow their static flag.
func (l *Ledger) IsAccountBucketed(id AccountID, on date.Date) bool {
	if ranges, ok := l.periods[id]; ok {
		for _, r := range ranges {
			if r.Contains(on) {
				return true
			}
		}
		return false
	}
	return l.accounts[id].Bucketed
}

// BucketedAccounts returns the identities of all accounts bucketed on the
// given date, sorted.
func (l *Ledger) BucketedAccounts(on date.Date) []AccountID {
	return l.selectAccounts(func(id AccountID) bool { return l.IsAccountBucketed(id, on) })
}

// UnbucketedAccounts returns the identities of all accounts not bucketed on
// the given date, sorted.
func (l *Ledger) UnbucketedAccounts(on date.Date) []AccountID {
	return l.selectAccounts(func(id AccountID) bool { return !l.IsAccountBucketed(id, on) })
}

// PermanentlyBucketedAccounts returns the accounts with no period override
// whose static flag is bucketed.
func (l *Ledger) PermanentlyBucketedAccounts() []AccountID {
	return l.selectAccounts(func(id AccountID) bool {
		_, overridden := l.periods[id]
		return !overridden && l.accounts[id].Bucketed
	})
}

// PermanentlyUnbucketedAccounts returns the accounts with no period override
// whose static flag is not bucketed.
func (l *Ledger) PermanentlyUnbucketedAccounts() []AccountID {
	return l.selectAccounts(func(id AccountID) bool {
		_, overridden := l.periods[id]
		return !overridden && !l.accounts[id].Bucketed
	})
}

// everBucketedAccounts returns the accounts that are bucketed at some point:
// permanently bucketed ones plus overridden ones with at least one range.
func (l *Ledger) everBucketedAccounts() []AccountID {
	return l.selectAccounts(func(id AccountID) bool {
		if ranges, overridden := l.periods[id]; overridden {
			return len(ranges) > 0
		}
		return l.accounts[id].Bucketed
	})
}

// everUnbucketedAccounts returns the accounts that are unbucketed at some
// point: permanently unbucketed ones plus every overridden one (an override
// account is unbucketed outside its ranges).
func (l *Ledger) everUnbucketedAccounts() []AccountID {
	return l.selectAccounts(func(id AccountID) bool {
		if _, overridden := l.periods[id]; overridden {
			return true
		}
		return !l.accounts[id].Bucketed
	})
}

func (l *Ledger) selectAccounts(keep func(AccountID) bool) []AccountID {
	var ids []AccountID
	for id := range l.accounts {
		if keep(id) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
