// Package bucketcheck reconciles a personal-finance ledger that tracks money
// twice: once per bank or credit account (actual cash movements) and once per
// budgeting bucket (envelope-style allocations). The two views must sum to
// the same total; when they diverge, the checks in this package pinpoint the
// transactions, transfers, or split records that caused the discrepancy.
//
// The package operates on an immutable in-memory Snapshot supplied by a
// loader (see the moneywell sub-package for the MoneyWell document reader).
// Every balance and check function is a pure function of (snapshot, date):
// it returns plain data (a rounded amount and the offending records) for a
// presentation layer to render (see the renderer sub-package).
//
// Bucket-side sums cover dates strictly after the cash-flow start date: the
// starting bucket balances already account for everything up to and
// including that date.
package bucketcheck
