// Package renderer formats reconciliation results as markdown. The core
// returns plain data; everything presentational lives here.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/mwell/bucketcheck"
	"github.com/mwell/bucketcheck/date"
)

// ReportMarkdown renders the full reconciliation narrative: the top-level
// drift, then each check with its error amount and offending records.
func ReportMarkdown(l *bucketcheck.Ledger, r *bucketcheck.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Reconciliation on %s", r.Date))

	if r.Drift.Good() {
		doc.PlainText(fmt.Sprintf("Accounts and buckets agree: %s == %s.",
			r.Drift.AccountTotal, r.Drift.BucketTotal))
	} else {
		doc.PlainText(fmt.Sprintf("Accounts and buckets disagree: %s (bucketed accounts) vs %s (buckets), off by %s.",
			r.Drift.AccountTotal, r.Drift.BucketTotal, r.Drift.Err().SignedString()))
	}

	renderCashFlowStart(doc, r.CashFlowStart)
	renderStray(doc, l, "Unbucketed transactions in bucketed accounts", r.UnbucketedInBucketed)
	renderStray(doc, l, "Bucketed transactions in unbucketed accounts", r.BucketedInUnbucketed)
	renderSplits(doc, l, r.Splits)
	renderTransfers(doc, l, "Transfers in bucketed accounts", r.BucketedTransfers)
	renderTransfers(doc, l, "Transfers in unbucketed accounts", r.UnbucketedTransfers)

	doc.H2("Error sum")
	doc.PlainText(fmt.Sprintf("The checks together account for %s of the %s drift.",
		r.ErrorSum().SignedString(), r.Drift.Err().SignedString()))

	return doc.String()
}

func renderCashFlowStart(doc *md.Markdown, r bucketcheck.CashFlowStartResult) {
	doc.H2(fmt.Sprintf("Cash flow start (%s)", r.Start))
	if r.Good() {
		doc.PlainText(fmt.Sprintf("Good: starting bucket balances and account balances both sum to %s.", r.BucketTotal))
		return
	}
	doc.PlainText(fmt.Sprintf("The starting snapshot is inconsistent: accounts sum to %s, starting bucket balances to %s (off by %s).",
		r.AccountTotal, r.BucketTotal, r.Err().SignedString()))

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Account", "Balance at start"},
	}
	for _, line := range r.Accounts {
		table.Rows = append(table.Rows, []string{line.Account.Name, line.Balance.String()})
	}
	doc.Table(table)
}

func renderStray(doc *md.Markdown, l *bucketcheck.Ledger, title string, r bucketcheck.StrayResult) {
	doc.H2(title)
	if r.Good() {
		doc.PlainText("None found.")
		return
	}
	doc.PlainText(fmt.Sprintf("%d offending transaction(s), error %s.", len(r.Transactions), r.Amount.SignedString()))
	doc.Table(transactionTable(l, r.Transactions))
}

func renderSplits(doc *md.Markdown, l *bucketcheck.Ledger, r bucketcheck.SplitResult) {
	doc.H2("Splits that do not add up")
	if r.Good() {
		doc.PlainText("None found.")
		return
	}
	doc.PlainText(fmt.Sprintf("%d mismatched split(s), counted error %s.", len(r.Mismatches), r.Amount.SignedString()))

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{"Date", "Payee", "Parent", "Children", "Residual", "Counted"},
	}
	for _, m := range r.Mismatches {
		counted := "no"
		if m.Counted {
			counted = "yes"
		}
		children := m.Parent.Amount.Sub(m.Residual)
		table.Rows = append(table.Rows, []string{
			m.Parent.Date.String(),
			m.Parent.Payee,
			m.Parent.Amount.String(),
			children.String(),
			m.Residual.SignedString(),
			counted,
		})
	}
	doc.Table(table)
}

func renderTransfers(doc *md.Markdown, l *bucketcheck.Ledger, title string, r bucketcheck.TransferResult) {
	doc.H2(title)
	if r.Good() && len(r.Unresolved) == 0 {
		doc.PlainText("None found.")
		return
	}
	if !r.Good() {
		doc.PlainText(fmt.Sprintf("Error %s.", r.Amount.SignedString()))
	}
	if len(r.Spurious) > 0 {
		doc.H3("Legs carrying a bucket they must not carry")
		doc.Table(transactionTable(l, r.Spurious))
	}
	if len(r.Missing) > 0 {
		doc.H3("Legs missing a required bucket")
		doc.Table(transactionTable(l, r.Missing))
	}
	if len(r.Unresolved) > 0 {
		doc.H3("Legs whose transfer sibling cannot be resolved")
		doc.Table(transactionTable(l, r.Unresolved))
	}
}

// BalancesMarkdown renders the account and bucket balances as of a date,
// with totals for each side.
func BalancesMarkdown(l *bucketcheck.Ledger, on date.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Balances on %s", on))

	doc.H2("Accounts")
	accounts := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Account", "Bucketed", "Balance"},
	}
	for _, a := range l.Accounts() {
		bucketed := "no"
		if l.IsAccountBucketed(a.ID, on) {
			bucketed = "yes"
		}
		accounts.Rows = append(accounts.Rows, []string{a.Name, bucketed, l.AccountBalance(a.ID, on).String()})
	}
	doc.Table(accounts)
	doc.PlainText(fmt.Sprintf("Total over bucketed accounts: %s", l.TotalBucketedAccountBalance(on)))

	doc.H2("Buckets")
	buckets := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Bucket", "Balance"},
	}
	for _, b := range l.Buckets() {
		name := b.Name
		if b.Hidden {
			name += " (hidden)"
		}
		buckets.Rows = append(buckets.Rows, []string{name, l.BucketBalance(b.ID, on).String()})
	}
	doc.Table(buckets)
	doc.PlainText(fmt.Sprintf("Total over all buckets: %s", l.TotalBucketBalance(on)))

	return doc.String()
}

// AccountsMarkdown lists the accounts with their classification.
func AccountsMarkdown(l *bucketcheck.Ledger, on date.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Accounts")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignLeft},
		Header:    []string{"ID", "Name", fmt.Sprintf("Bucketed on %s", on)},
	}
	for _, a := range l.Accounts() {
		bucketed := "no"
		if l.IsAccountBucketed(a.ID, on) {
			bucketed = "yes"
		}
		table.Rows = append(table.Rows, []string{fmt.Sprintf("%d", a.ID), a.Name, bucketed})
	}
	doc.Table(table)
	return doc.String()
}

// BucketsMarkdown lists the buckets with their starting balances.
func BucketsMarkdown(l *bucketcheck.Ledger) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Buckets")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"ID", "Name", "Hidden", "Starting balance"},
	}
	for _, b := range l.Buckets() {
		hidden := "no"
		if b.Hidden {
			hidden = "yes"
		}
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", b.ID), b.Name, hidden, l.StartingBucketBalance(b.ID).String(),
		})
	}
	doc.Table(table)
	return doc.String()
}

// transactionTable lays out offending transactions with enough fields to
// chase them down in MoneyWell: date, account, bucket, amount, linkage.
func transactionTable(l *bucketcheck.Ledger, txns []bucketcheck.Transaction) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
		Header:    []string{"ID", "Date", "Payee", "Account", "Bucket", "Amount", "Notes"},
	}
	for _, t := range txns {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", t.ID),
			t.Date.String(),
			t.Payee,
			accountName(l, t.Account),
			bucketName(l, t.Bucket),
			t.Amount.SignedString(),
			txNotes(t),
		})
	}
	return table
}

func accountName(l *bucketcheck.Ledger, id bucketcheck.AccountID) string {
	if a, ok := l.Account(id); ok {
		return a.Name
	}
	return fmt.Sprintf("account %d", id)
}

func bucketName(l *bucketcheck.Ledger, id bucketcheck.BucketID) string {
	if id == 0 {
		return "-"
	}
	if b, ok := l.Bucket(id); ok {
		return b.Name
	}
	return fmt.Sprintf("bucket %d", id)
}

func txNotes(t bucketcheck.Transaction) string {
	notes := t.Memo
	if t.IsTransfer() {
		if notes != "" {
			notes += "; "
		}
		notes += fmt.Sprintf("transfer sibling %d", t.TransferSibling)
	}
	if notes == "" {
		return "-"
	}
	return notes
}
