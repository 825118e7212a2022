package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/mwell/bucketcheck/date"
	"github.com/mwell/bucketcheck/renderer"
)

// checkCmd holds the flags for the 'check' subcommand.
type checkCmd struct {
	date string
}

func (*checkCmd) Name() string { return "check" }
func (*checkCmd) Synopsis() string {
	return "reconcile the account view against the bucket view and explain any drift"
}
func (*checkCmd) Usage() string {
	return `mwcheck check [-d <date>]

  Compares the total balance of bucketed accounts with the total balance of
  all buckets, runs every consistency check, and lists the offending
  transactions behind the difference.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date to reconcile on (YYYY-MM-DD)")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	report := ledger.Reconcile(on)
	printMarkdown(renderer.ReportMarkdown(ledger, report))

	if !report.Drift.Good() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
