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

type accountsCmd struct {
	date string
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts and whether each one is bucketed" }
func (*accountsCmd) Usage() string {
	return `mwcheck accounts [-d <date>]

  Lists every account with its classification on the given date. Accounts
  with configured bucketed periods can change classification over time.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date to classify on (YYYY-MM-DD)")
}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	printMarkdown(renderer.AccountsMarkdown(ledger, on))
	return subcommands.ExitSuccess
}
