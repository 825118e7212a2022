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

type balancesCmd struct {
	date string
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "display account and bucket balances with their totals" }
func (*balancesCmd) Usage() string {
	return `mwcheck balances [-d <date>]

  Displays each account and bucket balance as of the given date, with the
  two totals whose difference the check command explains.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date to balance on (YYYY-MM-DD)")
}

func (c *balancesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	printMarkdown(renderer.BalancesMarkdown(ledger, on))
	return subcommands.ExitSuccess
}
