package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/mwell/bucketcheck/renderer"
)

type bucketsCmd struct{}

func (*bucketsCmd) Name() string     { return "buckets" }
func (*bucketsCmd) Synopsis() string { return "list buckets with their starting balances" }
func (*bucketsCmd) Usage() string {
	return `mwcheck buckets

  Lists every bucket, hidden ones included, with its balance at the cash
  flow start date.
`
}

func (*bucketsCmd) SetFlags(f *flag.FlagSet) {}

func (*bucketsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.BucketsMarkdown(ledger))
	return subcommands.ExitSuccess
}
