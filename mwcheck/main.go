package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/mwell/bucketcheck/cmd"
)

func main() {
	// Shell completion handles its own env-triggered invocation and
	// returns immediately in a normal run.
	completion().Complete("mwcheck")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	dateFlags := map[string]complete.Predictor{"d": predict.Something}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"check":    {Flags: dateFlags},
			"balances": {Flags: dateFlags},
			"accounts": {Flags: dateFlags},
			"buckets":  {},
		},
		Flags: map[string]complete.Predictor{
			"f":   predict.Files("*"),
			"c":   predict.Files("*.yaml"),
			"raw": predict.Nothing,
		},
	}
}
