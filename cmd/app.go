// Package cmd implements the CLI application to check a MoneyWell document.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/mwell/bucketcheck"
	"github.com/mwell/bucketcheck/moneywell"
)

// Commands lists the subcommands in the order they are registered.
// A main package iterates it, registers each one, and calls Execute on the
// user-selected one.
var Commands = []subcommands.Command{
	&checkCmd{},
	&balancesCmd{},
	&accountsCmd{},
	&bucketsCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataFile = flag.String("f", "MoneyWell.moneywell", "Path to the MoneyWell document (bundle or raw sqlite store)")
var configFile = flag.String("c", "", "Path to the YAML config file (currency, bucketed periods)")
var rawOutput = flag.Bool("raw", false, "Print raw markdown instead of rendering it for the terminal")

// loadLedger opens the document named by -f, applies the config named by -c,
// and returns the resulting ledger.
func loadLedger() (*bucketcheck.Ledger, error) {
	var cfg *bucketcheck.Config
	if *configFile != "" {
		f, err := os.Open(*configFile)
		if err != nil {
			return nil, fmt.Errorf("opening config %q: %w", *configFile, err)
		}
		defer f.Close()
		cfg, err = bucketcheck.DecodeConfig(f)
		if err != nil {
			return nil, fmt.Errorf("reading config %q: %w", *configFile, err)
		}
	}
	l, err := moneywell.ReadLedger(*dataFile, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("document %q does not exist (use -f to point at your MoneyWell file)", *dataFile)
	}
	return l, err
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering fails or -raw is set.
func printMarkdown(md string) {
	if *rawOutput {
		fmt.Println(md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
