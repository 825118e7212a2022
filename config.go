package bucketcheck

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mwell/bucketcheck/date"
)

// Config carries the ledger-specific knowledge the backing store does not
// have: the reporting currency and the periods during which a "sometimes
// bucketed" account was actually bucketed.
//
// Example:
//
//	currency: USD
//	bucketed_periods:
//	  - account: "Savings"
//	    ranges:
//	      - from: 2012-09-29
//	        to: 2013-06-12
type Config struct {
	Currency        string           `yaml:"currency"`
	BucketedPeriods []AccountPeriods `yaml:"bucketed_periods"`
}

// AccountPeriods lists the date ranges during which one account, named by
// its display name, was bucketed.
type AccountPeriods struct {
	Account string        `yaml:"account"`
	Ranges  []PeriodRange `yaml:"ranges"`
}

// PeriodRange is one closed date range. An empty To means "still bucketed".
type PeriodRange struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// DefaultCurrency is used when the config does not name one.
const DefaultCurrency = "USD"

// DecodeConfig reads a YAML ledger config. An empty stream yields the
// default config.
func DecodeConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Config
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid ledger config: %w", err)
	}
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	return &c, nil
}

// ApplyConfig resolves the config's account names and installs the
// semi-bucketed period overrides. It must be called before any check runs.
// An account name that does not resolve is an error: the config contradicts
// the loaded ledger.
func (l *Ledger) ApplyConfig(c *Config) error {
	for _, ap := range c.BucketedPeriods {
		id, ok := l.AccountIDByName(ap.Account)
		if !ok {
			return fmt.Errorf("bucketed_periods: unknown account %q", ap.Account)
		}
		ranges := make([]date.Range, 0, len(ap.Ranges))
		for _, pr := range ap.Ranges {
			from, err := date.Parse(pr.From)
			if err != nil {
				return fmt.Errorf("bucketed_periods: account %q: %w", ap.Account, err)
			}
			to := date.Max()
			if pr.To != "" {
				if to, err = date.Parse(pr.To); err != nil {
					return fmt.Errorf("bucketed_periods: account %q: %w", ap.Account, err)
				}
			}
			if to.Before(from) {
				return fmt.Errorf("bucketed_periods: account %q: range %s..%s ends before it starts", ap.Account, from, to)
			}
			ranges = append(ranges, date.NewRange(from, to))
		}
		if err := l.OverrideBucketedPeriods(id, ranges...); err != nil {
			return err
		}
	}
	return nil
}
