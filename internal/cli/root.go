// Package cli implements catalogctl, an offline companion to the API that
// runs the same catalog queries against a fixture file.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lMelkorl/b2bminiui/internal/fixtures"
	"github.com/lMelkorl/b2bminiui/internal/pkg/log"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Fixtures string
	Format   string // "json" | "yaml"
	Verbose  bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"json", "yaml"}

// NewRootCommand creates the root command for catalogctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "catalogctl",
		Short: "Query and seed the jewelry B2B catalog",
		// main prints the error once
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			// keep stdout clean for structured output
			log.SetOutput(cmd.ErrOrStderr())
			if opts.Verbose {
				log.SetLevel(log.LevelDebug)
			} else {
				log.SetLevel(log.LevelWarn)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Fixtures, "fixtures", "", "fixture file (.json, .yaml); defaults to the embedded catalog")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "json", "output format (json|yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewSummaryCommand(opts))
	cmd.AddCommand(NewKeygenCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func (o *RootOptions) dataset() (*fixtures.Dataset, error) {
	ds, err := fixtures.Load(o.Fixtures)
	if err != nil {
		return nil, err
	}
	log.Debug("Loaded %d products and %d orders", len(ds.Products), len(ds.Orders))
	return ds, nil
}

func (o *RootOptions) write(w io.Writer, v interface{}) error {
	if o.Format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
