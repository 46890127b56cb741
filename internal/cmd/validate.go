package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/binfs/binfs/vfs"
)

// ErrInvalidDocument is returned by validate when any value fails to decode.
var ErrInvalidDocument = errors.New("document is not a valid binfs tree")

// NewValidateCmd creates and returns the validate subcommand for the binfs CLI.
// It checks that every value in a document is a string or an object.
func NewValidateCmd(opts *options) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Check a document for values binfs cannot represent",
		Long: `Validate a document and report every path whose value is neither a
string (file) nor an object (directory).

With FILE, a local JSON document is checked; otherwise the configured
document is fetched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				blob []byte
				name string
				err  error
			)
			if len(args) > 0 {
				name = args[0]
				blob, err = os.ReadFile(name)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", name, err)
				}
			} else {
				e, err := opts.setup(cmd.Context(), cmd)
				if err != nil {
					return err
				}
				defer e.close()
				name = e.store.Name()
				if blob, err = e.store.Fetch(cmd.Context()); err != nil {
					return err
				}
			}
			return runValidate(cmd.OutOrStdout(), name, blob, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print totals for a valid document")

	return cmd
}

func runValidate(w io.Writer, name string, blob []byte, verbose bool) error {
	p := newPrinter(w)
	doc, err := vfs.Decode(blob)
	if err != nil {
		problems := flatten(err)
		p.fail("%s has %d problems:", name, len(problems))
		for _, problem := range problems {
			p.line("  - %s", problem)
		}
		return fmt.Errorf("%w: %s", ErrInvalidDocument, name)
	}
	p.ok("%s is valid", name)
	if verbose {
		stats := doc.Root.Stats()
		p.line("  Files: %d", stats.Files)
		p.line("  Directories: %d", stats.Dirs)
	}
	return nil
}

// flatten expands joined errors into their leaves.
func flatten(err error) []error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	var out []error
	for _, e := range joined.Unwrap() {
		out = append(out, flatten(e)...)
	}
	return out
}
