package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binfs/binfs/store"
	"github.com/binfs/binfs/vfs"
)

// NewDiffCmd creates and returns the diff subcommand for the binfs CLI.
func NewDiffCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "diff FILE",
		Short: "Show how a local document differs from the remote one",
		Long: `Print the JSON merge patch (RFC 7386) that turns the configured
document into the local JSON document FILE. Nothing is pushed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			local, err := readDocument(args[0])
			if err != nil {
				return err
			}
			remote, err := opts.loadDocument(cmd, "")
			if err != nil {
				return err
			}
			return runDiff(newPrinter(cmd.OutOrStdout()), remote, local)
		},
	}
}

func runDiff(p *printer, remote, local *vfs.Document) error {
	patch, err := store.MergePatch(remote, local)
	if err != nil {
		return err
	}
	if string(patch) == "{}" {
		p.ok("no differences")
		return nil
	}
	p.line("%s", patch)
	added, removed, changed := compareFiles(remote.Root, local.Root)
	p.line("%s %s %s",
		p.paint(addColor, fmt.Sprintf("+%d", added)),
		p.paint(delColor, fmt.Sprintf("-%d", removed)),
		fmt.Sprintf("~%d files", changed))
	return nil
}

// compareFiles counts files only in b, only in a, and in both with different
// content.
func compareFiles(a, b *vfs.Dir) (added, removed, changed int) {
	before := fileContents(a)
	after := fileContents(b)
	for p, content := range after {
		old, ok := before[p]
		switch {
		case !ok:
			added++
		case old != content:
			changed++
		}
	}
	for p := range before {
		if _, ok := after[p]; !ok {
			removed++
		}
	}
	return added, removed, changed
}

func fileContents(d *vfs.Dir) map[string]string {
	out := make(map[string]string)
	d.Walk(func(p string, e vfs.Entry) error {
		if f, ok := e.(*vfs.File); ok {
			out[p] = f.Content
		}
		return nil
	})
	return out
}
