package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/binfs/binfs/vfs"
)

// NewCountCmd creates and returns the count subcommand for the binfs CLI.
// It reports file, directory and byte totals for a document.
func NewCountCmd(opts *options) *cobra.Command {
	var (
		file     string
		showDirs bool
	)

	cmd := &cobra.Command{
		Use:   "count [FILE]",
		Short: "Count files and directories in a document",
		Long: `Count the files, directories and content bytes in a document.

With FILE, a local JSON document is counted; otherwise the configured
document is fetched. --dirs also lists every directory with the number of
files directly inside it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				file = args[0]
			}
			doc, err := opts.loadDocument(cmd, file)
			if err != nil {
				return err
			}
			runCount(cmd.OutOrStdout(), doc.Root, showDirs)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showDirs, "dirs", false, "List file counts per directory")

	return cmd
}

func runCount(w io.Writer, root *vfs.Dir, showDirs bool) {
	p := newPrinter(w)
	if showDirs {
		p.line("%6d  /", countFiles(root))
		root.Walk(func(at string, e vfs.Entry) error {
			if d, ok := e.(*vfs.Dir); ok {
				p.line("%6d  %s", countFiles(d), at)
			}
			return nil
		})
	}
	stats := root.Stats()
	p.field("Files", stats.Files)
	p.field("Directories", stats.Dirs)
	p.field("Bytes", stats.Bytes)
}

func countFiles(d *vfs.Dir) int {
	n := 0
	for _, name := range d.Names() {
		if e, _ := d.Get(name); !e.IsDir() {
			n++
		}
	}
	return n
}
