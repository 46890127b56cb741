package cmd

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/binfs/binfs/store"
	"github.com/binfs/binfs/vfs"
)

// NewConvertCmd creates and returns the convert subcommand for the binfs CLI.
// It converts between local directory trees and JSON documents.
func NewConvertCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		export     bool
		verbose    bool
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert between directory trees and binfs documents",
		Long: `Import a local directory tree into a binfs JSON document, or with
--export write a document back out as a directory tree.

Only regular files holding valid UTF-8 text are imported; anything else is
skipped and listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd.OutOrStdout())
			if export {
				return runExport(p, inputPath, outputPath, verbose, dryRun)
			}
			return runImport(cmd, p, inputPath, outputPath, verbose, dryRun)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input directory, or JSON file with --export (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output JSON file, or directory with --export (required)")
	cmd.Flags().BoolVar(&export, "export", false, "Write a document out as a directory tree")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without making changes")

	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")

	return cmd
}

func runImport(cmd *cobra.Command, p *printer, inputPath, outputPath string, verbose, dryRun bool) error {
	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input %s is not a directory", inputPath)
	}

	doc, skipped, err := importTree(inputPath)
	if err != nil {
		return err
	}
	for _, s := range skipped {
		p.fail("skipped %s", s)
	}
	stats := doc.Root.Stats()
	if verbose || dryRun {
		p.field("Files", stats.Files)
		p.field("Directories", stats.Dirs)
		p.field("Bytes", stats.Bytes)
	}
	if dryRun {
		p.line("DRY RUN - %s not written", outputPath)
		return nil
	}
	if err := store.Save(cmd.Context(), store.NewFile(outputPath), doc); err != nil {
		return err
	}
	p.ok("converted %s to %s", inputPath, outputPath)
	return nil
}

// importTree reads the tree under root into a document. Entries that
// cannot be represented are returned as skipped paths.
func importTree(root string) (*vfs.Document, []string, error) {
	doc := vfs.NewDocument()
	var skipped []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		segs := strings.Split(filepath.ToSlash(rel), "/")
		parent, err := ensureDir(doc.Root, segs[:len(segs)-1])
		if err != nil {
			return err
		}
		name := segs[len(segs)-1]
		if vfs.ValidName(name) != nil {
			skipped = append(skipped, rel)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		switch {
		case d.IsDir():
			_, err = parent.Mkdir(name)
			return err
		case d.Type().IsRegular():
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if !utf8.Valid(data) {
				skipped = append(skipped, rel)
				return nil
			}
			_, err = parent.Create(name, string(data))
			return err
		}
		skipped = append(skipped, rel)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to import %s: %w", root, err)
	}
	return doc, skipped, nil
}

func runExport(p *printer, inputPath, outputPath string, verbose, dryRun bool) error {
	doc, err := readDocument(inputPath)
	if err != nil {
		return err
	}
	if dryRun {
		stats := doc.Root.Stats()
		p.line("DRY RUN - would write %d files in %d directories to %s", stats.Files, stats.Dirs, outputPath)
		return nil
	}
	var log io.Writer = io.Discard
	if verbose {
		log = p.w
	}
	if err := exportTree(doc.Root, outputPath, log); err != nil {
		return err
	}
	p.ok("exported %s to %s", inputPath, outputPath)
	return nil
}

// exportTree writes every entry below root into dir. Entries whose names
// cannot be file names are listed on log and skipped with their subtree.
func exportTree(root *vfs.Dir, dir string, log io.Writer) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, name := range root.Names() {
		e, _ := root.Get(name)
		if !vfs.Addressable(name) {
			fmt.Fprintf(log, "skipped %q\n", name)
			continue
		}
		target := filepath.Join(dir, name)
		switch v := e.(type) {
		case *vfs.Dir:
			if err := exportTree(v, target, log); err != nil {
				return err
			}
		case *vfs.File:
			if err := os.WriteFile(target, []byte(v.Content), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", target, err)
			}
			fmt.Fprintln(log, target)
		}
	}
	return nil
}
