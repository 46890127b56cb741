package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/binfs/binfs/logging"
	"github.com/binfs/binfs/shell"
	"github.com/binfs/binfs/store"
	"github.com/binfs/binfs/term"
	"github.com/binfs/binfs/version"
	"github.com/binfs/binfs/vfs"
)

// NewRootCmd creates and returns the root cobra command for the binfs CLI.
// With no arguments it runs the interactive shell; with a PATH it prints that
// file from the document.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	var dryRun bool

	rootCmd := &cobra.Command{
		Use:   "binfs [PATH]",
		Short: "binfs - a tiny filesystem stored in a single remote JSON document",
		Long: `binfs treats one JSON document as a filesystem: objects are directories
and strings are files.

Run without arguments to open the interactive shell. Inside the shell:
  cd NAME, ..       change directory
  edit NAME         open a file in the editor
  n NAME, d NAME    create a file or directory
  rm NAME           remove an entry
  ls, pwd, help     inspect the tree
  exit, abort       leave, pushing changes or discarding them

Run with a PATH to print a single file and exit.

The document is fetched once at start and pushed once on exit, and only when
something changed.`,
		Version: version.GetInfo().String(),
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer e.close()
			if len(args) == 1 {
				return runRead(cmd, e.store, args[0])
			}
			return runShell(cmd, e, dryRun)
		},
	}
	opts.bind(rootCmd)
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the changes as a JSON merge patch instead of pushing them")

	groupSession := "session"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupSession,
		Title: "Session Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	mountCmd := NewMountCmd(opts)
	diffCmd := NewDiffCmd(opts)
	countCmd := NewCountCmd(opts)
	validateCmd := NewValidateCmd(opts)
	seedCmd := NewSeedCmd()
	convertCmd := NewConvertCmd()

	mountCmd.GroupID = groupSession
	diffCmd.GroupID = groupSession
	countCmd.GroupID = groupUtilities
	validateCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	convertCmd.GroupID = groupUtilities

	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(convertCmd)

	return rootCmd
}

// runRead prints the file at p. A missing path is reported on stderr and
// yields ErrReported.
func runRead(cmd *cobra.Command, s store.Store, p string) error {
	doc, err := store.Load(cmd.Context(), s)
	if err != nil {
		return err
	}
	return printFile(cmd.OutOrStdout(), cmd.ErrOrStderr(), doc, p)
}

func printFile(out, errOut io.Writer, doc *vfs.Document, p string) error {
	content, err := doc.Root.ReadFile(p)
	if err != nil {
		fmt.Fprintf(errOut, "path '%s' not found :<\n", p)
		return ErrReported
	}
	_, err = io.WriteString(out, content)
	return err
}

func runShell(cmd *cobra.Command, e *env, dryRun bool) error {
	log, _ := e.log.WithSession()
	s := &session{store: e.store, log: log, dryRun: dryRun, out: cmd.OutOrStdout()}
	if err := s.load(cmd.Context()); err != nil {
		return err
	}
	log.Info("session started", zap.String("store", e.store.Name()), zap.Bool("dry_run", dryRun))

	tty, err := term.Open(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	runErr := s.run(cmd.Context(), tty)
	if err := errors.Join(runErr, tty.Close()); err != nil {
		return err
	}
	return s.finish(cmd.Context())
}

// session holds one fetch-edit-push cycle.
type session struct {
	store  store.Store
	log    *logging.Logger
	dryRun bool
	out    io.Writer

	doc    *vfs.Document
	before *vfs.Document
}

// load fetches the document. A dry run keeps a second decoded copy to diff
// against at the end.
func (s *session) load(ctx context.Context) error {
	doc, err := store.Load(ctx, s.store)
	if err != nil {
		return err
	}
	s.log.Debug("document fetched", zap.Int("files", doc.Root.Stats().Files))
	s.doc = doc
	if s.dryRun {
		blob, err := doc.Encode()
		if err != nil {
			return err
		}
		if s.before, err = vfs.Decode(blob); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) run(ctx context.Context, surf term.Surface) error {
	return shell.New(s.doc, s.log).Run(ctx, surf)
}

// finish pushes the document if it was modified, or prints the merge patch
// on a dry run.
func (s *session) finish(ctx context.Context) error {
	if !s.doc.Modified() {
		s.log.Info("session ended without changes")
		return nil
	}
	if s.dryRun {
		patch, err := store.MergePatch(s.before, s.doc)
		if err != nil {
			return fmt.Errorf("failed to compute changes: %w", err)
		}
		fmt.Fprintln(s.out, string(patch))
		return nil
	}
	if err := store.Save(ctx, s.store, s.doc); err != nil {
		s.log.Error("push failed", zap.Error(err))
		return err
	}
	s.log.Info("document pushed", zap.String("store", s.store.Name()))
	return nil
}
