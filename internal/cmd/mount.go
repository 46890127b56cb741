package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/binfs/binfs/config"
	"github.com/binfs/binfs/fusefs"
	"github.com/binfs/binfs/store"
	"github.com/binfs/binfs/version"
)

// NewMountCmd creates and returns the mount subcommand for the binfs CLI.
// It serves the document as a FUSE filesystem until interrupted.
func NewMountCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mount MOUNTPOINT",
		Short: "Mount the document as a FUSE filesystem",
		Long: `Mount the document at MOUNTPOINT.

Directories and files in the document appear as ordinary directories and
files. The document is fetched once when mounting; when the filesystem is
unmounted (Ctrl+C) it is pushed back if anything changed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMount(cmd, opts, args[0])
		},
	}
}

func runMount(cmd *cobra.Command, opts *options, mountpoint string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := opts.setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	if e.cfg.Backend == config.BackendFile && pathsOverlap(e.cfg.File.Path, mountpoint) {
		return fmt.Errorf("document %s overlaps mountpoint %s", e.cfg.File.Path, mountpoint)
	}

	doc, err := store.Load(ctx, e.store)
	if err != nil {
		return err
	}

	log := e.log.Named("mount")
	filesystem := fusefs.New(doc, log)
	log.Info("mounted",
		zap.String("version", version.GetVersion()),
		zap.String("mountpoint", mountpoint),
		zap.String("store", e.store.Name()))
	fmt.Fprintf(cmd.OutOrStdout(), "binfs %s mounted at %s (store: %s)\n", version.GetVersion(), mountpoint, e.store.Name())

	if err := fusefs.Mount(ctx, mountpoint, filesystem); err != nil {
		return err
	}

	if !filesystem.Modified() {
		log.Info("unmounted without changes")
		return nil
	}
	// ctx is already cancelled by the interrupt that ended the mount.
	if err := store.Save(context.WithoutCancel(ctx), e.store, doc); err != nil {
		log.Error("push failed", zap.Error(err))
		return err
	}
	newPrinter(cmd.OutOrStdout()).ok("changes pushed to %s", e.store.Name())
	return nil
}

// pathsOverlap reports whether one path is the other or lies beneath it.
func pathsOverlap(path1, path2 string) bool {
	a, err := filepath.Abs(path1)
	if err != nil {
		a = filepath.Clean(path1)
	}
	b, err := filepath.Abs(path2)
	if err != nil {
		b = filepath.Clean(path2)
	}
	return within(a, b) || within(b, a)
}

func within(child, parent string) bool {
	if child == parent {
		return true
	}
	return strings.HasPrefix(child, strings.TrimSuffix(parent, string(filepath.Separator))+string(filepath.Separator))
}
