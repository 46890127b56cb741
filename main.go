package main

import (
	"context"
	"errors"
	"io"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"

	"github.com/binfs/binfs/internal/cmd"
	"github.com/binfs/binfs/version"
)

func main() {
	info := version.GetInfo()
	if err := fang.Execute(
		context.Background(),
		cmd.NewRootCmd(),
		fang.WithVersion(info.Version),
		fang.WithCommit(info.Commit),
		fang.WithErrorHandler(handleError),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

// handleError stays quiet for errors the command has already printed.
func handleError(w io.Writer, styles fang.Styles, err error) {
	if errors.Is(err, cmd.ErrReported) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
