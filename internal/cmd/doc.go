// Package cmd provides the command-line interface implementation for binfs.
//
// It uses the Cobra library for command structure and Fang for styling.
// Running binfs with no arguments opens the interactive shell on the
// configured document; with a single PATH argument it prints that file and
// exits.
//
// The remaining commands are organized into groups:
//   - Session: mount, diff
//   - Utility: count, validate, seed, convert
//
// Each command lives in its own file with a New<X>Cmd constructor. Global
// flags (config file, log level, log file) are shared through the options
// type, which also builds the logger and opens the store.
package cmd
