// Package term provides the terminal surface binfs renders to and reads keys
// from.
//
// The shell and the editor never write to stdout directly. They draw through
// the Surface interface, which exposes a fixed grid of rows, a cursor, and a
// key source with a bounded wait. Two implementations are provided:
//   - Terminal: the real terminal, switched to raw mode and the alternate
//     screen, decoding ANSI input sequences into Keys
//   - Screen: an in-memory grid with a scripted key queue, used by tests
//
// Styled output is expressed as Spans. Terminal maps styles to colours with
// fatih/color and picks a stable per-name colour for entry names with
// colorhash; Screen records only the text.
package term
