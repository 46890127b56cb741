package shell

import "errors"

var (
	// ErrBadArgs reports a malformed command or a name that cannot be used.
	ErrBadArgs = errors.New("bad arguments")
	// ErrNotFound reports a bare name that matches no entry.
	ErrNotFound = errors.New("not found")
)

// Recoverable reports whether err leaves the session usable.
func Recoverable(err error) bool {
	return errors.Is(err, ErrBadArgs) || errors.Is(err, ErrNotFound)
}
