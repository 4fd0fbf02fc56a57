//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package cli

// Without termios the repl falls back to line mode.
func isTerminal(uintptr) bool {
	return false
}
