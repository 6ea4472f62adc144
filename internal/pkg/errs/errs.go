// Package errs is a thin facade over cockroachdb/errors. Use cases mark
// errors with sentinels so handlers can map them to status codes with
// errors.Is, while the original cause and its stack stay attached for
// logging.
package errs

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// New creates an error carrying a stack trace from the call site.
func New(msg string) error {
	return errors.New(msg)
}

// Wrap annotates err with msg. A nil err stays nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}

// Mark makes err match markErr under errors.Is without losing the
// underlying cause. If err is nil the mark itself is returned.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return errors.Mark(err, markErr)
}

// ExtractStackLines renders err verbosely and returns at most maxLines
// lines of it. maxLines <= 0 means no limit.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	lines := strings.Split(fmt.Sprintf("%+v", err), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		return lines[:maxLines]
	}
	return lines
}
