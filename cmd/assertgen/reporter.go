package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// reporter prints outcomes for people reading a terminal. Data goes to
// stdout; everything a reporter prints goes to stderr.
type reporter struct {
	w       io.Writer
	verbose bool
}

func newReporter(w io.Writer, verbose bool) *reporter {
	return &reporter{w: w, verbose: verbose}
}

func (r *reporter) Error(err error) {
	color.New(color.FgRed, color.Bold).Fprint(r.w, "error: ")
	fmt.Fprintln(r.w, err.Error())
	r.hints(err)
	if r.verbose {
		fmt.Fprintf(r.w, "\n%+v\n", err)
	}
}

func (r *reporter) Warn(err error) {
	color.New(color.FgYellow, color.Bold).Fprint(r.w, "! ")
	fmt.Fprintln(r.w, err.Error())
	r.hints(err)
}

func (r *reporter) Success(format string, args ...any) {
	color.New(color.FgGreen).Fprint(r.w, "✓ ")
	fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *reporter) hints(err error) {
	hints := errors.FlattenHints(err)
	if hints == "" {
		return
	}
	cyan := color.New(color.FgCyan)
	for _, line := range strings.Split(hints, "\n") {
		// FlattenHints separates hints with "--" lines.
		if line == "" || line == "--" {
			continue
		}
		cyan.Fprint(r.w, "hint: ")
		fmt.Fprintln(r.w, line)
	}
}
