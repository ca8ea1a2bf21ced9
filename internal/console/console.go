// Package console is the terminal front end: a Surface that prints to a
// writer and a line-oriented input field.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Zachdehooge/state-alerts/internal/generator"
)

// Surface prints controller output to w.
type Surface struct {
	w       io.Writer
	errFmt  *color.Color
	sumFmt  *color.Color
	noneFmt *color.Color
	verbose bool
}

// NewSurface creates a terminal surface. Colour follows fatih/color's
// NoColor detection; verbose also prints the loading indicator.
func NewSurface(w io.Writer, verbose bool) *Surface {
	return &Surface{
		w:       w,
		errFmt:  color.New(color.FgRed),
		sumFmt:  color.New(color.Bold),
		noneFmt: color.New(color.FgGreen),
		verbose: verbose,
	}
}

func (s *Surface) ShowError(msg string) {
	s.errFmt.Fprintln(s.w, msg)
}

// ClearError is a no-op; a terminal cannot take a line back.
func (s *Surface) ClearError() {}

func (s *Surface) SetLoading(on bool) {
	if on && s.verbose {
		fmt.Fprintln(s.w, "Fetching active weather alerts...")
	}
}

// Clear is a no-op for the same reason as ClearError.
func (s *Surface) Clear() {}

func (s *Surface) Show(view generator.View) {
	s.sumFmt.Fprintln(s.w, view.Summary)
	if view.Empty {
		s.noneFmt.Fprintln(s.w, generator.NoAlertsText)
		return
	}
	for i, headline := range view.Headlines() {
		fmt.Fprintf(s.w, "%d. %s\n", i+1, headline)
	}
}

// Field holds the current line of input.
type Field struct {
	value string
}

func (f *Field) Set(v string)  { f.value = v }
func (f *Field) Value() string { return f.value }
func (f *Field) Reset()        { f.value = "" }

// Submitter runs one cycle on the current field value.
type Submitter interface {
	Submit(ctx context.Context) error
}

// Prompt reads r line by line. Each line, ended by Enter, is one submission.
// It returns when r is exhausted, the user types quit or exit, or ctx is done.
// Cancellation does not wait for a pending read to finish.
func Prompt(ctx context.Context, r io.Reader, w io.Writer, field *Field, sub Submitter) error {
	lines, errc := scanLines(ctx, r)
	for {
		fmt.Fprint(w, "State abbreviation (quit to exit): ")

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(w)
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(w)
			return <-errc
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "quit", "exit":
			return nil
		}

		field.Set(line)
		_ = sub.Submit(ctx)
	}
}

// scanLines feeds lines from r into a channel that is closed at EOF, after
// which errc yields the scanner error. The reader goroutine stops sending
// once ctx is done.
func scanLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}
