// Package display renders bulkrename's terminal output: error reports,
// dry-run previews and journal listings.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"bulkrename/internal/config"
	"bulkrename/internal/rename"
)

const timeLayout = "2006-01-02 15:04:05"

// ColorEnabled resolves a config color mode for w. In auto mode colors are
// used only when w is a terminal and NO_COLOR (https://no-color.org) is unset.
func ColorEnabled(mode string, w io.Writer, getenv func(string) string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// Printer writes styled output to one writer.
type Printer struct {
	w     io.Writer
	err   lipgloss.Style
	warn  lipgloss.Style
	arrow lipgloss.Style
	dim   lipgloss.Style
	ok    lipgloss.Style
}

// NewPrinter creates a Printer. When color is false every style renders
// plain text.
func NewPrinter(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Printer{
		w:     w,
		err:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		warn:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		arrow: r.NewStyle().Foreground(lipgloss.Color("14")),
		dim:   r.NewStyle().Faint(true),
		ok:    r.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// Chain returns the message of err followed by the message of every error
// it wraps, outermost first. Errors wrapping several causes, such as
// *rename.AggregateError, list each cause's chain in order.
func Chain(err error) []string {
	if err == nil {
		return nil
	}
	msgs := []string{err.Error()}
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, cause := range u.Unwrap() {
			msgs = append(msgs, Chain(cause)...)
		}
	case interface{ Unwrap() error }:
		msgs = append(msgs, Chain(u.Unwrap())...)
	}
	return msgs
}

// Error prints err once with the error prefix. With debug set every wrapped
// cause is listed on its own line as well.
func (p *Printer) Error(err error, debug bool) {
	fmt.Fprintf(p.w, "%s %s\n", p.err.Render(rename.ErrorPrefix), err)
	if !debug {
		return
	}
	chain := Chain(err)
	for _, msg := range chain[1:] {
		fmt.Fprintf(p.w, "  %s %s\n", p.dim.Render("caused by:"), msg)
	}
}

// Warn prints a warning line.
func (p *Printer) Warn(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", p.warn.Render("[bulk-rename warning]:"), msg)
}

// Plan prints the changed pairs of mapping, one "from -> to" per line.
func (p *Printer) Plan(mapping rename.NameMapping) {
	changes := mapping.Changes()
	if changes == 0 {
		fmt.Fprintln(p.w, "Nothing to rename.")
		return
	}

	width := 0
	for _, pair := range mapping {
		if pair.Changed() && lipgloss.Width(pair.From) > width {
			width = lipgloss.Width(pair.From)
		}
	}
	for _, pair := range mapping {
		if !pair.Changed() {
			continue
		}
		pad := strings.Repeat(" ", width-lipgloss.Width(pair.From))
		fmt.Fprintf(p.w, "%s%s %s %s\n", pair.From, pad, p.arrow.Render("->"), pair.To)
	}
	fmt.Fprintf(p.w, "%s\n", p.dim.Render(fmt.Sprintf("%d rename(s) planned, nothing changed (dry run)", changes)))
}

// Summary prints the outcome of an executed run.
func (p *Printer) Summary(result *rename.Result) {
	if result.Renamed == 0 && result.Failed == 0 {
		return
	}
	msg := fmt.Sprintf("Renamed %d of %d entr%s", result.Renamed, result.Renamed+result.Failed, plural(result.Renamed+result.Failed))
	fmt.Fprintln(p.w, p.ok.Render(msg))
}

// Runs prints one line per journaled run.
func (p *Printer) Runs(runs []*rename.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(p.w, "No runs recorded.")
		return
	}
	for _, r := range runs {
		status := p.ok.Render(fmt.Sprintf("%-7s", r.Status))
		if r.Status != rename.RunStatusSuccess {
			status = p.err.Render(fmt.Sprintf("%-7s", r.Status))
		}
		fmt.Fprintf(p.w, "%s  %s  %-7s  %s  %d renamed, %d failed  %s\n",
			shortID(r.ID),
			r.StartedAt.Local().Format(timeLayout),
			r.Mode,
			status,
			r.Renamed,
			r.Failed,
			p.dim.Render(r.Directory),
		)
	}
}

// Run prints a journaled run with its pairs.
func (p *Printer) Run(r *rename.Run) {
	fmt.Fprintf(p.w, "Run:       %s\n", r.ID)
	fmt.Fprintf(p.w, "Mode:      %s\n", r.Mode)
	fmt.Fprintf(p.w, "Directory: %s\n", r.Directory)
	if r.Pattern != "" {
		fmt.Fprintf(p.w, "Pattern:   %s\n", r.Pattern)
	}
	if r.Mode == rename.ReplaceMode.String() {
		fmt.Fprintf(p.w, "Replace:   %s\n", r.Replacement)
	}
	fmt.Fprintf(p.w, "Started:   %s\n", r.StartedAt.Local().Format(timeLayout))
	fmt.Fprintf(p.w, "Duration:  %s\n", r.FinishedAt.Sub(r.StartedAt))
	fmt.Fprintf(p.w, "Status:    %s (%d renamed, %d failed)\n\n", r.Status, r.Renamed, r.Failed)

	for _, pair := range r.Pairs {
		line := fmt.Sprintf("%s %s %s", pair.From, p.arrow.Render("->"), pair.To)
		if pair.Error != "" {
			line += "  " + p.err.Render(pair.Error)
		}
		fmt.Fprintln(p.w, line)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
