package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// ConfigureOutput disables colors and table styling when out is not a terminal.
func ConfigureOutput(out *os.File) {
	if out == nil || !term.IsTerminal(int(out.Fd())) {
		pterm.DisableStyling()
		return
	}
	pterm.EnableStyling()
}

// Printer writes command output. Quiet suppresses headings and info lines,
// leaving tables, values and errors.
type Printer struct {
	Quiet bool
	out   io.Writer
}

// NewPrinter returns a printer writing to out, or stdout when out is nil.
func NewPrinter(out io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	return &Printer{out: out}
}

func (p *Printer) writer() io.Writer {
	if p.out == nil {
		return os.Stdout
	}
	return p.out
}

// Section prints a bold heading.
func (p *Printer) Section(title string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.writer(), pterm.Bold.Sprint(title))
}

// Info prints an informational line.
func (p *Printer) Info(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.writer(), pterm.Cyan(msg))
}

// Printf prints a formatted value.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.writer(), format, args...)
}

// Error prints an error line.
func (p *Printer) Error(msg string) {
	pterm.Error.WithWriter(p.writer()).Println(msg)
}

// Table prints data with its first row as header.
func (p *Printer) Table(data [][]string) {
	p.table(data, false)
}

// TableBoxed is Table with a border.
func (p *Printer) TableBoxed(data [][]string) {
	p.table(data, true)
}

func (p *Printer) table(data [][]string, boxed bool) {
	if len(data) == 0 {
		return
	}
	out, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed(boxed).
		WithData(pterm.TableData(data)).
		Srender()
	if err != nil {
		p.Error(err.Error())
		return
	}
	fmt.Fprintln(p.writer(), out)
}
