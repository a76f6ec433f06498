package commands

import (
	"fmt"
	"io"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/scenelens/internal/core/styles"
)

// printer writes leveled, icon-prefixed lines for human readers.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w}
}

func (p *printer) line(style lipgloss.Style, icon, format string, args ...any) {
	_, _ = fmt.Fprintln(p.w, style.Render(icon)+" "+fmt.Sprintf(format, args...))
}

func (p *printer) Successf(format string, args ...any) {
	p.line(lipgloss.NewStyle().Foreground(styles.ColorSuccess), "✓", format, args...)
}

func (p *printer) Infof(format string, args ...any) {
	p.line(lipgloss.NewStyle().Foreground(styles.ColorWarning), styles.IconNotifyWarning, format, args...)
}

func (p *printer) Errorf(format string, args ...any) {
	p.line(lipgloss.NewStyle().Foreground(styles.ColorError), styles.IconNotifyError, format, args...)
}

func (p *printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}
