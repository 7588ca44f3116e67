package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const (
	headingResult      = "Structured Data Extracted (JSON)"
	headingFinalAnswer = "Final Analytical Answer"
	headingEmailBody   = "Generated Email Body"
	headingStatus      = "Email Automation Status"
)

type renderer struct {
	w       io.Writer
	styled  bool
	heading lipgloss.Style
	warning lipgloss.Style
	muted   lipgloss.Style
	status  lipgloss.Style
}

// newRenderer styles output only when w is a terminal.
func newRenderer(w io.Writer) *renderer {
	styled := false
	if f, ok := w.(*os.File); ok {
		styled = term.IsTerminal(int(f.Fd()))
	}
	return &renderer{
		w:       w,
		styled:  styled,
		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		status:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	}
}

func (r *renderer) style(s lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return s.Render(text)
}

func (r *renderer) section(title, body string) {
	fmt.Fprintln(r.w, r.style(r.heading, title))
	fmt.Fprintln(r.w, body)
	fmt.Fprintln(r.w)
}

func (r *renderer) render(out extractOutput) error {
	b, err := json.MarshalIndent(out.Extraction.Result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	r.section(headingResult, string(b))

	for _, w := range out.Extraction.ShapeWarnings {
		fmt.Fprintln(r.w, r.style(r.muted, "shape: "+w))
	}
	if out.Extraction.PromptTruncated {
		fmt.Fprintln(r.w, r.style(r.muted, "note: document text was truncated for the prompt"))
	}

	if out.Alert == nil {
		return nil
	}
	if out.Alert.Skipped {
		fmt.Fprintln(r.w, r.style(r.warning, "warning: "+out.Alert.Warning))
		fmt.Fprintln(r.w)
	}
	r.section(headingFinalAnswer, out.Alert.FinalAnswer)
	r.section(headingEmailBody, out.Alert.EmailBody)
	r.section(headingStatus, r.style(r.status, out.Alert.Status))
	return nil
}
