package assets

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"asset-verifier/core/reconcile"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by WriteReport.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	passStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	labelStyle = lipgloss.NewStyle().Faint(true)
)

// ReportView is the rendered form of a verification.
type ReportView struct {
	Options   Options           `json:"options" yaml:"options"`
	Verdict   reconcile.Verdict `json:"verdict" yaml:"verdict"`
	Summary   reconcile.Summary `json:"summary" yaml:"summary"`
	Orphaned  []string          `json:"orphaned" yaml:"orphaned"`
	Redundant []string          `json:"redundant" yaml:"redundant"`
	Sets      *SetsView         `json:"sets,omitempty" yaml:"sets,omitempty"`
}

// SetsView echoes the three input sets for diagnosis.
type SetsView struct {
	Embedded []string `json:"embedded" yaml:"embedded"`
	Full     []string `json:"full" yaml:"full"`
	Platform []string `json:"platform" yaml:"platform"`
}

// NewReportView builds a view of res. withSets includes the input sets.
func NewReportView(opts Options, res *reconcile.Result, withSets bool) ReportView {
	view := ReportView{
		Options:   opts,
		Verdict:   res.Verdict,
		Summary:   res.Summary,
		Orphaned:  res.Orphaned,
		Redundant: res.Redundant,
	}
	if withSets {
		view.Sets = &SetsView{
			Embedded: res.Sets.Embedded.Sorted(),
			Full:     res.Sets.Full.Sorted(),
			Platform: res.Sets.Platform.Sorted(),
		}
	}
	return view
}

// ValidFormat reports whether format is a supported output format.
func ValidFormat(format string) bool {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// WriteReport renders view to w in the given format.
func WriteReport(w io.Writer, format string, view ReportView) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		return writeText(w, view)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeText(w io.Writer, view ReportView) error {
	var b strings.Builder

	verdict := passStyle.Render("PASS")
	if view.Verdict != reconcile.VerdictPass {
		verdict = failStyle.Render("FAIL")
	}
	fmt.Fprintf(&b, "%s %s %s\n", verdict, view.Options.Platform, view.Options.ExportPath)

	s := view.Summary
	fmt.Fprintf(&b, "  %s %d  %s %d  %s %d  %s %d  %s %d\n",
		labelStyle.Render("full:"), s.Full,
		labelStyle.Render("embedded:"), s.Embedded,
		labelStyle.Render("platform:"), s.Platform,
		labelStyle.Render("covered:"), s.Covered,
		labelStyle.Render("redundant:"), s.Redundant,
	)

	if len(view.Orphaned) > 0 {
		fmt.Fprintf(&b, "\nOrphaned assets (%d), in neither the native build nor the %s export:\n", len(view.Orphaned), view.Options.Platform)
		for _, id := range view.Orphaned {
			fmt.Fprintf(&b, "  %s\n", id)
		}
	}

	if view.Sets != nil {
		writeSet(&b, "Embedded", view.Sets.Embedded)
		writeSet(&b, "Full", view.Sets.Full)
		writeSet(&b, "Platform", view.Sets.Platform)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSet(b *strings.Builder, name string, ids []string) {
	fmt.Fprintf(b, "\n%s (%d):\n", name, len(ids))
	for _, id := range ids {
		fmt.Fprintf(b, "  %s\n", id)
	}
}
