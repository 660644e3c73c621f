package integrity

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"asset-verifier/feature/assets"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

var (
	okStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	problemStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// WriteExportReport renders report to w in one of the assets output formats.
func WriteExportReport(w io.Writer, format string, report *ExportReport) error {
	switch format {
	case assets.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case assets.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case assets.FormatText, "":
		return writeText(w, report)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeText(w io.Writer, report *ExportReport) error {
	var b strings.Builder

	status := okStyle.Render("OK")
	if !report.OK() {
		status = problemStyle.Render("PROBLEMS")
	}
	fmt.Fprintf(&b, "%s %s\n", status, report.ExportPath)

	for _, name := range report.MissingArtifacts {
		fmt.Fprintf(&b, "  missing artifact: %s (%s)\n", name, assets.ExportHint)
	}

	if report.Platforms != nil {
		fmt.Fprintf(&b, "  platforms: %s\n", strings.Join(report.Platforms.Present, ", "))
		for _, p := range report.Platforms.Missing {
			fmt.Fprintf(&b, "  missing platform: %s\n", p)
		}
	}

	if report.ManifestFound != nil && !*report.ManifestFound {
		fmt.Fprintf(&b, "  missing embedded manifest: %s\n", report.ManifestPath)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
