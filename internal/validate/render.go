package validate

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

var severityColor = map[model.Severity]*color.Color{
	model.SeverityCritical: color.New(color.FgRed, color.Bold),
	model.SeverityError:    color.New(color.FgRed),
	model.SeverityWarning:  color.New(color.FgYellow),
	model.SeverityInfo:     color.New(color.FgCyan),
}

// Render writes a human-readable report. Severity labels are colorized when
// the writer is a terminal; fatih/color handles the detection.
func Render(w io.Writer, r Report) {
	fmt.Fprintf(w, "Validated %d SPACs at %s\n\n", r.Checked, r.GeneratedAt.Format("2006-01-02 15:04:05"))

	if len(r.Findings) == 0 {
		fmt.Fprintln(w, "No findings.")
		return
	}

	for _, f := range r.Findings {
		label := string(f.Severity)
		if c, ok := severityColor[f.Severity]; ok {
			label = c.Sprint(label)
		}
		name := f.Name
		if f.Ticker != "" {
			name = fmt.Sprintf("%s (%s)", f.Name, f.Ticker)
		}
		fmt.Fprintf(w, "%-8s  %-24s  CIK %-10d  %s: %s\n", label, name, f.CIK, f.Code, f.Detail)
	}

	fmt.Fprintf(w, "\n%d critical, %d errors, %d warnings, %d info\n",
		r.Counts[model.SeverityCritical],
		r.Counts[model.SeverityError],
		r.Counts[model.SeverityWarning],
		r.Counts[model.SeverityInfo],
	)
}

// RenderSummary writes only the per-severity counts.
func RenderSummary(w io.Writer, r Report) {
	fmt.Fprintf(w, "checked=%d critical=%d errors=%d warnings=%d info=%d\n",
		r.Checked,
		r.Counts[model.SeverityCritical],
		r.Counts[model.SeverityError],
		r.Counts[model.SeverityWarning],
		r.Counts[model.SeverityInfo],
	)
}
