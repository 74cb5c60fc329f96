// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/video-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxSegmentsToShow is the default number of segments to display
	maxSegmentsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobResult outputs a human-readable summary of a terminal job record.
func (p *Printer) PrintJobResult(result *types.JobResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Job:    %s\n", result.JobID))
	sb.WriteString(fmt.Sprintf("URL:    %s\n", result.SourceURL))
	sb.WriteString(fmt.Sprintf("State:  %s\n", result.State))
	if result.PageTitle != "" {
		sb.WriteString(fmt.Sprintf("Title:  %s\n", result.PageTitle))
	}

	if result.State == types.JobStateFailed {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Error:  %s\n", result.Error))
		p.printBox("Analysis Failed", sb.String())
		return
	}

	if result.Summary != nil {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Segments:     %d total, %d ai, %d human\n",
			result.Summary.TotalSegments, result.Summary.AISegments, result.Summary.HumanSegments))
		sb.WriteString(fmt.Sprintf("Mean AI prob: %.2f\n", result.Summary.MeanProbability))
	}

	p.printBox("Analysis Result", sb.String())

	p.PrintSegments(result.Transcript)
}

// PrintSegments outputs the first few annotated segments.
func (p *Printer) PrintSegments(segments []types.TranscriptSegment) {
	if len(segments) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(segments), maxSegmentsToShow)
	for i := 0; i < count; i++ {
		seg := segments[i]
		label := "?"
		prob := 0.0
		if seg.Verdict != nil {
			label = seg.Verdict.Classification
			prob = seg.Verdict.Probability
		}
		sb.WriteString(fmt.Sprintf("[%6.1fs] %-17s p=%.2f  %s\n", seg.Start, label, prob, seg.Text))
	}
	if len(segments) > maxSegmentsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more segments\n", len(segments)-maxSegmentsToShow))
	}

	p.printBox("Annotated Transcript", sb.String())
}
