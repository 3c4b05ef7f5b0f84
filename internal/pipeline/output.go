package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/itsmostafa/scriptflow/internal/execctx"
	"github.com/itsmostafa/scriptflow/internal/intent"
)

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// errorStyle for error indicators
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for summary boxes with rounded borders
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)

	// blockBannerStyle for per-block banners
	blockBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("39")).
				Padding(0, 1)
)

// maxRenderedOutput bounds how much of a block's output the summary
// shows. The full output stays available on the result itself.
const maxRenderedOutput = 2000

// FormatRunSummary renders the outcome of one pipeline run.
func FormatRunSummary(w io.Writer, result *RunResult) {
	if result.BlocksFound == 0 {
		fmt.Fprintln(w, dimStyle.Render("No code blocks found."))
		return
	}

	if result.BlocksExecuted == 0 {
		fmt.Fprintf(w, "%s\n", titleStyle.Render(fmt.Sprintf("Dry run: %d block(s) extracted", result.BlocksFound)))
		for i, code := range result.CodeBlocks {
			fmt.Fprintf(w, "%s\n%s\n", blockBannerStyle.Render(fmt.Sprintf("Block %d", i+1)), code)
		}
		return
	}

	for i, execResult := range result.Results {
		status := successStyle.Render("OK")
		if !execResult.Success {
			status = errorStyle.Render(execResult.Error)
		}
		fmt.Fprintf(w, "%s %s\n", blockBannerStyle.Render(fmt.Sprintf("Block %d", i+1)), status)
		if output := truncateOutput(execResult.Output); output != "" {
			fmt.Fprintln(w, output)
		}
	}

	verdict := successStyle.Render("all blocks succeeded")
	if !result.AllSucceeded {
		verdict = errorStyle.Render("some blocks failed")
	}
	summary := fmt.Sprintf("%s %d  %s %d  %s",
		dimStyle.Render("Found:"), result.BlocksFound,
		dimStyle.Render("Executed:"), result.BlocksExecuted,
		verdict,
	)
	fmt.Fprintln(w, boxStyle.Render(summary))
}

// FormatStats renders a session stats summary.
func FormatStats(w io.Writer, stats *execctx.Stats) {
	lines := []string{
		fmt.Sprintf("%s %s", dimStyle.Render("Session:"), stats.SessionID),
		fmt.Sprintf("%s %s", dimStyle.Render("Duration:"), stats.SessionDuration.Round(10*time.Millisecond)),
		fmt.Sprintf("%s %d  %s %d  %s %d",
			dimStyle.Render("Operations:"), stats.TotalOperations,
			successStyle.Render("ok:"), stats.Successful,
			errorStyle.Render("failed:"), stats.Failed,
		),
		fmt.Sprintf("%s %d created, %d modified", dimStyle.Render("Files:"), stats.FilesCreated, stats.FilesModified),
		fmt.Sprintf("%s %d", dimStyle.Render("Cached files:"), stats.CachedFiles),
	}

	if len(stats.RecentOperations) > 0 {
		lines = append(lines, dimStyle.Render("Recent:"))
		for _, op := range stats.RecentOperations {
			status := successStyle.Render("OK")
			if !op.Success {
				status = errorStyle.Render("FAIL")
			}
			lines = append(lines, fmt.Sprintf("  %s %s", status, firstLine(op.Code)))
		}
	}

	fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
}

// FormatIntent renders a classification result.
func FormatIntent(w io.Writer, result *intent.Result) {
	operational := errorStyle.Render("no")
	if result.Operational {
		operational = successStyle.Render("yes")
	}
	categories := strings.Join(result.Categories, ", ")
	if categories == "" {
		categories = dimStyle.Render("none")
	}

	content := fmt.Sprintf("%s %s\n%s %.2f\n%s %s\n%s %s",
		dimStyle.Render("Intent:"), titleStyle.Render(string(result.Intent)),
		dimStyle.Render("Confidence:"), result.Confidence,
		dimStyle.Render("Operational:"), operational,
		dimStyle.Render("Categories:"), categories,
	)
	fmt.Fprintln(w, boxStyle.Render(content))
}

func truncateOutput(output string) string {
	output = strings.TrimRight(output, "\n")
	if len(output) > maxRenderedOutput {
		return output[:maxRenderedOutput] + dimStyle.Render("\n... [truncated]")
	}
	return output
}

func firstLine(code string) string {
	if idx := strings.IndexByte(code, '\n'); idx >= 0 {
		return code[:idx] + " ..."
	}
	return code
}
