package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "shroud.dev/pkg/shroud/internal/model"
)

var (
	originalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	arrowStyle       = lipgloss.NewStyle().Faint(true)
	replacementStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

// SimpleUI implements UI on top of the cobra command's output streams.
type SimpleUI struct {
	cmd    *cobra.Command
	styled bool
	mu     sync.Mutex
}

// NewSimpleUI creates a new SimpleUI. The mapping is styled only when
// standard error is a terminal.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd, styled: IsTerminal(cmd.ErrOrStderr())}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

// DisplayCode writes the rewritten source to standard output.
func (s *SimpleUI) DisplayCode(ctx context.Context, code []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.cmd.OutOrStdout().Write(code)

	return err
}

// DisplayDiff writes a unified diff between the original and rewritten source.
func (s *SimpleUI) DisplayDiff(ctx context.Context, path m.Path, before, after []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: string(path),
		ToFile:   string(path) + " (obfuscated)",
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("diff %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = io.WriteString(s.cmd.OutOrStdout(), diff)

	return err
}

// DisplayMapping prints one "original -> replacement" line per rename, in
// assignment order, to standard error.
func (s *SimpleUI) DisplayMapping(ctx context.Context, mapping *m.RenameMapping) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range mapping.Entries() {
		if s.styled {
			s.errorf("%s %s %s\n",
				originalStyle.Render(entry.Original.Name),
				arrowStyle.Render("->"),
				replacementStyle.Render(entry.Replacement))

			continue
		}

		s.errorf("%s -> %s\n", entry.Original.Name, entry.Replacement)
	}
}

// DisplayPlan renders the planned renames as a table.
func (s *SimpleUI) DisplayPlan(ctx context.Context, plan m.Plan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.printf("%s", renderPlanTable(plan))

	return nil
}

func renderPlanTable(plan m.Plan) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Original", "Role", "Occurrences", "Replacement"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	for _, entry := range plan.Mapping.Entries() {
		table.Append([]string{
			entry.Original.Name,
			string(entry.Original.Role),
			fmt.Sprintf("%d", len(entry.Original.Positions)),
			entry.Replacement,
		})
	}

	table.SetFooter([]string{
		string(plan.Source.Path),
		string(plan.Source.Language),
		fmt.Sprintf("%d", plan.Mapping.Len()),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayBatchSummary prints one row per batch file.
func (s *SimpleUI) DisplayBatchSummary(ctx context.Context, outcomes []m.BatchOutcome) {
	if err := ctx.Err(); err != nil {
		return
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Source", "Output", "Renamed", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoFormatHeaders(false)

	failed := 0

	for _, outcome := range outcomes {
		status := "ok"
		if outcome.Err != nil {
			status = outcome.Err.Error()
			failed++
		}

		table.Append([]string{
			string(outcome.Source),
			string(outcome.Output),
			fmt.Sprintf("%d", outcome.Renamed),
			status,
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Files %d", len(outcomes)), "", "", fmt.Sprintf("Failed %d", failed)})
	table.Render()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.errorf("%s", tableBuffer.String())
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) errorf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}
