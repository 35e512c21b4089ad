package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	m "shroud.dev/pkg/shroud/internal/model"
)

const maxProgressWidth = 60

// BatchProgress draws a live progress bar for a batch run. It is meant for
// terminals only; the summary table is still printed once the batch ends.
type BatchProgress struct {
	program *tea.Program
	stopped chan struct{}
}

type fileDoneMsg struct {
	outcome m.BatchOutcome
}

type batchDoneMsg struct{}

// NewBatchProgress starts a progress bar for total files on output. Done must
// be called to stop it.
func NewBatchProgress(ctx context.Context, output io.Writer, total int) *BatchProgress {
	p := &BatchProgress{
		program: tea.NewProgram(
			newBatchProgressModel(total),
			tea.WithContext(ctx),
			tea.WithOutput(output),
			tea.WithInput(nil),
			tea.WithoutSignalHandler(),
		),
		stopped: make(chan struct{}),
	}

	go func() {
		defer close(p.stopped)

		if _, err := p.program.Run(); err != nil {
			slog.Debug("batch progress stopped", "error", err)
		}
	}()

	return p
}

// FileDone advances the bar by one file. It is safe for concurrent use.
func (p *BatchProgress) FileDone(outcome m.BatchOutcome) {
	p.program.Send(fileDoneMsg{outcome: outcome})
}

// Done draws the final state and waits for the bar to release the terminal.
func (p *BatchProgress) Done() {
	p.program.Send(batchDoneMsg{})
	<-p.stopped
}

type batchProgressModel struct {
	bar    progress.Model
	total  int
	done   int
	failed int
	last   string
}

func newBatchProgressModel(total int) batchProgressModel {
	return batchProgressModel{
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxProgressWidth)),
		total: total,
	}
}

func (b batchProgressModel) Init() tea.Cmd {
	return nil
}

func (b batchProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fileDoneMsg:
		b.done++
		if msg.outcome.Err != nil {
			b.failed++
		}

		b.last = filepath.Base(string(msg.outcome.Source))

		return b, nil
	case batchDoneMsg:
		return b, tea.Quit
	case tea.WindowSizeMsg:
		b.bar.Width = max(10, min(msg.Width-4, maxProgressWidth))

		return b, nil
	}

	return b, nil
}

func (b batchProgressModel) View() string {
	percent := 0.0
	if b.total > 0 {
		percent = float64(b.done) / float64(b.total)
	}

	var view strings.Builder

	view.WriteString(b.bar.ViewAs(percent))
	fmt.Fprintf(&view, "\n%d/%d files", b.done, b.total)

	if b.failed > 0 {
		fmt.Fprintf(&view, ", %d failed", b.failed)
	}

	if b.last != "" {
		fmt.Fprintf(&view, " (last: %s)", b.last)
	}

	view.WriteString("\n")

	return view.String()
}
