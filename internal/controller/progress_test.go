package controller

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "shroud.dev/pkg/shroud/internal/model"
)

func TestBatchProgressModel_CountsFiles(t *testing.T) {
	var model tea.Model = newBatchProgressModel(3)

	assert.Contains(t, model.View(), "0/3 files\n")

	model, cmd := model.Update(fileDoneMsg{outcome: m.BatchOutcome{Source: "src/app.py", Renamed: 4}})
	assert.Nil(t, cmd)

	model, _ = model.Update(fileDoneMsg{outcome: m.BatchOutcome{Source: "src/bad.py", Err: errors.New("parse error")}})

	view := model.View()
	assert.Contains(t, view, "2/3 files, 1 failed (last: bad.py)\n")
}

func TestBatchProgressModel_QuitsWhenDone(t *testing.T) {
	model := newBatchProgressModel(1)

	_, cmd := model.Update(batchDoneMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestBatchProgressModel_FollowsWindowWidth(t *testing.T) {
	updated, _ := newBatchProgressModel(1).Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	assert.Equal(t, 26, updated.(batchProgressModel).bar.Width)

	updated, _ = updated.Update(tea.WindowSizeMsg{Width: 200, Height: 10})
	assert.Equal(t, maxProgressWidth, updated.(batchProgressModel).bar.Width)
}

func TestBatchProgress_RunsUntilDone(t *testing.T) {
	var out bytes.Buffer

	progress := NewBatchProgress(context.Background(), &out, 2)
	progress.FileDone(m.BatchOutcome{Source: "a.py"})
	progress.FileDone(m.BatchOutcome{Source: "b.go"})
	progress.Done()

	assert.Contains(t, out.String(), "2/2 files")
}
