package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"shroud.dev/pkg/shroud/internal/adapter"
	"shroud.dev/pkg/shroud/internal/controller"
	m "shroud.dev/pkg/shroud/internal/model"
)

const defaultFileMode os.FileMode = 0o644

// RunArgs contains the arguments for obfuscating one file.
type RunArgs struct {
	Path     m.Path
	Language m.Language
	// Output is written atomically; empty prints the code to standard output.
	Output  m.Path
	Options m.Options
	Verbose bool
	Diff    bool
}

// ListArgs contains the arguments for showing the planned renames of one file.
type ListArgs struct {
	Path     m.Path
	Language m.Language
	Options  m.Options
}

// BatchArgs contains the arguments for obfuscating independent files.
type BatchArgs struct {
	Paths    []m.Path
	Language m.Language
	OutDir   m.Path
	Options  m.Options
	Parallel int
	Verbose  bool
	Progress BatchProgress
}

// BatchProgress observes a batch as it runs. FileDone is called concurrently,
// once per file; Done is called once after the last file.
type BatchProgress interface {
	FileDone(outcome m.BatchOutcome)
	Done()
}

// Workflow is the file-level orchestration behind the CLI commands.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	List(ctx context.Context, args ListArgs) error
	Batch(ctx context.Context, args BatchArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	controller.UI
	Obfuscator
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(fsAdapter adapter.SourceFSAdapter, ui controller.UI, obfuscator Obfuscator) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		UI:              ui,
		Obfuscator:      obfuscator,
	}
}

func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	source, err := w.readSource(args.Path, args.Language)
	if err != nil {
		return err
	}

	result, err := w.Obfuscate(ctx, source, args.Options)
	if err != nil {
		slog.Error("obfuscation failed", "path", args.Path, "error", err)
		return err
	}

	if args.Verbose {
		w.DisplayMapping(ctx, result.Mapping)
	}

	if args.Diff {
		if err := w.DisplayDiff(ctx, args.Path, source.Content, result.Code); err != nil {
			return fmt.Errorf("display diff: %w", err)
		}
	}

	if args.Output != "" {
		return w.writeOutput(args.Path, args.Output, result.Code)
	}

	if args.Diff {
		return nil
	}

	if err := w.DisplayCode(ctx, result.Code); err != nil {
		return fmt.Errorf("display code: %w", err)
	}

	return nil
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	source, err := w.readSource(args.Path, args.Language)
	if err != nil {
		return err
	}

	plan, err := w.Plan(ctx, source, args.Options)
	if err != nil {
		slog.Error("planning failed", "path", args.Path, "error", err)
		return err
	}

	if err := w.DisplayPlan(ctx, plan); err != nil {
		return fmt.Errorf("display plan: %w", err)
	}

	return nil
}

// Batch obfuscates each file on its own; no names are shared between files.
// A failing file produces no output and does not stop the others.
func (w *workflow) Batch(ctx context.Context, args BatchArgs) error {
	if args.OutDir == "" {
		return fmt.Errorf("batch needs an output directory")
	}

	outputs, err := w.batchOutputs(args)
	if err != nil {
		return err
	}

	if err := w.MkdirAll(args.OutDir); err != nil {
		return &m.FileIOError{Op: "create", Path: args.OutDir, Err: err}
	}

	parallel := args.Parallel
	if parallel < 1 {
		parallel = 1
	}

	outcomes := make([]m.BatchOutcome, len(args.Paths))

	var mappingMu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(parallel)

	for i, path := range args.Paths {
		group.Go(func() error {
			outcome := m.BatchOutcome{Source: path, Output: outputs[i]}

			result, err := w.batchOne(groupCtx, path, outputs[i], args)
			if err != nil {
				slog.Error("batch file failed", "path", path, "error", err)
				outcome.Err = err
			} else {
				outcome.Renamed = result.Mapping.Len()

				if args.Verbose {
					mappingMu.Lock()
					w.DisplayMapping(groupCtx, result.Mapping)
					mappingMu.Unlock()
				}
			}

			outcomes[i] = outcome

			if args.Progress != nil {
				args.Progress.FileDone(outcome)
			}

			// Only cancellation stops the batch.
			return groupCtx.Err()
		})
	}

	err = group.Wait()

	if args.Progress != nil {
		args.Progress.Done()
	}

	if err != nil {
		return err
	}

	w.DisplayBatchSummary(ctx, outcomes)

	var errs []error

	for _, outcome := range outcomes {
		if outcome.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", outcome.Source, outcome.Err))
		}
	}

	return errors.Join(errs...)
}

// batchOutputs maps every input to <out-dir>/<base name>, rejecting base
// names that would overwrite each other.
func (w *workflow) batchOutputs(args BatchArgs) ([]m.Path, error) {
	seen := make(map[string]m.Path, len(args.Paths))
	outputs := make([]m.Path, len(args.Paths))

	for i, path := range args.Paths {
		base := filepath.Base(string(path))
		if previous, ok := seen[base]; ok {
			return nil, fmt.Errorf("batch inputs %s and %s share the output name %s", previous, path, base)
		}

		seen[base] = path
		outputs[i] = w.JoinPath(string(args.OutDir), base)
	}

	return outputs, nil
}

func (w *workflow) batchOne(ctx context.Context, path, output m.Path, args BatchArgs) (m.Result, error) {
	source, err := w.readSource(path, args.Language)
	if err != nil {
		return m.Result{}, err
	}

	result, err := w.Obfuscate(ctx, source, args.Options)
	if err != nil {
		return m.Result{}, err
	}

	if err := w.writeOutput(path, output, result.Code); err != nil {
		return m.Result{}, err
	}

	return result, nil
}

func (w *workflow) readSource(path m.Path, language m.Language) (m.Source, error) {
	content, err := w.ReadFile(path)
	if err != nil {
		return m.Source{}, &m.FileIOError{Op: "read", Path: path, Err: err}
	}

	return m.Source{Path: path, Language: language, Content: content}, nil
}

// writeOutput writes code to output, keeping the permission bits of input.
func (w *workflow) writeOutput(input, output m.Path, code []byte) error {
	perm := defaultFileMode
	if info, err := w.FileInfo(input); err == nil {
		perm = info.Mode().Perm()
	}

	if err := w.WriteFileAtomic(output, code, perm); err != nil {
		return &m.FileIOError{Op: "write", Path: output, Err: err}
	}

	slog.Info("wrote obfuscated source", "path", output, "bytes", len(code))

	return nil
}
