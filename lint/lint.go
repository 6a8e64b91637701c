package lint

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/gnoswap-labs/rulecat/internal/eslint"
	tt "github.com/gnoswap-labs/rulecat/internal/types"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// ResultLoader reads the raw engine output stored in one file.
type ResultLoader interface {
	Load(path string) ([]tt.RawFileResult, error)
}

// LoaderFunc adapts a function to ResultLoader.
type LoaderFunc func(path string) ([]tt.RawFileResult, error)

func (f LoaderFunc) Load(path string) ([]tt.RawFileResult, error) { return f(path) }

// ESLintLoader loads results written by `eslint --format json`.
var ESLintLoader ResultLoader = LoaderFunc(eslint.LoadResults)

// ProgressOutput receives the progress bar drawn while loading directories.
var ProgressOutput io.Writer = os.Stderr

// ProcessFiles loads the engine output of every path, in argument order.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	loader ResultLoader,
	paths []string,
) ([]tt.RawFileResult, error) {
	var all []tt.RawFileResult
	for _, path := range paths {
		results, err := ProcessPath(ctx, logger, loader, path)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return all, err
		}
		all = append(all, results...)
	}
	return all, nil
}

// ProcessPath loads a single result file, or every result file below a
// directory. Directory entries are loaded concurrently but returned in
// lexical file order. Files that fail to load are logged and skipped.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	loader ResultLoader,
	path string,
) ([]tt.RawFileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}
	if !info.IsDir() {
		return loader.Load(path)
	}

	files, err := collectResultFiles(path)
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", path, err)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(ProgressOutput),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	// per-file slots keep the output order independent of completion order
	loaded := make([][]tt.RawFileResult, len(files))
	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup

dispatch:
	for i, fp := range files {
		select {
		case <-ctx.Done():
			break dispatch
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(i int, fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			results, err := loader.Load(fp)
			if err != nil {
				if logger != nil {
					logger.Error("Error loading results", zap.String("file", fp), zap.Error(err))
				}
			} else {
				loaded[i] = results
			}
			_ = bar.Add(1)
		}(i, fp)
	}
	wg.Wait()
	_ = bar.Finish()

	results := make([]tt.RawFileResult, 0, len(files))
	for _, r := range loaded {
		results = append(results, r...)
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func collectResultFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasDesiredExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

var desiredExtensions = map[string]bool{
	".json": true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}
