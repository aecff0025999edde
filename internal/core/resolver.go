package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pyrun/internal/types"
)

// SourceResolver drives the extractor and locator over the entry script and,
// transitively, every locally-resolved import, producing one flattened set
// of externally-sourced module names.
type SourceResolver struct {
	Extractor *ImportExtractor
	Locator   LocalLocator
}

// ResolutionResult carries the externally-sourced modules in first-seen
// order plus any non-fatal per-file parse failures.
type ResolutionResult struct {
	Externals     []string
	ParseFailures []types.ParseFailure
	Visited       []string
}

func NewSourceResolver(extractor *ImportExtractor, locator LocalLocator) SourceResolver {
	return SourceResolver{Extractor: extractor, Locator: locator}
}

// Resolve scans entry and every local file it transitively imports, each at
// most once. An unreadable entry script is fatal; anything after that is
// collected and reported, never aborting the run. Termination is guaranteed
// because the visited set only grows, so import cycles between local files
// are safe.
func (r SourceResolver) Resolve(ctx context.Context, entry string) (ResolutionResult, error) {
	abs, err := filepath.Abs(entry)
	if err != nil {
		return ResolutionResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid entry path: %s", entry)).
			WithCause(err)
	}
	if info, statErr := os.Stat(abs); statErr != nil || info.IsDir() {
		return ResolutionResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("entry script not found: %s", entry)).
			WithCause(statErr)
	}

	result := ResolutionResult{}
	visited := map[string]struct{}{}
	external := map[string]struct{}{}
	queue := []string{abs}

	for len(queue) > 0 {
		path := filepath.Clean(queue[0])
		queue = queue[1:]
		if _, done := visited[path]; done {
			continue
		}
		visited[path] = struct{}{}
		result.Visited = append(result.Visited, path)

		source, readErr := os.ReadFile(path)
		if readErr != nil {
			if path == abs {
				return ResolutionResult{}, errbuilder.New().
					WithCode(errbuilder.CodeNotFound).
					WithMsg(fmt.Sprintf("entry script not readable: %s", entry)).
					WithCause(readErr)
			}
			result.ParseFailures = append(result.ParseFailures, types.ParseFailure{
				Path:   path,
				Reason: readErr.Error(),
			})
			continue
		}

		unit := types.SourceUnit{Path: path, Dir: filepath.Dir(path)}
		records, extractErr := r.Extractor.Extract(ctx, unit, source)
		if extractErr != nil {
			result.ParseFailures = append(result.ParseFailures, types.ParseFailure{
				Path:   path,
				Reason: extractErr.Error(),
			})
		}

		for _, record := range records {
			if record.Kind == types.ImportKindRelative {
				if local, ok := r.Locator.Locate(record.Module, unit.Dir); ok {
					queue = append(queue, local)
				}
				continue
			}
			if local, ok := r.Locator.Locate(record.Module, unit.Dir); ok {
				queue = append(queue, local)
				continue
			}
			if _, dup := external[record.Module]; dup {
				continue
			}
			external[record.Module] = struct{}{}
			result.Externals = append(result.Externals, record.Module)
		}
	}

	log.Ctx(ctx).Debug().
		Int("files", len(result.Visited)).
		Int("externals", len(result.Externals)).
		Int("parse_failures", len(result.ParseFailures)).
		Msg("source resolution completed")
	return result, nil
}
