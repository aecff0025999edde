package adapters

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pyrun/internal/core"
	"pyrun/internal/ports"
	"pyrun/internal/types"
)

// RequirementsFileAdapter parses requirements.txt files: one specifier per
// line, `#` comments and blank lines ignored, `-r` includes followed
// relative to the including file. Other pip options are skipped.
type RequirementsFileAdapter struct{}

func NewRequirementsFileAdapter() RequirementsFileAdapter {
	return RequirementsFileAdapter{}
}

// Load returns the requirements of path. A missing file yields an empty
// list, since the requirements pass is optional input.
func (a RequirementsFileAdapter) Load(path string) ([]types.Requirement, error) {
	return a.load(path, map[string]struct{}{})
}

func (a RequirementsFileAdapter) load(path string, visited map[string]struct{}) ([]types.Requirement, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid requirements path").
			WithCause(err)
	}
	if _, done := visited[abs]; done {
		return nil, nil
	}
	visited[abs] = struct{}{}

	file, err := os.Open(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to open requirements file").
			WithCause(err)
	}
	defer file.Close()

	var requirements []types.Requirement
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "-r ") || strings.HasPrefix(line, "--requirement ") {
			include := strings.TrimSpace(strings.SplitN(line, " ", 2)[1])
			included, err := a.load(filepath.Join(filepath.Dir(abs), include), visited)
			if err != nil {
				return nil, err
			}
			requirements = append(requirements, included...)
			continue
		}
		if strings.HasPrefix(line, "-") {
			// pip options (-e, --index-url, ...) are not requirements.
			continue
		}
		req, ok, err := core.ParseRequirementLine(line, abs)
		if err != nil {
			log.Warn().Str("file", abs).Str("line", line).Msg("skipping unparseable requirement")
			continue
		}
		if ok {
			requirements = append(requirements, req)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read requirements file").
			WithCause(err)
	}
	return requirements, nil
}

var _ ports.RequirementsPort = RequirementsFileAdapter{}
