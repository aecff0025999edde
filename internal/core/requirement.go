package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"

	"pyrun/internal/types"
)

// specifierTokens is the ordered list of version operators tried during
// parsing. Longer tokens must precede shorter ones to avoid false matches
// (e.g. ">=" before ">").
var specifierTokens = []string{"===", "==", "!=", "~=", ">=", "<=", ">", "<"}

// ParseRequirementLine splits one requirements-file line into a Requirement.
// Inline comments, environment markers and extras are stripped; the version
// specifier is validated as PEP 440 but only carried for reporting, since
// resolution existence-checks the name. ok=false means the line holds no
// requirement (blank or comment).
func ParseRequirementLine(raw string, source string) (types.Requirement, bool, error) {
	line := strings.TrimSpace(raw)
	if idx := strings.Index(line, "#"); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	if line == "" {
		return types.Requirement{}, false, nil
	}

	name := line
	specifier := ""
	for _, token := range specifierTokens {
		if idx := strings.Index(line, token); idx >= 0 {
			name = strings.TrimSpace(line[:idx])
			specifier = strings.TrimSpace(line[idx:])
			break
		}
	}
	if idx := strings.Index(name, "["); idx >= 0 {
		name = strings.TrimSpace(name[:idx])
	}
	if name == "" {
		return types.Requirement{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid requirement: %s", strings.TrimSpace(raw)))
	}
	if specifier != "" {
		if _, err := pep440.NewSpecifiers(specifier); err != nil {
			return types.Requirement{}, false, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid version specifier: %s", strings.TrimSpace(raw))).
				WithCause(err)
		}
	}

	return types.Requirement{
		Name:      name,
		Specifier: specifier,
		Source:    source,
	}, true, nil
}
