package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pyrun/internal/ports"
	"pyrun/internal/shared"
	"pyrun/internal/types"
)

const (
	defaultIndexBaseURL = "https://pypi.org"
	defaultIndexTimeout = 5 * time.Second
)

// PyPIAdapter queries the package index JSON API. Only used as a fallback
// after an install failure and for the pip update check; name mapping stays
// offline.
type PyPIAdapter struct {
	BaseURL string
	Client  *http.Client
}

func NewPyPIAdapter(baseURL string) *PyPIAdapter {
	if baseURL == "" {
		baseURL = defaultIndexBaseURL
	}
	return &PyPIAdapter{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: defaultIndexTimeout},
	}
}

func (a *PyPIAdapter) Lookup(ctx context.Context, name string) (types.IndexProject, bool, error) {
	endpoint := fmt.Sprintf("%s/pypi/%s/json", a.BaseURL, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return types.IndexProject{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to build index request").
			WithCause(err)
	}
	resp, err := a.Client.Do(req)
	if err != nil {
		return types.IndexProject{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("package index request failed").
			WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return types.IndexProject{}, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return types.IndexProject{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("unexpected package index response").
			WithCause(shared.HTTPStatusError(resp.StatusCode, endpoint))
	}

	var payload struct {
		Info struct {
			Name    string `json:"name"`
			Version string `json:"version"`
			Summary string `json:"summary"`
		} `json:"info"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return types.IndexProject{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to decode package index response").
			WithCause(err)
	}
	return types.IndexProject{
		Name:    payload.Info.Name,
		Version: payload.Info.Version,
		Summary: payload.Info.Summary,
	}, true, nil
}

var _ ports.PackageIndexPort = (*PyPIAdapter)(nil)
