// Package notice tells a running desktop application that the selected runtime version changed.
package notice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nvmd-desktop/nvmd/internal/dispatch"
	"github.com/nvmd-desktop/nvmd/internal/messages"
)

// DefaultURL is the desktop application's local notice endpoint.
const DefaultURL = "http://127.0.0.1:53333/notice"

// Timeout bounds a single notice request.
const Timeout = 500 * time.Millisecond

// Source identifies what changed.
type Source string

// Notice sources.
const (
	SourceCurrent Source = "current"
	SourceProject Source = "project"
)

// Notice is the request body.
type Notice struct {
	Source  Source `json:"source"`
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

// Current reports a new global default version.
func Current(version string) Notice {
	return Notice{Source: SourceCurrent, Version: version}
}

// Project reports a project pinned to version.
func Project(name string, version string) Notice {
	return Notice{Source: SourceProject, Name: name, Version: version}
}

// Client posts notices.
type Client struct {
	URL  string
	HTTP *http.Client
}

// NewClient returns a client for the default endpoint with a short timeout.
func NewClient() Client {
	return Client{URL: DefaultURL, HTTP: &http.Client{Timeout: Timeout}}
}

// Send posts n and reports transport or status failures.
func (c Client) Send(ctx context.Context, n Notice) error {
	body, err := json.Marshal(n)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf(messages.NoticeStatusFmt, resp.Status)
	}
	return nil
}

// Post sends n in the background and does not report failures. It returns once the request
// finished or the timeout elapsed, whichever comes first.
func (c Client) Post(n Notice, logger *log.Logger) {
	dispatch.Background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), Timeout)
		defer cancel()
		if err := c.Send(ctx, n); err != nil && logger != nil {
			logger.Debug(messages.LogNoticeFailed, "err", err)
		}
	}, Timeout)
}
