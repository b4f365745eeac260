package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"finhealth/internal/model"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const maxResponseBytes = 1 << 20

// HTTPOptions configures an HTTPNarrator
type HTTPOptions struct {
	Endpoint     string
	Token        string
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// HTTPNarrator posts the narrative input to a text-generation endpoint that answers
// with the section object.
type HTTPNarrator struct {
	endpoint string
	token    string
	client   *retryablehttp.Client
	log      zerolog.Logger
}

func NewHTTPNarrator(opts HTTPOptions, log zerolog.Logger) *HTTPNarrator {
	client := retryablehttp.NewClient()
	if opts.Timeout > 0 {
		client.HTTPClient.Timeout = opts.Timeout
	}
	client.RetryMax = opts.MaxRetries
	if opts.RetryWaitMin > 0 {
		client.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		client.RetryWaitMax = opts.RetryWaitMax
	}
	client.Logger = &retryLogger{log: log}
	// Return the last response instead of a generic error once retries are exhausted
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &HTTPNarrator{
		endpoint: opts.Endpoint,
		token:    opts.Token,
		client:   client,
		log:      log.With().Str("narrator", "http").Logger(),
	}
}

func (n *HTTPNarrator) Narrate(ctx context.Context, input model.NarrativeInput) (model.Narrative, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, errors.Wrap(err, "encode narrative input")
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build narrative request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		n.log.Warn().Err(err).Str("workspace_id", input.WorkspaceID).Msg("narrative request failed")
		return nil, errors.Wrapf(ErrNarrativeUnavailable, "post %s: %v", n.endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrapf(ErrNarrativeUnavailable, "read response: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		n.log.Warn().Int("status", resp.StatusCode).Str("workspace_id", input.WorkspaceID).Msg("narrative service refused request")
		return nil, errors.Wrap(ErrNarrativeUnavailable, fmt.Sprintf("status %d", resp.StatusCode))
	}
	return Parse(string(raw))
}

// retryLogger adapts zerolog to retryablehttp.LeveledLogger
type retryLogger struct {
	log zerolog.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Error().Fields(keysAndValues).Msg(msg)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warn().Fields(keysAndValues).Msg(msg)
}
