package nemo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/orthoplan/internal/domain"
)

const documentAlignersQuery = `query documentAligners($id: UUID, $version: Int) {
  documentAligners(id: $id, version: $version) {
    id
    setupName
    upperEndIn
    lowerEndIn
    upperStartFrom
    lowerStartFrom
    version
    maxAligners
    manAligners
    attachCount
    bracketCount
    maxIpr
    manIpr
    attachList { name tooth beginTime endTime attachGuid }
    precisionCutList { name tooth beginTime endTime isMaxTooth isButton isLingual }
    iprList { tooth step mesialIpr distalIpr }
    extractList { tooth step }
    positionersList { upper lower }
  }
}`

// Fetcher retrieves a plan document from the remote store.
type Fetcher interface {
	FetchDocument(ctx context.Context, documentID string, version *int) (*domain.Plan, error)
}

// Client resolves services, acquires credentials and runs the document query.
// Each FetchDocument issues its requests sequentially.
type Client struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a Client for cfg.
func NewClient(cfg Config, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config {
	return c.cfg
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type documentResponse struct {
	Data *struct {
		DocumentAligners *domain.Plan `json:"documentAligners"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// FetchDocument retrieves one plan document by id and optional version. The
// returned plan carries the remote 1-based step numbering unchanged.
func (c *Client) FetchDocument(ctx context.Context, documentID string, version *int) (*domain.Plan, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, fmt.Errorf("document id is required")
	}
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	svcs, err := c.Services(ctx)
	if err != nil {
		return nil, c.contextError(ctx, err)
	}
	auth, err := c.AuthHeader(ctx, svcs)
	if err != nil {
		return nil, c.contextError(ctx, err)
	}

	start := time.Now()
	plan, err := c.queryDocument(ctx, c.StorageBase(svcs)+"/graphql", auth, documentID, version)
	event := CallEvent{
		Stage:     StageQuery,
		Target:    "documentAligners",
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if err != nil {
		event.ErrorCode = errorCode(err)
	}
	c.observer.OnCallComplete(event)
	if err != nil {
		return nil, c.contextError(ctx, err)
	}
	return plan, nil
}

func (c *Client) queryDocument(ctx context.Context, endpoint, auth, documentID string, version *int) (*domain.Plan, error) {
	var v any
	if version != nil {
		v = *version
	}
	data, err := json.Marshal(graphQLRequest{
		Query:     documentAlignersQuery,
		Variables: map[string]any{"id": documentID, "version": v},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", auth)
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.CenterID != "" {
		req.Header.Set("CenterID", c.cfg.CenterID)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying document: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if !success(resp.StatusCode) {
		return nil, fmt.Errorf("%w %d: %s", ErrRemoteStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out documentResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrGraphQL, out.Errors[0].Message)
	}
	if out.Data == nil || out.Data.DocumentAligners == nil {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, documentID)
	}
	plan := out.Data.DocumentAligners
	plan.Normalize()
	return plan, nil
}

// contextError reports a deadline as a timeout rather than whatever the
// in-flight request failed with.
func (c *Client) contextError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("remote retrieval timed out after %s: %w", c.cfg.Timeout(), context.DeadlineExceeded)
	}
	return err
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrLookupFailed):
		return "lookup_failed"
	case errors.Is(err, ErrAuthFailed):
		return "auth_failed"
	case errors.Is(err, ErrRemoteStatus):
		return "remote_status"
	case errors.Is(err, ErrGraphQL):
		return "graphql"
	case errors.Is(err, ErrDocumentNotFound):
		return "not_found"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "unknown"
	}
}

// success reports whether code is in the 2xx range.
func success(code int) bool {
	return code >= 200 && code <= 299
}
