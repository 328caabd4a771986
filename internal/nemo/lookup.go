package nemo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Services are the resolved base URLs of the remote services a retrieval needs.
type Services struct {
	RegisterService       string
	StudioService         string
	DownloadUploadService string
	StorageService        string // optional
}

const registeredServiceQuery = `query getRegisteredServiceOfCenter($name: String!, $version: String!, $centerId: String) {
  getRegisteredServiceOfCenter(name: $name, version: $version, centerId: $centerId) { url name version }
}`

var (
	trailingGraphQL = regexp.MustCompile(`(?i)/graphql$`)
	trailingStorage = regexp.MustCompile(`(?i)/storage$`)
	httpPrefix      = regexp.MustCompile(`(?i)^https?://`)
)

// Services resolves every service URL, skipping discovery for any the
// configuration names explicitly. Requests are issued one at a time.
func (c *Client) Services(ctx context.Context) (Services, error) {
	register := strings.TrimSuffix(c.cfg.RegisterServiceURL, "/")
	studio := strings.TrimSuffix(c.cfg.StudioGraphQLURL, "/")
	storage := strings.TrimSuffix(c.cfg.StorageBaseURL, "/")

	if register != "" && studio != "" && storage != "" {
		return Services{
			RegisterService:       register,
			StudioService:         trailingGraphQL.ReplaceAllString(studio, ""),
			DownloadUploadService: trailingStorage.ReplaceAllString(storage, ""),
			StorageService:        storage,
		}, nil
	}

	lookup := c.cfg.ResolveLookupURL()
	var svcs Services
	var err error

	if register != "" {
		svcs.RegisterService = register
	} else if svcs.RegisterService, err = c.resolveService(ctx, lookup, "RegisterService", "6.0", ""); err != nil {
		return Services{}, err
	}

	if studio != "" {
		svcs.StudioService = trailingGraphQL.ReplaceAllString(studio, "")
	} else if svcs.StudioService, err = c.resolveService(ctx, lookup, "NemoStudioService", "1.0", c.cfg.CenterID); err != nil {
		return Services{}, err
	}

	if storage != "" {
		svcs.DownloadUploadService = trailingStorage.ReplaceAllString(storage, "")
		svcs.StorageService = storage
		return svcs, nil
	}
	if svcs.DownloadUploadService, err = c.resolveService(ctx, lookup, "DownloadUploadService", "1.0", c.cfg.CenterID); err != nil {
		return Services{}, err
	}
	// StorageService is optional; storage falls back to DownloadUploadService/storage.
	if s, err := c.resolveService(ctx, lookup, "StorageService", "1.0", c.cfg.CenterID); err == nil {
		svcs.StorageService = s
	}
	return svcs, nil
}

// StorageBase returns the base URL the document query is posted under.
func (c *Client) StorageBase(svcs Services) string {
	if s := strings.TrimSuffix(c.cfg.StorageBaseURL, "/"); s != "" {
		return s
	}
	if s := strings.TrimSuffix(svcs.StorageService, "/"); s != "" && trailingStorage.MatchString(s) {
		return s
	}
	return strings.TrimSuffix(svcs.DownloadUploadService, "/") + "/storage"
}

// resolveService asks the lookup service for one service URL, trying the
// GraphQL endpoints first and then the REST fallbacks.
func (c *Client) resolveService(ctx context.Context, lookup, name, version, centerID string) (string, error) {
	start := time.Now()
	u, err := c.lookupService(ctx, lookup, name, version, centerID)
	event := CallEvent{
		Stage:     StageLookup,
		Target:    name,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if err != nil {
		event.ErrorCode = errorCode(err)
	}
	c.observer.OnCallComplete(event)
	return u, err
}

func (c *Client) lookupService(ctx context.Context, lookup, name, version, centerID string) (string, error) {
	base := strings.TrimSuffix(lookup, "/")
	graphqlEndpoint := base + "/graphql"
	if trailingGraphQL.MatchString(base) {
		graphqlEndpoint = base
	}

	var center any
	if centerID != "" {
		center = centerID
	}
	body := graphQLRequest{
		Query:     registeredServiceQuery,
		Variables: map[string]any{"name": name, "version": version, "centerId": center},
	}

	for _, ep := range []string{graphqlEndpoint, base + "/services/graphql", base} {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if u, ok := c.lookupGraphQL(ctx, ep, body); ok {
			return sanitizeServiceURL(u), nil
		}
	}

	escaped := url.QueryEscape(name)
	for _, ep := range []string{
		base + "/getServiceUrl?service=" + escaped,
		base + "/services/getServiceUrl?service=" + escaped,
	} {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if u, ok := c.lookupREST(ctx, ep); ok {
			return sanitizeServiceURL(u), nil
		}
	}
	return "", fmt.Errorf("%w for %s", ErrLookupFailed, name)
}

type registeredService struct {
	URL string `json:"url"`
}

func (c *Client) lookupGraphQL(ctx context.Context, endpoint string, body graphQLRequest) (string, bool) {
	data, err := json.Marshal(body)
	if err != nil {
		return "", false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()
	if !success(resp.StatusCode) {
		return "", false
	}

	var envelope struct {
		Data struct {
			Service json.RawMessage `json:"getRegisteredServiceOfCenter"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", false
	}

	raw := bytes.TrimSpace(envelope.Data.Service)
	if len(raw) == 0 {
		return "", false
	}
	var entry registeredService
	if raw[0] == '[' {
		var list []registeredService
		if json.Unmarshal(raw, &list) != nil || len(list) == 0 {
			return "", false
		}
		entry = list[0]
	} else if json.Unmarshal(raw, &entry) != nil {
		return "", false
	}
	return entry.URL, entry.URL != ""
}

func (c *Client) lookupREST(ctx context.Context, endpoint string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false
	}
	return parseServiceURL(strings.TrimSpace(string(raw)))
}

// parseServiceURL accepts a JSON body carrying url or data.url, a bare URL,
// or text with a line starting with http.
func parseServiceURL(text string) (string, bool) {
	var parsed struct {
		URL  string `json:"url"`
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		u := parsed.URL
		if u == "" {
			u = parsed.Data.URL
		}
		return u, u != "" && httpPrefix.MatchString(u)
	}
	if strings.HasPrefix(text, "http") {
		return text, true
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "http") {
			return line, true
		}
	}
	return "", false
}

// sanitizeServiceURL strips a trailing slash and a /graphql suffix so the
// result is a service base URL.
func sanitizeServiceURL(u string) string {
	return trailingGraphQL.ReplaceAllString(strings.TrimSuffix(u, "/"), "")
}
