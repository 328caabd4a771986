package nemo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

var (
	simsePrefix  = regexp.MustCompile(`(?i)^Simse\s+`)
	authHeaderEl = regexp.MustCompile(`(?i)<authHeader>([^<]+)</authHeader>`)
)

// AuthHeader returns the Simse authorization header for the document query.
// A configured header is used as is, gaining the "Simse " prefix when it lacks
// one. Otherwise user and password are exchanged against RegisterService.
func (c *Client) AuthHeader(ctx context.Context, svcs Services) (string, error) {
	if h := strings.TrimSpace(c.cfg.AuthHeader); h != "" {
		if simsePrefix.MatchString(h) {
			return h, nil
		}
		return "Simse " + h, nil
	}

	start := time.Now()
	token, err := c.exchangeCredentials(ctx, svcs)
	event := CallEvent{
		Stage:     StageAuth,
		Target:    "RegisterService",
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if err != nil {
		event.ErrorCode = errorCode(err)
	}
	c.observer.OnCallComplete(event)
	return token, err
}

// exchangeCredentials runs the basic-auth exchange. In basic mode a failure
// points at the user credentials; in auto mode it asks for a token instead.
func (c *Client) exchangeCredentials(ctx context.Context, svcs Services) (string, error) {
	basic := strings.EqualFold(strings.TrimSpace(c.cfg.AuthMode), AuthBasic)
	if c.cfg.User == "" || c.cfg.Password == "" {
		if basic {
			return "", fmt.Errorf("%w: basic auth needs NEMO_USER_ID and NEMO_USER_PASSWORD", ErrAuthFailed)
		}
		return "", fmt.Errorf("%w: no auth token and no user credentials configured", ErrAuthFailed)
	}

	base := strings.TrimSuffix(c.cfg.RegisterServiceURL, "/")
	if base == "" {
		base = strings.TrimSuffix(svcs.RegisterService, "/")
	}
	urls := []string{
		base + "/authentication/authenticate?loginCenters=true&remember=true",
		base + "/authentication/authenticate?remember=true",
		base + "/authentication/authenticate",
	}

	var lastErr error
	for _, u := range urls {
		for _, withCenter := range []bool{true, false} {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			if withCenter && c.cfg.CenterID == "" {
				continue
			}
			token, err := c.authenticateOnce(ctx, u, withCenter)
			if err == nil {
				return token, nil
			}
			lastErr = err
		}
	}
	if basic {
		return "", fmt.Errorf("%w: basic auth failed, check NEMO_USER_ID and NEMO_USER_PASSWORD: %v", ErrAuthFailed, lastErr)
	}
	return "", fmt.Errorf("%w: credential exchange failed, provide an auth token: %v", ErrAuthFailed, lastErr)
}

func (c *Client) authenticateOnce(ctx context.Context, url string, withCenter bool) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	creds := base64.StdEncoding.EncodeToString([]byte(c.cfg.User + ":" + c.cfg.Password))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+creds)
	if withCenter {
		req.Header.Set("CenterID", c.cfg.CenterID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if !success(resp.StatusCode) {
		return "", fmt.Errorf("authenticate returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if token, ok := parseAuthToken(string(body), resp.Header.Get("Authorization")); ok {
		return token, nil
	}
	return "", fmt.Errorf("missing Simse header in auth response")
}

// parseAuthToken finds the Simse header in an authentication response: an
// <authHeader> element, a bare "Simse ..." body, a JSON authHeader or token
// field (top level or under data), or the Authorization response header.
func parseAuthToken(body, header string) (string, bool) {
	if m := authHeaderEl.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	text := strings.TrimSpace(body)
	if simsePrefix.MatchString(text) {
		return text, true
	}

	type tokenFields struct {
		AuthHeader string `json:"authHeader"`
		Token      string `json:"token"`
	}
	var parsed struct {
		tokenFields
		Data tokenFields `json:"data"`
	}
	if json.Unmarshal([]byte(text), &parsed) == nil {
		for _, candidate := range []string{parsed.AuthHeader, parsed.Token, parsed.Data.AuthHeader, parsed.Data.Token} {
			if simsePrefix.MatchString(candidate) {
				return strings.TrimSpace(candidate), true
			}
		}
	}

	if h := strings.TrimSpace(header); simsePrefix.MatchString(h) {
		return h, true
	}
	return "", false
}
