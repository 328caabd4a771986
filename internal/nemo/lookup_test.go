package nemo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServiceURL(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"json url", `{"url":"https://svc/a"}`, "https://svc/a", true},
		{"json data url", `{"data":{"url":"http://svc/b"}}`, "http://svc/b", true},
		{"json non-http", `{"url":"ftp://svc"}`, "", false},
		{"bare url", "https://svc/c", "https://svc/c", true},
		{"url on later line", "service:\n  https://svc/d\n", "https://svc/d", true},
		{"no url", "not found", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseServiceURL(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSanitizeServiceURL(t *testing.T) {
	assert.Equal(t, "https://svc", sanitizeServiceURL("https://svc/"))
	assert.Equal(t, "https://svc", sanitizeServiceURL("https://svc/GraphQL"))
	assert.Equal(t, "https://svc/services", sanitizeServiceURL("https://svc/services/graphql/"))
}

func TestResolveService_RESTFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/lookup/services/getServiceUrl", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "NemoStudioService", r.URL.Query().Get("service"))
		w.Write([]byte("https://studio.example/graphql\n"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(DefaultConfig(), nil)
	got, err := client.resolveService(context.Background(), srv.URL+"/lookup/", "NemoStudioService", "1.0", "c1")
	require.NoError(t, err)
	assert.Equal(t, "https://studio.example", got)
}

func TestResolveService_GraphQLObjectReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/graphql" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"data":{"getRegisteredServiceOfCenter":{"url":"https://reg.example/"}}}`))
	}))
	defer srv.Close()

	client := NewClient(DefaultConfig(), nil)
	got, err := client.resolveService(context.Background(), srv.URL+"/graphql", "RegisterService", "6.0", "")
	require.NoError(t, err)
	assert.Equal(t, "https://reg.example", got)
}
