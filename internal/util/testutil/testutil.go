package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// GraphQLRequest is a decoded GraphQL POST body, for asserting on queries
// and variables sent by the Wave client.
type GraphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func DecodeGraphQLRequest(t *testing.T, r *http.Request) GraphQLRequest {
	t.Helper()

	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)

	var req GraphQLRequest
	require.NoError(t, json.Unmarshal(body, &req), "request body should be a GraphQL request")

	return req
}

// AssertBearerAuth verifies the Authorization header carries the expected
// bearer token.
func AssertBearerAuth(t *testing.T, r *http.Request, token string) {
	t.Helper()

	require.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
}

func NewHTTPTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server
}

func LoadTestDataFile(t *testing.T, filename string) []byte {
	t.Helper()

	path := filepath.Clean(filepath.Join("testdata", "api", filename))

	b, err := os.ReadFile(path)
	require.NoError(t, err, "test data file %s must exist", filename)

	return b
}

// ServeJSONTestDataHandler responds with the given status code and the
// contents of a testdata/api fixture.
func ServeJSONTestDataHandler(t *testing.T, statusCode int, filename string) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)

		data := LoadTestDataFile(t, filename)
		_, err := w.Write(data)
		assert.NoError(t, err, "failed to write test response")
	}
}
