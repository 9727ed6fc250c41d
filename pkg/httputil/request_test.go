package httputil

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{
			name:        "valid JSON",
			body:        `{"name": "test"}`,
			expectError: false,
		},
		{
			name:        "invalid JSON",
			body:        `{invalid}`,
			expectError: true,
		},
		{
			name:        "empty body",
			body:        ``,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/test", bytes.NewBufferString(tt.body))
			var dest map[string]string

			err := ParseJSON(req, &dest)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "test", dest["name"])
			}
		})
	}
}

func TestParseJSON_UnknownField(t *testing.T) {
	var dest struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest("POST", "/test", strings.NewReader(`{"name":"a","extra":1}`))

	err := ParseJSON(req, &dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extra")
}

func TestParseJSON_TooLarge(t *testing.T) {
	var dest map[string]string
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/test", strings.NewReader(`{"name":"`+strings.Repeat("a", 100)+`"}`))
	req.Body = http.MaxBytesReader(rec, req.Body, 16)

	err := ParseJSON(req, &dest)
	require.Error(t, err)
	assert.Equal(t, "request body exceeds 16 bytes", err.Error())
}

func TestParseJSONOrError(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/test", bytes.NewBufferString(`{invalid}`))
	var dest map[string]string

	ok := ParseJSONOrError(w, req, &dest)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid JSON")
}

func TestReadBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/test", strings.NewReader("a { color: red; }"))
	data, err := ReadBody(req)
	require.NoError(t, err)
	assert.Equal(t, "a { color: red; }", string(data))

	req = httptest.NewRequest("POST", "/test", strings.NewReader(strings.Repeat("a", 32)))
	req.Body = http.MaxBytesReader(httptest.NewRecorder(), req.Body, 8)
	_, err = ReadBody(req)
	assert.EqualError(t, err, "request body exceeds 8 bytes")
}

func TestMediaType(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"application/json", "application/json"},
		{"text/css; charset=utf-8", "text/css"},
		{"not a media type;;", "not a media type;;"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/test", nil)
			if tt.header != "" {
				req.Header.Set("Content-Type", tt.header)
			}
			assert.Equal(t, tt.want, MediaType(req))
		})
	}
}

func TestParsePathString(t *testing.T) {
	req := httptest.NewRequest("GET", "/rules/ids", nil)
	req = mux.SetURLVars(req, map[string]string{"name": "ids"})

	val, err := ParsePathString(req, "name")
	assert.NoError(t, err)
	assert.Equal(t, "ids", val)

	_, err = ParsePathString(req, "missing")
	assert.Error(t, err)
}

func TestParsePathStringOrError(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/rules/", nil)

	_, ok := ParsePathStringOrError(w, req, "name")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest("GET", "/test?max-error=5&bad=x", nil)

	val, err := ParseQueryInt(req, "max-error", -1)
	assert.NoError(t, err)
	assert.Equal(t, 5, val)

	val, err = ParseQueryInt(req, "missing", -1)
	assert.NoError(t, err)
	assert.Equal(t, -1, val)

	_, err = ParseQueryInt(req, "bad", 0)
	assert.Error(t, err)
}

func TestParseQueryString(t *testing.T) {
	req := httptest.NewRequest("GET", "/test?format=text", nil)

	assert.Equal(t, "text", ParseQueryString(req, "format", "json"))
	assert.Equal(t, "json", ParseQueryString(req, "missing", "json"))
}

func BenchmarkParseJSON(b *testing.B) {
	body := `{"content":"a { color: red; }","path":"a.css"}`
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest("POST", "/test", strings.NewReader(body))
		var dest map[string]string
		ParseJSON(req, &dest)
	}
}
