package testutil

import (
	"io"
	"net/http"
	"strings"
	"sync"
)

// MockHTTPClient is a mock HTTP client for testing.
//
// It records every request and answers with DoFunc, or with an empty JSON
// object if DoFunc is nil. Safe for concurrent use.
//
// Example:
//
//	mock := &testutil.MockHTTPClient{
//	    DoFunc: func(req *http.Request) (*http.Response, error) {
//	        return testutil.MockResponse(200, testutil.CompletionResponse), nil
//	    },
//	}
//	client, _ := predictionguard.NewClient(cfg, predictionguard.WithHTTPClient(mock))
type MockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)

	mu       sync.Mutex
	requests []*http.Request
}

// Do records the request and runs DoFunc.
func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.DoFunc != nil {
		return m.DoFunc(req)
	}
	return MockResponse(http.StatusOK, "{}"), nil
}

// Requests returns the requests made so far.
func (m *MockHTTPClient) Requests() []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*http.Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// MockResponse creates an HTTP response with the given status and body.
func MockResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}
