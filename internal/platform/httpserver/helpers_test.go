package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	electionservice "electorate/contexts/governance/election-service"
	accesscontrolservice "electorate/contexts/identity-access/access-control-service"
)

// newTestServer wires both modules in memory, mirroring the bootstrap wiring:
// the access module's check use case is the election module's gate.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	access := accesscontrolservice.NewInMemoryModule([]string{"admin-1"}, nil)
	election := electionservice.NewInMemoryModule(access.Checks, nil)
	server := New(election, access, nil, "")
	ts := httptest.NewServer(server.mux)
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path, caller string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if caller != "" {
		req.Header.Set("X-User-Id", caller)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func errorCode(body map[string]any) string {
	code, _ := body["code"].(string)
	return code
}
