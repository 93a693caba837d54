package httpserver

import (
	"net/http"
	"testing"
)

func TestCheckAdminEndpointIsPublic(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doRequest(t, ts, http.MethodGet, "/api/access/v1/admins/admin-1", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["administrator"] != true {
		t.Fatalf("seeded administrator not reported: %v", body)
	}

	resp, body = doRequest(t, ts, http.MethodGet, "/api/access/v1/admins/stranger", "", nil)
	if resp.StatusCode != http.StatusOK || body["administrator"] != false {
		t.Fatalf("unknown address reported as administrator: %d %v", resp.StatusCode, body)
	}
}

func TestGrantAndRevokeAdminEndpoints(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doRequest(t, ts, http.MethodPost, "/api/access/v1/admins/grant", "admin-1", map[string]any{
		"address": "admin-2",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("grant: expected 201, got %d (%v)", resp.StatusCode, body)
	}
	if body["granted_by"] != "admin-1" {
		t.Fatalf("unexpected grant payload: %v", body)
	}

	// The fresh grant is live for election administration immediately.
	resp, body = doRequest(t, ts, http.MethodPost, "/api/election/v1/voters", "admin-2", map[string]any{
		"address": "addr1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("new admin rejected by election module: %d (%v)", resp.StatusCode, body)
	}

	resp, _ = doRequest(t, ts, http.MethodPost, "/api/access/v1/admins/revoke", "admin-1", map[string]any{
		"address": "admin-2",
	})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("revoke: expected 204, got %d", resp.StatusCode)
	}

	resp, body = doRequest(t, ts, http.MethodPost, "/api/election/v1/voters", "admin-2", map[string]any{
		"address": "addr2",
	})
	if resp.StatusCode != http.StatusForbidden || errorCode(body) != "unauthorized" {
		t.Fatalf("revoked admin still accepted: %d %s", resp.StatusCode, errorCode(body))
	}
}

func TestAccessEndpointErrorMapping(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doRequest(t, ts, http.MethodPost, "/api/access/v1/admins/grant", "stranger", map[string]any{
		"address": "addr1",
	})
	if resp.StatusCode != http.StatusForbidden || errorCode(body) != "unauthorized" {
		t.Fatalf("expected 403 unauthorized, got %d %s", resp.StatusCode, errorCode(body))
	}

	resp, body = doRequest(t, ts, http.MethodPost, "/api/access/v1/admins/grant", "admin-1", map[string]any{
		"address": "admin-1",
	})
	if resp.StatusCode != http.StatusConflict || errorCode(body) != "already_administrator" {
		t.Fatalf("expected 409 already_administrator, got %d %s", resp.StatusCode, errorCode(body))
	}

	resp, body = doRequest(t, ts, http.MethodPost, "/api/access/v1/admins/revoke", "admin-1", map[string]any{
		"address": "admin-1",
	})
	if resp.StatusCode != http.StatusConflict || errorCode(body) != "last_administrator" {
		t.Fatalf("expected 409 last_administrator, got %d %s", resp.StatusCode, errorCode(body))
	}

	resp, body = doRequest(t, ts, http.MethodPost, "/api/access/v1/admins/revoke", "admin-1", map[string]any{
		"address": "stranger",
	})
	if resp.StatusCode != http.StatusNotFound || errorCode(body) != "not_administrator" {
		t.Fatalf("expected 404 not_administrator, got %d %s", resp.StatusCode, errorCode(body))
	}
}
