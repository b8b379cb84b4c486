package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/pkgscope/frontier/pkg/cache"
	"github.com/pkgscope/frontier/pkg/httputil"
	"github.com/pkgscope/frontier/pkg/store"
)

// testGraphJSON has workspace members A and B depending on the external
// packages C and D: A -> B -> C -> D.
const testGraphJSON = `{
  "nodes": [
    {"id": "pkg_a 1.0.0 (workspace)", "name": "pkg_a", "version": "1.0.0", "workspace": true},
    {"id": "pkg_b 1.0.0 (workspace)", "name": "pkg_b", "version": "1.0.0", "workspace": true},
    {"id": "dep_c 2.0.0 (registry)", "name": "dep_c", "version": "2.0.0"},
    {"id": "dep_d 3.0.0 (registry)", "name": "dep_d", "version": "3.0.0"}
  ],
  "edges": [
    {"from": "pkg_a 1.0.0 (workspace)", "to": "pkg_b 1.0.0 (workspace)"},
    {"from": "pkg_b 1.0.0 (workspace)", "to": "dep_c 2.0.0 (registry)"},
    {"from": "dep_c 2.0.0 (registry)", "to": "dep_d 3.0.0 (registry)"}
  ]
}`

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(log.New(io.Discard), cache.NewNullCache(), store.NewMemoryStore())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return srv, ts
}

func postAnalyze(t *testing.T, ts *httptest.Server, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(ts.URL+"/v1/analyze", "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST /v1/analyze: %v", err)
	}
	return resp
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if id := resp.Header.Get("X-Request-ID"); id == "" {
		t.Error("response is missing X-Request-ID header")
	}
}

func TestAnalyze(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postAnalyze(t, ts, analyzeRequest{
		Graph:     json.RawMessage(testGraphJSON),
		PackageID: "dep_c",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}

	var got analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID == "" {
		t.Error("response is missing report ID")
	}
	if got.Cached {
		t.Error("first analysis should not be served from cache")
	}
	if got.Report.TargetDependency != "dep_c 2.0.0" {
		t.Errorf("target = %q, want dep_c 2.0.0", got.Report.TargetDependency)
	}

	want := map[string][]string{"pkg-b": {"dep_c 2.0.0"}}
	if len(got.Report.Frontier) != 1 || got.Report.Frontier["pkg-b"][0] != want["pkg-b"][0] {
		t.Errorf("frontier = %v, want %v", got.Report.Frontier, want)
	}
}

func TestAnalyze_CacheHit(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	srv := New(log.New(io.Discard), fc, store.NewMemoryStore())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	req := analyzeRequest{Graph: json.RawMessage(testGraphJSON), PackageID: "dep_c"}

	first := postAnalyze(t, ts, req)
	var a analyzeResponse
	json.NewDecoder(first.Body).Decode(&a)
	first.Body.Close()

	second := postAnalyze(t, ts, req)
	var b analyzeResponse
	json.NewDecoder(second.Body).Decode(&b)
	second.Body.Close()

	if !b.Cached {
		t.Error("second identical analysis should be served from cache")
	}
	if a.ID != b.ID {
		t.Errorf("cached response ID = %s, want %s", b.ID, a.ID)
	}
}

func TestAnalyze_AmbiguousTarget(t *testing.T) {
	_, ts := newTestServer(t)

	// "dep_" matches both dep_c and dep_d.
	resp := postAnalyze(t, ts, analyzeRequest{
		Graph:     json.RawMessage(testGraphJSON),
		PackageID: "dep_",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var got httputil.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if got.Code != "AMBIGUOUS_TARGET" {
		t.Errorf("code = %q, want AMBIGUOUS_TARGET", got.Code)
	}

	details, ok := got.Details.(map[string]any)
	if !ok {
		t.Fatalf("details = %v, want object with candidates", got.Details)
	}
	candidates, ok := details["candidates"].([]any)
	if !ok || len(candidates) != 2 {
		t.Errorf("candidates = %v, want both dep_c and dep_d", details["candidates"])
	}
}

func TestAnalyze_TargetNotFound(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postAnalyze(t, ts, analyzeRequest{
		Graph:     json.RawMessage(testGraphJSON),
		PackageID: "left-pad",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var got httputil.ErrorResponse
	json.NewDecoder(resp.Body).Decode(&got)
	if got.Code != "TARGET_NOT_FOUND" {
		t.Errorf("code = %q, want TARGET_NOT_FOUND", got.Code)
	}
}

func TestAnalyze_SkipPrunesFrontier(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postAnalyze(t, ts, analyzeRequest{
		Graph:     json.RawMessage(testGraphJSON),
		PackageID: "dep_c",
		Skip:      []string{"dep_c"},
	})
	defer resp.Body.Close()

	var got analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.Report.Frontier) != 0 {
		t.Errorf("frontier = %v, want empty when every edge into the target is skipped", got.Report.Frontier)
	}
}

func TestAnalyze_InvalidGraph(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postAnalyze(t, ts, analyzeRequest{
		Graph:     json.RawMessage(`{"nodes": [], "edges": [{"from": "a", "to": "b"}]}`),
		PackageID: "a",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestReports_ListAndGet(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postAnalyze(t, ts, analyzeRequest{
		Graph:     json.RawMessage(testGraphJSON),
		PackageID: "dep_c",
	})
	var created analyzeResponse
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	listResp, err := http.Get(ts.URL + "/v1/reports")
	if err != nil {
		t.Fatalf("GET /v1/reports: %v", err)
	}
	defer listResp.Body.Close()

	var listing struct {
		Reports []store.Record `json:"reports"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(listing.Reports) != 1 || listing.Reports[0].ID != created.ID {
		t.Errorf("listing = %v, want the archived report %s", listing.Reports, created.ID)
	}

	getResp, err := http.Get(ts.URL + "/v1/reports/" + created.ID)
	if err != nil {
		t.Fatalf("GET /v1/reports/{id}: %v", err)
	}
	defer getResp.Body.Close()

	var rec store.Record
	if err := json.NewDecoder(getResp.Body).Decode(&rec); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if rec.PackageID != "dep_c" {
		t.Errorf("PackageID = %q, want dep_c", rec.PackageID)
	}
	if rec.Report.Crossings() != 1 {
		t.Errorf("crossings = %d, want 1", rec.Report.Crossings())
	}
}

func TestReports_GetMissing(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/reports/does-not-exist")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	var got httputil.ErrorResponse
	json.NewDecoder(resp.Body).Decode(&got)
	if got.Code != "REPORT_NOT_FOUND" {
		t.Errorf("code = %q, want REPORT_NOT_FOUND", got.Code)
	}
}
