package service

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mosaicnetworks/glomers/src/common"
)

type stubNode struct {
	stats     map[string]string
	neighbors []string
	messages  []int
}

func (s *stubNode) GetStats() map[string]string { return s.stats }
func (s *stubNode) Neighbors() []string         { return s.neighbors }
func (s *stubNode) Messages() []int             { return s.messages }

func newTestServer(t *testing.T, n Node, m *Metrics) *httptest.Server {
	s := NewService("", n, m, common.NewTestEntry(t, common.TestLogLevel))
	return httptest.NewServer(s.Handler())
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp, body
}

func TestGetStats(t *testing.T) {
	n := &stubNode{stats: map[string]string{"id": "n1", "state": "Initialized"}}
	ts := newTestServer(t, n, nil)
	defer ts.Close()

	resp, body := get(t, ts.URL+"/stats")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %s", ct)
	}

	var stats map[string]string
	if err := json.Unmarshal(body, &stats); err != nil {
		t.Fatal(err)
	}
	if stats["id"] != "n1" || stats["state"] != "Initialized" {
		t.Fatalf("unexpected stats %v", stats)
	}
}

func TestGetNeighborsAndMessages(t *testing.T) {
	n := &stubNode{neighbors: []string{"n2", "n3"}, messages: []int{7, 7, 9}}
	ts := newTestServer(t, n, nil)
	defer ts.Close()

	_, body := get(t, ts.URL+"/neighbors")
	if strings.TrimSpace(string(body)) != `["n2","n3"]` {
		t.Fatalf("unexpected neighbors %s", body)
	}

	_, body = get(t, ts.URL+"/messages")
	if strings.TrimSpace(string(body)) != `[7,7,9]` {
		t.Fatalf("unexpected messages %s", body)
	}
}

func TestEmptyListsAreArrays(t *testing.T) {
	ts := newTestServer(t, &stubNode{}, nil)
	defer ts.Close()

	for _, path := range []string{"/neighbors", "/messages"} {
		_, body := get(t, ts.URL+path)
		if strings.TrimSpace(string(body)) != `[]` {
			t.Fatalf("%s should return [], got %s", path, body)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, &stubNode{}, nil)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/stats", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}

func TestMetricsWithoutRegistry(t *testing.T) {
	ts := newTestServer(t, &stubNode{}, nil)
	defer ts.Close()

	resp, _ := get(t, ts.URL+"/metrics")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestMetrics(t *testing.T) {
	m := NewMetrics("0.1.0")
	m.ObserveFrame("echo")
	m.ObserveFrame("echo")
	m.ObserveReply("echo_ok")
	m.ObserveStep("echo", 50*time.Microsecond)
	m.ObserveError("MalformedInput")

	ts := newTestServer(t, &stubNode{}, m)
	defer ts.Close()

	resp, body := get(t, ts.URL+"/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	expected := []string{
		`glomers_frames_total{type="echo"} 2`,
		`glomers_replies_total{type="echo_ok"} 1`,
		`glomers_step_duration_seconds_count{type="echo"} 1`,
		`glomers_errors_total{kind="MalformedInput"} 1`,
		`glomers_build_info{version="0.1.0"} 1`,
		`glomers_uptime_seconds`,
	}
	for _, e := range expected {
		if !strings.Contains(string(body), e) {
			t.Errorf("metrics should contain %s", e)
		}
	}
}

func TestMetricsAreIndependent(t *testing.T) {
	a := NewMetrics("a")
	b := NewMetrics("b")
	a.ObserveFrame("read")

	families, err := b.Registry().Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range families {
		if f.GetName() == "glomers_frames_total" && len(f.GetMetric()) != 0 {
			t.Fatalf("registries should not share collectors")
		}
	}
}
