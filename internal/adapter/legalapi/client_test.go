package legalapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lexgrid/lexgrid/internal/port/analysis"
	"github.com/lexgrid/lexgrid/internal/resilience"
)

func TestAnalyzeSuccess(t *testing.T) {
	var gotKey, gotPath string
	var gotBody analysis.Request

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Service-Key")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"analysis":   "The case is defensible.",
			"tools_used": []map[string]any{{"name": "rag_search"}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "svc-key", 5*time.Second)

	payload, err := c.Analyze(context.Background(), analysis.Request{
		AnalysisType: "risk_assessment",
		InputText:    "contract dispute",
	})
	if err != nil {
		t.Fatal(err)
	}

	if gotKey != "svc-key" {
		t.Errorf("expected X-Service-Key header, got %q", gotKey)
	}
	if gotPath != "/api/analyses/" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if gotBody.AnalysisType != "risk_assessment" || gotBody.InputText != "contract dispute" {
		t.Errorf("unexpected request body: %+v", gotBody)
	}
	if payload["analysis"] != "The case is defensible." {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestAnalyzeBackendErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Analysis failed: model unavailable"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)

	_, err := c.Analyze(context.Background(), analysis.Request{AnalysisType: "full_analysis"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "model unavailable") {
		t.Errorf("expected backend message surfaced, got %v", err)
	}
}

func TestAnalyzeErrorFieldInOKResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Case not found."})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)

	_, err := c.Analyze(context.Background(), analysis.Request{AnalysisType: "full_analysis", CaseID: "c-1"})
	if err == nil || !strings.Contains(err.Error(), "Case not found") {
		t.Fatalf("expected error body surfaced, got %v", err)
	}
}

func TestAnalyzeTransportError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "", 500*time.Millisecond)

	_, err := c.Analyze(context.Background(), analysis.Request{AnalysisType: "full_analysis"})
	if err == nil {
		t.Fatal("expected transport error")
	}
}

func TestAnalyzeBreakerOpens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	c.SetBreaker(resilience.NewBreaker(2, time.Minute))

	for i := 0; i < 2; i++ {
		if _, err := c.Analyze(context.Background(), analysis.Request{}); err == nil {
			t.Fatal("expected error")
		}
	}

	_, err := c.Analyze(context.Background(), analysis.Request{})
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}
