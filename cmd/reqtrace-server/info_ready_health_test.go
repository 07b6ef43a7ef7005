package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler(t *testing.T) {
	setupTest()
	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	router := setupRoutes()
	router.ServeHTTP(rr, req)
	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal("Failed to parse response:", err)
	}
	if status, ok := resp["status"].(string); !ok || status != "healthy" {
		t.Errorf("handler returned unexpected status: got %v, want 'healthy'", resp["status"])
	}
}

func TestReadyHandler(t *testing.T) {
	setupTest()
	req := httptest.NewRequest("GET", "/ready", nil)
	rr := httptest.NewRecorder()
	router := setupRoutes()
	router.ServeHTTP(rr, req)
	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal("Failed to parse response:", err)
	}
	if status, ok := resp["status"]; !ok || status != "ready" {
		t.Errorf("handler returned unexpected status: got %v, want 'ready'", resp["status"])
	}
}

func TestInfoHandler(t *testing.T) {
	setupTest()
	req := httptest.NewRequest("GET", "/info", nil)
	rr := httptest.NewRecorder()
	router := setupRoutes()
	router.ServeHTTP(rr, req)
	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal("Failed to parse response:", err)
	}
	if method, ok := resp["method"].(string); !ok || method != "GET" {
		t.Errorf("handler returned incorrect method: got %v, want 'GET'", resp["method"])
	}
	server, ok := resp["server"].(map[string]interface{})
	if !ok {
		t.Fatalf("handler returned invalid server info: got %v", resp["server"])
	}
	if server["log_level"] != "info" {
		t.Errorf("server info log_level: got %v want 'info'", server["log_level"])
	}
}
