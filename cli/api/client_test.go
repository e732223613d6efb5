package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetExecution(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/history/execution_log/long/12345" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"12345","startTime":"2019-12-25T12:30:01","user":"User X",
			"script":"My script","status":"Finished","exitCode":-15,
			"command":"my_script.sh -a -b 2","log":"some long log text"}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/history/", 0)
	exec, err := c.GetExecution(context.Background(), IDFromInt(12345))
	if err != nil {
		t.Fatalf("GetExecution: %v", err)
	}
	if exec.ID != "12345" {
		t.Errorf("ID = %q", exec.ID)
	}
	if exec.Script != "My script" || exec.User != "User X" {
		t.Errorf("Script/User = %q/%q", exec.Script, exec.User)
	}
	if exec.ExitCode == nil || *exec.ExitCode != -15 {
		t.Errorf("ExitCode = %v, want -15", exec.ExitCode)
	}
	if exec.Log != "some long log text" {
		t.Errorf("Log = %q", exec.Log)
	}
}

func TestGetExecution_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such execution", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).GetExecution(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.Body != "no such execution" {
		t.Errorf("HTTPError = %+v", httpErr)
	}
}

func TestGetExecution_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).GetExecution(context.Background(), "1")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("500 must not match ErrNotFound")
	}
}

func TestGetExecution_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "1", "user": `))
	}))
	defer srv.Close()

	if _, err := New(srv.URL, 0).GetExecution(context.Background(), "1"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestGetExecution_EscapesID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"id":"a/b"}`))
	}))
	defer srv.Close()

	if _, err := New(srv.URL, 0).GetExecution(context.Background(), "a/b"); err != nil {
		t.Fatalf("GetExecution: %v", err)
	}
	if gotPath != "/execution_log/long/a%2Fb" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestGetExecution_EmptyID(t *testing.T) {
	if _, err := New("http://127.0.0.1:1", 0).GetExecution(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestExecutionUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantID    ID
		wantStart string
		wantCode  *int
	}{
		{"numeric id", `{"id":42,"exitCode":0}`, "42", "", intPtr(0)},
		{"string exit code", `{"id":"id1","exitCode":"13"}`, "id1", "", intPtr(13)},
		{"null start and code", `{"id":"x","startTime":null,"exitCode":null}`, "x", "", nil},
		{"missing code", `{"id":"x","startTime":"2018-04-03T15:55:22+00:00"}`, "x", "2018-04-03T15:55:22+00:00", nil},
		{"empty string code", `{"id":"x","exitCode":""}`, "x", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Execution
			if err := json.Unmarshal([]byte(tt.body), &e); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if e.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", e.ID, tt.wantID)
			}
			if e.StartTime != tt.wantStart {
				t.Errorf("StartTime = %q, want %q", e.StartTime, tt.wantStart)
			}
			switch {
			case tt.wantCode == nil && e.ExitCode != nil:
				t.Errorf("ExitCode = %d, want nil", *e.ExitCode)
			case tt.wantCode != nil && (e.ExitCode == nil || *e.ExitCode != *tt.wantCode):
				t.Errorf("ExitCode = %v, want %d", e.ExitCode, *tt.wantCode)
			}
		})
	}
}

func TestExecutionUnmarshal_BadExitCode(t *testing.T) {
	var e Execution
	if err := json.Unmarshal([]byte(`{"id":"x","exitCode":"abc"}`), &e); err == nil {
		t.Fatal("expected error for non-numeric exit code")
	}
}

func intPtr(n int) *int { return &n }

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"status":"degraded","services":[{"name":"postgres","status":"up"},{"name":"s3","status":"down","details":"timeout"}]}`))
	}))
	defer srv.Close()

	h, err := New(srv.URL+"/history", 0).Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if h.Status != "degraded" || len(h.Services) != 2 {
		t.Fatalf("health = %+v", h)
	}
	if h.Services[1].Name != "s3" || h.Services[1].Details != "timeout" {
		t.Errorf("services[1] = %+v", h.Services[1])
	}
}
