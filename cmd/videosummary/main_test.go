package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

func fakeAPI(t *testing.T, job string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/summary", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["id"] != "sub-1" {
			t.Errorf("submitted id = %v, want sub-1", body["id"])
		}
		w.Write([]byte(`{"file":{"id":"f1"}}`))
	})
	mux.HandleFunc("/v1/auto/file/f1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(job))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRun(t *testing.T) {
	t.Setenv("VIDEOSUMMARY_BASE_URL", "")

	tests := []struct {
		name       string
		key        string
		job        string
		args       func(base string) []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name: "summary printed",
			key:  "sk-test",
			job:  `{"file":{"id":"f1","complete":true,"final_summary":"short"}}`,
			args: func(base string) []string {
				return []string{"-base-url", base, "-workflow", "summarize", "-id", "sub-1", "https://example.com/talk.mp4"}
			},
			wantCode:   0,
			wantStdout: `"short"`,
		},
		{
			name: "job failed",
			key:  "sk-test",
			job:  `{"file":{"id":"f1","complete":false,"failed_reason":"bad media"}}`,
			args: func(base string) []string {
				return []string{"-base-url", base, "-workflow", "summarize", "-id", "sub-1", "https://example.com/talk.mp4"}
			},
			wantCode:   3,
			wantStderr: "bad media",
		},
		{
			name: "missing file",
			key:  "sk-test",
			args: func(base string) []string {
				return []string{"-base-url", base, filepath.Join(t.TempDir(), "nope.mp4")}
			},
			wantCode:   2,
			wantStderr: "does not exist",
		},
		{
			name: "unknown workflow",
			key:  "sk-test",
			args: func(base string) []string {
				return []string{"-workflow", "translate", "talk.mp4"}
			},
			wantCode:   2,
			wantStderr: "unknown workflow",
		},
		{
			name:       "no source",
			key:        "sk-test",
			args:       func(base string) []string { return nil },
			wantCode:   2,
			wantStderr: "Usage",
		},
		{
			name: "no key",
			args: func(base string) []string {
				return []string{"-base-url", base, "https://example.com/talk.mp4"}
			},
			wantCode:   1,
			wantStderr: "api.key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("VIDEOSUMMARY_API_KEY", tt.key)
			srv := fakeAPI(t, tt.job)

			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args(srv.URL), &stdout, &stderr)

			if code != tt.wantCode {
				t.Fatalf("run() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}
