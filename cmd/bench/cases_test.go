package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSplitSQLAndExtractTables(t *testing.T) {
	sql := "-- comment\nCREATE TABLE IF NOT EXISTS listings (id INT);\n\nCREATE INDEX IF NOT EXISTS i ON listings (id);\n"
	stmts := splitSQL(sql)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(stmts), stmts)
	}

	path := filepath.Join(t.TempDir(), "m.sql")
	if err := os.WriteFile(path, []byte(sql), 0o600); err != nil {
		t.Fatal(err)
	}
	tables, err := extractTables(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 1 || tables[0] != "listings" {
		t.Fatalf("unexpected tables %v", tables)
	}
}

func TestConversationCase(t *testing.T) {
	turns := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		turns++
		w.Header().Set("Content-Type", "application/json")
		if turns < 3 {
			_, _ = w.Write([]byte(`{"assistant":"?","done":false,"missing":"fuel","cars":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"assistant":"ok","done":true,"cars":[{},{}]}`))
	}))
	defer srv.Close()

	r := NewRunner(Config{BaseURL: srv.URL, Timeout: time.Minute})
	res := conversation(context.Background(), r, srv.URL, []string{"a", "b", "c"})
	if res.Status != statusPass || res.Note != "cars=2" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestConversationCaseModelUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	res := conversation(context.Background(), NewRunner(Config{}), srv.URL, []string{"a"})
	if res.Status != statusPending {
		t.Fatalf("expected PENDING, got %+v", res)
	}
}

func TestSummarize(t *testing.T) {
	results := []Result{{Status: statusPass}, {Status: statusPending}, {Status: statusSkip}}

	var out bytes.Buffer
	if err := summarize(&out, results, false); err != nil {
		t.Fatalf("pending should pass when not strict: %v", err)
	}
	if !strings.Contains(out.String(), "PASS=1 FAIL=0 PENDING=1 SKIP=1") {
		t.Fatalf("unexpected summary %q", out.String())
	}
	if err := summarize(io.Discard, results, true); !errors.Is(err, errBenchFailed) {
		t.Fatalf("expected strict failure, got %v", err)
	}
	if err := summarize(io.Discard, append(results, Result{Status: statusFail}), false); !errors.Is(err, errBenchFailed) {
		t.Fatalf("expected failure, got %v", err)
	}
}

func TestRootCmdDefaultsFromEnv(t *testing.T) {
	t.Setenv("SMARTDRIVE_BENCH_BASE_URL", "http://api.test:9000/")
	t.Setenv("SMARTDRIVE_BENCH_CONCURRENCY", "3")
	t.Setenv("SMARTDRIVE_BENCH_TIMEOUT", "45")

	cmd := newRootCmd()
	f := cmd.Flags()
	if got, _ := f.GetString("base-url"); got != "http://api.test:9000/" {
		t.Fatalf("base-url default %q", got)
	}
	if got, _ := f.GetInt("concurrency"); got != 3 {
		t.Fatalf("concurrency default %d", got)
	}
	if got, _ := f.GetDuration("timeout"); got != 45*time.Second {
		t.Fatalf("timeout default %v", got)
	}
}
