package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iho/goscheduler/internal/adapter/http/dto"
	"github.com/iho/goscheduler/internal/domain"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	cmd.SetErr(&out)

	err := cmd.Execute()
	return out.String(), err
}

func TestScheduleCommandPostsRequest(t *testing.T) {
	var got dto.ScheduleTransferRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/transfers" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(dto.TransferResponse{ID: "abc", Fee: "12.00"})
	}))
	defer srv.Close()

	out, err := runCLI(t, "--url", srv.URL, "schedule",
		"--from", "1234567890", "--to", "0987654321", "--amount", "100.50", "--date", "2025-03-15")
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	if got.SourceAccount != "1234567890" || got.TransferDate != "2025-03-15" || got.Amount.Decimal.String() != "100.5" {
		t.Fatalf("unexpected request body %+v", got)
	}

	if !strings.Contains(out, `"fee": "12.00"`) {
		t.Fatalf("expected pretty JSON output, got %s", out)
	}
}

func TestScheduleCommandRejectsBadAmount(t *testing.T) {
	_, err := runCLI(t, "schedule", "--from", "1", "--to", "2", "--amount", "ten", "--date", "2025-03-15")
	if err == nil || !strings.Contains(err.Error(), "invalid amount") {
		t.Fatalf("expected invalid amount error, got %v", err)
	}
}

func TestGetCommandReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(dto.ErrorResponse{
			Error: "failed to get transfer",
			Code:  domain.CodeTransferNotFound,
		})
	}))
	defer srv.Close()

	_, err := runCLI(t, "--url", srv.URL, "get", "missing")

	var apiErr *apiError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound || apiErr.Body.Code != domain.CodeTransferNotFound {
		t.Fatalf("expected 404 api error, got %v", err)
	}
}

func TestListCommandPrintsTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "5" {
			t.Errorf("expected limit=5, got %s", r.URL.RawQuery)
		}
		w.Header().Set("X-Total-Count", "7")
		_ = json.NewEncoder(w).Encode([]dto.TransferResponse{{ID: "t-1", FeePolicy: domain.PolicyShort}})
	}))
	defer srv.Close()

	out, err := runCLI(t, "--url", srv.URL, "list", "--limit", "5")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if !strings.Contains(out, "t-1") || !strings.Contains(out, "1 of 7 transfers") {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestDeleteAndClearCommands(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Header().Set("X-Deleted-Count", "4")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if _, err := runCLI(t, "--url", srv.URL, "delete", "abc"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := runCLI(t, "--url", srv.URL, "clear"); err == nil {
		t.Fatalf("expected clear without --yes to fail")
	}

	out, err := runCLI(t, "--url", srv.URL, "clear", "--yes")
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if !strings.Contains(out, "deleted 4 transfers") {
		t.Fatalf("unexpected output %s", out)
	}

	if len(paths) != 2 || paths[0] != "DELETE /api/v1/transfers/abc" || paths[1] != "DELETE /api/v1/transfers" {
		t.Fatalf("unexpected requests %v", paths)
	}
}

func TestQuoteCommandLocal(t *testing.T) {
	out, err := runCLI(t, "quote", "--local", "--as-of", "2025-03-10", "--amount", "1000", "--date", "2025-03-31")
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}

	var resp dto.FeeQuoteResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("expected JSON output, got %s", out)
	}

	if resp.FeePolicy != domain.PolicyMedium || resp.Fee != "69.00" || resp.Days != 21 {
		t.Fatalf("unexpected quote %+v", resp)
	}
}

func TestQuoteCommandLocalRejectsPastDate(t *testing.T) {
	_, err := runCLI(t, "quote", "--local", "--as-of", "2025-03-10", "--amount", "1000", "--date", "2025-03-09")
	if !errors.Is(err, domain.ErrInvalidTransferDate) {
		t.Fatalf("expected ErrInvalidTransferDate, got %v", err)
	}
}

func TestTiersCommand(t *testing.T) {
	out, err := runCLI(t, "tiers")
	if err != nil {
		t.Fatalf("tiers failed: %v", err)
	}

	for _, name := range []string{domain.PolicySameDay, domain.PolicyShort, domain.PolicyLong} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output:\n%s", name, out)
		}
	}

	if !strings.Contains(out, "41-50") {
		t.Fatalf("expected last range in output:\n%s", out)
	}
}

func TestMigrateCommandUsesFlags(t *testing.T) {
	origUp, origDown := runMigrationsUp, runMigrationsDown
	t.Cleanup(func() {
		runMigrationsUp, runMigrationsDown = origUp, origDown
	})

	var gotURL, gotPath, direction string
	runMigrationsUp = func(databaseURL, migrationsPath string, _ zerolog.Logger) error {
		gotURL, gotPath, direction = databaseURL, migrationsPath, "up"
		return nil
	}
	runMigrationsDown = func(databaseURL, migrationsPath string, _ zerolog.Logger) error {
		gotURL, gotPath, direction = databaseURL, migrationsPath, "down"
		return nil
	}

	if _, err := runCLI(t, "migrate", "up", "--database-url", "postgres://x", "--path", "/tmp/m"); err != nil {
		t.Fatalf("migrate up failed: %v", err)
	}
	if gotURL != "postgres://x" || gotPath != "/tmp/m" || direction != "up" {
		t.Fatalf("unexpected migrate call %s %s %s", gotURL, gotPath, direction)
	}

	t.Setenv("MIGRATIONS_PATH", "/srv/migrations")
	if _, err := runCLI(t, "migrate", "down", "--database-url", "postgres://y"); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if gotPath != "/srv/migrations" || direction != "down" {
		t.Fatalf("expected path from environment, got %s %s", gotPath, direction)
	}
}
