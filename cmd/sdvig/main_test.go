package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/naveenspark/sdvig/internal/config"
	"github.com/naveenspark/sdvig/internal/hostbridge"
	"github.com/naveenspark/sdvig/internal/logging"
	"github.com/naveenspark/sdvig/internal/store"
	"github.com/naveenspark/sdvig/pkg/domain"
)

// figmaServer answers /v1/me for token "good" and serves one file.
func figmaServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Figma-Token") != "good" {
			w.WriteHeader(http.StatusForbidden)
			io.WriteString(w, `{"status":403,"err":"Invalid token"}`) //nolint:errcheck
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/me":
			io.WriteString(w, `{"id":"1","handle":"alex","email":"alex@example.com"}`) //nolint:errcheck
		case "/v1/files/AbC123":
			io.WriteString(w, `{"name":"Landing","thumbnailUrl":"https://cdn/x.png","lastModified":"2026-10-01T10:00:00Z"}`) //nolint:errcheck
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// runCmd executes the root command against an isolated home.
func runCmd(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", filepath.Join(dir, "config.yaml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SDVIG_STORAGE_PATH", filepath.Join(dir, "state.db"))
	t.Setenv("SDVIG_FIGMA_BASE_URL", figmaServer(t).URL)
	t.Setenv("SDVIG_INIT_DATA", "")
	t.Setenv("SDVIG_BOT_TOKEN", "")
	return dir
}

func TestVersionCommand(t *testing.T) {
	dir := isolate(t)
	out, err := runCmd(t, dir, "version")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "sdvig "+version {
		t.Errorf("version output = %q", out)
	}
}

func TestSyncWithoutToken(t *testing.T) {
	dir := isolate(t)
	_, err := runCmd(t, dir, "sync")
	if err == nil || !strings.Contains(err.Error(), "no Figma token") {
		t.Fatalf("err = %v", err)
	}
}

func TestSyncThenFetch(t *testing.T) {
	dir := isolate(t)

	out, err := runCmd(t, dir, "sync", "--token", "good")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "alex") {
		t.Errorf("sync output = %q", out)
	}

	// The token saved by sync is reused.
	out, err = runCmd(t, dir, "fetch", "https://www.figma.com/design/AbC123/Landing")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Landing", "https://cdn/x.png", "2026-10-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("fetch output missing %q: %q", want, out)
		}
	}
}

func TestSyncRejectedToken(t *testing.T) {
	dir := isolate(t)
	if _, err := runCmd(t, dir, "sync", "--token", "bad"); err == nil {
		t.Fatal("expected an error for a rejected token")
	}
}

func TestFetchInvalidLink(t *testing.T) {
	dir := isolate(t)
	if _, err := runCmd(t, dir, "sync", "--token", "good"); err != nil {
		t.Fatal(err)
	}
	if _, err := runCmd(t, dir, "fetch", "https://example.com/nope"); err == nil {
		t.Fatal("expected an error for a non figma link")
	}
}

func TestFetchNeedsOneArg(t *testing.T) {
	dir := isolate(t)
	if _, err := runCmd(t, dir, "fetch"); err == nil {
		t.Fatal("fetch without a link should fail")
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	dir := isolate(t)
	_, err := runCmd(t, dir, "reset")
	if err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Fatalf("err = %v", err)
	}
}

func TestResetClearsSavedState(t *testing.T) {
	dir := isolate(t)
	if _, err := runCmd(t, dir, "sync", "--token", "good"); err != nil {
		t.Fatal(err)
	}

	out, err := runCmd(t, dir, "reset", "--yes")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "saved fields cleared") {
		t.Errorf("reset output = %q", out)
	}

	// Without the saved token sync has nothing to check.
	if _, err := runCmd(t, dir, "sync"); err == nil || !strings.Contains(err.Error(), "no Figma token") {
		t.Fatalf("token survived reset: %v", err)
	}
}

func TestResetOnEmptyStore(t *testing.T) {
	dir := isolate(t)
	out, err := runCmd(t, dir, "reset", "--yes")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Nothing saved yet.") {
		t.Errorf("reset output = %q", out)
	}
}

func initData(t *testing.T, botToken string) string {
	t.Helper()
	values := url.Values{
		"user":      {`{"id":77,"first_name":"Ira","photo_url":"https://t.me/i.jpg"}`},
		"auth_date": {"1760000000"},
	}
	if botToken != "" {
		values.Set("hash", hostbridge.Sign(values, botToken))
	}
	return values.Encode()
}

func TestHostUser(t *testing.T) {
	log := logging.Discard()

	if u := hostUser(config.TelegramConfig{}, log); u != nil {
		t.Errorf("no init data: got %+v", u)
	}

	u := hostUser(config.TelegramConfig{InitData: initData(t, "")}, log)
	if u == nil || u.ID != 77 || u.FirstName != "Ira" {
		t.Fatalf("unsigned init data: got %+v", u)
	}

	signed := initData(t, "123:abc")
	if u := hostUser(config.TelegramConfig{InitData: signed, BotToken: "123:abc"}, log); u == nil {
		t.Error("valid signature rejected")
	}
	if u := hostUser(config.TelegramConfig{InitData: signed, BotToken: "999:zzz"}, log); u != nil {
		t.Errorf("wrong bot token accepted: %+v", u)
	}
}

func TestSummary(t *testing.T) {
	st := store.State{
		Role:             domain.RoleDesigner,
		WorkTimer:        3*3600 + 5*60,
		Progress:         60,
		ApprovedProgress: 40,
		ActiveProject:    &domain.Project{Name: "Landing"},
		DesignerNotifications: []domain.Notification{
			{ID: 1, Unread: true},
			{ID: 2},
		},
	}
	got := strings.Join(summary(st), "\n")
	for _, want := range []string{"Worked today: 3h 05m", "Landing: 60% done, 40% approved", "1 unread notifications"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}

	if lines := summary(store.State{}); len(lines) != 0 {
		t.Errorf("empty state summary = %v", lines)
	}
}

func TestPrintFarewell(t *testing.T) {
	var buf bytes.Buffer
	printFarewell(&buf, store.State{})
	if !strings.Contains(buf.String(), "S D V I G") {
		t.Errorf("farewell = %q", buf.String())
	}
}
