package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// isolate points HOME and the working directory at empty temp dirs so a
// developer's real config, environment or .env cannot leak in.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(APIKeyEnv, "")
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := Default()
	want.DataDir = filepath.Join(home, ".local/share/forkify")
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.BookmarksPath() != filepath.Join(want.DataDir, "bookmarks.db") {
		t.Fatalf("BookmarksPath = %q", cfg.BookmarksPath())
	}
	if cfg.LogPath() != filepath.Join(want.DataDir, "forkify.log") {
		t.Fatalf("LogPath = %q", cfg.LogPath())
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := isolate(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "  http://localhost:8080/recipes  "
api_key = " secret "
results_per_page = 5
close_delay_seconds = 1.5
request_timeout_seconds = 3
data_dir = "  ~/recipes  "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Config{
		APIURL:         "http://localhost:8080/recipes",
		APIKey:         "secret",
		ResultsPerPage: 5,
		CloseDelay:     1500 * time.Millisecond,
		RequestTimeout: 3 * time.Second,
		DataDir:        filepath.Join(home, "recipes"),
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "   "
results_per_page = 0
close_delay_seconds = -1
data_dir = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	if cfg.ResultsPerPage != defaultResultsPerPage {
		t.Fatalf("ResultsPerPage = %d, want %d", cfg.ResultsPerPage, defaultResultsPerPage)
	}
	if cfg.CloseDelay != defaultCloseDelay {
		t.Fatalf("CloseDelay = %v, want %v", cfg.CloseDelay, defaultCloseDelay)
	}
	wantDataDir, err := ExpandPath(defaultDataDir)
	if err != nil {
		t.Fatalf("ExpandPath(defaultDataDir) returned error: %v", err)
	}
	if cfg.DataDir != wantDataDir {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, wantDataDir)
	}
}

func TestLoad_EnvironmentOverridesAPIKey(t *testing.T) {
	isolate(t)
	t.Setenv(APIKeyEnv, "from-env")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_key = "from-file"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "from-env" {
		t.Fatalf("APIKey = %q, want from-env", cfg.APIKey)
	}
}

func TestLoad_DotenvSuppliesAPIKey(t *testing.T) {
	home := isolate(t)

	if err := os.WriteFile(".env", []byte(APIKeyEnv+"=from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(filepath.Join(home, "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "from-dotenv" {
		t.Fatalf("APIKey = %q, want from-dotenv", cfg.APIKey)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := ExpandPath("   "); err == nil {
		t.Fatalf("ExpandPath returned nil error, want error")
	}
}

func TestBookmarksPath_DefaultsWhenDataDirEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var cfg Config
	got := cfg.BookmarksPath()
	if !strings.HasPrefix(got, home) {
		t.Fatalf("BookmarksPath = %q, want it under HOME %q", got, home)
	}
	if !strings.HasSuffix(got, filepath.FromSlash("/bookmarks.db")) {
		t.Fatalf("BookmarksPath = %q, want it to end with /bookmarks.db", got)
	}
}
