package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Iron-Ham/heistboard/internal/tui/styles"
)

const testTheme = `name: "Test Theme"
author: "Crew"
version: "1"
colors:
  surface: "#0B1020"
  background: "#111827"
  accent: "#F472B6"
  border: "#374151"
  text: "#F9FAFB"
  muted: "#9CA3AF"
`

// withThemesDir points theme discovery at a fresh temp dir.
func withThemesDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig := themesDir
	themesDir = func() string { return dir }
	styles.ClearCustomThemes()
	t.Cleanup(func() {
		themesDir = orig
		styles.ClearCustomThemes()
	})
	return dir
}

func TestRunThemeList(t *testing.T) {
	dir := withThemesDir(t)
	if err := os.WriteFile(filepath.Join(dir, "testtheme.yaml"), []byte(testTheme), 0o644); err != nil {
		t.Fatalf("writing theme: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: x\n"), 0o644); err != nil {
		t.Fatalf("writing theme: %v", err)
	}

	out, err := capture(t, themeListCmd, runThemeList)
	if err != nil {
		t.Fatalf("runThemeList() error = %v", err)
	}
	for _, want := range []string{"heist", "vault", "noir", "testtheme (by Crew)", "broken.yaml", dir} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunThemeExport(t *testing.T) {
	withThemesDir(t)
	outputPath := filepath.Join(t.TempDir(), "exported.yaml")

	if _, err := capture(t, themeExportCmd, runThemeExport, "vault", outputPath); err != nil {
		t.Fatalf("runThemeExport() error = %v", err)
	}

	theme, err := styles.LoadThemeFile(outputPath)
	if err != nil {
		t.Fatalf("exported theme does not load: %v", err)
	}
	if theme.Colors.Accent != styles.VaultPalette().Accent {
		t.Errorf("exported accent = %s, want %s", theme.Colors.Accent, styles.VaultPalette().Accent)
	}
}

func TestRunThemeExportStdout(t *testing.T) {
	withThemesDir(t)

	out, err := capture(t, themeExportCmd, runThemeExport, "noir")
	if err != nil {
		t.Fatalf("runThemeExport() error = %v", err)
	}
	if !strings.Contains(out, "surface:") {
		t.Errorf("stdout export missing colors:\n%s", out)
	}
}

func TestRunThemeExportUnknown(t *testing.T) {
	dir := withThemesDir(t)
	if err := os.WriteFile(filepath.Join(dir, "half.yaml"), []byte("name: half\nversion: \"1\"\n"), 0o644); err != nil {
		t.Fatalf("writing theme: %v", err)
	}

	tests := []struct {
		name string
		want string
	}{
		{"missing", "unknown theme"},
		{"half", "failed to load"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := capture(t, themeExportCmd, runThemeExport, tt.name)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("runThemeExport(%q) error = %v, want %q", tt.name, err, tt.want)
			}
		})
	}
}

func TestRunThemeInfo(t *testing.T) {
	dir := withThemesDir(t)
	if err := os.WriteFile(filepath.Join(dir, "testtheme.yaml"), []byte(testTheme), 0o644); err != nil {
		t.Fatalf("writing theme: %v", err)
	}

	out, err := capture(t, themeInfoCmd, runThemeInfo, "testtheme")
	if err != nil {
		t.Fatalf("runThemeInfo() error = %v", err)
	}
	for _, want := range []string{"Type: Custom", "Author: Crew", "#F472B6"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = capture(t, themeInfoCmd, runThemeInfo, "heist")
	if err != nil {
		t.Fatalf("runThemeInfo(heist) error = %v", err)
	}
	if !strings.Contains(out, "Type: Built-in") {
		t.Errorf("output = %q, want built-in", out)
	}
}

func TestRunThemeCreate(t *testing.T) {
	dir := withThemesDir(t)

	if _, err := capture(t, themeCreateCmd, runThemeCreate, "midnight"); err != nil {
		t.Fatalf("runThemeCreate() error = %v", err)
	}

	theme, err := styles.LoadThemeFile(filepath.Join(dir, "midnight.yaml"))
	if err != nil {
		t.Fatalf("created theme does not load: %v", err)
	}
	if theme.Name != "Midnight" {
		t.Errorf("theme name = %q, want Midnight", theme.Name)
	}

	if _, err := capture(t, themeCreateCmd, runThemeCreate, "midnight"); err == nil {
		t.Error("creating an existing theme should fail")
	}
}

func TestRunThemeCreateRejects(t *testing.T) {
	withThemesDir(t)

	for _, name := range []string{"heist", "a/b", ""} {
		t.Run(name, func(t *testing.T) {
			if _, err := capture(t, themeCreateCmd, runThemeCreate, name); err == nil {
				t.Errorf("runThemeCreate(%q) should fail", name)
			}
		})
	}
}

func TestCapitalizeFirst(t *testing.T) {
	tests := map[string]string{"": "", "a": "A", "midnight": "Midnight", "Vault": "Vault"}
	for in, want := range tests {
		if got := capitalizeFirst(in); got != want {
			t.Errorf("capitalizeFirst(%q) = %q, want %q", in, got, want)
		}
	}
}
