package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeAdminsFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write admins file: %v", err)
	}
}

func TestResolverReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.yaml")
	writeAdminsFile(t, path, "admins:\n  - 111\n  - 222\n")

	r := NewResolver(path)
	if err := r.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if !r.IsAdmin(111) || !r.IsAdmin(222) {
		t.Fatal("listed admins not recognized")
	}
	if r.IsAdmin(333) {
		t.Fatal("unlisted user recognized as admin")
	}

	// Edits apply on the next reload without a restart.
	writeAdminsFile(t, path, "admins:\n  - 333\n")
	if err := r.Reload(); err != nil {
		t.Fatalf("Reload after edit: %v", err)
	}
	if r.IsAdmin(111) || !r.IsAdmin(333) {
		t.Fatal("allowlist edit not applied")
	}
}

func TestResolverMissingFile(t *testing.T) {
	r := NewResolver(filepath.Join(t.TempDir(), "absent.yaml"))
	if err := r.Reload(); err != nil {
		t.Fatalf("Reload of missing file: %v", err)
	}
	if r.IsAdmin(1) {
		t.Fatal("missing file produced admins")
	}
}

func TestResolverBadYAMLKeepsPreviousSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.yaml")
	writeAdminsFile(t, path, "admins:\n  - 111\n")

	r := NewResolver(path)
	if err := r.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	writeAdminsFile(t, path, "admins: {broken")
	if err := r.Reload(); err == nil {
		t.Fatal("Reload accepted broken yaml")
	}
	if !r.IsAdmin(111) {
		t.Fatal("failed reload dropped the previous allowlist")
	}
}
