package catalog

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/crate/internal/store"
)

/*
   Helpers
*/

type checkFn func(Entry) error

func runChecks(t *testing.T, e Entry, checks []checkFn) {
	t.Helper()
	for i, c := range checks {
		if err := c(e); err != nil {
			t.Errorf("check #%d: %v", i+1, err)
		}
	}
}

func eqStr(label, want string, get func(Entry) string) checkFn {
	return func(e Entry) error {
		got := get(e)
		if got != want {
			return fmt.Errorf("%s = %q, want %q", label, got, want)
		}
		return nil
	}
}

func refSHA(b []byte) string {
	sum := sha256.Sum256(b)
	return fmt.Sprintf("%x", sum[:])
}

func seedMemory(t *testing.T, files map[string]string, order ...string) *store.Memory {
	t.Helper()
	m := store.NewMemory()
	for _, name := range order {
		if err := m.Write(context.Background(), name, strings.NewReader(files[name])); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	return m
}

func byName(entries []Entry) map[string]Entry {
	out := make(map[string]Entry, len(entries))
	for _, e := range entries {
		out[e.PackageName] = e
	}
	return out
}

// vanishing reports a name in List that Open can no longer find.
type vanishing struct {
	store.Repository
	ghost string
}

func (v vanishing) List(ctx context.Context) ([]string, error) {
	names, err := v.Repository.List(ctx)
	return append(names, v.ghost), err
}

type brokenOpen struct{ store.Repository }

func (b brokenOpen) Open(context.Context, string) (io.ReadSeekCloser, store.Info, error) {
	return nil, store.Info{}, fmt.Errorf("permission denied")
}

/*
   Tests
*/

func TestBuild_Mapping(t *testing.T) {
	files := map[string]string{
		"BackupAgent_1.2.3.zip": "backup",
		"Tool.zip":              "tool",
	}
	repo := seedMemory(t, files, "BackupAgent_1.2.3.zip", "Tool.zip")

	entries, err := Build(context.Background(), repo, ".zip")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	t.Run("versioned", func(t *testing.T) {
		runChecks(t, entries[0], []checkFn{
			eqStr("packageName", "BackupAgent_1.2.3.zip", func(e Entry) string { return e.PackageName }),
			eqStr("version", "1.2.3", func(e Entry) string { return e.Version }),
			eqStr("sha256", refSHA([]byte("backup")), func(e Entry) string { return e.SHA256 }),
		})
	})
	t.Run("default-version", func(t *testing.T) {
		runChecks(t, entries[1], []checkFn{
			eqStr("packageName", "Tool.zip", func(e Entry) string { return e.PackageName }),
			eqStr("version", "0.0.0", func(e Entry) string { return e.Version }),
			eqStr("sha256", refSHA([]byte("tool")), func(e Entry) string { return e.SHA256 }),
		})
	})
}

func TestBuild_KnownDigest(t *testing.T) {
	repo := seedMemory(t, map[string]string{"hello.zip": "hello"}, "hello.zip")
	entries, err := Build(context.Background(), repo, "")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	const want = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if entries[0].SHA256 != want {
		t.Fatalf("sha256 = %s, want %s", entries[0].SHA256, want)
	}
}

func TestBuild_ExtensionFilterAndCardinality(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"a_1.0.0.zip": "a",
		"b_2.0.0.zip": "b",
		"notes.txt":   "n",
		"c.zip.bak":   "c",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.zip"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	repo, err := store.NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	entries, err := Build(context.Background(), repo, ".zip")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := byName(entries)
	if len(entries) != 2 || len(got) != 2 {
		t.Fatalf("expected exactly 2 entries, got %+v", entries)
	}
	if _, ok := got["a_1.0.0.zip"]; !ok {
		t.Errorf("missing a_1.0.0.zip")
	}
	if _, ok := got["b_2.0.0.zip"]; !ok {
		t.Errorf("missing b_2.0.0.zip")
	}
}

func TestBuild_EmptyStore(t *testing.T) {
	entries, err := Build(context.Background(), store.NewMemory(), ".zip")
	if err != nil {
		t.Fatalf("Build(empty): %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected non-nil empty slice, got %#v", entries)
	}
}

func TestBuild_HashTracksOverwrite(t *testing.T) {
	repo := seedMemory(t, map[string]string{"x.zip": "v1"}, "x.zip")
	ctx := context.Background()

	first, err := Build(ctx, repo, ".zip")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := repo.Write(ctx, "x.zip", strings.NewReader("v2")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	second, err := Build(ctx, repo, ".zip")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if first[0].SHA256 == second[0].SHA256 {
		t.Fatalf("digest did not change after overwrite")
	}
	if second[0].SHA256 != refSHA([]byte("v2")) {
		t.Fatalf("digest = %s, want digest of new bytes", second[0].SHA256)
	}
}

func TestBuild_SkipsVanishedArtifact(t *testing.T) {
	base := seedMemory(t, map[string]string{"a.zip": "a"}, "a.zip")
	entries, err := Build(context.Background(), vanishing{Repository: base, ghost: "gone.zip"}, ".zip")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(entries) != 1 || entries[0].PackageName != "a.zip" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestBuild_OpenErrorPropagates(t *testing.T) {
	base := seedMemory(t, map[string]string{"a.zip": "a"}, "a.zip")
	_, err := Build(context.Background(), brokenOpen{base}, ".zip")
	if err == nil || !strings.Contains(err.Error(), "permission denied") {
		t.Fatalf("expected permission error, got %v", err)
	}
}

func TestBuild_ContextCanceled(t *testing.T) {
	repo := seedMemory(t, map[string]string{"a.zip": "a"}, "a.zip")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Build(ctx, repo, ".zip"); err == nil {
		t.Fatalf("expected context cancellation error, got nil")
	}
}

func TestLatest(t *testing.T) {
	in := []Entry{
		{PackageName: "Agent_1.2.3.zip", Version: "1.2.3"},
		{PackageName: "Other.zip", Version: "0.0.0"},
		{PackageName: "Agent_1.10.0.zip", Version: "1.10.0"},
		{PackageName: "Agent_1.9.9.zip", Version: "1.9.9"},
	}
	out := Latest(in)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(out), out)
	}
	if out[0].PackageName != "Agent_1.10.0.zip" {
		t.Errorf("latest Agent = %s, want Agent_1.10.0.zip", out[0].PackageName)
	}
	if out[1].PackageName != "Other.zip" {
		t.Errorf("second = %s, want Other.zip", out[1].PackageName)
	}
}
