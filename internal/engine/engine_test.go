package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phyten/envfind/internal/pattern"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize([]string{`'B'`, ` "A"`, `'B'`, `"C`, ` '`, "A"})
	assert.Equal(t, []string{"A", "B", "C"}, got)

	empty := Normalize(nil)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestTextScannerExample(t *testing.T) {
	s := NewTextScanner("os.getenv('FOO_BAR')\nos.environ.get(\"BAZ\")\n", pattern.EnvVars)
	got, err := s.FindMatches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"BAZ", "FOO_BAR"}, got)
	assert.Equal(t, KindText, s.Target().Kind)
}

func TestEmptyTextYieldsEmptyResult(t *testing.T) {
	got, err := NewTextScanner("", pattern.EnvVars).FindMatches(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDedupAndCleanupLaws(t *testing.T) {
	text := `getenv('TOKEN') getenv("TOKEN") getenv(  'TOKEN') environ.get( "TOKEN")`
	got, err := NewTextScanner(text, pattern.EnvVars).FindMatches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"TOKEN"}, got)
}

func TestDeterminismAcrossRuleOrder(t *testing.T) {
	text := "getenv('Z_LAST') environ.get('A_FIRST') getenv('M_MID')"
	forward := pattern.MustNew("fwd", `getenv\((\s*['"][A-Z_]+)`, `environ\.get\((\s*['"][A-Z_]+)`)
	backward := pattern.MustNew("bwd", `environ\.get\((\s*['"][A-Z_]+)`, `getenv\((\s*['"][A-Z_]+)`)

	a, err := NewTextScanner(text, forward).FindMatches(context.Background())
	require.NoError(t, err)
	b, err := NewTextScanner(text, backward).FindMatches(context.Background())
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("rule order changed the result (-fwd +bwd):\n%s", diff)
	}
	assert.Equal(t, []string{"A_FIRST", "M_MID", "Z_LAST"}, a)
}

func TestFindMatchesIsComputedOnce(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"app.py": "getenv('FIRST')\n"})

	s, err := NewScanner(filepath.Join(root, "app.py"), pattern.EnvVars, Options{})
	require.NoError(t, err)

	first, err := s.FindMatches(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"FIRST"}, first)

	writeTree(t, root, map[string]string{"app.py": "getenv('SECOND')\n"})
	second, err := s.FindMatches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"FIRST"}, second)
	assert.Same(t, &first[0], &second[0])

	fresh, err := NewScanner(filepath.Join(root, "app.py"), pattern.EnvVars, Options{})
	require.NoError(t, err)
	got, err := fresh.FindMatches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"SECOND"}, got)
}

func TestClassify(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"notes.txt": "getenv('X')"})

	target, err := Classify(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, KindDirectory, target.Kind)

	target, err = Classify(filepath.Join(root, "missing.pyx"), Options{})
	require.NoError(t, err)
	assert.Equal(t, KindFile, target.Kind)

	_, err = Classify(filepath.Join(root, "notes.txt"), Options{})
	assert.ErrorIs(t, err, ErrInvalidTarget)

	target, err = Classify("getenv('RAW')", Options{Permissive: true})
	require.NoError(t, err)
	assert.Equal(t, Target{Kind: KindText, Value: "getenv('RAW')"}, target)

	target, err = Classify(filepath.Join(root, "notes.txt"), Options{Extensions: []string{"txt"}})
	require.NoError(t, err)
	assert.Equal(t, KindFile, target.Kind)
}

func TestMissingFileIsNotFound(t *testing.T) {
	s, err := NewScanner(filepath.Join(t.TempDir(), "gone.py"), pattern.EnvVars, Options{})
	require.NoError(t, err)

	_, err = s.FindMatches(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ScanFile(pattern.EnvVars, t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScanFileDecoding(t *testing.T) {
	root := t.TempDir()
	bom := append([]byte{0xef, 0xbb, 0xbf}, []byte("getenv('WITH_BOM')")...)
	utf16 := []byte{0xff, 0xfe}
	for _, r := range "getenv('WIDE')" {
		utf16 = append(utf16, byte(r), 0)
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "bom.py"), bom, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "wide.py"), utf16, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob.py"), []byte{0xc3, 0x28, 0xa0, 0xa1}, 0o644))

	raw, err := ScanFile(pattern.EnvVars, filepath.Join(root, "bom.py"))
	require.NoError(t, err)
	assert.Equal(t, []string{"WITH_BOM"}, Normalize(raw))

	raw, err = ScanFile(pattern.EnvVars, filepath.Join(root, "wide.py"))
	require.NoError(t, err)
	assert.Equal(t, []string{"WIDE"}, Normalize(raw))

	_, err = ScanFile(pattern.EnvVars, filepath.Join(root, "blob.py"))
	assert.ErrorIs(t, err, ErrUndecodable)
}

func TestFlatDirectoryScanSkipsUnreadableFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.py":            "getenv('A')",
		"pkg/__init__.py": "",
		"pkg/b.pyx":       "environ.get('B')\ngetenv('A')",
		"readme.md":       "getenv('NOT_SCANNED')",
	})
	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.py"), []byte{0xc3, 0x28}, 0o644))

	s, err := NewScanner(root, pattern.EnvVars, Options{PackageOnly: true})
	require.NoError(t, err)
	got, err := s.FindMatches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, got)

	skipped := s.Skipped()
	require.Len(t, skipped, 1)
	assert.Equal(t, "bad.py", skipped[0].Path)
	assert.ErrorIs(t, skipped[0].Err, ErrUndecodable)
}

func TestPackageBoundaryInFlatMode(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.py":          "getenv('X')",
		"sub/b.py":      "getenv('Y')",
		"sub/deep/c.py": "getenv('Z')",
	})

	raw, _, err := ScanDirectory(context.Background(), pattern.EnvVars, root, Options{PackageOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, Normalize(raw))

	raw, _, err = ScanDirectory(context.Background(), pattern.EnvVars, root, Options{PackageOnly: false})
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y", "Z"}, Normalize(raw))
}

func TestExcludes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app.py":             "getenv('APP')",
		"venv/lib/vendor.py": "getenv('VENDORED')",
		"tests/test_app.py":  "getenv('TEST_ONLY')",
	})

	raw, _, err := ScanDirectory(context.Background(), pattern.EnvVars, root, Options{ExcludeTypical: true, Excludes: []string{"tests/"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"APP"}, Normalize(raw))

	raw, _, err = ScanDirectory(context.Background(), pattern.EnvVars, root, Options{Excludes: []string{"test_*.py"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"APP", "VENDORED"}, Normalize(raw))
}

func TestSymlinkCycleTerminates(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pkg/__init__.py": "getenv('INIT')",
		"pkg/mod.py":      "getenv('MOD')",
	})
	if err := os.Symlink("..", filepath.Join(root, "pkg", "loop")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	raw, skipped, err := ScanDirectory(context.Background(), pattern.EnvVars, root, Options{})
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, []string{"INIT", "MOD"}, Normalize(raw))
}

func TestCancelledContextLeavesScannerUncomputed(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.py": "getenv('A')"})
	s, err := NewScanner(root, pattern.EnvVars, Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.FindMatches(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	got, err := s.FindMatches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, got)
}

func TestNewScannerRejectsNilSet(t *testing.T) {
	_, err := NewScanner(t.TempDir(), nil, Options{})
	assert.Error(t, err)
	assert.Panics(t, func() { NewTextScanner("x", nil) })
}
