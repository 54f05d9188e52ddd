package opts

import (
	"math"
	"reflect"
	"testing"

	"github.com/phyten/envfind/internal/engine"
)

func TestParseBoolVariants(t *testing.T) {
	trueVals := []string{"1", "true", "TRUE", "yes", "On"}
	falseVals := []string{"0", "false", "FALSE", "no", "OFF"}

	for _, tc := range trueVals {
		t.Run("true/"+tc, func(t *testing.T) {
			got, err := ParseBool(tc, "flag")
			if err != nil {
				t.Fatalf("ParseBool(%q) error: %v", tc, err)
			}
			if !got {
				t.Fatalf("ParseBool(%q) = false, want true", tc)
			}
		})
	}

	for _, tc := range falseVals {
		t.Run("false/"+tc, func(t *testing.T) {
			got, err := ParseBool(tc, "flag")
			if err != nil {
				t.Fatalf("ParseBool(%q) error: %v", tc, err)
			}
			if got {
				t.Fatalf("ParseBool(%q) = true, want false", tc)
			}
		})
	}

	if _, err := ParseBool("maybe", "flag"); err == nil {
		t.Fatal("ParseBool should reject unknown values")
	}
}

func TestParseIntInRange(t *testing.T) {
	got, err := ParseIntInRange("42", "timeout_seconds", 0, 3600)
	if err != nil {
		t.Fatalf("ParseIntInRange error: %v", err)
	}
	if got != 42 {
		t.Fatalf("ParseIntInRange = %d, want 42", got)
	}

	if _, err := ParseIntInRange("-1", "timeout_seconds", 0, math.MinInt); err == nil {
		t.Fatal("ParseIntInRange should reject negative values when min=0")
	}

	if _, err := ParseIntInRange("3601", "timeout_seconds", 0, 3600); err == nil {
		t.Fatal("ParseIntInRange should reject values above max")
	}

	if _, err := ParseIntInRange("ten", "timeout_seconds", 0, 3600); err == nil {
		t.Fatal("ParseIntInRange should reject non-numeric input")
	}
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	if !d.PackageOnly {
		t.Fatal("package-only walking should be the default")
	}
	if !reflect.DeepEqual(d.Extensions, []string{".py", ".pyx"}) {
		t.Fatalf("unexpected default extensions: %v", d.Extensions)
	}
	if d.Marker != "__init__.py" {
		t.Fatalf("unexpected default marker: %q", d.Marker)
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	o := engine.Options{Extensions: []string{"PY", ".py", " pyx ", ""}, Marker: "  ", Excludes: []string{" build ", ""}}
	if err := NormalizeAndValidate(&o); err != nil {
		t.Fatalf("NormalizeAndValidate error: %v", err)
	}
	if !reflect.DeepEqual(o.Extensions, []string{".py", ".pyx"}) {
		t.Fatalf("extensions normalized incorrectly: %v", o.Extensions)
	}
	if o.Marker != "__init__.py" {
		t.Fatalf("marker should fall back to __init__.py, got %q", o.Marker)
	}
	if !reflect.DeepEqual(o.Excludes, []string{"build"}) {
		t.Fatalf("excludes normalized incorrectly: %v", o.Excludes)
	}

	cases := map[string]engine.Options{
		"no extensions":   {Extensions: []string{" ", ""}},
		"nested ext":      {Extensions: []string{"tar.gz"}},
		"marker with dir": {Extensions: []string{"py"}, Marker: "pkg/__init__.py"},
		"bad glob":        {Extensions: []string{"py"}, Excludes: []string{"[a-"}},
	}
	for name, bad := range cases {
		if err := NormalizeAndValidate(&bad); err == nil {
			t.Fatalf("%s: NormalizeAndValidate should fail", name)
		}
	}
}

func TestNormalizeOutputs(t *testing.T) {
	if got, err := NormalizeFindOutput(""); err != nil || got != "list" {
		t.Fatalf("NormalizeFindOutput(\"\") = %q, %v", got, err)
	}
	if got, err := NormalizeFindOutput(" JSON "); err != nil || got != "json" {
		t.Fatalf("NormalizeFindOutput(JSON) = %q, %v", got, err)
	}
	if _, err := NormalizeFindOutput("yaml"); err == nil {
		t.Fatal("yaml is a detail-only format")
	}
	if got, err := NormalizeDetailOutput(""); err != nil || got != "json" {
		t.Fatalf("NormalizeDetailOutput(\"\") = %q, %v", got, err)
	}
	if got, err := NormalizeDetailOutput("Markdown"); err != nil || got != "markdown" {
		t.Fatalf("NormalizeDetailOutput(Markdown) = %q, %v", got, err)
	}
	if _, err := NormalizeDetailOutput("env"); err == nil {
		t.Fatal("env is a flat-only format")
	}
}

func TestSplitMulti(t *testing.T) {
	vals := []string{"a,b", " c ", "", ",d"}
	got := SplitMulti(vals)
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("SplitMulti length mismatch: got=%d want=%d", len(got), len(want))
	}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("SplitMulti mismatch at %d: got=%q want=%q", i, got[i], v)
		}
	}
}
