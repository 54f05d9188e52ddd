package termcolor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseMode(t *testing.T) {
	cases := map[string]ColorMode{"": ModeAuto, "AUTO": ModeAuto, " always ": ModeAlways, "never": ModeNever}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil {
			t.Fatalf("ParseMode(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseMode(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseMode("sometimes"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestDetectModeEnvironment(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	cases := []struct {
		name string
		env  map[string]string
		want ColorMode
	}{
		{"plain file", nil, ModeNever},
		{"dumb beats force", map[string]string{"TERM": "dumb", "FORCE_COLOR": "1"}, ModeNever},
		{"no color beats force", map[string]string{"NO_COLOR": "1", "CLICOLOR_FORCE": "1"}, ModeNever},
		{"clicolor off", map[string]string{"CLICOLOR": "0", "FORCE_COLOR": "1"}, ModeNever},
		{"clicolor force", map[string]string{"CLICOLOR_FORCE": "1"}, ModeAlways},
		{"force color", map[string]string{"FORCE_COLOR": "true"}, ModeAlways},
		{"force zero", map[string]string{"FORCE_COLOR": "0"}, ModeNever},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectMode(f, tc.env); got != tc.want {
				t.Fatalf("DetectMode = %v, want %v", got, tc.want)
			}
		})
	}
	if DetectMode(nil, map[string]string{"FORCE_COLOR": "1"}) != ModeNever {
		t.Fatal("nil file must never be colored")
	}
}

func TestEnabled(t *testing.T) {
	if !Enabled(ModeAlways, nil, nil) {
		t.Fatal("always must be enabled")
	}
	if Enabled(ModeNever, os.Stdout, map[string]string{"FORCE_COLOR": "1"}) {
		t.Fatal("never must be disabled")
	}
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if !Enabled(ModeAuto, f, map[string]string{"FORCE_COLOR": "1"}) {
		t.Fatal("auto with FORCE_COLOR must be enabled")
	}
}

func TestApply(t *testing.T) {
	if got := Apply(HeaderStyle, "FILE", true); got != "\x1b[1;4mFILE\x1b[0m" {
		t.Fatalf("unexpected header: %q", got)
	}
	if got := Apply(NameStyle, "DB_URL", true); got != "\x1b[32mDB_URL\x1b[0m" {
		t.Fatalf("unexpected name: %q", got)
	}
	if got := Apply(HeaderStyle, "FILE", false); got != "FILE" {
		t.Fatalf("disabled styling changed text: %q", got)
	}
	if got := Apply(Style{}, "x", true); got != "x" {
		t.Fatalf("empty style changed text: %q", got)
	}
	if got := Apply(PathStyle, "", true); got != "" {
		t.Fatalf("empty text changed: %q", got)
	}
}
