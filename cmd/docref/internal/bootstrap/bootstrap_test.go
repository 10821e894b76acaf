package bootstrap

import (
	"testing"
)

func TestSplitPatterns(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"*.md", []string{"*.md"}},
		{"*.md, docs/*.md , ,*.markdown", []string{"*.md", "docs/*.md", "*.markdown"}},
	}
	for _, tc := range cases {
		got := SplitPatterns(tc.in)
		if len(got) != len(tc.want) {
			t.Fatalf("SplitPatterns(%q) = %v, want %v", tc.in, got, tc.want)
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Fatalf("SplitPatterns(%q)[%d] = %q, want %q", tc.in, i, got[i], tc.want[i])
			}
		}
	}
}

func TestBuildModule(t *testing.T) {
	module, err := BuildModule(Options{Dir: t.TempDir(), Recursive: true})
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}
	if module.Module == nil || module.Runner == nil || module.Provider == nil || module.Logger == nil {
		t.Fatalf("module wiring incomplete: %+v", module)
	}
}

func TestBuildModuleRejectsBadConfig(t *testing.T) {
	if _, err := BuildModule(Options{Dir: ".", LogLevel: "verbose"}); err == nil {
		t.Fatalf("expected config validation error")
	}
	if _, err := BuildModule(Options{Dir: ".", OutputFormat: "yaml"}); err == nil {
		t.Fatalf("expected output format error")
	}
}
