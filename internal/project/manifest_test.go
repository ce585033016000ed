package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rknit/whiskc/internal/bytecode"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := FindProjectRoot(nested)
	if err != nil || !ok {
		t.Fatalf("FindProjectRoot: ok=%v err=%v", ok, err)
	}
	want, err := filepath.Abs(root)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("root = %s, want %s", got, want)
	}
}

func TestLoadConfigKeepsDefaultsForUnsetKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[build]
fold = false
codec = "cbor"

[run]
max_steps = 5000
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	def := Default()
	if cfg.Build.Fold {
		t.Error("fold = false was not applied")
	}
	if cfg.Build.Codec != bytecode.CodecCBOR {
		t.Errorf("codec = %s", cfg.Build.Codec)
	}
	if cfg.Build.MaxDiagnostics != def.Build.MaxDiagnostics || cfg.Build.Jobs != def.Build.Jobs {
		t.Errorf("unset keys lost their defaults: %+v", cfg.Build)
	}
	if cfg.Build.ArtifactExt != "wc" {
		t.Errorf("artifact_ext = %q", cfg.Build.ArtifactExt)
	}
	if cfg.Run.MaxSteps != 5000 || cfg.Run.MaxFrames != def.Run.MaxFrames {
		t.Errorf("run = %+v", cfg.Run)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[build\n", "failed to parse TOML"},
		{"codec", "[build]\ncodec = \"json\"\n", "[build].codec"},
		{"jobs", "[build]\njobs = 0\n", "[build].jobs"},
		{"frames", "[run]\nmax_frames = 0\n", "[run].max_frames"},
		{"ext", "[build]\nartifact_ext = \"a/b\"\n", "artifact_ext"},
		{"unknown", "[build]\noptimize = true\n", "unknown keys: build.optimize"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.content)
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadManifestMissing(t *testing.T) {
	m, ok, err := LoadManifest(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Skipf("found %s above the temp dir", m.Path)
	}
	if m != nil {
		t.Error("manifest returned without ok")
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct{ src, ext, want string }{
		{"foo.wsk", "wc", "foo.wc"},
		{"dir/prog.wsk", ".bin", "dir/prog.bin"},
		{"noext", "wc", "noext.wc"},
	}
	for _, tt := range tests {
		if got := ArtifactPath(tt.src, tt.ext); got != tt.want {
			t.Errorf("ArtifactPath(%q, %q) = %q, want %q", tt.src, tt.ext, got, tt.want)
		}
	}
}
