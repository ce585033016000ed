package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/rknit/whiskc/internal/bytecode"
)

// Config is the effective build and run configuration. Values come from
// whisk.toml when the key is present and from Default otherwise.
type Config struct {
	Build BuildConfig
	Run   RunConfig
}

type BuildConfig struct {
	Fold           bool
	MaxDiagnostics int
	ArtifactExt    string // without the leading dot
	Codec          bytecode.Codec
	Jobs           int
}

type RunConfig struct {
	MaxFrames int
	MaxSteps  uint64
}

// Default returns the configuration used without a manifest.
func Default() Config {
	return Config{
		Build: BuildConfig{
			Fold:           true,
			MaxDiagnostics: 100,
			ArtifactExt:    "wc",
			Codec:          bytecode.CodecMsgpack,
			Jobs:           4,
		},
		Run: RunConfig{
			MaxFrames: 1024,
		},
	}
}

// Manifest is a loaded whisk.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type fileConfig struct {
	Build struct {
		Fold           bool   `toml:"fold"`
		MaxDiagnostics int    `toml:"max_diagnostics"`
		ArtifactExt    string `toml:"artifact_ext"`
		Codec          string `toml:"codec"`
		Jobs           int    `toml:"jobs"`
	} `toml:"build"`
	Run struct {
		MaxFrames int    `toml:"max_frames"`
		MaxSteps  uint64 `toml:"max_steps"`
	} `toml:"run"`
}

// LoadManifest finds whisk.toml above startDir and loads it. ok is false
// when no manifest exists.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes path over Default.
func LoadConfig(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg := Default()
	b := &cfg.Build
	if meta.IsDefined("build", "fold") {
		b.Fold = raw.Build.Fold
	}
	if meta.IsDefined("build", "max_diagnostics") {
		if raw.Build.MaxDiagnostics < 0 {
			return Config{}, fmt.Errorf("%s: [build].max_diagnostics must not be negative", path)
		}
		b.MaxDiagnostics = raw.Build.MaxDiagnostics
	}
	if meta.IsDefined("build", "artifact_ext") {
		ext := strings.TrimPrefix(strings.TrimSpace(raw.Build.ArtifactExt), ".")
		if ext == "" || strings.ContainsAny(ext, `/\`) {
			return Config{}, fmt.Errorf("%s: invalid [build].artifact_ext %q", path, raw.Build.ArtifactExt)
		}
		b.ArtifactExt = ext
	}
	if meta.IsDefined("build", "codec") {
		codec, err := bytecode.ParseCodec(raw.Build.Codec)
		if err != nil {
			return Config{}, fmt.Errorf("%s: [build].codec: %w", path, err)
		}
		b.Codec = codec
	}
	if meta.IsDefined("build", "jobs") {
		if raw.Build.Jobs < 1 {
			return Config{}, fmt.Errorf("%s: [build].jobs must be at least 1", path)
		}
		b.Jobs = raw.Build.Jobs
	}

	r := &cfg.Run
	if meta.IsDefined("run", "max_frames") {
		if raw.Run.MaxFrames < 1 {
			return Config{}, fmt.Errorf("%s: [run].max_frames must be at least 1", path)
		}
		r.MaxFrames = raw.Run.MaxFrames
	}
	if meta.IsDefined("run", "max_steps") {
		r.MaxSteps = raw.Run.MaxSteps
	}
	return cfg, nil
}

// ArtifactPath replaces the extension of src with ext.
func ArtifactPath(src, ext string) string {
	base := strings.TrimSuffix(src, filepath.Ext(src))
	return base + "." + strings.TrimPrefix(ext, ".")
}
