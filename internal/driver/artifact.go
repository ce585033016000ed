package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rknit/whiskc/internal/bytecode"
)

// WriteArtifact encodes prog and replaces path atomically: the bytes go to a
// temp file in the same directory which is then renamed over path.
// A zero codec selects msgpack.
func WriteArtifact(path string, prog *bytecode.Program, codec bytecode.Codec) (int, error) {
	if codec == 0 {
		codec = bytecode.CodecMsgpack
	}
	data, err := bytecode.Encode(prog, codec)
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpName) //nolint:errcheck
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close() //nolint:errcheck
		cleanup()
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return len(data), nil
}

// LoadProgram reads and decodes an artifact written by WriteArtifact.
func LoadProgram(path string) (*bytecode.Program, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingSourceFile, path)
		}
		return nil, err
	}
	prog, err := bytecode.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prog, nil
}

// IsArtifact reports whether data starts with the artifact header.
func IsArtifact(data []byte) bool {
	_, ok := bytecode.CodecOf(data)
	return ok
}
