package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

const maxFuzzInput = 1 << 16

var languageSeeds = []string{
	"",
	"func main() int { 0 }\n",
	"func main() { }",
	"extern func print(v int);\nfunc main() { print(1); }",
	"func f(a int, b bool) int { if b { a } else { 0 - a } }\nfunc main() int { f(2, true) }",
	"func main() int { let i = 0; loop { if i == 3 { break; } i = i + 1; } i }",
	"func main() bool { !(1 < 2) || true && false }",
	"func main() int { (true as int) + (7 as bool as int) }",
	"func main() int { let x = 1; { let x = 2; } x }",
	"func main() int { 0x7fffffffffffffff + 1 }",
	"/* unterminated",
	"func main() { let = ; }",
	"func f() int { return; }",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".wsk" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src, maxSeedBytes))
		return nil
	})
}

func clamp(src []byte, limit int) []byte {
	if len(src) > limit {
		src = src[:limit]
	}
	return append([]byte(nil), src...)
}

// truncateForLog truncates input for logging purposes.
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(clamp(input, maxLen), "..."...)
}
