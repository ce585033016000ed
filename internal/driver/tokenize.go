package driver

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/lexer"
	"github.com/rknit/whiskc/internal/source"
	"github.com/rknit/whiskc/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes path to EOF. Lexical errors land in the bag.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fset := source.NewFileSet()
	fileID, err := fset.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingSourceFile, path)
		}
		return nil, err
	}
	file := fset.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	return &TokenizeResult{
		FileSet: fset,
		File:    file,
		Tokens:  lx.All(),
		Bag:     bag,
	}, nil
}
