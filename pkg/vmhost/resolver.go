package vmhost

import (
	"os"
	"path/filepath"

	"github.com/afc/edgevm/internal/cerr"
	"github.com/afc/edgevm/internal/lexer"
)

// FileResolver resolves #include directives against the filesystem: the
// `"path"` form relative to the including file's own directory, the
// `<path>` form searched across SearchPaths in order, mirroring the
// teacher's unit search-path handling in cmd/dwscript/cmd/run.go
// (searchPaths / units.NewUnitRegistry), adapted from DWScript's unit
// lookup to this language's #include directive.
type FileResolver struct {
	SearchPaths []string
}

func (r FileResolver) ResolveLocal(fromSource, path string) (lexer.Source, error) {
	dir := filepath.Dir(fromSource)
	full := filepath.Join(dir, path)
	content, err := os.ReadFile(full)
	if err != nil {
		return lexer.Source{}, &cerr.CompilationError{Source: fromSource, Message: "cannot open include \"" + path + "\": " + err.Error()}
	}
	return lexer.Source{Name: full, Content: string(content)}, nil
}

func (r FileResolver) ResolveSystem(path string) (lexer.Source, error) {
	for _, dir := range r.SearchPaths {
		full := filepath.Join(dir, path)
		content, err := os.ReadFile(full)
		if err == nil {
			return lexer.Source{Name: full, Content: string(content)}, nil
		}
	}
	return lexer.Source{}, &cerr.CompilationError{Source: "<" + path + ">", Message: "include not found in search paths: <" + path + ">"}
}
