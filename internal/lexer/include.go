package lexer

import (
	"strings"

	"github.com/afc/edgevm/internal/cerr"
)

// Source is one unit of program text: a name (a file path, or a synthetic
// name like "<string>" for host-supplied snippets) plus its content.
type Source struct {
	Name    string
	Content string
}

// Resolver resolves an #include directive's target into a Source.
// ResolveLocal handles the `"PATH"` form (relative to the including file's
// directory); ResolveSystem handles the `<PATH>` form (searched across a
// configured list of library directories).
type Resolver interface {
	ResolveLocal(fromSource, path string) (Source, error)
	ResolveSystem(path string) (Source, error)
}

// NoIncludes is a Resolver that rejects every #include, for callers (tests,
// host snippets known to be self-contained) that don't need the directive.
type NoIncludes struct{}

func (NoIncludes) ResolveLocal(fromSource, path string) (Source, error) {
	return Source{}, &cerr.CompilationError{Source: fromSource, Message: "includes are not supported: \"" + path + "\""}
}

func (NoIncludes) ResolveSystem(path string) (Source, error) {
	return Source{}, &cerr.CompilationError{Source: fromSource(path), Message: "includes are not supported: <" + path + ">"}
}

func fromSource(path string) string { return "<" + path + ">" }

// Tokenize scans root, following every #include directive via resolver,
// and returns the flattened token stream (ending in a single EOF token)
// with each token's position relative to its own source. Tokens do not
// carry the #include chain; only the error for an ILLEGAL token reports
// it, as "included from" frames.
func Tokenize(root Source, resolver Resolver, opts ...Option) ([]Token, error) {
	toks, err := tokenizeSource(root, nil, resolver, opts)
	if err != nil {
		return nil, err
	}
	toks = append(toks, Token{Kind: EOF, Source: root.Name})
	return toks, nil
}

func tokenizeSource(src Source, chain []cerr.IncludeFrame, resolver Resolver, opts []Option) ([]Token, error) {
	var out []Token
	lines := strings.Split(src.Content, "\n")

	chunkStart := 0 // 0-based line index where the current plain-text chunk began
	flush := func(end int) error {
		if end <= chunkStart {
			return nil
		}
		chunkText := strings.Join(lines[chunkStart:end], "\n")
		lx := New(src.Name, chunkText, opts...)
		// Re-base line numbers onto the original file by offsetting.
		offset := chunkStart
		for {
			t := lx.Next()
			if t.Kind == EOF {
				break
			}
			t.Line += offset
			if t.Kind == ILLEGAL {
				return cerrFromToken(t, chain)
			}
			out = append(out, t)
		}
		return nil
	}

	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if !strings.HasPrefix(trimmed, "#include") {
			continue
		}
		if err := flush(i); err != nil {
			return nil, err
		}
		indent := len(line) - len(trimmed)
		spec := strings.TrimSpace(trimmed[len("#include"):])
		included, frame, err := parseIncludeSpec(src.Name, i+1, indent+1, spec, resolver)
		if err != nil {
			return nil, err
		}
		childChain := append(append([]cerr.IncludeFrame{}, chain...), frame)
		childToks, err := tokenizeSource(included, childChain, resolver, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, childToks...)
		chunkStart = i + 1
	}
	if err := flush(len(lines)); err != nil {
		return nil, err
	}
	return out, nil
}

func parseIncludeSpec(fromSourceName string, line, col int, spec string, resolver Resolver) (Source, cerr.IncludeFrame, error) {
	frame := cerr.IncludeFrame{Source: fromSourceName, Line: line, Column: col}
	if len(spec) >= 2 && spec[0] == '"' && spec[len(spec)-1] == '"' {
		path := spec[1 : len(spec)-1]
		src, err := resolver.ResolveLocal(fromSourceName, path)
		return src, frame, err
	}
	if len(spec) >= 2 && spec[0] == '<' && spec[len(spec)-1] == '>' {
		path := spec[1 : len(spec)-1]
		src, err := resolver.ResolveSystem(path)
		return src, frame, err
	}
	return Source{}, frame, cerr.New(fromSourceName, line, col, "", "malformed #include directive: %s", spec)
}

func cerrFromToken(t Token, chain []cerr.IncludeFrame) error {
	e := cerr.New(t.Source, t.Line, t.Column, "", "%s", t.Literal)
	return e.WithChain(chain)
}
