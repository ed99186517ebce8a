package stdlib

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/afc/edgevm/internal/ast"
	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/numeric"
	"github.com/afc/edgevm/internal/otype"
	"github.com/afc/edgevm/internal/rterr"
	"github.com/afc/edgevm/internal/scope"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// nfc normalizes s to NFC before case conversion or shell-escaping so that
// multi-byte identifiers and content compare and render consistently
// regardless of the combining-character form the source used.
func nfc(s string) string { return norm.NFC.String(s) }

// codePoints splits s into its code points, the unit §6.2 specifies string
// indexing and substr operate over (not bytes).
func codePoints(s string) []rune { return []rune(s) }

// RegisterStrings wires the `string` pseudo-object-type's methods (§6.2)
// and the Error(description) free function into env, grounded on the
// teacher's internal/interp/builtins/strings_basic.go and
// strings_compare.go.
func RegisterStrings(pool *gcpool.Pool, env *scope.Environment) {
	// runeIndex turns a byte offset into s (or -1) into a code-point offset.
	runeIndex := func(s string, i int) int64 {
		if i < 0 {
			return int64(i)
		}
		return int64(utf8.RuneCountInString(s[:i]))
	}
	registerTable(env, "string", func(t *otype.ObjectType) {
		method(pool, t, "size", types.String, nil, types.Number, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			return value.Num(numeric.Int(int64(len(codePoints(receiverString(args)))))), nil
		})
		method(pool, t, "empty", types.String, nil, types.Bool, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			return value.Bool(len(receiverString(args)) == 0), nil
		})
		method(pool, t, "toint", types.String, nil, types.Number, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			s := receiverString(args)
			n, err := numeric.FromString(strings.TrimSpace(s))
			if err != nil {
				return value.Value{}, rterr.New(rterr.KindNumericConversion, "toint: %q is not a number", s)
			}
			return value.Num(n), nil
		})
		method(pool, t, "tolower", types.String, nil, types.String, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			return value.Str(strings.ToLower(nfc(receiverString(args)))), nil
		})
		method(pool, t, "toupper", types.String, nil, types.String, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			return value.Str(strings.ToUpper(nfc(receiverString(args)))), nil
		})
		method(pool, t, "shell_escape", types.String, nil, types.String, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			return value.Str(shellEscape(nfc(receiverString(args)))), nil
		})
		method(pool, t, "substr", types.String, []types.Type{types.Number, types.Number}, types.String, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			runes := codePoints(receiverString(args))
			pos, err := args[1].Number().ToInteger()
			if err != nil {
				return value.Value{}, rterr.New(rterr.KindNumericConversion, "substr: %v", err)
			}
			ln, err := args[2].Number().ToInteger()
			if err != nil {
				return value.Value{}, rterr.New(rterr.KindNumericConversion, "substr: %v", err)
			}
			if pos < 0 || ln < 0 || pos+ln > int64(len(runes)) {
				return value.Value{}, rterr.New(rterr.KindOutOfRange, "substr(%d, %d) out of range for string of length %d", pos, ln, len(runes))
			}
			return value.Str(string(runes[pos : pos+ln])), nil
		})
		method(pool, t, "starts_with", types.String, []types.Type{types.String}, types.Bool, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			return value.Bool(strings.HasPrefix(receiverString(args), args[1].Str())), nil
		})
		method(pool, t, "find", types.String, []types.Type{types.String}, types.Number, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			return value.Num(numeric.Int(runeIndex(receiverString(args), strings.Index(receiverString(args), args[1].Str())))), nil
		})
		method(pool, t, "find_last_of", types.String, []types.Type{types.String}, types.Number, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			return value.Num(numeric.Int(runeIndex(receiverString(args), strings.LastIndexAny(receiverString(args), args[1].Str())))), nil
		})
		method(pool, t, "find_last_not_of", types.String, []types.Type{types.String}, types.Number, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			return value.Num(numeric.Int(int64(lastIndexNotOf(receiverString(args), args[1].Str())))), nil
		})
		method(pool, t, "find_first_of", types.String, []types.Type{types.String}, types.Number, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			return value.Num(numeric.Int(runeIndex(receiverString(args), strings.IndexAny(receiverString(args), args[1].Str())))), nil
		})
		method(pool, t, "find_first_not_of", types.String, []types.Type{types.String}, types.Number, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			return value.Num(numeric.Int(runeIndex(receiverString(args), firstIndexNotOf(receiverString(args), args[1].Str())))), nil
		})
	})

	freeFn(pool, env, "Error", []types.Type{types.String}, types.Void, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
		return value.Value{}, rterr.Explicit(args[0].Str())
	})
}

// shellEscape wraps s in single quotes, escaping any embedded single quote
// the POSIX-shell way ('\''), matching the escaping exec.Command's own
// argv handling relies on being unnecessary for (single-quoted literals
// need no further splitting).
func shellEscape(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func lastIndexNotOf(s, chars string) int {
	runes := []rune(s)
	for i := len(runes) - 1; i >= 0; i-- {
		if !strings.ContainsRune(chars, runes[i]) {
			return i
		}
	}
	return -1
}

func firstIndexNotOf(s, chars string) int {
	for i, r := range s {
		if !strings.ContainsRune(chars, r) {
			return i
		}
	}
	return -1
}
