package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/afc/edgevm/internal/lexer"
)

var (
	lexEval     string
	lexShowPos  bool
	lexOnlyErrs bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a source file or expression",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexOnlyErrs, "only-errors", false, "show only illegal tokens")
}

func runLex(cmd *cobra.Command, args []string) error {
	name, content, err := readSource(lexEval, args)
	if err != nil {
		return err
	}

	toks, err := lexer.Tokenize(lexer.Source{Name: name, Content: content}, lexer.NoIncludes{})
	if err != nil {
		return err
	}

	errCount := 0
	for _, tok := range toks {
		if lexOnlyErrs && tok.Kind != lexer.ILLEGAL {
			continue
		}
		if tok.Kind == lexer.ILLEGAL {
			errCount++
		}
		line := fmt.Sprintf("%-12v %q", tok.Kind, tok.Literal)
		if lexShowPos {
			line += fmt.Sprintf(" @%d:%d", tok.Line, tok.Column)
		}
		fmt.Println(line)
	}

	if lexOnlyErrs && errCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errCount)
	}
	return nil
}

func readSource(eval string, args []string) (name, content string, err error) {
	if eval != "" {
		return "<eval>", eval, nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return args[0], string(data), nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
}
