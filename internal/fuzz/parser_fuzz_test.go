package fuzztests

import (
	"context"
	"testing"
	"time"

	"sqwipt/internal/ast"
	"sqwipt/internal/diag"
	"sqwipt/internal/lexer"
	"sqwipt/internal/parser"
	"sqwipt/internal/source"
	"sqwipt/internal/testkit"
	"sqwipt/internal/token"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

type parsed struct {
	file    *source.File
	lx      *lexer.Lexer
	builder *ast.Builder
	res     parser.Result
}

func parseInput(input []byte) parsed {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.sqw", input))

	bag := diag.NewBag(128)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseProgramme(lx, builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: 128,
		MaxDepth:  parser.DefaultMaxDepth,
	})
	return parsed{file: file, lx: lx, builder: builder, res: res}
}

func FuzzParseProgramme(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)
		p := parseInput(input)

		if err := testkit.CheckSpanInvariants(p.builder, p.res.File, p.file); err != nil {
			t.Fatalf("spans for %q: %v", truncateForLog(input, 200), err)
		}
		// a good programme consumes everything
		prog := p.builder.Files.Get(p.res.File)
		if prog.Status == ast.FileGood && p.lx.Peek().Kind != token.Eof {
			t.Fatalf("good programme stopped at %s for %q", p.lx.Peek().Kind, truncateForLog(input, 200))
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// recovery paths around indentation and unclosed groups
	f.Add([]byte("(\n  (\n    (\n"))
	f.Add([]byte("f(\n  1\n  2\n"))
	f.Add([]byte("|x = (| y"))
	f.Add([]byte("[[[\n]]]\n)))"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = parseInput(input)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(append([]byte(nil), input[:maxLen]...), "..."...)
}
