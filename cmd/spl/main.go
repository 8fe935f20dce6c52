package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"splc/src/ast"
	"splc/src/diag"
	"splc/src/ir"
	"splc/src/lexer"
	"splc/src/parser"
	"splc/src/sema"
	"splc/src/util"
)

// run drives the compiler stages in order, mirroring the teacher's
// run/main split (src/main.go): read source, lex/parse, analyse, then
// emit. Unlike the teacher, every stage here runs sequentially on the
// main goroutine (spec.md §5) — there is no output-writer goroutine to
// wire up before exit.
func run(opt util.Options) error {
	src, err := util.ReadSource(opt)
	if err != nil {
		return fmt.Errorf("could not read source code: %s", err)
	}

	if opt.Tokens {
		lx := lexer.New(opt.Src, src)
		for {
			it, ok := lx.Next()
			if !ok {
				break
			}
			if it.Err != nil {
				fmt.Println(it.Err.Error())
				continue
			}
			fmt.Println(it.Tok)
		}
		return nil
	}

	prog, parseDiags := parser.Parse(opt.Src, src)
	if opt.Dump {
		fmt.Print(ast.Print(prog))
		return nil
	}

	semaDiags := sema.Walk(prog, src, opt.Src)

	all := append(parseDiags.Sorted(), semaDiags.Sorted()...)
	report(all)
	if len(all) > 0 {
		return fmt.Errorf("compilation failed with %d error(s)", len(all))
	}

	if !opt.LLVM {
		return nil
	}

	name := strings.TrimSuffix(filepath.Base(opt.Src), filepath.Ext(opt.Src))
	if name == "" {
		name = "spl"
	}
	out, err := ir.GenLLVM(prog, name, opt.Triple)
	if err != nil {
		return fmt.Errorf("error reported by LLVM: %s", err)
	}
	return util.WriteOutput(opt.Out, out)
}

// report prints every diagnostic, one per line, in the spec.md §6 report
// format (diag.Diagnostic.Error already renders it).
func report(diags []diag.Diagnostic) {
	for _, d := range diags {
		fmt.Println(d.Error())
	}
}

func main() {
	opt, err := util.ParseArgs()
	if err != nil {
		fmt.Printf("command line argument error: %s\n", err)
		os.Exit(1)
	}

	if err := run(opt); err != nil {
		fmt.Printf("error: %s\n", err)
		os.Exit(1)
	}
}
