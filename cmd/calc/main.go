package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"

	calc "github.com/KenJFischer/Expression-Evaluator"
)

func main() {
	log.SetFlags(0)
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run evaluates each expression named by args, or each line of input, and
// prints its result or error. The result is the exit status: 0 if every
// expression evaluated, 1 if any failed, 2 for usage errors.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "calc: ", 0)
	flags := flag.NewFlagSet("calc", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		inname, verb           string
		echo, dump, trace      bool
		rpow, parensEndNumbers bool
	)
	flags.StringVar(&inname, "in", "", "input file, one expression per line (default stdin if no args given)")
	flags.StringVar(&verb, "fmt", "%g", "result formatting string")
	flags.BoolVar(&echo, "echo", false, "print parse trees")
	flags.BoolVar(&dump, "dump", false, "dump parsed expressions in full")
	flags.BoolVar(&trace, "trace", false, "log each operation to stderr")
	flags.BoolVar(&rpow, "rpow", false, "make ^ right-associative")
	flags.BoolVar(&parensEndNumbers, "parens-end-numbers", false, "let parentheses separate numbers when checking decimal points")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	var popts []calc.ParseOption
	if rpow {
		popts = append(popts, calc.RightAssocPow())
	}
	if parensEndNumbers {
		popts = append(popts, calc.ParensEndNumbers())
	}
	var eopts []calc.EvalOption
	if trace {
		h := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		eopts = append(eopts, calc.Trace(slog.New(h)))
	}
	dumper := spew.ConfigState{Indent: "\t", DisablePointerAddresses: true, DisableCapacities: true}

	status := 0
	verb += "\n"
	eval := func(src string) {
		a, err := calc.Parse(src, popts...)
		if err != nil {
			fmt.Fprintln(stdout, err)
			status = 1
			return
		}
		if echo {
			fmt.Fprintf(stdout, "%v : ", a)
		}
		if dump {
			dumper.Fdump(stdout, a)
		}
		fmt.Fprintf(stdout, verb, a.Eval(eopts...))
	}

	for _, arg := range flags.Args() {
		eval(arg)
	}
	f, closer, err := infile(inname, stdin, flags.NArg() == 0)
	if err != nil {
		logger.Print(err)
		return 1
	}
	if closer != nil {
		defer closer.Close()
	}
	if f == nil {
		return status
	}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		eval(line)
	}
	if err := sc.Err(); err != nil {
		logger.Print(err)
		return 1
	}
	return status
}

func infile(inname string, stdin io.Reader, std bool) (io.Reader, io.Closer, error) {
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, nil, err
		}
		return in, in, nil
	case inname == "-", std:
		return stdin, nil, nil
	}
	return nil, nil, nil
}
