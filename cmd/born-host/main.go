// Package main provides born-host, a line-oriented host for born arrays.
//
// Each line calls one runtime function with JSON arguments; $N refers to
// the result of line N:
//
//	array [[1, 2], [3, 4]]
//	sum $1, 1
//	evalAsync $1, $2
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/born-ml/born-host/host"
	"github.com/born-ml/born-host/internal/async"
)

const version = "v0.1.0-dev"

var (
	indexStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	funcStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))
)

func main() {
	os.Exit(run())
}

// run executes the command and returns the process exit code, so deferred
// cleanup completes before the process exits.
func run() int {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("born-host %s\n", version)
		return 0
	}

	var (
		expr        = flag.String("e", "", "Lines to evaluate, separated by ';'")
		file        = flag.String("f", "", "File of lines to evaluate")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		list        = flag.Bool("list", false, "List runtime functions and exit")
		verbose     = flag.Bool("v", false, "Log to stderr")
	)
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		logger = l
	}
	defer func() { _ = logger.Sync() }()
	async.SetLogger(logger.Named("async"))

	rt := host.New(host.WithLogger(logger))
	defer func() { _ = rt.Close() }()

	if *list {
		for _, name := range rt.Functions() {
			fmt.Println(name)
		}
		return 0
	}

	s := newSession(rt)
	var err error
	switch {
	case *interactive:
		err = runInteractive(s)
	case *expr != "":
		err = runLines(s, strings.NewReader(strings.ReplaceAll(*expr, ";", "\n")), os.Stdout)
	case *file != "":
		var f *os.File
		if f, err = os.Open(*file); err == nil {
			err = runLines(s, f, os.Stdout)
			f.Close()
		}
	case term.IsTerminal(int(os.Stdin.Fd())):
		err = runInteractive(s)
	default:
		err = runLines(s, os.Stdin, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runLines evaluates every line of r and prints results to w. Evaluation
// stops at the first failing line.
func runLines(s *session, r io.Reader, w io.Writer) error {
	styled := isTerminal(w)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		n, out, err := s.eval(scanner.Text())
		if err == errEmptyLine {
			continue
		}
		if err != nil {
			return err
		}
		index := fmt.Sprintf("$%d =", n)
		if styled {
			index, out = indexStyle.Render(index), resultStyle.Render(out)
		}
		fmt.Fprintln(w, index, out)
	}
	return scanner.Err()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
