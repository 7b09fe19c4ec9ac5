package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	calc "github.com/MikhailGolubtsov/calculator-demo"
)

const help = `Enter one expression or assignment per line, e.g.:

	2 + 2 * 2
	a = (1 + 2)^3
	cos(pi) * a

Operators: + - * / ^ (all fold left). Constants: pi, e.
Functions: cos, sin, tg, ctg. Commands: help, quit.`

func main() {
	log.SetFlags(0)
	var (
		inname, verb string
		echo         bool
	)
	s := calc.NewSession()
	given := func(d string) error {
		name, val, ok := strings.Cut(d, "=")
		if !ok {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, d)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return err
		}
		return s.Set(strings.TrimSpace(name), v)
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting verb")
	flag.Func("given", "name=value variable definition (any number of times)", given)
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.Parse()

	in, err := infile(inname)
	if err != nil {
		log.Fatal(err)
	}
	interactive := inname == "" && term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		fmt.Println("calculator-demo (type help for help, quit to exit)")
	}
	repl(s, in, os.Stdout, verb, echo, interactive)
}

// repl reads lines from in and evaluates each against s until EOF or a quit
// command. Errors are reported and the loop keeps going.
func repl(s *calc.Session, in io.Reader, out io.Writer, verb string, echo, interactive bool) {
	var (
		bold = color.New(color.Bold)
		red  = color.New(color.FgRed)
	)
	scan := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(out, "> ")
		}
		if !scan.Scan() {
			break
		}
		line := strings.TrimSpace(scan.Text())
		switch line {
		case "":
			continue
		case "help":
			fmt.Fprintln(out, help)
			continue
		case "quit", "exit":
			return
		}
		e, err := calc.ParseString(line)
		if err != nil {
			red.Fprintf(out, "ERROR: %v\n", err)
			continue
		}
		if echo {
			fmt.Fprintf(out, "%v : ", e)
		}
		info, err := s.Eval(e)
		if err != nil {
			red.Fprintf(out, "ERROR: %v\n", err)
			continue
		}
		if info.Name != "" {
			bold.Fprint(out, info.Name)
			fmt.Fprint(out, " = ")
		}
		fmt.Fprintf(out, verb+"\n", info.Value)
	}
	if err := scan.Err(); err != nil {
		log.Fatal(err)
	}
}

func infile(inname string) (io.Reader, error) {
	if inname == "" || inname == "-" {
		return os.Stdin, nil
	}
	return os.Open(inname)
}
