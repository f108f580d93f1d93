// Command fend is an arbitrary-precision calculator with units, dates
// and lambdas. With arguments it evaluates them as one expression;
// without, it runs a REPL.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/kr/pretty"

	"github.com/MattTheNub/fend/config"
	"github.com/MattTheNub/fend/eval"
	"github.com/MattTheNub/fend/parser"
)

var flagDump = flag.Bool("dump", false, "print the parsed tree instead of evaluating")

func main() {
	log.SetFlags(0)
	flag.Parse()

	if args := flag.Args(); len(args) > 0 {
		if err := runOnce(strings.Join(args, " ")); err != nil {
			log.Fatalf("fend: %s.", err)
		}
		return
	}
	if err := repl(); err != nil {
		log.Fatalf("fend: %s.", err)
	}
}

func runOnce(input string) error {
	expr, err := parser.ParseString(input)
	if err != nil {
		return err
	}
	if *flagDump {
		pretty.Println(expr)
		return nil
	}
	res, err := eval.NewContext().Evaluate(expr)
	if err != nil {
		return err
	}
	if s := res.String(); s != "" {
		fmt.Println(s)
	}
	return nil
}

// prompter holds the prompt string, which the config watcher may swap
// out while the REPL is blocked reading a line.
type prompter struct {
	mu sync.Mutex
	s  string
}

func (p *prompter) set(s string) {
	p.mu.Lock()
	p.s = s
	p.mu.Unlock()
}

func (p *prompter) print() {
	p.mu.Lock()
	fmt.Print(p.s)
	p.mu.Unlock()
}

func repl() error {
	cfg := config.Default()
	cfgPath, err := config.ConfigFile()
	if err == nil {
		if loaded, lerr := config.Load(cfgPath); lerr == nil {
			cfg = loaded
		} else {
			log.Printf("fend: %s.", lerr)
		}
	}

	prompt := &prompter{s: cfg.Prompt}
	if cfgPath != "" {
		if closer, werr := config.Watch(cfgPath, func(c *config.Config) {
			prompt.set(c.Prompt)
		}); werr == nil {
			defer closer.Close()
		}
	}

	// History is best effort: a read-only state dir only disables it.
	var history *os.File
	if histPath, herr := config.HistoryFile(); herr == nil {
		history, _ = os.OpenFile(histPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if history != nil {
			defer history.Close()
		}
	}

	ctx := eval.NewContext()
	sc := bufio.NewScanner(os.Stdin)
	for {
		prompt.print()
		if !sc.Scan() {
			fmt.Println()
			return sc.Err()
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		if history != nil {
			fmt.Fprintln(history, line)
		}

		expr, err := parser.ParseString(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			continue
		}
		if *flagDump {
			pretty.Println(expr)
			continue
		}
		res, err := ctx.Evaluate(expr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			continue
		}
		if s := res.String(); s != "" {
			fmt.Println(s)
		}
	}
}
