// Command domgrep extracts elements from an HTML file by CSS-like selector.
//
//	domgrep [-inner|-text|-pretty] [-filter EXPR] SELECTOR [FILE]
//
// With no FILE, the input is read from stdin. Each match prints as its outer
// markup unless -inner, -text or -pretty chooses another rendering. A -filter
// expression runs against every match with the variables tag, id, classes,
// attrs and text in scope; only matches evaluating to true are printed.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	dom "github.com/dpotapov/go-dom"
)

func main() {
	var (
		inner   = flag.Bool("inner", false, "print inner markup instead of outer")
		text    = flag.Bool("text", false, "print concatenated text content")
		pretty  = flag.Bool("pretty", false, "re-indent matches (well-formed markup only)")
		filter  = flag.String("filter", "", "boolean expression to filter matches")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	if flag.NArg() < 1 || flag.NArg() > 2 {
		fmt.Fprintln(os.Stderr, "usage: domgrep [flags] SELECTOR [FILE]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(logger, flag.Args(), *inner, *text, *pretty, *filter); err != nil {
		logger.Error("domgrep failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, args []string, inner, text, pretty bool, filter string) error {
	sel, err := dom.CompileSelector(args[0])
	if err != nil {
		return fmt.Errorf("compile selector %q: %w", args[0], err)
	}

	var input []byte
	if len(args) == 2 {
		input, err = os.ReadFile(args[1])
	} else {
		input, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	doc, err := dom.Parse(input)
	if err != nil {
		return fmt.Errorf("parse input: %w", err)
	}
	logger.Debug("parsed document", "bytes", len(input), "nodes", len(doc.Nodes()))

	var prog *vm.Program
	if filter != "" {
		prog, err = expr.Compile(filter, expr.AsBool(), expr.AllowUndefinedVariables())
		if err != nil {
			return fmt.Errorf("compile filter: %w", err)
		}
	}

	out := os.Stdout
	matches := 0
	it := doc.Query(sel)
	for h, ok := it.Next(); ok; h, ok = it.Next() {
		if prog != nil {
			keep, err := expr.Run(prog, matchEnv(doc, h))
			if err != nil {
				return fmt.Errorf("run filter: %w", err)
			}
			if keep != true {
				continue
			}
		}
		matches++
		switch {
		case text:
			fmt.Fprintf(out, "%s\n", doc.InnerText(h))
		case inner:
			fmt.Fprintf(out, "%s\n", doc.InnerHTML(h))
		case pretty:
			markup, err := indentMarkup(doc.OuterHTML(h))
			if err != nil {
				logger.Warn("match is not well-formed, printing raw", "error", err)
				markup = doc.OuterHTML(h)
			}
			fmt.Fprintf(out, "%s\n", markup)
		default:
			fmt.Fprintf(out, "%s\n", doc.OuterHTML(h))
		}
	}
	logger.Debug("query finished", "selector", sel.String(), "matches", matches)
	return nil
}

// matchEnv builds the filter expression environment for one match.
func matchEnv(doc *dom.Document, h dom.NodeHandle) map[string]any {
	n, err := doc.Element(h)
	if err != nil {
		return nil
	}
	attrs := map[string]string{}
	for _, a := range n.Attributes().Entries() {
		attrs[a.Key.String()] = a.Value.String()
	}
	var id string
	if v, ok := n.Attributes().ID(); ok {
		id = v.String()
	}
	var classes []string
	if v, ok := n.Attributes().Class(); ok {
		classes = strings.Fields(v.String())
	}
	return map[string]any{
		"tag":     n.TagName().String(),
		"id":      id,
		"classes": classes,
		"attrs":   attrs,
		"text":    string(doc.InnerText(h)),
	}
}

// indentMarkup re-indents a markup fragment. Only fragments that are also
// well-formed XML survive the round trip; lenient HTML falls back to raw.
func indentMarkup(markup []byte) ([]byte, error) {
	x := etree.NewDocument()
	x.ReadSettings.Permissive = true
	if err := x.ReadFromBytes(markup); err != nil {
		return nil, err
	}
	x.Indent(2)
	return x.WriteToBytes()
}
