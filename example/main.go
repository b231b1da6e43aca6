package main

import (
	"fmt"
	"log/slog"
	"os"

	dom "github.com/dpotapov/go-dom"
)

const page = `<!DOCTYPE html>
<html>
<body>
  <nav><a href="/">Home</a><a href="/about" class="ext">About</a></nav>
  <div id="content">
    <p class="intro">Hello, <b>world</b>!</p>
  </div>
</body>
</html>`

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	doc, err := dom.Parse([]byte(page))
	if err != nil {
		logger.Error("parse failed", "error", err)
		os.Exit(1)
	}

	// id lookup
	if h, ok := doc.GetElementByID("content"); ok {
		fmt.Printf("#content text: %s\n", doc.InnerText(h))
	}

	// selector query
	sel, err := dom.CompileSelector("nav a[href^=/]")
	if err != nil {
		logger.Error("bad selector", "error", err)
		os.Exit(1)
	}
	it := doc.Query(sel)
	for h, ok := it.Next(); ok; h, ok = it.Next() {
		attrs, _ := doc.Attributes(h)
		href, _ := attrs.Get("href")
		fmt.Printf("link: %s\n", href)
	}

	// mutation: rewrite the About link and re-serialize it
	if h, ok, _ := doc.QuerySelector("a.ext"); ok {
		attrs, _ := doc.MutateAttributes(h)
		attrs.Set("href", []byte("https://example.com/about"))
		fmt.Printf("rewritten: %s\n", doc.OuterHTML(h))
	}
}
