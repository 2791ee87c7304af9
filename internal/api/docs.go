package api

import (
	_ "embed"
	"net/http"
	"sync"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed API.md
var apiDocs []byte

var renderDocsOnce = sync.OnceValue(func() []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse(apiDocs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	body := markdown.Render(doc, renderer)

	page := []byte(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>gridpulse API</title>
<style>
body { font-family: sans-serif; max-width: 56rem; margin: 2rem auto; padding: 0 1rem; }
code { background: #f4f4f4; padding: 0.1rem 0.3rem; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 0.3rem 0.6rem; }
</style>
</head>
<body>
`)
	page = append(page, body...)
	page = append(page, []byte("\n</body>\n</html>\n")...)
	return page
})

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(renderDocsOnce())
}
