// Package markdown renders legacy Markdown note bodies to HTML. Notes
// created before the rich-text editor store Markdown; the render endpoint
// serves them as HTML with syntax-highlighted code fences so the browsing
// UI can display both generations of content the same way.
package markdown

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// highlightStyle is the chroma style for fenced code blocks. Inline styles
// keep the rendered HTML self-contained (no stylesheet coupling).
const highlightStyle = "github"

// md is the shared converter. Raw HTML inside Markdown is omitted by
// goldmark's defaults, which is exactly what we want for untrusted bodies.
var md = goldmark.New(
	goldmark.WithRendererOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&codeBlockRenderer{}, 100),
		),
	),
)

// Render converts a Markdown note body to HTML.
func Render(content string) (string, error) {
	var b bytes.Buffer
	if err := md.Convert([]byte(content), &b); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return b.String(), nil
}

// codeBlockRenderer replaces goldmark's fenced code block output with
// chroma-highlighted markup, using the fence's info string as the language.
type codeBlockRenderer struct{}

// RegisterFuncs registers the fenced code block override.
func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(source))
	}

	lang := string(n.Language(source))
	if err := highlight(w, code.String(), lang); err != nil {
		// Highlighting is best-effort; fall back to an escaped plain block.
		fmt.Fprintf(w, "<pre><code>%s</code></pre>\n", html.EscapeString(code.String()))
	}
	return ast.WalkSkipChildren, nil
}

// highlight writes chroma-highlighted HTML for the given code and language.
// Unknown languages tokenize through the fallback lexer (plain text).
func highlight(w io.Writer, code, lang string) error {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return fmt.Errorf("tokenizing code block: %w", err)
	}

	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}

	formatter := chromahtml.New(chromahtml.TabWidth(4))
	if err := formatter.Format(w, style, iterator); err != nil {
		return fmt.Errorf("formatting code block: %w", err)
	}
	return nil
}
