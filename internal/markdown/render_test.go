package markdown

import (
	"strings"
	"testing"
)

func TestRender_BasicMarkdown(t *testing.T) {
	out, err := Render("# Title\n\nsome *emphasis* here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<h1>Title</h1>") {
		t.Errorf("heading not rendered: %q", out)
	}
	if !strings.Contains(out, "<em>emphasis</em>") {
		t.Errorf("emphasis not rendered: %q", out)
	}
}

func TestRender_HighlightsFencedCode(t *testing.T) {
	out, err := Render("```go\nfunc main() {}\n```\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<pre") {
		t.Errorf("code block not rendered as pre: %q", out)
	}
	// Inline-styled chroma output wraps tokens in styled spans.
	if !strings.Contains(out, "<span") || !strings.Contains(out, "func") {
		t.Errorf("code block not highlighted: %q", out)
	}
}

func TestRender_UnknownLanguageFallsBack(t *testing.T) {
	out, err := Render("```nosuchlang\nplain text body\n```\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "plain text body") {
		t.Errorf("code content lost: %q", out)
	}
}

func TestRender_OmitsRawHTML(t *testing.T) {
	out, err := Render("before\n\n<script>alert(1)</script>\n\nafter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("raw HTML leaked through markdown rendering: %q", out)
	}
}
