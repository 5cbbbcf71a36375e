// Package sanitize provides HTML sanitization for note bodies. The editor
// widget produces HTML directly; everything it sends is treated as hostile
// and run through bluemonday before storage, stripping script tags, event
// handlers, and javascript: URLs while preserving the editor's marks.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton bluemonday policy for sanitizing editor HTML.
// Initialized once via sync.Once for thread-safe lazy initialization.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, initializing it on first call.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()

		// Code blocks carry their language as a class (language-go etc.)
		// which the client-side highlighter reads back.
		policy.AllowAttrs("class").OnElements("pre", "code")

		// Inline color marks from the editor are style attributes on spans.
		policy.AllowAttrs("style").OnElements("span", "p", "td", "th")
		policy.AllowStyles("color", "background-color").Globally()

		// Tables.
		policy.AllowElements("table", "thead", "tbody", "tr", "td", "th", "colgroup", "col", "caption")
		policy.AllowAttrs("colspan", "rowspan").OnElements("td", "th")

		// Images with positioning, sizing, and captions. Sources are
		// restricted to relative URLs (the image endpoint) and data URIs
		// for small pasted images.
		policy.AllowElements("figure", "figcaption")
		policy.AllowAttrs("data-align", "data-width").OnElements("img", "figure")

		// The editor tracks stored images through this attribute; stripping
		// it would orphan blobs when content is edited after a reload.
		policy.AllowAttrs("data-image-id").OnElements("img")
		policy.AllowRelativeURLs(true)
		policy.AllowDataURIImages()
	})
	return policy
}

// HTML sanitizes editor-produced HTML by stripping dangerous elements while
// preserving the editor's formatting marks. Called on every note body that
// looks like HTML before it reaches the store.
func HTML(input string) string {
	if input == "" {
		return ""
	}
	return getPolicy().Sanitize(input)
}

// LooksLikeHTML reports whether a note body came from the rich-text editor
// rather than being legacy Markdown. The editor always emits a leading tag;
// Markdown essentially never starts with one.
func LooksLikeHTML(content string) bool {
	trimmed := strings.TrimSpace(content)
	return strings.HasPrefix(trimmed, "<")
}
