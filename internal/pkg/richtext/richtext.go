// Package richtext cleans HTML produced by the admin editor and renders
// plain-text submissions for display.
package richtext

import (
	"bytes"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy

	md = goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough))
)

func ugcPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		p.AllowAttrs("class").OnElements("code", "pre", "span")
		policy = p
	})
	return policy
}

// Sanitize strips scripts, event handlers and other unsafe markup from
// editor HTML while keeping formatting.
func Sanitize(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	return ugcPolicy().Sanitize(html)
}

// RenderMarkdown converts a plain-text or markdown body into sanitized HTML.
// Raw HTML in the source is not passed through.
func RenderMarkdown(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return ugcPolicy().Sanitize(buf.String()), nil
}
