package upload

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

const defaultFolder = "general"

// safeSegment keeps letters, digits and -_. and replaces everything else
// with '-'. Leading dots are dropped so no segment can walk up a directory.
func safeSegment(raw string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'),
			r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.TrimLeft(b.String(), ".")
}

// normalizeFolder accepts nested folders ("projects/demo") but never an
// absolute path or a parent reference.
func normalizeFolder(raw string) string {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == '/' || r == '\\' })
	out := parts[:0]
	for _, p := range parts {
		if s := safeSegment(p); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return defaultFolder
	}
	return strings.Join(out, "/")
}

func normalizeFilename(raw string) string {
	name := safeSegment(filepath.Base(strings.ReplaceAll(raw, "\\", "/")))
	if name == "" {
		return "file"
	}
	return name
}

// detectContentType prefers the part header, then the extension, then the
// leading bytes.
func detectContentType(filename string, head []byte, fallback string) string {
	if ct := strings.TrimSpace(fallback); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		if guessed := mime.TypeByExtension(ext); guessed != "" {
			return guessed
		}
	}
	if len(head) > 0 {
		return http.DetectContentType(head)
	}
	return "application/octet-stream"
}

func extAllowed(filename string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if a == ext {
			return true
		}
	}
	return false
}
