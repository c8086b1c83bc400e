// Package routepath provides URL path normalization and decoding helpers
// shared by the router core.
//
// Matching operates on raw (undecoded) segments; only parameter and
// catch-all values are decoded, and decoding is lenient: a malformed
// percent escape degrades to the raw text instead of failing the match.
package routepath

import (
	"errors"
	"net/url"
	"strings"
)

// Path validation errors.
var (
	ErrInvalidPath     = errors.New("invalid path")
	ErrBackslashInPath = errors.New("path contains backslash")
	ErrNullByteInPath  = errors.New("path contains null byte")
	ErrPathEscapesRoot = errors.New("path escapes root via ..")
)

// Normalize returns the canonical form of a request path for matching:
// a single leading slash and no trailing slash (except the bare root).
// Percent escapes are left untouched; empty interior segments are
// dropped later by Split.
func Normalize(path string) string {
	if path == "" || path == "/" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	if path == "" {
		return "/"
	}
	return path
}

// Split decomposes a path into its raw segments. Empty segments (from
// leading, trailing, or doubled slashes) are dropped, so "/", "" and
// "//" all yield nil.
func Split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	segments := strings.Split(path, "/")
	out := segments[:0]
	for _, seg := range segments {
		if seg != "" {
			out = append(out, seg)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Decode percent-decodes a parameter or catch-all value. Malformed
// escape sequences are tolerated: the input is returned verbatim rather
// than an error, so "%ZZ" decodes to "%ZZ". A "+" is a literal plus in
// a path, never a space.
func Decode(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// Canonicalize validates and normalizes a caller-supplied path, such as
// a redirect target in a route manifest.
//
// Transformations:
//   - ensure a leading slash and strip one trailing slash (root keeps "/")
//   - collapse repeated slashes
//   - drop "." segments and resolve ".." segments
//
// Rejected inputs:
//   - backslashes
//   - NUL bytes, literal or encoded
//   - ".." that would climb above the root
func Canonicalize(input string) (string, error) {
	if input == "" {
		return "/", nil
	}

	path, _, _ := strings.Cut(input, "?")

	if strings.Contains(path, "\\") {
		return "", ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return "", ErrNullByteInPath
	}

	var kept []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(kept) == 0 {
				return "", ErrPathEscapesRoot
			}
			kept = kept[:len(kept)-1]
		default:
			kept = append(kept, seg)
		}
	}

	return "/" + strings.Join(kept, "/"), nil
}

// SplitPathAndQuery splits an input into path and query components.
// The query is returned without the leading "?".
func SplitPathAndQuery(input string) (path, query string) {
	path, query, _ = strings.Cut(input, "?")
	return path, query
}
