// Package roadmap fetches the public roadmap page, turns it into a snapshot
// of the watched tabs and computes the changes between two snapshots.
package roadmap

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"change_tracker/internal/domain"
)

const dataMarker = "window.pbData"

// ExtractData returns the JSON object assigned to window.pbData inside one of
// the page's script elements.
func ExtractData(page []byte) ([]byte, error) {
	z := html.NewTokenizer(bytes.NewReader(page))
	inScript := false

	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return nil, fmt.Errorf("no script assigns %s: %w", dataMarker, domain.ErrParse)
			}
			return nil, fmt.Errorf("tokenize page: %v: %w", z.Err(), domain.ErrParse)
		case html.StartTagToken:
			name, _ := z.TagName()
			inScript = atom.Lookup(name) == atom.Script
		case html.EndTagToken:
			inScript = false
		case html.TextToken:
			if !inScript {
				continue
			}
			if obj, ok := objectAfterMarker(string(z.Text())); ok {
				return []byte(obj), nil
			}
		}
	}
}

// objectAfterMarker cuts from the first '{' after the marker to the last '}'
// of the script body.
func objectAfterMarker(script string) (string, bool) {
	start := strings.Index(script, dataMarker)
	if start < 0 {
		return "", false
	}
	rest := script[start:]
	open := strings.IndexByte(rest, '{')
	if open < 0 {
		return "", false
	}
	closing := strings.LastIndexByte(rest, '}')
	if closing < open {
		return "", false
	}
	return rest[open : closing+1], true
}
