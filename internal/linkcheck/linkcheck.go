// Package linkcheck verifies that the pages a build renders only reference
// artifacts the build actually plans to produce. It parses generated HTML
// and resolves relative references against the page location.
package linkcheck

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/gallerybuilder/internal/util/sets"
)

// Ref is one hyperlink or image reference found in a page.
type Ref struct {
	// Target is the raw attribute value.
	Target string
	// Tag is "a" or "img".
	Tag string
}

// Problem is a reference that no planned artifact satisfies.
type Problem struct {
	Page   string
	Target string
	// Resolved is the output-root-relative path the target points at.
	Resolved string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: reference %q resolves to %q which no artifact produces", p.Page, p.Target, p.Resolved)
}

// Extract parses page HTML and returns all a[href] and img[src] references.
// The tokenizer is forgiving; malformed markup yields whatever references it
// can still find.
func Extract(pageHTML []byte) []Ref {
	var refs []Ref
	tokenizer := html.NewTokenizer(bytes.NewReader(pageHTML))
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			return refs
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		token := tokenizer.Token()
		var attr string
		switch token.Data {
		case "a":
			attr = "href"
		case "img":
			attr = "src"
		default:
			continue
		}
		for _, a := range token.Attr {
			if a.Key == attr && a.Val != "" {
				refs = append(refs, Ref{Target: a.Val, Tag: token.Data})
			}
		}
	}
}

// Verify resolves every reference in every page against the set of planned
// output paths. pages maps output-root-relative page paths to their HTML.
func Verify(pages map[string][]byte, produced sets.Set[string]) []Problem {
	var problems []Problem
	for pagePath, content := range pages {
		base := path.Dir(pagePath)
		for _, ref := range Extract(content) {
			if isExternal(ref.Target) {
				continue
			}
			resolved := resolve(base, ref.Target)
			if produced.Has(resolved) {
				continue
			}
			// A directory link is satisfied by its index page.
			if produced.Has(path.Join(resolved, "index.html")) {
				continue
			}
			problems = append(problems, Problem{
				Page:     pagePath,
				Target:   ref.Target,
				Resolved: resolved,
			})
		}
	}
	return problems
}

func isExternal(target string) bool {
	return strings.HasPrefix(target, "#") ||
		strings.Contains(target, "://") ||
		strings.HasPrefix(target, "mailto:") ||
		strings.HasPrefix(target, "//")
}

func resolve(base, target string) string {
	target = strings.SplitN(target, "#", 2)[0]
	target = strings.SplitN(target, "?", 2)[0]
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Clean(path.Join(base, target))
}
