// Package markdown renders group description documents to HTML.
//
// Description files are regular Markdown extended with image references. To
// embed a file named "My image.webp", write a line containing:
//
//	!image My image
//
// Every image in the group must be referenced at least once; referencing an
// image that is not in the group is an error. The weaver also returns the
// group's images reordered to match the order of their references in the
// document, which detail-page rendering uses for per-image navigation.
package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/gallerybuilder/internal/util/sets"
)

// ImageTagPrefix marks a text line as an image reference.
const ImageTagPrefix = "!image "

var (
	// ErrUnknownImages reports references to names that are not in the group.
	ErrUnknownImages = errors.New("unknown images")
	// ErrMissingImages reports group images the document never references.
	ErrMissingImages = errors.New("missing images")
)

// Image is the view-level record the weaver resolves references against.
// URL is relative to the detail page; Thumbnail is relative to the site root.
type Image struct {
	Name      string
	URL       string
	Thumbnail string
	Anchor    string
}

// WeaveResult is the outcome of a successful weave.
type WeaveResult struct {
	// HTML is the rendered document with image references expanded.
	HTML string
	// Images holds the input images reordered to match the document. An
	// image referenced more than once sorts by its last occurrence; this
	// mirrors the recorded reference semantics and is intentional.
	Images []Image
}

// Weave renders source to HTML, expanding image references against images and
// validating that the document and the group agree on the image set.
func Weave(source []byte, images []Image) (*WeaveResult, error) {
	md := goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe()))
	doc := md.Parser().Parse(text.NewReader(source))

	var (
		seen    []string
		unknown = sets.New[string]()
	)

	// Collect matching text nodes first; replacing nodes mid-walk would
	// disturb the traversal.
	type match struct {
		node  *gmast.Text
		image Image
	}
	var matches []match

	err := gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		textNode, ok := n.(*gmast.Text)
		if !ok {
			return gmast.WalkContinue, nil
		}
		// Text inside a code span is literal, never a reference. The code
		// span renderer also requires its children to stay Text nodes.
		if parent := textNode.Parent(); parent != nil && parent.Kind() == gmast.KindCodeSpan {
			return gmast.WalkContinue, nil
		}
		content := string(textNode.Segment.Value(source))
		if !strings.HasPrefix(content, ImageTagPrefix) {
			return gmast.WalkContinue, nil
		}
		name := strings.TrimPrefix(content, ImageTagPrefix)
		img, ok := lookup(images, name)
		if !ok {
			// Leave the reference visible instead of emitting a broken link.
			unknown.Add(name)
			return gmast.WalkContinue, nil
		}
		seen = append(seen, name)
		matches = append(matches, match{node: textNode, image: img})
		return gmast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk description document: %w", err)
	}

	for _, m := range matches {
		snippet := gmast.NewString([]byte(imageSnippet(m.image)))
		// Code strings are written to the output verbatim; raw strings still
		// go through HTML escaping.
		snippet.SetCode(true)
		parent := m.node.Parent()
		parent.ReplaceChild(parent, m.node, snippet)
	}

	if len(unknown) > 0 {
		names := make([]string, 0, len(unknown))
		for name := range unknown {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("%w: %s", ErrUnknownImages, strings.Join(names, ", "))
	}

	seenSet := sets.New(seen...)
	var missing []string
	for _, img := range images {
		if !seenSet.Has(img.Name) {
			missing = append(missing, img.Name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingImages, strings.Join(missing, ", "))
	}

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, source, doc); err != nil {
		return nil, fmt.Errorf("render description document: %w", err)
	}

	return &WeaveResult{
		HTML:   buf.String(),
		Images: reorder(images, seen),
	}, nil
}

func lookup(images []Image, name string) (Image, bool) {
	for _, img := range images {
		if img.Name == name {
			return img, true
		}
	}
	return Image{}, false
}

// reorder sorts images by the position of their reference in the document.
// The index map is built front to back, so a name referenced twice keeps the
// index of its last occurrence.
func reorder(images []Image, seen []string) []Image {
	index := make(map[string]int, len(seen))
	for i, name := range seen {
		index[name] = i
	}
	out := make([]Image, len(images))
	copy(out, images)
	sort.SliceStable(out, func(i, j int) bool {
		return index[out[i].Name] < index[out[j].Name]
	})
	return out
}

func imageSnippet(img Image) string {
	return fmt.Sprintf(
		`<div class="card" id="%s"><a href="%s"><img class="card-img" src="../%s"></a></div>`,
		img.Anchor, img.URL, img.Thumbnail)
}
