package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testImages(names ...string) []Image {
	imgs := make([]Image, 0, len(names))
	for _, n := range names {
		slug := strings.ToLower(n)
		imgs = append(imgs, Image{
			Name:      n,
			URL:       slug + ".webp",
			Thumbnail: "thumbnails/large/fuji-japan/" + slug + ".webp",
			Anchor:    slug,
		})
	}
	return imgs
}

func TestWeave_ResolvesReferencesInOrder(t *testing.T) {
	doc := []byte("Intro.\n\n!image Summit\n\nBetween.\n\n!image Valley\n")
	res, err := Weave(doc, testImages("Summit", "Valley"))
	require.NoError(t, err)

	require.Contains(t, res.HTML, `id="summit"`)
	require.Contains(t, res.HTML, `href="valley.webp"`)
	require.Contains(t, res.HTML, `src="../thumbnails/large/fuji-japan/summit.webp"`)
	require.NotContains(t, res.HTML, "!image")

	require.Len(t, res.Images, 2)
	require.Equal(t, "Summit", res.Images[0].Name)
	require.Equal(t, "Valley", res.Images[1].Name)
}

// The card snippet must land in the output as markup, not as escaped text.
func TestWeave_EmitsUnescapedCardMarkup(t *testing.T) {
	doc := []byte("!image Summit\n")
	res, err := Weave(doc, testImages("Summit"))
	require.NoError(t, err)

	require.Contains(t, res.HTML, `<div class="card" id="summit">`)
	require.Contains(t, res.HTML, `<img class="card-img" src="../thumbnails/large/fuji-japan/summit.webp">`)
	require.NotContains(t, res.HTML, "&lt;div")
	require.NotContains(t, res.HTML, "&quot;")
}

func TestWeave_ReordersToDocumentOrder(t *testing.T) {
	// Group order is alphabetical; the document references them reversed.
	doc := []byte("!image Valley\n\n!image Summit\n")
	res, err := Weave(doc, testImages("Summit", "Valley"))
	require.NoError(t, err)
	require.Equal(t, "Valley", res.Images[0].Name)
	require.Equal(t, "Summit", res.Images[1].Name)
}

func TestWeave_MissingImage(t *testing.T) {
	doc := []byte("!image Summit\n")
	_, err := Weave(doc, testImages("Summit", "Valley"))
	require.ErrorIs(t, err, ErrMissingImages)
	require.Contains(t, err.Error(), "Valley")
}

func TestWeave_UnknownImage(t *testing.T) {
	doc := []byte("!image Summit\n\n!image Unknown\n\n!image Valley\n")
	_, err := Weave(doc, testImages("Summit", "Valley"))
	require.ErrorIs(t, err, ErrUnknownImages)
	require.Contains(t, err.Error(), "Unknown")
}

func TestWeave_UnknownReportedBeforeMissing(t *testing.T) {
	// Both validations would fire; unknown names win.
	doc := []byte("!image Nope\n")
	_, err := Weave(doc, testImages("Summit"))
	require.ErrorIs(t, err, ErrUnknownImages)
}

// A name referenced twice sorts by its last occurrence. That is the recorded
// behavior of the reference bookkeeping; first-occurrence ordering would be
// the more intuitive choice, but changing it would silently reshuffle
// existing galleries with duplicate references.
func TestWeave_DuplicateReferenceUsesLastOccurrence(t *testing.T) {
	doc := []byte("!image Summit\n\n!image Valley\n\n!image Summit\n")
	res, err := Weave(doc, testImages("Summit", "Valley"))
	require.NoError(t, err)
	require.Equal(t, "Valley", res.Images[0].Name)
	require.Equal(t, "Summit", res.Images[1].Name)
}

func TestWeave_PlainMarkdownPassesThrough(t *testing.T) {
	doc := []byte("# Heading\n\nSome *prose*.\n\n!image Summit\n")
	res, err := Weave(doc, testImages("Summit"))
	require.NoError(t, err)
	require.Contains(t, res.HTML, "<h1>Heading</h1>")
	require.Contains(t, res.HTML, "<em>prose</em>")
}

func TestWeave_InlineCodeIsNotAReference(t *testing.T) {
	doc := []byte("`!image Summit` is the syntax.\n\n!image Summit\n")
	res, err := Weave(doc, testImages("Summit"))
	require.NoError(t, err)
	// The code span stays literal; only the standalone line is expanded.
	require.Contains(t, res.HTML, "<code>!image Summit</code>")
	require.Contains(t, res.HTML, `id="summit"`)
}
