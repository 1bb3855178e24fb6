package work

import (
	"fmt"
	"os/exec"

	gerrors "git.home.luguber.info/inful/gallerybuilder/internal/errors"
	"git.home.luguber.info/inful/gallerybuilder/internal/gallery"
)

// convertBinary is the ImageMagick entry point expected on $PATH.
const convertBinary = "convert"

// geometry holds the fixed conversion parameters for one thumbnail kind.
type geometry struct {
	resize string
	crop   string
}

// Small thumbnails fill the overview grid, large ones the detail pages.
// Both keep a 3:2 aspect ratio and are re-encoded at quality 80.
var geometries = map[gallery.ThumbnailKind]geometry{
	gallery.ThumbnailSmall: {resize: "400x", crop: "400x267+0+0"},
	gallery.ThumbnailLarge: {resize: "2000x", crop: "2000x1335+0+0"},
}

// convertThumbnail runs the external conversion tool to completion. A
// non-zero exit is a hard error carrying the tool's combined output.
func convertThumbnail(source, target string, kind gallery.ThumbnailKind) error {
	geo, ok := geometries[kind]
	if !ok {
		return gerrors.New(gerrors.CategoryInternal, gerrors.SeverityFatal,
			fmt.Sprintf("no geometry for thumbnail kind %v", kind))
	}

	cmd := exec.Command(convertBinary,
		source,
		"-resize", geo.resize,
		"-gravity", "center",
		"-crop", geo.crop,
		"+repage",
		"-quality", "80",
		target,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return gerrors.WrapError(err, gerrors.CategoryTool, "image conversion failed").
			WithContext("source", source).
			WithContext("path", target).
			WithContext("output", string(out))
	}
	return nil
}
