package service

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/MKhiriev/influence-roster/internal/validators"
)

const jpegQuality = 85

var formatContentTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
}

// resizePhoto scales an image down so its longest edge is at most maxEdge,
// keeping the aspect ratio, and re-encodes it in its own format. Images that
// already fit are returned unchanged.
func resizePhoto(data []byte, maxEdge int) ([]byte, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", validators.ErrUnsupportedPhoto, err)
	}
	contentType, ok := formatContentTypes[format]
	if !ok {
		return nil, "", fmt.Errorf("%w: format %s", validators.ErrUnsupportedPhoto, format)
	}

	if maxEdge <= 0 || (cfg.Width <= maxEdge && cfg.Height <= maxEdge) {
		return data, contentType, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", validators.ErrUnsupportedPhoto, err)
	}

	width, height := fitWithin(cfg.Width, cfg.Height, maxEdge)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, dst)
	case "jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	case "gif":
		err = gif.Encode(&buf, dst, nil)
	}
	if err != nil {
		return nil, "", fmt.Errorf("error encoding resized photo: %w", err)
	}

	return buf.Bytes(), contentType, nil
}

// fitWithin scales width x height so the longest edge equals maxEdge.
func fitWithin(width, height, maxEdge int) (int, int) {
	if width >= height {
		h := height * maxEdge / width
		return maxEdge, max(h, 1)
	}
	w := width * maxEdge / height
	return max(w, 1), maxEdge
}
