package imageprep

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

var (
	ErrEmptyImage       = errors.New("image is empty")
	ErrImageTooLarge    = errors.New("image exceeds size limit")
	ErrUnsupportedImage = errors.New("unsupported image format")
)

const jpegQuality = 90

// Info describes a prepared image.
type Info struct {
	Format   string
	MimeType string
	Width    int
	Height   int
	Resized  bool
}

// Preparer validates uploaded photos and downsizes oversized ones.
type Preparer struct {
	MaxBytes     int64
	MaxDimension int
}

// Prepare checks that data is a decodable image within MaxBytes. When either
// side exceeds MaxDimension the image is fitted inside a MaxDimension square
// and re-encoded as JPEG; otherwise data is returned unchanged.
func (p Preparer) Prepare(data []byte) ([]byte, Info, error) {
	if len(data) == 0 {
		return nil, Info{}, ErrEmptyImage
	}
	if p.MaxBytes > 0 && int64(len(data)) > p.MaxBytes {
		return nil, Info{}, fmt.Errorf("%w: %d bytes (max %d)", ErrImageTooLarge, len(data), p.MaxBytes)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, Info{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	info := Info{
		Format:   format,
		MimeType: mimeFor(format),
		Width:    cfg.Width,
		Height:   cfg.Height,
	}
	if p.MaxDimension <= 0 || (cfg.Width <= p.MaxDimension && cfg.Height <= p.MaxDimension) {
		return data, info, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, Info{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	resized := imaging.Fit(img, p.MaxDimension, p.MaxDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, Info{}, fmt.Errorf("encode resized image: %w", err)
	}
	bounds := resized.Bounds()
	return buf.Bytes(), Info{
		Format:   "jpeg",
		MimeType: "image/jpeg",
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Resized:  true,
	}, nil
}

func mimeFor(format string) string {
	switch format {
	case "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
