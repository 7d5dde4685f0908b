package utils

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
)

var ErrNotAnImage = errors.New("file is not a supported image")

var allowedPhotoTypes = []string{"image/jpeg", "image/png", "image/webp", "image/heic", "image/heif"}

// InspectPhoto sniffs the payload and returns its MIME type. JPEG, PNG and WebP headers
// are decoded as well; HEIC from phone cameras is accepted on the signature alone.
func InspectPhoto(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrNotAnImage)
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedPhotoTypes...) {
		return "", fmt.Errorf("%w: %s", ErrNotAnImage, mtype.String())
	}

	switch mtype.String() {
	case "image/jpeg", "image/png", "image/webp":
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNotAnImage, err)
		}
		if cfg.Width == 0 || cfg.Height == 0 {
			return "", fmt.Errorf("%w: empty dimensions", ErrNotAnImage)
		}
	}

	return mtype.String(), nil
}
