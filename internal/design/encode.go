package design

import (
	"encoding/base64"
	"errors"

	"github.com/gabriel-vasile/mimetype"
)

var ErrInvalidImage = errors.New("image must be a jpeg, png, gif or webp file")

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// DetectImageType sniffs the upload and returns its MIME type. Whatever the
// browser claimed in the part header is ignored.
func DetectImageType(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrInvalidImage
	}

	contentType := mimetype.Detect(data).String()
	if _, ok := allowedImageTypes[contentType]; !ok {
		return "", ErrInvalidImage
	}
	return contentType, nil
}

// EncodeDataURI returns data:<contentType>;base64,<payload>.
func EncodeDataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func Extension(contentType string) string {
	if ext, ok := allowedImageTypes[contentType]; ok {
		return ext
	}
	return "bin"
}
