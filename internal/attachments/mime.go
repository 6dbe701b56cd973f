package attachments

import (
	"mime"
	"strings"
)

// MaxImageBytes is the largest accepted image payload.
const MaxImageBytes = 20 << 20

// extensions is both the MIME allow-list and the extension table.
var extensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
	"image/bmp":  "bmp",
}

// lookupMIME normalizes a declared media type and returns it with its file
// extension. ok is false for types outside the allow-list.
func lookupMIME(declared string) (mediaType, ext string, ok bool) {
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(declared))
	}
	ext, ok = extensions[mediaType]
	return mediaType, ext, ok
}

// Allowed reports whether images of the declared media type are accepted.
func Allowed(declared string) bool {
	_, _, ok := lookupMIME(declared)
	return ok
}
