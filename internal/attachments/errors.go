package attachments

import "errors"

var (
	// ErrUnsupportedMediaType is returned when an image MIME type is not on the allow-list.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	// ErrPayloadTooLarge is returned when an image exceeds MaxImageBytes.
	ErrPayloadTooLarge = errors.New("payload too large")
	// ErrEmptyPayload is returned when an image has no bytes.
	ErrEmptyPayload = errors.New("empty payload")
	// ErrInvalidPath is returned when a note id and filename do not resolve to a
	// file inside that note's attachment directory.
	ErrInvalidPath = errors.New("invalid attachment path")
)
