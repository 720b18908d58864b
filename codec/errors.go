package codec

import "errors"

// ErrCodecNotFound is returned when a codec is not found in the registry
var ErrCodecNotFound = errors.New("codec not found")
