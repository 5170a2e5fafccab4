package costmap

import "errors"

var (
	// ErrBadMetadata reports invalid map metadata (resolution, size, thresholds).
	ErrBadMetadata = errors.New("costmap: invalid map metadata")

	// ErrImage reports a map image that cannot be read or decoded.
	ErrImage = errors.New("costmap: cannot read map image")
)
