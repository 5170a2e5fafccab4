package gridmap

import "errors"

var (
	// ErrEmptyGrid indicates the input has no rows or no columns.
	ErrEmptyGrid = errors.New("gridmap: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridmap: all rows must have the same length")
	// ErrSize indicates row-major data whose length is not width×height.
	ErrSize = errors.New("gridmap: data length does not match width×height")
	// ErrCostRange indicates a cell cost outside [-1, 100].
	ErrCostRange = errors.New("gridmap: cell cost out of range [-1,100]")
)
