package pdf

import "errors"

var (
	// ErrParse indicates the input is not a readable PDF.
	ErrParse = errors.New("pdf: parse failed")

	// ErrWrite indicates the engine failed to assemble or write output.
	ErrWrite = errors.New("pdf: write failed")

	// ErrEncrypt indicates the engine failed to encrypt output.
	ErrEncrypt = errors.New("pdf: encrypt failed")

	// ErrStaging indicates a file the engine needed could not be staged.
	ErrStaging = errors.New("pdf: staging failed")
)
