package domain

import "errors"

var (
	ErrBusy            = errors.New("request already in progress")
	ErrEmptySubmission = errors.New("nothing to submit")
	ErrUnsupportedType = errors.New("unsupported media type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrVideoTooLong    = errors.New("video too long")
)
