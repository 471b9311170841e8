package apperrors

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrUnreadableFile    = errors.New("unreadable spreadsheet file")
	ErrEmptySheet        = errors.New("sheet has no header row")
	ErrFileTooLarge      = errors.New("file exceeds the upload size limit")
)
