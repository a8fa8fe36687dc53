package domain

import "errors"

var (
	ErrInvalidScanName  = errors.New("invalid scan name")
	ErrJobInProgress    = errors.New("a background job is already running")
	ErrNoPendingJob     = errors.New("no background job is running")
	ErrReservedScanName = errors.New("scan name is reserved")
	ErrScanExists       = errors.New("scan already exists")
	ErrScanNotFound     = errors.New("scan not found")
	ErrSessionClosed    = errors.New("capture session is closed")
	ErrUnknownPrompt    = errors.New("unknown prompt")
	ErrWorkspaceLocked  = errors.New("workspace is in use by another capture session")
)
