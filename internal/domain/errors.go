package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserInactive        = errors.New("user is inactive")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrReportNotFound      = errors.New("report file not found")
	ErrReportNotIngested   = errors.New("report file has not been ingested yet")
	ErrRecordNotFound      = errors.New("discharge record not found")
	ErrInvalidReviewAction = errors.New("invalid review action for record state")
	ErrTextExtraction      = errors.New("text extraction from file failed")
)
