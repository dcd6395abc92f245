package domain

import "errors"

var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrProfileExists     = errors.New("profile already exists")
	ErrInvalidUserType   = errors.New("user type must be founder or investor")
	ErrStartupNotFound   = errors.New("startup not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionNotActive  = errors.New("session not active")
	ErrEmptyMessage      = errors.New("message is empty")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrNotInvestor       = errors.New("only investors can start chats")
	ErrNotFounder        = errors.New("only founders can create pitch sessions")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidReference  = errors.New("invalid reference")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrUnknownProvider   = errors.New("unsupported AI provider")
	ErrKeyNotConfigured  = errors.New("API key not configured")
	ErrNoDecision        = errors.New("no investment decision in reply")
	ErrDeckTooLarge      = errors.New("file size must be less than 10MB")
	ErrDeckNotPDF        = errors.New("file must be a PDF")
)
