package utils

import "time"

// Application Constants
const (
	AppName    = "gorent"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Rental rules enforced upstream; mirrored here for client-side checks
	MinRentalDays = 1
	MaxRentalDays = 90
	MinDriverAge  = 18

	// Notifications
	DefaultToastDuration = 5 * time.Second
	ErrorToastDuration   = 7 * time.Second

	// Review bounds
	MinRating = 1
	MaxRating = 5
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrInvalidInput       = "invalid input"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrNotFound           = "not found"
	ErrValidationFailed   = "validation failed"
	ErrInvalidResponse    = "invalid server response"
	ErrBackendUnavailable = "rental service unavailable"
	ErrRequestFailed      = "request failed"
)

// Session / cache keys
const (
	CacheSessionPrefix = "session:"
	CacheStatsKey      = "admin:stats"
	SessionUserKey     = "user"
	SessionTokenKey    = "token"
)

// Websocket rooms
const (
	RoomSessionPrefix = "session_"
	RoomAdmins        = "admins"
)
