package apperr

// BaseError defines the interface for application-specific errors.
//
// Every error raised by this service carries a short machine-readable code, an
// internal (not user-facing) message, a localized message suitable for
// display, and optionally the error that caused it. Error() returns the
// canonical JSON envelope of the code/message pair, see Render.
type BaseError interface {
	error
	Code() string
	Message() string
	LocalizedMessage() string
	Cause() error
}
