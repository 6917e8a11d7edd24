package logging

import "log/slog"

// Common field names for consistent logging across the binaries.
const (
	FieldService   = "service"
	FieldPath      = "path"
	FieldError     = "error"
	FieldEventID   = "event_id"
	FieldEventType = "event_type"
	FieldCategory  = "category"
)

// Service returns a slog attribute for the service name.
func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

// Path returns a slog attribute for the HTTP path.
func Path(path string) slog.Attr {
	return slog.String(FieldPath, path)
}

// Err returns a slog attribute for an error message.
func Err(err error) slog.Attr {
	return slog.String(FieldError, err.Error())
}

// EventID returns a slog attribute for a Paddle event ID.
func EventID(id string) slog.Attr {
	return slog.String(FieldEventID, id)
}

// EventType returns a slog attribute for a Paddle event type name.
func EventType(name string) slog.Attr {
	return slog.String(FieldEventType, name)
}

// Category returns a slog attribute for an event category.
func Category(name string) slog.Attr {
	return slog.String(FieldCategory, name)
}
