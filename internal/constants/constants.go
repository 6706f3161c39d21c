package constants

const (
	// ContextKeyUserID is the gin context key holding the authenticated account ID.
	ContextKeyUserID = "user_id"
	// ContextKeyRequestID is the gin context key holding the request correlation ID.
	ContextKeyRequestID = "request_id"
	// ContextKeyResourceID is the gin context key holding the parsed ":id" path parameter.
	ContextKeyResourceID = "resource_id"

	// AuthorizationScheme prefixes the bearer token in the Authorization header.
	AuthorizationScheme = "Token"
	// RequestIDHeader carries the request correlation ID.
	RequestIDHeader = "X-Request-ID"

	// MaxHandleLength caps the derived login handle.
	MaxHandleLength = 29
	// FallbackHandle is used when a display name has no alphanumerics.
	FallbackHandle = "User"
	// MaxHandleConflicts bounds insert retries when another signup claims the same handle.
	MaxHandleConflicts = 10

	// MaxSequenceRetries bounds task sequencing retries on a (project, seq) conflict.
	MaxSequenceRetries = 5

	// TokenBytes is the entropy of a bearer token; hex encoding doubles the length.
	TokenBytes = 20
)
