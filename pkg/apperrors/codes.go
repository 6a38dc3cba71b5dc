package apperrors

// Error codes grouped by domain.
const (
	// Webhook authentication
	CodeMissingSignature ErrorCode = "MISSING_SIGNATURE"
	CodeInvalidSignature ErrorCode = "INVALID_SIGNATURE"

	// Event payload
	CodeInvalidPayload  ErrorCode = "INVALID_PAYLOAD"
	CodeMissingMetadata ErrorCode = "MISSING_METADATA"
	CodeUnknownApp      ErrorCode = "UNKNOWN_APPLICATION"

	// Accounts
	CodeAccountNotFound ErrorCode = "ACCOUNT_NOT_FOUND"

	// Persistence
	CodeWriteConflict ErrorCode = "WRITE_CONFLICT"
	CodePersistence   ErrorCode = "PERSISTENCE_ERROR"

	// Generic
	CodeRouteNotFound ErrorCode = "ROUTE_NOT_FOUND"
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
)
