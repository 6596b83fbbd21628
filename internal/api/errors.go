package api

// GenericFailureMessage is used when a rejected request carries no
// structured message. The error-handling path itself must never fail.
const GenericFailureMessage = "Something went wrong. Please try again."

// ErrorKind classifies request failures.
type ErrorKind int

const (
	// NetworkFailure means no response was received at all.
	NetworkFailure ErrorKind = iota
	// ServerRejection means the server answered with a structured failure.
	ServerRejection
	// ClientValidation means the request was rejected before any network call.
	ClientValidation
)

// Error is the single failure type the stores consume. Only the
// message text survives into store state.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Message extracts the user-facing text from any action error,
// falling back to the generic message.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := err.(*Error); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericFailureMessage
}

func networkErr(err error) *Error {
	return &Error{Kind: NetworkFailure, Message: "could not reach the server: " + err.Error()}
}

func rejectionErr(message string) *Error {
	if message == "" {
		message = GenericFailureMessage
	}
	return &Error{Kind: ServerRejection, Message: message}
}

// ValidationErr builds a pre-flight validation failure.
func ValidationErr(message string) *Error {
	return &Error{Kind: ClientValidation, Message: message}
}
