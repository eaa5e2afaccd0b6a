// Package rerrors classifies rebound's startup and request-handling
// errors so callers can log, exit, or respond based on Kind rather than
// string-matching messages.
package rerrors

import "fmt"

// Kind is one of rebound's error categories.
type Kind int

const (
	// ConfigMissing: the configuration file path was not provided (the
	// REBOUND_CONF_FILE environment variable was unset).
	ConfigMissing Kind = iota
	// ConfigParse: the configuration file could not be read or parsed.
	ConfigParse
	// BindFailure: the listening socket could not be opened.
	BindFailure
	// TLSFailure: the TLS certificate/key pair could not be loaded.
	TLSFailure
	// QueueSendFailure: the accept loop could not enqueue a request.
	QueueSendFailure
	// RuleMiss: no configured rule matched the request path.
	RuleMiss
	// UpstreamFailure: the rewritten request could not be sent, or the
	// upstream's response could not be read.
	UpstreamFailure
	// RespondFailure: the response could not be written to the client.
	RespondFailure
	// MethodInvalid: the inbound request's method did not map to a known
	// HTTP method.
	MethodInvalid
)

func (k Kind) String() string {
	switch k {
	case ConfigMissing:
		return "ConfigMissing"
	case ConfigParse:
		return "ConfigParse"
	case BindFailure:
		return "BindFailure"
	case TLSFailure:
		return "TLSFailure"
	case QueueSendFailure:
		return "QueueSendFailure"
	case RuleMiss:
		return "RuleMiss"
	case UpstreamFailure:
		return "UpstreamFailure"
	case RespondFailure:
		return "RespondFailure"
	case MethodInvalid:
		return "MethodInvalid"
	default:
		return "Unknown"
	}
}

// Error is a Kind-tagged error, optionally wrapping an underlying cause.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New builds an Error with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error carrying cause as its underlying error.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Is reports whether err is an *Error of the given Kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
