package failure

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/MimeLyc/transcript-downloader/pkg/log"
)

type Kind int

const (
	Config Kind = iota
	Input
	IdentifierNotFound
	InvalidRequest
	Unauthorized
	PaymentRequired
	NotFound
	ValidationError
	RateLimited
	Transport
	ServerError
	UnknownStatus
	Decode
	IOError
)

// Error is the single error type returned by the client, renderer and writer.
type Error struct {
	Kind    Kind
	Message string
	Context map[string]any
	Cause   error
}

func New(kind Kind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Context: make(map[string]any),
	}
}

func Wrap(err error, kind Kind, message string) *Error {
	e := New(kind, message)
	e.Cause = err
	return e
}

func (e *Error) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s] %s", e.Kind.String(), e.Message))

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		ctxParts := make([]string, 0, len(keys))
		for _, k := range keys {
			ctxParts = append(ctxParts, fmt.Sprintf("%s=%v", k, e.Context[k]))
		}
		parts = append(parts, fmt.Sprintf("context: %s", strings.Join(ctxParts, ", ")))
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause: %v", e.Cause))
	}

	return strings.Join(parts, " | ")
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) WithContext(key string, value any) *Error {
	e.Context[key] = value
	return e
}

// Fatal reports whether the kind aborts the whole run.
func (k Kind) Fatal() bool {
	return k == Config || k == Input
}

func (k Kind) String() string {
	switch k {
	case Config:
		return "Config"
	case Input:
		return "Input"
	case IdentifierNotFound:
		return "IdentifierNotFound"
	case InvalidRequest:
		return "InvalidRequest"
	case Unauthorized:
		return "Unauthorized"
	case PaymentRequired:
		return "PaymentRequired"
	case NotFound:
		return "NotFound"
	case ValidationError:
		return "ValidationError"
	case RateLimited:
		return "RateLimited"
	case Transport:
		return "Transport"
	case ServerError:
		return "ServerError"
	case UnknownStatus:
		return "UnknownStatus"
	case Decode:
		return "Decode"
	case IOError:
		return "IOError"
	default:
		return "Unknown"
	}
}

// Advice returns a short hint for the operator.
func Advice(kind Kind) string {
	switch kind {
	case Config:
		return "Create a .env file with TRANSCRIPT_API_KEY=<key> or export TRANSCRIPT_API_KEY"
	case Input:
		return "Check that the reference list exists and has at least one non-comment line"
	case IdentifierNotFound:
		return "Use a bare 11-character video ID or a watch, embed, shorts or youtu.be URL"
	case InvalidRequest, ValidationError:
		return "Check the video URL and the request options"
	case Unauthorized:
		return "Check that TRANSCRIPT_API_KEY is correct and active"
	case PaymentRequired:
		return "The account has run out of credits; top up or upgrade the plan"
	case NotFound:
		return "The video may be private, removed or have no captions"
	case RateLimited:
		return "Raise REQUEST_DELAY_MS or TRANSCRIPT_MAX_RETRIES and try again later"
	case Transport:
		return "Check network connectivity to the transcript service"
	case ServerError, UnknownStatus:
		return "The transcript service failed; retry later"
	case Decode:
		return "The service returned an unexpected body; check TRANSCRIPT_FORMAT"
	case IOError:
		return "Ensure the output directory is writable and the disk is not full"
	default:
		return "Review the error details"
	}
}

// KindOf extracts the kind of err. ok is false when err is not an *Error.
func KindOf(err error) (kind Kind, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// Report logs err together with advice for its kind.
func Report(err error) {
	var e *Error
	if !errors.As(err, &e) {
		log.Error("Unknown error: %v", err)
		return
	}
	log.Error("%s: %s", e.Kind, e.Message)
	if e.Cause != nil {
		log.Debug("cause: %v", e.Cause)
	}
	log.Info("advice: %s", Advice(e.Kind))
}
