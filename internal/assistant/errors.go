package assistant

import "errors"

var (
	// ErrDisabled indicates the assistant is not configured.
	ErrDisabled = errors.New("assistant is disabled (set PLANWEAVE_LLM_ENABLED=1)")

	// ErrUnavailable indicates the model server is unreachable.
	ErrUnavailable = errors.New("model server unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("assistant request timed out")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("assistant retry attempts exhausted")

	// ErrRejectedInput indicates the request was refused client-side
	// because the input matched an injection pattern.
	ErrRejectedInput = errors.New("instruction rejected by input filter")

	// ErrInvalidOutput indicates the model response could not be parsed
	// into a valid task document.
	ErrInvalidOutput = errors.New("invalid assistant output")
)
