package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"

	// CodeInvalidAction aborts the invocation before any discovery runs.
	CodeInvalidAction Code = "INVALID_ACTION"

	// Provider-side codes, assigned exactly once in the AWS adapter.
	CodeProviderAPIError     Code = "PROVIDER_API_ERROR"
	CodeProviderAuthError    Code = "PROVIDER_AUTH_ERROR"
	CodeProviderThrottled    Code = "PROVIDER_THROTTLED"
	CodeResourceNotFound     Code = "RESOURCE_NOT_FOUND"
	CodeInvalidResourceState Code = "INVALID_RESOURCE_STATE"

	CodeDeadlineExceeded Code = "DEADLINE_EXCEEDED"

	// CodeRunFailed marks an invocation that finished with at least one
	// failed resource outcome.
	CodeRunFailed Code = "RUN_FAILED"
)

func (c Code) String() string {
	return string(c)
}
