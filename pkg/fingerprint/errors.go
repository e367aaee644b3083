package fingerprint

import "errors"

// Common error codes
const (
	ErrCodeCaptureFailed  = "CAPTURE_FAILED"
	ErrCodeConfigMismatch = "CONFIG_MISMATCH"
	ErrCodeInvalidConfig  = "INVALID_CONFIG"
	ErrCodeInvalidInput   = "INVALID_INPUT"
)

// PipelineError represents pipeline-related errors
type PipelineError struct {
	Stage   string `json:"stage"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// NewPipelineError creates a new pipeline error
func NewPipelineError(stage, code, message string, cause error) *PipelineError {
	return &PipelineError{
		Stage:   stage,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ErrorCode extracts the pipeline error code, or "" for other errors
func ErrorCode(err error) string {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// IsConfigMismatch reports whether err is a feature-vector length mismatch
func IsConfigMismatch(err error) bool {
	return ErrorCode(err) == ErrCodeConfigMismatch
}

// IsCaptureFailure reports whether err is a capture collaborator failure
func IsCaptureFailure(err error) bool {
	return ErrorCode(err) == ErrCodeCaptureFailed
}
