// internal/common/errors/errors.go

// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidJobInput ErrorCode = "INVALID_JOB_INPUT"

	ErrCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"

	ErrCodeVendorCatalogUnavailable ErrorCode = "VENDOR_CATALOG_UNAVAILABLE"
	ErrCodeVendorSearchFailed       ErrorCode = "VENDOR_SEARCH_FAILED"
	ErrCodeVendorSearchTimeout      ErrorCode = "VENDOR_SEARCH_TIMEOUT"

	ErrCodeTaskNotFound          ErrorCode = "TASK_NOT_FOUND"
	ErrCodeInvalidApprovalAction ErrorCode = "INVALID_APPROVAL_ACTION"
	ErrCodeNoVendorAssigned      ErrorCode = "NO_VENDOR_ASSIGNED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeBusinessRuleViolation ErrorCode = "BUSINESS_RULE_VIOLATION"
	ErrCodeExternalService       ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout               ErrorCode = "TIMEOUT_ERROR"
	ErrCodeResourceNotFound      ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeAuthentication        ErrorCode = "AUTHENTICATION_ERROR"
	ErrCodeInternal              ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func newError(code ErrorCode, message, details string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: GetRetryCount(code) > 0,
		Timestamp: time.Now().UTC(),
	}
}

func detailsOf(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func NewInvalidJobInputError(details string) *StandardError {
	return newError(ErrCodeInvalidJobInput, "Job input failed validation", details)
}

func NewSessionNotFoundError(sessionID string) *StandardError {
	return newError(ErrCodeSessionNotFound, "Session not found", sessionID).
		WithMetadata("sessionId", sessionID)
}

func NewSessionStoreError(err error) *StandardError {
	return newError(ErrCodeSessionStoreFailed, "Session store operation failed", detailsOf(err))
}

func NewVendorCatalogUnavailableError(err error) *StandardError {
	return newError(ErrCodeVendorCatalogUnavailable, "Vendor catalog unavailable", detailsOf(err))
}

func NewVendorSearchError(err error) *StandardError {
	return newError(ErrCodeVendorSearchFailed, "Vendor search failed", detailsOf(err))
}

func NewVendorSearchTimeoutError(err error) *StandardError {
	return newError(ErrCodeVendorSearchTimeout, "Vendor search timed out", detailsOf(err))
}

func NewTaskNotFoundError(taskID string) *StandardError {
	return newError(ErrCodeTaskNotFound, "Task not found", taskID).
		WithMetadata("taskId", taskID)
}

func NewInvalidApprovalActionError(action string) *StandardError {
	return newError(ErrCodeInvalidApprovalAction, "Unsupported approval action", action).
		WithMetadata("action", action)
}

func NewNoVendorAssignedError(taskID string) *StandardError {
	return newError(ErrCodeNoVendorAssigned, "Task has no vendor to approve", taskID).
		WithMetadata("taskId", taskID)
}

func NewNotificationSendError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, fmt.Sprintf("Failed to send %s notification", channel), detailsOf(err)).
		WithMetadata("channel", channel)
}

// Generic constructors

func NewBusinessRuleError(message, details string) *StandardError {
	return newError(ErrCodeBusinessRuleViolation, message, details)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("External service '%s' error", service), detailsOf(err))
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), detailsOf(err))
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError(ErrCodeResourceNotFound, fmt.Sprintf("Resource not found in %s", service), details)
}

func NewAuthenticationError(details string) *StandardError {
	return newError(ErrCodeAuthentication, "Authentication failed", details)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", detailsOf(err))
}

// AsStandardError finds a StandardError in err's chain. Anything else is
// reported as a non-retryable internal error.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the error codes caught by
// boundary events in the planning process.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidJobInput:          "INVALID_JOB_INPUT",
	ErrCodeSessionNotFound:          "SESSION_NOT_FOUND",
	ErrCodeSessionStoreFailed:       "SESSION_STORE_FAILED",
	ErrCodeVendorCatalogUnavailable: "VENDOR_CATALOG_UNAVAILABLE",
	ErrCodeVendorSearchFailed:       "VENDOR_SEARCH_FAILED",
	ErrCodeVendorSearchTimeout:      "VENDOR_SEARCH_TIMEOUT",
	ErrCodeTaskNotFound:             "TASK_NOT_FOUND",
	ErrCodeInvalidApprovalAction:    "INVALID_APPROVAL_ACTION",
	ErrCodeNoVendorAssigned:         "NO_VENDOR_ASSIGNED",
	ErrCodeNotificationSendFailed:   "NOTIFICATION_SEND_FAILED",
}

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeSessionStoreFailed,
		ErrCodeVendorCatalogUnavailable,
		ErrCodeVendorSearchFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeExternalService:
		return 3

	case ErrCodeVendorSearchTimeout,
		ErrCodeTimeout:
		return 2

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "SESSION"):
		return "SESSION"
	case strings.HasPrefix(codeStr, "VENDOR"):
		return "VENDOR"
	case code == ErrCodeTaskNotFound || code == ErrCodeInvalidApprovalAction || code == ErrCodeNoVendorAssigned:
		return "APPROVAL"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case code == ErrCodeExternalService || code == ErrCodeTimeout || code == ErrCodeAuthentication:
		return "INFRASTRUCTURE"
	default:
		return "OTHER"
	}
}
