package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"

	apperrors "github.com/olusolaa/rds-power-scheduler/internal/errors"
)

// Classify maps an AWS SDK error to an application error carrying the
// region and resource identifier. It is the single place SDK error types
// are inspected; everything above the adapter sees only error codes.
func Classify(region, resourceID string, err error) error {
	if err == nil {
		return nil
	}

	where := region
	if resourceID != "" {
		where = fmt.Sprintf("%s/%s", region, resourceID)
	}

	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(err, apperrors.CodeDeadlineExceeded,
			fmt.Sprintf("AWS call cancelled for %s", where))
	}

	code := apiErrorCode(err)
	errMsg := err.Error()

	switch {
	case IsThrottle(err):
		return apperrors.Wrap(err, apperrors.CodeProviderThrottled,
			fmt.Sprintf("AWS API throttled for %s", where))
	case isAuthError(code, errMsg):
		return apperrors.Wrap(err, apperrors.CodeProviderAuthError,
			fmt.Sprintf("AWS authorization error for %s", where))
	case isInvalidStateFault(code):
		return apperrors.Wrap(err, apperrors.CodeInvalidResourceState,
			fmt.Sprintf("resource %s is in a state that does not permit the transition", where))
	case isNotFound(code, errMsg):
		return apperrors.Wrap(err, apperrors.CodeResourceNotFound,
			fmt.Sprintf("resource %s not found", where))
	default:
		return apperrors.Wrap(err, apperrors.CodeProviderAPIError,
			fmt.Sprintf("AWS API call failed for %s", where))
	}
}

// IsThrottle reports whether the error is transient and worth retrying.
func IsThrottle(err error) bool {
	code := apiErrorCode(err)
	if code != "" {
		for _, c := range throttleCodes {
			if code == c {
				return true
			}
		}
	}

	var timeoutErr interface{ Timeout() bool }
	if stderrs.As(err, &timeoutErr) && timeoutErr.Timeout() {
		return true
	}

	return false
}

// throttleCodes mirrors the SDK's own throttle code table plus the
// service-specific variants RDS is known to return.
var throttleCodes = []string{
	"Throttling",
	"ThrottlingException",
	"ThrottledException",
	"RequestThrottled",
	"RequestThrottledException",
	"TooManyRequestsException",
	"RequestLimitExceeded",
	"SlowDown",
	"EC2ThrottledException",
	"ProvisionedThroughputExceededException",
	"TransactionInProgressException",
	"PriorRequestNotComplete",
}

func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if stderrs.As(err, &apiErr) && apiErr != nil {
		return apiErr.ErrorCode()
	}
	// Type assertion fallback for plain mock errors in tests.
	if mockErr, ok := err.(interface{ ErrorCode() string }); ok && mockErr != nil {
		return mockErr.ErrorCode()
	}
	return ""
}

func isAuthError(code, errMsg string) bool {
	switch code {
	case "AccessDenied", "AccessDeniedException", "UnauthorizedOperation", "AuthFailure":
		return true
	}
	return strings.Contains(errMsg, "AccessDenied") ||
		strings.Contains(errMsg, "UnauthorizedOperation") ||
		strings.Contains(errMsg, "AuthFailure")
}

func isInvalidStateFault(code string) bool {
	switch code {
	case "InvalidDBInstanceState", "InvalidDBInstanceStateFault",
		"InvalidDBClusterState", "InvalidDBClusterStateFault":
		return true
	}
	return false
}

func isNotFound(code, errMsg string) bool {
	switch code {
	case "DBInstanceNotFound", "DBInstanceNotFoundFault",
		"DBClusterNotFound", "DBClusterNotFoundFault",
		"ResourceNotFoundException", "NotFoundException":
		return true
	}
	return strings.Contains(errMsg, "NotFound") || strings.Contains(errMsg, "not found")
}
