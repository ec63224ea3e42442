// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package errs

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FromHTTPStatus maps an HTTP status code from the grpc-web transport to a
// TransportFailure, grounded on the teacher's mapHTTPError switch over
// resp.StatusCode(). detail, when non-empty, is preferred over a generic
// message since it usually carries the innermost chaincode error string.
func FromHTTPStatus(statusCode int, detail string) *Error {
	message := detail
	if message == "" {
		message = httpStatusMessage(statusCode)
	}
	return New(TransportFailure, message)
}

func httpStatusMessage(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "gateway returned a server error"
	case statusCode == 408:
		return "gateway request timed out"
	case statusCode >= 400:
		return "gateway rejected the request"
	default:
		return "gateway transport failure"
	}
}

// FromGRPCStatus maps a gRPC status error to the error taxonomy. Per
// spec.md §7, the message prefers the innermost decoded detail (often a
// chaincode error string embedded in the status) over the generic status
// message; callers pass that detail in when they have already extracted it
// from status.Details().
func FromGRPCStatus(err error, detail string) *Error {
	st, ok := status.FromError(err)
	if !ok {
		return Wrap(TransportFailure, "transport error", err)
	}

	message := detail
	cause := err
	if message == "" {
		message = st.Message()
	} else {
		// The status error's text is the outer message; it is not attached
		// as the cause so that Error() reports only the innermost detail.
		cause = nil
	}

	switch st.Code() {
	case codes.OK:
		return nil
	case codes.Canceled:
		return New(Cancelled, message)
	case codes.DeadlineExceeded, codes.Unavailable, codes.Unauthenticated,
		codes.PermissionDenied, codes.ResourceExhausted, codes.Internal:
		return Wrap(TransportFailure, message, cause)
	case codes.FailedPrecondition, codes.Aborted, codes.NotFound, codes.InvalidArgument:
		return Wrap(EndorsementFailure, message, cause)
	default:
		return Wrap(TransportFailure, message, cause)
	}
}
