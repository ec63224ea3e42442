package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNew_KindAndMessage(t *testing.T) {
	e := New(NotUnlocked, "sign requested with no unlocked key")
	assert.Equal(t, NotUnlocked, e.Kind())
	assert.Contains(t, e.Error(), "sign requested with no unlocked key")
}

func TestWrap_UnwrapsCause(t *testing.T) {
	cause := errors.New("boom")
	e := Wrap(TransportFailure, "dial failed", cause)

	assert.ErrorIs(t, e, cause)
	assert.Contains(t, e.Error(), "boom")
}

func TestCommitFailedError_CarriesTxIDAndCode(t *testing.T) {
	e := CommitFailedError("abc123", "MVCC_READ_CONFLICT")

	assert.Equal(t, CommitFailed, e.Kind())
	assert.Equal(t, "abc123", e.TxID())
	assert.Equal(t, "MVCC_READ_CONFLICT", e.ValidationCode())
	assert.Contains(t, e.Error(), "abc123")
	assert.Contains(t, e.Error(), "MVCC_READ_CONFLICT")
}

func TestIsKind(t *testing.T) {
	var err error = New(BadPassword, "authentication failed")
	assert.True(t, IsKind(err, BadPassword))
	assert.False(t, IsKind(err, NotUnlocked))
	assert.False(t, IsKind(errors.New("plain"), BadPassword))
}

func TestError_Is_MatchesSameKindOnly(t *testing.T) {
	a := New(StoreCorrupt, "partial record")
	b := New(StoreCorrupt, "different message, same kind")
	c := New(InputInvalid, "different kind")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestFromHTTPStatus_PrefersDetail(t *testing.T) {
	e := FromHTTPStatus(500, "chaincode returned: insufficient funds")
	assert.Equal(t, TransportFailure, e.Kind())
	assert.Contains(t, e.Error(), "insufficient funds")
}

func TestFromHTTPStatus_FallsBackToGenericMessage(t *testing.T) {
	e := FromHTTPStatus(503, "")
	assert.Equal(t, TransportFailure, e.Kind())
	assert.Contains(t, e.Error(), "server error")
}

func TestFromGRPCStatus_OKReturnsNil(t *testing.T) {
	err := status.Error(codes.OK, "")
	assert.Nil(t, FromGRPCStatus(err, ""))
}

func TestFromGRPCStatus_CancelledMapsToCancelled(t *testing.T) {
	err := status.Error(codes.Canceled, "client cancelled")
	e := FromGRPCStatus(err, "")
	require.NotNil(t, e)
	assert.Equal(t, Cancelled, e.Kind())
}

func TestFromGRPCStatus_FailedPreconditionMapsToEndorsementFailure(t *testing.T) {
	err := status.Error(codes.FailedPrecondition, "Function NonExistentFunction not found")
	e := FromGRPCStatus(err, "")
	require.NotNil(t, e)
	assert.Equal(t, EndorsementFailure, e.Kind())
	assert.Contains(t, e.Error(), "Function NonExistentFunction not found")
}

func TestFromGRPCStatus_UnavailableMapsToTransportFailure(t *testing.T) {
	err := status.Error(codes.Unavailable, "connection refused")
	e := FromGRPCStatus(err, "")
	require.NotNil(t, e)
	assert.Equal(t, TransportFailure, e.Kind())
}

func TestFromGRPCStatus_PrefersInnermostDetail(t *testing.T) {
	err := status.Error(codes.FailedPrecondition, "outer gateway wrapper message")
	e := FromGRPCStatus(err, "inner chaincode error: asset not found")
	require.NotNil(t, e)
	assert.Contains(t, e.Error(), "inner chaincode error")
	assert.NotContains(t, e.Error(), "outer gateway wrapper message")
}

func TestFromGRPCStatus_NonStatusError(t *testing.T) {
	e := FromGRPCStatus(errors.New("not a grpc status"), "")
	require.NotNil(t, e)
	assert.Equal(t, TransportFailure, e.Kind())
}
