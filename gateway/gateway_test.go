// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gateway

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"testing"

	"github.com/hyperledger/fabric-protos-go-apiv2/common"
	fabricgw "github.com/hyperledger/fabric-protos-go-apiv2/gateway"
	"github.com/hyperledger/fabric-protos-go-apiv2/peer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"

	"github.com/rkhiriev/fabric-gateway-client/errs"
	"github.com/rkhiriev/fabric-gateway-client/models"
)

const (
	testMSPID   = "Org1MSP"
	testCertPEM = "-----BEGIN CERTIFICATE-----\nstub\n-----END CERTIFICATE-----\n"
)

// fakeTransport is a hand-written Transport double: the teacher generates
// mocks with go.uber.org/mock, but no code generation can run in this
// environment, so the collaborator under test (Transport) gets a small
// hand-written fake instead, per SPEC_FULL.md §2.1.
type fakeTransport struct {
	evaluateResp *fabricgw.EvaluateResponse
	evaluateErr  error

	endorseResp *fabricgw.EndorseResponse
	endorseErr  error

	submitErr error

	commitResp *fabricgw.CommitStatusResponse
	commitErr  error
}

func (f *fakeTransport) Evaluate(_ context.Context, _ *fabricgw.EvaluateRequest) (*fabricgw.EvaluateResponse, error) {
	return f.evaluateResp, f.evaluateErr
}

func (f *fakeTransport) Endorse(_ context.Context, _ *fabricgw.EndorseRequest) (*fabricgw.EndorseResponse, error) {
	return f.endorseResp, f.endorseErr
}

func (f *fakeTransport) Submit(_ context.Context, _ *fabricgw.SubmitRequest) (*fabricgw.SubmitResponse, error) {
	return &fabricgw.SubmitResponse{}, f.submitErr
}

func (f *fakeTransport) CommitStatus(_ context.Context, _ *fabricgw.SignedCommitStatusRequest) (*fabricgw.CommitStatusResponse, error) {
	return f.commitResp, f.commitErr
}

func (f *fakeTransport) ChaincodeEvents(_ context.Context, _ *fabricgw.SignedChaincodeEventsRequest) (<-chan *fabricgw.ChaincodeEventsResponse, <-chan error) {
	out := make(chan *fabricgw.ChaincodeEventsResponse)
	errOut := make(chan error, 1)
	close(out)
	close(errOut)
	return out, errOut
}

func testIdentity(t *testing.T) models.AppIdentity {
	t.Helper()
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	return models.AppIdentity{
		MSPID:   testMSPID,
		CertPEM: testCertPEM,
		Sign: func(message []byte) ([]byte, error) {
			hash := sha256.Sum256(message)
			r, s, err := ecdsa.Sign(rand.Reader, priv, hash[:])
			if err != nil {
				return nil, err
			}
			rBytes, sBytes := make([]byte, 32), make([]byte, 32)
			r.FillBytes(rBytes)
			s.FillBytes(sBytes)
			return append(rBytes, sBytes...), nil
		},
	}
}

// TestEvaluateTransaction_RoundTrip is end-to-end scenario 1 from
// spec.md §8.
func TestEvaluateTransaction_RoundTrip(t *testing.T) {
	transport := &fakeTransport{
		evaluateResp: &fabricgw.EvaluateResponse{
			Result: &peer.Response{
				Status:  200,
				Payload: []byte(`[{"ID":"asset1"},{"ID":"asset2"}]`),
			},
		},
	}
	client := New(transport)

	params := models.ProposalParams{
		MSPID:         testMSPID,
		ChannelName:   "mychannel",
		ChaincodeName: "basic",
		FunctionName:  "GetAllAssets",
	}

	result, err := client.EvaluateTransaction(context.Background(), params, testIdentity(t))
	require.NoError(t, err)

	arr, ok := result.ParsedData.([]any)
	require.True(t, ok)
	assert.Len(t, arr, 2)
	assert.Len(t, result.TxID, 64)
}

// TestSubmitAndCommit_CreateThenRead is end-to-end scenario 2 from
// spec.md §8.
func TestSubmitAndCommit_CreateThenRead(t *testing.T) {
	identity := testIdentity(t)

	createTransport := &fakeTransport{
		endorseResp: &fabricgw.EndorseResponse{
			PreparedTransaction: &common.Envelope{Payload: []byte("prepared-payload")},
			Result:              &peer.Response{Status: 200, Payload: []byte(`{"ok":true}`)},
		},
		commitResp: &fabricgw.CommitStatusResponse{Result: peer.TxValidationCode_VALID},
	}
	createClient := New(createTransport)

	createParams := models.ProposalParams{
		MSPID: testMSPID, ChannelName: "mychannel", ChaincodeName: "basic",
		FunctionName: "CreateAsset",
		Args: []models.Arg{
			models.StringArg("test-asset-1"), models.StringArg("blue"),
			models.StringArg("10"), models.StringArg("owner1"), models.StringArg("500"),
		},
	}
	outcome, err := createClient.SubmitAndCommit(context.Background(), createParams, identity)
	require.NoError(t, err)
	assert.True(t, outcome.CommitStatus.Valid)

	readTransport := &fakeTransport{
		evaluateResp: &fabricgw.EvaluateResponse{
			Result: &peer.Response{
				Status:  200,
				Payload: []byte(`{"ID":"test-asset-1","Color":"blue","Size":10,"Owner":"owner1","AppraisedValue":500}`),
			},
		},
	}
	readClient := New(readTransport)

	readParams := models.ProposalParams{
		MSPID: testMSPID, ChannelName: "mychannel", ChaincodeName: "basic",
		FunctionName: "ReadAsset",
		Args:         []models.Arg{models.StringArg("test-asset-1")},
	}
	read, err := readClient.EvaluateTransaction(context.Background(), readParams, identity)
	require.NoError(t, err)

	m, ok := read.ParsedData.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "test-asset-1", m["ID"])
	assert.Equal(t, "blue", m["Color"])
	assert.Equal(t, float64(10), m["Size"])
	assert.Equal(t, "owner1", m["Owner"])
	assert.Equal(t, float64(500), m["AppraisedValue"])
}

// TestEvaluateTransaction_UnknownFunction is end-to-end scenario 3 from
// spec.md §8.
func TestEvaluateTransaction_UnknownFunction(t *testing.T) {
	transport := &fakeTransport{
		evaluateErr: status.Error(codes.FailedPrecondition, "Function NonExistentFunction not found"),
	}
	client := New(transport)

	params := models.ProposalParams{
		MSPID: testMSPID, ChannelName: "mychannel", ChaincodeName: "basic",
		FunctionName: "NonExistentFunction",
	}

	_, err := client.EvaluateTransaction(context.Background(), params, testIdentity(t))
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.EndorsementFailure))
	assert.Contains(t, err.Error(), "Function NonExistentFunction not found")
}

// TestSubmitAndCommit_CommitFailureSurfacing is end-to-end scenario 4 from
// spec.md §8.
func TestSubmitAndCommit_CommitFailureSurfacing(t *testing.T) {
	transport := &fakeTransport{
		endorseResp: &fabricgw.EndorseResponse{
			PreparedTransaction: &common.Envelope{Payload: []byte("prepared-payload")},
			Result:              &peer.Response{Status: 200},
		},
		commitResp: &fabricgw.CommitStatusResponse{Result: peer.TxValidationCode_MVCC_READ_CONFLICT},
	}
	client := New(transport)

	params := models.ProposalParams{
		MSPID: testMSPID, ChannelName: "mychannel", ChaincodeName: "basic",
		FunctionName: "UpdateAsset",
	}

	outcome, err := client.SubmitAndCommit(context.Background(), params, testIdentity(t))
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.CommitFailed))
	assert.Contains(t, err.Error(), "MVCC_READ_CONFLICT")
	assert.NotEmpty(t, outcome.TxID)
}

func TestPrepareTransaction_ReturnsTxIDAndEnvelopePayload(t *testing.T) {
	transport := &fakeTransport{
		endorseResp: &fabricgw.EndorseResponse{
			PreparedTransaction: &common.Envelope{Payload: []byte("prepared-payload")},
			Result:              &peer.Response{Status: 200, Payload: []byte("ok")},
		},
	}
	client := New(transport)

	params := models.ProposalParams{MSPID: testMSPID, ChannelName: "mychannel", ChaincodeName: "basic", FunctionName: "CreateAsset"}
	prepared, err := client.PrepareTransaction(context.Background(), params, testIdentity(t))
	require.NoError(t, err)

	assert.Len(t, prepared.TxID, 64)
	assert.Equal(t, []byte("prepared-payload"), prepared.EnvelopePayload)
}

func TestSubmitSignedTransaction_VerifiesSignature(t *testing.T) {
	identity := testIdentity(t)
	var captured *common.Envelope

	transport := &capturingSubmitTransport{onSubmit: func(env *common.Envelope) { captured = env }}
	client := New(transport)

	payload := []byte("envelope-payload")
	err := client.SubmitSignedTransaction(context.Background(), "mychannel", "tx-1", payload, identity)
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, payload, captured.Payload)
	assert.NotEmpty(t, captured.Signature)
}

type capturingSubmitTransport struct {
	fakeTransport
	onSubmit func(*common.Envelope)
}

func (c *capturingSubmitTransport) Submit(_ context.Context, req *fabricgw.SubmitRequest) (*fabricgw.SubmitResponse, error) {
	c.onSubmit(req.GetPreparedTransaction())
	return &fabricgw.SubmitResponse{}, nil
}

func TestCommitStatus_ValidReturnsNoError(t *testing.T) {
	transport := &fakeTransport{commitResp: &fabricgw.CommitStatusResponse{Result: peer.TxValidationCode_VALID}}
	client := New(transport)

	commitStatus, err := client.CommitStatus(context.Background(), "mychannel", "tx-1", testIdentity(t))
	require.NoError(t, err)
	assert.True(t, commitStatus.Valid)
	assert.Equal(t, "VALID", commitStatus.Code)
}

func TestDecodeDeliverFrame_FilteredBlockYieldsAction(t *testing.T) {
	frame, err := proto.Marshal(&peer.DeliverResponse{
		Type: &peer.DeliverResponse_FilteredBlock{
			FilteredBlock: &peer.FilteredBlock{
				ChannelId: "mychannel",
				Number:    42,
				FilteredTransactions: []*peer.FilteredTransaction{
					{Txid: "tx-1", TxValidationCode: peer.TxValidationCode_VALID},
				},
			},
		},
	})
	require.NoError(t, err)

	block, skip, err := decodeDeliverFrame(frame)
	require.NoError(t, err)
	assert.False(t, skip)
	assert.Equal(t, uint64(42), block.Number)
	require.Len(t, block.ChaincodeActions, 1)
	assert.Equal(t, "tx-1", block.ChaincodeActions[0].TxID)
	assert.Equal(t, "VALID", block.ChaincodeActions[0].ValidationCode)
}

func TestDecodeDeliverFrame_StatusIsSkipped(t *testing.T) {
	frame, err := proto.Marshal(&peer.DeliverResponse{
		Type: &peer.DeliverResponse_Status{Status: common.Status_SUCCESS},
	})
	require.NoError(t, err)

	_, skip, err := decodeDeliverFrame(frame)
	require.NoError(t, err)
	assert.True(t, skip)
}
