// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/rkhiriev/fabric-gateway-client/errs"
	"github.com/rkhiriev/fabric-gateway-client/models"
)

// SubmitAndCommit orchestrates prepare -> submit -> commitStatus, per
// spec.md §4.5. On failure at any stage, the first error is returned with
// its stage named; the already-parsed endorsement simulation result is
// carried on success even though submit/commitStatus produce no payload of
// their own.
func (c *GatewayClient) SubmitAndCommit(ctx context.Context, params models.ProposalParams, identity models.AppIdentity) (models.SubmittedOutcome, error) {
	prepared, err := c.PrepareTransaction(ctx, params, identity)
	if err != nil {
		return models.SubmittedOutcome{}, stageError("prepare", err)
	}

	if err := c.SubmitSignedTransaction(ctx, params.ChannelName, prepared.TxID, prepared.EnvelopePayload, identity); err != nil {
		return models.SubmittedOutcome{}, stageError("submit", err)
	}

	status, err := c.CommitStatus(ctx, params.ChannelName, prepared.TxID, identity)
	if err != nil {
		return models.SubmittedOutcome{TxID: prepared.TxID, Result: prepared.Simulation}, stageError("commitStatus", err)
	}

	return models.SubmittedOutcome{
		TxID:         prepared.TxID,
		CommitStatus: status,
		Result:       prepared.Simulation,
	}, nil
}

// stageError annotates err with the pipeline stage it failed at, without
// discarding the original *errs.Error kind.
func stageError(stage string, err error) error {
	var e *errs.Error
	if errors.As(err, &e) {
		return errs.Wrap(e.Kind(), fmt.Sprintf("%s: %s", stage, e.Error()), err)
	}
	return fmt.Errorf("%s: %w", stage, err)
}
