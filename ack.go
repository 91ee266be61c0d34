package pullsub

import (
	"context"

	"github.com/arloliu/pullsub/types"
)

// Batched acknowledgment helpers.
//
// Each helper issues at most one RPC for the whole token list and returns
// its status verbatim. Neither helper retries internally: the engine's
// stream retry state machine never re-issues acknowledgment traffic, so any
// retry policy belongs to the caller.

// acknowledge acks all given lease tokens in one call.
//
// An empty token list succeeds without issuing any RPC.
func acknowledge(ctx context.Context, client types.PullClient, subscription string, ackIDs []string) error {
	if len(ackIDs) == 0 {
		return nil
	}

	return client.Acknowledge(ctx, subscription, ackIDs)
}

// modifyAckDeadline sets the ack deadline of all given lease tokens in one
// call. Zero seconds is the nack convention.
//
// An empty token list succeeds without issuing any RPC.
func modifyAckDeadline(ctx context.Context, client types.PullClient, subscription string, ackIDs []string, ackDeadlineSeconds int32) error {
	if len(ackIDs) == 0 {
		return nil
	}

	return client.ModifyAckDeadline(ctx, subscription, ackIDs, ackDeadlineSeconds)
}

// nack makes all given lease tokens immediately eligible for redelivery.
func nack(ctx context.Context, client types.PullClient, subscription string, ackIDs []string) error {
	return modifyAckDeadline(ctx, client, subscription, ackIDs, 0)
}
