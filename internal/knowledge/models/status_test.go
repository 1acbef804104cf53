package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"

	id "kgov/pkg/domain"
	dErrors "kgov/pkg/domain-errors"
)

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusDraft, StatusPendingCompliance, StatusChangesRequested,
		StatusPendingGovernance, StatusPublished, StatusRejected} {
		assert.True(t, s.Valid(), "expected %s to be valid", s)
	}
	assert.False(t, Status("archived").Valid())
	assert.False(t, Status("").Valid())
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		op   Operation
		from Status
		to   Status
	}{
		{OpApproveCompliance, StatusPendingCompliance, StatusPendingGovernance},
		{OpRejectCompliance, StatusPendingCompliance, StatusRejected},
		{OpRequestChanges, StatusPendingCompliance, StatusChangesRequested},
		{OpPublish, StatusPendingGovernance, StatusPublished},
		{OpRejectGovernance, StatusPendingGovernance, StatusRejected},
	}
	for _, tc := range cases {
		t.Run(string(tc.op), func(t *testing.T) {
			from, to, ok := TransitionFor(tc.op)
			require.True(t, ok)
			assert.Equal(t, tc.from, from)
			assert.Equal(t, tc.to, to)
			assert.True(t, tc.from.CanApply(tc.op))
			assert.False(t, tc.to.CanApply(tc.op), "transition must not apply from its own target state")
		})
	}

	_, _, ok := TransitionFor(Operation("archive"))
	assert.False(t, ok)
}

func TestTerminalStatesRejectEveryOperation(t *testing.T) {
	ops := []Operation{OpApproveCompliance, OpRejectCompliance, OpRequestChanges, OpPublish, OpRejectGovernance}
	for _, s := range []Status{StatusPublished, StatusRejected, StatusChangesRequested} {
		assert.True(t, s.Terminal())
		for _, op := range ops {
			assert.False(t, s.CanApply(op), "%s should reject %s", s, op)
		}
	}
}

func TestResourceCanApply(t *testing.T) {
	now := time.Now()
	resource, err := NewResource(id.ResourceID(uuid.New()), "GDPR playbook", id.UserID(uuid.New()), now)
	require.NoError(t, err)
	require.Equal(t, StatusPendingCompliance, resource.Status)

	t.Run("allowed from pending compliance", func(t *testing.T) {
		assert.NoError(t, resource.CanApply(OpApproveCompliance))
	})

	t.Run("publish from pending compliance conflicts", func(t *testing.T) {
		err := resource.CanApply(OpPublish)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("unknown operation is internal", func(t *testing.T) {
		err := resource.CanApply(Operation("archive"))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func TestResourceApplyPublishSetsPublishedAtOnce(t *testing.T) {
	now := time.Now()
	resource, err := NewResource(id.ResourceID(uuid.New()), "Incident runbook", id.UserID(uuid.New()), now)
	require.NoError(t, err)

	resource.Apply(OpApproveCompliance, now)
	assert.Equal(t, StatusPendingGovernance, resource.Status)
	assert.Nil(t, resource.PublishedAt)

	publishTime := now.Add(time.Hour)
	resource.Apply(OpPublish, publishTime)
	require.NotNil(t, resource.PublishedAt)
	assert.Equal(t, publishTime, *resource.PublishedAt)
	assert.Equal(t, publishTime, resource.UpdatedAt)

	// A later Apply must not move the publication timestamp.
	resource.Apply(OpPublish, publishTime.Add(time.Hour))
	assert.Equal(t, publishTime, *resource.PublishedAt)
}

func TestNewResourceValidation(t *testing.T) {
	now := time.Now()

	_, err := NewResource(id.ResourceID(uuid.New()), "", id.UserID(uuid.New()), now)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	_, err = NewResource(id.ResourceID(uuid.New()), "Untitled", id.UserID{}, now)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}
