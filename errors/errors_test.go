package errors

import (
	// Go Internal Packages
	stderrors "errors"
	"fmt"
	"testing"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEComposesKindMessageAndCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := E(NotFound, "notification 7 not found", cause)

	assert.Equal(t, "notification 7 not found: boom", err.Error())
	assert.True(t, Is(NotFound, err))
	assert.False(t, Is(Exist, err))
	assert.ErrorIs(t, err, cause)
}

func TestIsWalksWrappedChain(t *testing.T) {
	inner := E(Exist, "notification NOTIF-T1 already exists")
	wrapped := fmt.Errorf("create failed: %w", inner)

	assert.True(t, Is(Exist, wrapped))
	assert.False(t, Is(Exist, stderrors.New("plain")))
	assert.False(t, Is(Exist, nil))
}

func TestValidationErrs(t *testing.T) {
	ve := ValidationErrs()
	require.NoError(t, ve.Err())

	ve.Add("kafka.topic", "cannot be empty")
	ve.Add("mongo.uri", "cannot be empty")

	err := ve.Err()
	require.Error(t, err)
	assert.Equal(t, "kafka.topic: cannot be empty; mongo.uri: cannot be empty", err.Error())
}

func TestDuplicateNotificationErrKind(t *testing.T) {
	err := DuplicateNotificationErr("NOTIF-T1", nil)
	assert.True(t, Is(Exist, err))
	assert.Contains(t, err.Error(), "NOTIF-T1")
}
