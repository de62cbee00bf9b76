package orderspackage_test

import (
	"testing"

	"donations/internal/core/domain/model/orderspackage"
	"donations/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_StringAndParse(t *testing.T) {
	for _, s := range []orderspackage.State{
		orderspackage.Requested,
		orderspackage.Cancelled,
		orderspackage.Designated,
		orderspackage.Received,
		orderspackage.Dispatched,
	} {
		parsed, err := orderspackage.ParseState(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
		require.NoError(t, s.Validate())
	}

	_, err := orderspackage.ParseState("lost")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, "unknown", orderspackage.State(99).String())
	require.Error(t, orderspackage.Unknown.Validate())
}

func TestState_IsActive(t *testing.T) {
	assert.False(t, orderspackage.Cancelled.IsActive())
	assert.False(t, orderspackage.Unknown.IsActive())
	assert.True(t, orderspackage.Requested.IsActive())
	assert.True(t, orderspackage.Designated.IsActive())
	assert.True(t, orderspackage.Received.IsActive())
	assert.True(t, orderspackage.Dispatched.IsActive())
}

func TestState_Next(t *testing.T) {
	tests := []struct {
		from  orderspackage.State
		event orderspackage.Event
		to    orderspackage.State
		ok    bool
	}{
		{orderspackage.Requested, orderspackage.EventDesignate, orderspackage.Designated, true},
		{orderspackage.Cancelled, orderspackage.EventDesignate, orderspackage.Designated, true},
		{orderspackage.Dispatched, orderspackage.EventDesignate, orderspackage.Unknown, false},
		{orderspackage.Requested, orderspackage.EventReject, orderspackage.Cancelled, true},
		{orderspackage.Designated, orderspackage.EventReject, orderspackage.Unknown, false},
		{orderspackage.Designated, orderspackage.EventDispatch, orderspackage.Dispatched, true},
		{orderspackage.Requested, orderspackage.EventDispatch, orderspackage.Unknown, false},
		{orderspackage.Dispatched, orderspackage.EventUndispatch, orderspackage.Designated, true},
		{orderspackage.Designated, orderspackage.EventUndispatch, orderspackage.Unknown, false},
		{orderspackage.Designated, orderspackage.EventUndesignate, orderspackage.Requested, true},
		{orderspackage.Received, orderspackage.EventCancel, orderspackage.Cancelled, true},
		{orderspackage.Received, orderspackage.EventDispatch, orderspackage.Unknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"_"+tt.event.String(), func(t *testing.T) {
			to, ok := tt.from.Next(tt.event)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.ok, tt.from.Can(tt.event))
			if ok {
				assert.Equal(t, tt.to, to)
			}
		})
	}
}
