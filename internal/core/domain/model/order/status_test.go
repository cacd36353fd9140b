package order_test

import (
	"encoding/json"
	"testing"

	"shoporders/internal/core/domain/model/order"
	"shoporders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Run("should parse every wire name", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			parsed, err := order.ParseStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should ignore case and surrounding spaces", func(t *testing.T) {
		parsed, err := order.ParseStatus("  ready_for_pickup ")
		require.NoError(t, err)
		assert.Equal(t, order.ReadyForPickup, parsed)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, s := range []string{"", "UNKNOWN", "DELIVERED", "READY"} {
			_, err := order.ParseStatus(s)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, s)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should accept all lifecycle statuses", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			assert.NoError(t, s.Validate())
		}
	})

	t.Run("should reject unknown and out of range values", func(t *testing.T) {
		for _, s := range []order.Status{order.Unknown, order.Status(-1), order.Status(99)} {
			err := s.Validate()
			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		}
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "PLACED", order.Placed.String())
	assert.Equal(t, "PREPARING", order.Preparing.String())
	assert.Equal(t, "READY_FOR_PICKUP", order.ReadyForPickup.String())
	assert.Equal(t, "COMPLETED", order.Completed.String())
	assert.Equal(t, "CANCELLED", order.Cancelled.String())
	assert.Equal(t, "UNKNOWN", order.Status(42).String())
}

func TestStatus_TransitionTo(t *testing.T) {
	allowed := map[order.Status][]order.Status{
		order.Placed:         {order.Preparing, order.Cancelled},
		order.Preparing:      {order.ReadyForPickup, order.Cancelled},
		order.ReadyForPickup: {order.Completed},
	}

	isAllowed := func(from, to order.Status) bool {
		for _, s := range allowed[from] {
			if s == to {
				return true
			}
		}
		return false
	}

	for _, from := range order.AllStatuses() {
		for _, to := range order.AllStatuses() {
			name := from.String() + " -> " + to.String()
			t.Run(name, func(t *testing.T) {
				next, changed, err := from.TransitionTo(to)

				switch {
				case from == to:
					require.NoError(t, err)
					assert.False(t, changed)
					assert.Equal(t, from, next)
				case isAllowed(from, to):
					require.NoError(t, err)
					assert.True(t, changed)
					assert.Equal(t, to, next)
				default:
					require.ErrorIs(t, err, errs.ErrStatusTransitionIsInvalid)
					assert.False(t, changed)
					assert.Equal(t, from, next)
				}
			})
		}
	}

	t.Run("should reject skipping READY_FOR_PICKUP", func(t *testing.T) {
		_, _, err := order.Preparing.TransitionTo(order.Completed)
		require.ErrorIs(t, err, errs.ErrStatusTransitionIsInvalid)
		assert.Contains(t, err.Error(), "PREPARING -> COMPLETED")
	})

	t.Run("should explain that terminal statuses are final", func(t *testing.T) {
		_, _, err := order.Completed.TransitionTo(order.Placed)
		require.ErrorIs(t, err, errs.ErrStatusTransitionIsInvalid)
		assert.Contains(t, err.Error(), "final status")
	})

	t.Run("should reject invalid target as a bad value", func(t *testing.T) {
		_, _, err := order.Placed.TransitionTo(order.Unknown)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Placed.IsTerminal())
	assert.False(t, order.Preparing.IsTerminal())
	assert.False(t, order.ReadyForPickup.IsTerminal())
}

func TestStatus_JSON(t *testing.T) {
	t.Run("should encode as wire name", func(t *testing.T) {
		data, err := json.Marshal(struct {
			Status order.Status `json:"status"`
		}{Status: order.ReadyForPickup})

		require.NoError(t, err)
		assert.JSONEq(t, `{"status":"READY_FOR_PICKUP"}`, string(data))
	})

	t.Run("should decode wire name", func(t *testing.T) {
		var payload struct {
			Status order.Status `json:"status"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"status":"cancelled"}`), &payload))
		assert.Equal(t, order.Cancelled, payload.Status)
	})

	t.Run("should fail on unknown name", func(t *testing.T) {
		var payload struct {
			Status order.Status `json:"status"`
		}
		require.Error(t, json.Unmarshal([]byte(`{"status":"SHIPPED"}`), &payload))
	})
}
