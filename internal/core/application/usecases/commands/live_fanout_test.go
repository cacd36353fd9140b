package commands_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"shoporders/internal/core/application/usecases/commands"
	"shoporders/internal/core/application/views"
	"shoporders/internal/core/ports"
	"shoporders/internal/pkg/hub"
	"shoporders/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func drain(sub *hub.ChannelSubscriber) []hub.Message {
	var out []hub.Message
	for {
		select {
		case msg := <-sub.Messages():
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestOrderLifecycle_LiveSubscribers(t *testing.T) {
	ctx := t.Context()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	notificationHub := hub.New(logger, nil)
	t.Cleanup(notificationHub.Close)

	store := newMemoryStore()
	shops := new(MockShopDirectory)
	shops.On("GetShop", mock.Anything, int64(7)).Return(testShop, nil)
	mailer, events := quietSideEffects()
	bc := commands.NewOrderBroadcaster(notificationHub, events, mailer, logger)

	create := commands.NewCreateOrderCommandHandler(store, shops, new(MockUserDirectory), bc, 20*time.Minute, logger)
	update := commands.NewUpdateOrderStatusCommandHandler(store, keylock.New(), bc, logger)

	vendorTopic := ports.VendorOrdersTopic(testShop.VendorID)
	early := hub.NewChannelSubscriber(8)
	require.NoError(t, notificationHub.Subscribe(vendorTopic, early))

	cmd, err := commands.NewCreateOrderCommand("", 7, fullCustomer(), validItems(), 120, time.Time{})
	require.NoError(t, err)
	placed, err := create.Handle(ctx, cmd)
	require.NoError(t, err)

	late := hub.NewChannelSubscriber(8)
	require.NoError(t, notificationHub.Subscribe(vendorTopic, late))
	tracker := hub.NewChannelSubscriber(8)
	require.NoError(t, notificationHub.Subscribe(ports.OrderTopic(placed.ID()), tracker))

	got := drain(early)
	require.Len(t, got, 1, "a subscriber present at creation sees the new order once")
	var view views.Order
	require.NoError(t, json.Unmarshal(got[0].Payload, &view))
	assert.Equal(t, placed.ID().String(), view.OrderID)
	assert.Equal(t, "PLACED", view.Status)
	assert.Empty(t, drain(late), "no replay for subscribers that joined after creation")

	for range 2 {
		statusCmd, cmdErr := commands.NewUpdateOrderStatusCommand(placed.ID().String(), "PREPARING", 3)
		require.NoError(t, cmdErr)
		_, err = update.Handle(ctx, statusCmd)
		require.NoError(t, err)
	}

	tracked := drain(tracker)
	require.Len(t, tracked, 1, "resubmitting the current status broadcasts nothing")
	require.NoError(t, json.Unmarshal(tracked[0].Payload, &view))
	assert.Equal(t, "PREPARING", view.Status)
	assert.Len(t, drain(early), 1)
	assert.Len(t, drain(late), 1)

	bc.Wait()
}
