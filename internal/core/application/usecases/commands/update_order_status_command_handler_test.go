package commands_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"shoporders/internal/core/application/usecases/commands"
	"shoporders/internal/core/application/views"
	"shoporders/internal/core/domain/model/order"
	"shoporders/internal/core/ports"
	"shoporders/internal/pkg/errs"
	"shoporders/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testUpdateTime = testOrderTime.Add(3 * time.Minute)

func newUpdateHandler(factory commands.OrderUoWFactory) (
	commands.UpdateOrderStatusCommandHandler, *recordingNotifier, *commands.OrderBroadcaster, *MockMailer, *MockEventPublisher,
) {
	notifier := &recordingNotifier{}
	mailer, events := quietSideEffects()
	bc := commands.NewOrderBroadcaster(notifier, events, mailer, nil)
	h := commands.NewUpdateOrderStatusCommandHandler(factory, keylock.New(), bc, nil).
		WithClock(func() time.Time { return testUpdateTime })
	return h, notifier, bc, mailer, events
}

func TestUpdateOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	existing := newTestOrder(t, order.Placed)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, existing.ID()).Return(existing, nil).Once(),
		repo.On("Update", mock.Anything, existing).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	h, notifier, bc, mailer, events := newUpdateHandler(factory)
	cmd, err := commands.NewUpdateOrderStatusCommand(existing.ID().String(), "PREPARING", 3)
	require.NoError(t, err)

	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	bc.Wait()

	assert.Equal(t, order.Preparing, updated.Status())
	assert.Equal(t, testUpdateTime, updated.UpdatedAt())

	calls := notifier.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "/topic/orders/"+existing.ID().String(), calls[0].topic)
	assert.Equal(t, "/topic/vendors/3/orders", calls[1].topic)
	for _, call := range calls {
		view, ok := call.payload.(views.Order)
		require.True(t, ok)
		assert.Equal(t, "PREPARING", view.Status)
	}

	mailer.AssertCalled(t, "SendStatusUpdate", mock.Anything, updated)
	events.AssertCalled(t, "PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e ports.OrderEvent) bool {
		return e.Type == ports.OrderStatusChangedEvent &&
			e.PreviousStatus == "PLACED" && e.Status == "PREPARING" && e.ChangedBy == 3
	}))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_SameStatusIsNoop(t *testing.T) {
	ctx := t.Context()
	existing := newTestOrder(t, order.Preparing)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", mock.Anything, existing.ID()).Return(existing, nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	h, notifier, bc, mailer, _ := newUpdateHandler(factory)
	cmd, _ := commands.NewUpdateOrderStatusCommand(existing.ID().String(), "PREPARING", 3)

	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	bc.Wait()

	assert.Equal(t, order.Preparing, got.Status())
	assert.Equal(t, testOrderTime, got.UpdatedAt(), "no-op must not touch updatedAt")
	assert.Empty(t, notifier.Calls())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	mailer.AssertNotCalled(t, "SendStatusUpdate", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	tests := []struct {
		name string
		from order.Status
		to   string
	}{
		{"skip preparing", order.Placed, "READY_FOR_PICKUP"},
		{"backwards", order.ReadyForPickup, "PREPARING"},
		{"cancel when ready", order.ReadyForPickup, "CANCELLED"},
		{"leave completed", order.Completed, "PREPARING"},
		{"leave cancelled", order.Cancelled, "PLACED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := newTestOrder(t, tt.from)

			repo := new(MockOrderRepository)
			uow := new(MockOrderUoW)
			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()
			uow.On("Begin", mock.Anything).Return(nil).Once()
			uow.On("OrderRepository").Return(repo).Once()
			repo.On("GetForUpdate", mock.Anything, existing.ID()).Return(existing, nil).Once()
			uow.On("Rollback", mock.Anything).Return(nil).Once()

			h, notifier, _, _, _ := newUpdateHandler(factory)
			cmd, err := commands.NewUpdateOrderStatusCommand(existing.ID().String(), tt.to, 0)
			require.NoError(t, err)

			_, err = h.Handle(t.Context(), cmd)
			require.ErrorIs(t, err, errs.ErrStatusTransitionIsInvalid)
			assert.Equal(t, tt.from, existing.Status())
			assert.Empty(t, notifier.Calls())
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	existing := newTestOrder(t, order.Placed)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", mock.Anything, existing.ID()).
		Return(nil, errs.NewObjectNotFoundError("orderId", existing.ID().String())).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	h, notifier, _, _, _ := newUpdateHandler(factory)
	cmd, _ := commands.NewUpdateOrderStatusCommand(existing.ID().String(), "PREPARING", 0)

	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Empty(t, notifier.Calls())
}

func TestUpdateOrderStatusCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	existing := newTestOrder(t, order.Placed)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", mock.Anything, existing.ID()).Return(existing, nil).Once()
	repo.On("Update", mock.Anything, existing).Return(errors.New("update error")).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	h, notifier, _, _, _ := newUpdateHandler(factory)
	cmd, _ := commands.NewUpdateOrderStatusCommand(existing.ID().String(), "PREPARING", 0)

	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Empty(t, notifier.Calls(), "nothing is broadcast when storage fails")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	existing := newTestOrder(t, order.Placed)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", mock.Anything, existing.ID()).Return(existing, nil).Once()
	repo.On("Update", mock.Anything, existing).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(errors.New("commit error")).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	h, notifier, _, _, _ := newUpdateHandler(factory)
	cmd, _ := commands.NewUpdateOrderStatusCommand(existing.ID().String(), "PREPARING", 0)

	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Empty(t, notifier.Calls())
}

func TestUpdateOrderStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	h, _, _, _, _ := newUpdateHandler(new(MockOrderUoWFactory))
	_, err := h.Handle(t.Context(), commands.UpdateOrderStatusCommand{})
	require.ErrorIs(t, err, commands.ErrUpdateOrderStatusCommandIsNotConstructed)
}

func TestUpdateOrderStatusCommandHandler_Handle_ConcurrentSameStatusBroadcastsOnce(t *testing.T) {
	existing := newTestOrder(t, order.Placed)
	store := newMemoryStore(existing)
	h, notifier, bc, _, _ := newUpdateHandler(store)

	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			cmd, err := commands.NewUpdateOrderStatusCommand(existing.ID().String(), "PREPARING", 3)
			if !assert.NoError(t, err) {
				return
			}
			got, err := h.Handle(t.Context(), cmd)
			if assert.NoError(t, err) {
				assert.Equal(t, order.Preparing, got.Status())
			}
		}()
	}
	wg.Wait()
	bc.Wait()

	assert.Equal(t, 1, store.Updates())
	assert.Len(t, notifier.Calls(), 2, "one order topic and one vendor topic message")
}

func TestUpdateOrderStatusCommandHandler_Handle_ConcurrentConflictingTransitions(t *testing.T) {
	existing := newTestOrder(t, order.Preparing)
	store := newMemoryStore(existing)
	h, _, bc, _, _ := newUpdateHandler(store)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded []order.Status
		rejected  int
	)
	for _, target := range []string{"READY_FOR_PICKUP", "CANCELLED"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, _ := commands.NewUpdateOrderStatusCommand(existing.ID().String(), target, 0)
			got, err := h.Handle(t.Context(), cmd)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				assert.ErrorIs(t, err, errs.ErrStatusTransitionIsInvalid)
				rejected++
				return
			}
			succeeded = append(succeeded, got.Status())
		}()
	}
	wg.Wait()
	bc.Wait()

	// READY_FOR_PICKUP -> CANCELLED is not allowed, CANCELLED is terminal.
	// Whichever request wins, the other one must be rejected.
	require.Len(t, succeeded, 1)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 1, store.Updates())
}
