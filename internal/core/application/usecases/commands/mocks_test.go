package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"shoporders/internal/core/application/usecases/commands"
	"shoporders/internal/core/domain/model/kernel"
	"shoporders/internal/core/domain/model/order"
	"shoporders/internal/core/ports"
	"shoporders/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) ListByVendor(_ context.Context, _ int64) ([]*order.Order, error) {
	return nil, nil
}

func (m *MockOrderRepository) ListByUser(_ context.Context, _ int64) ([]*order.Order, error) {
	return nil, nil
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockShopDirectory struct{ mock.Mock }

func (m *MockShopDirectory) GetShop(ctx context.Context, shopID int64) (ports.ShopInfo, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).(ports.ShopInfo), args.Error(1)
}

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) GetUser(ctx context.Context, userID int64) (ports.UserInfo, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(ports.UserInfo), args.Error(1)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendOrderConfirmation(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockMailer) SendStatusUpdate(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishOrderEvent(ctx context.Context, event ports.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type published struct {
	topic   string
	payload any
}

// recordingNotifier captures every Publish call; it reports one subscriber per call.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []published
}

func (n *recordingNotifier) Publish(_ context.Context, topic string, payload any) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, published{topic: topic, payload: payload})
	return 1
}

func (n *recordingNotifier) Calls() []published {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]published, len(n.calls))
	copy(out, n.calls)
	return out
}

// quietSideEffects returns mailer and event mocks accepting any call.
func quietSideEffects() (*MockMailer, *MockEventPublisher) {
	mailer := new(MockMailer)
	mailer.On("SendOrderConfirmation", mock.Anything, mock.Anything).Return(nil).Maybe()
	mailer.On("SendStatusUpdate", mock.Anything, mock.Anything).Return(nil).Maybe()
	events := new(MockEventPublisher)
	events.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil).Maybe()
	return mailer, events
}

var testOrderTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(1, "Masala Dosa", 50.0, 2, "", true)
	require.NoError(t, err)

	o, err := order.RestoreOrder(1, kernel.NewUUID(),
		order.Shop{ShopID: 7, ShopName: "Dosa Corner", VendorID: 3, VendorName: "Ravi"},
		order.Customer{UserID: 11, Name: "Asha", Email: "asha@example.com"},
		[]order.LineItem{item}, 100.0, status,
		testOrderTime, testOrderTime.Add(20*time.Minute), testOrderTime)
	require.NoError(t, err)
	return o
}

// memoryStore is a transactional in-memory order store. Each unit of work sees a
// private copy of the order, so lost updates surface exactly as they would in a
// database without row locks.
type memoryStore struct {
	mu      sync.Mutex
	orders  map[string]*order.Order
	updates int
}

func newMemoryStore(orders ...*order.Order) *memoryStore {
	s := &memoryStore{orders: make(map[string]*order.Order)}
	for _, o := range orders {
		s.orders[o.ID().String()] = o
	}
	return s
}

func (s *memoryStore) Create() commands.OrderUoW { return &memoryUoW{store: s} }

func (s *memoryStore) Updates() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updates
}

type memoryUoW struct {
	store   *memoryStore
	pending []*order.Order
}

func (u *memoryUoW) Begin(context.Context) error { return nil }

func (u *memoryUoW) Rollback(context.Context) error {
	u.pending = nil
	return nil
}

func (u *memoryUoW) Commit(context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	for _, o := range u.pending {
		u.store.orders[o.ID().String()] = o
		u.store.updates++
	}
	u.pending = nil
	return nil
}

func (u *memoryUoW) OrderRepository() ports.OrderRepository { return &memoryRepo{uow: u} }

type memoryRepo struct {
	ports.OrderRepository
	uow *memoryUoW
}

func (r *memoryRepo) GetForUpdate(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.uow.store.mu.Lock()
	stored, ok := r.uow.store.orders[id.String()]
	r.uow.store.mu.Unlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}
	return order.RestoreOrder(stored.RecordID(), stored.ID(), stored.Shop(), stored.Customer(),
		stored.Items(), stored.TotalAmount().Float64(), stored.Status(),
		stored.OrderTime(), stored.EstimatedPickupTime(), stored.UpdatedAt())
}

func (r *memoryRepo) Update(_ context.Context, o *order.Order) error {
	r.uow.pending = append(r.uow.pending, o)
	return nil
}

func (r *memoryRepo) Add(_ context.Context, o *order.Order) error {
	r.uow.pending = append(r.uow.pending, o)
	return nil
}

func (r *memoryRepo) Exists(_ context.Context, id kernel.UUID) (bool, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	_, ok := r.uow.store.orders[id.String()]
	return ok, nil
}
