package usecase

import (
	"context"

	"souk/internal/domain/model"
	repo "souk/internal/repository"

	"github.com/stretchr/testify/mock"
)

// Repository mocks shared by the usecase tests.

type TenantRepoMock struct{ mock.Mock }

func (m *TenantRepoMock) FindByID(ctx context.Context, id int64) (model.Tenant, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(model.Tenant)
	return t, args.Error(1)
}

func (m *TenantRepoMock) FindBySlug(ctx context.Context, slug string) (model.Tenant, error) {
	args := m.Called(ctx, slug)
	t, _ := args.Get(0).(model.Tenant)
	return t, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) ListByUserAndTenant(ctx context.Context, userID int64, tenantID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, userID, tenantID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartRepoMock) FindByID(ctx context.Context, lineID int64) (model.CartItem, error) {
	args := m.Called(ctx, lineID)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Error(1)
}

func (m *CartRepoMock) UpsertLine(ctx context.Context, userID int64, tenantID int64, productID int64, addQty int64) error {
	args := m.Called(ctx, userID, tenantID, productID, addQty)
	return args.Error(0)
}

func (m *CartRepoMock) UpdateQuantity(ctx context.Context, lineID int64, qty int64) error {
	args := m.Called(ctx, lineID, qty)
	return args.Error(0)
}

func (m *CartRepoMock) DeleteByID(ctx context.Context, lineID int64) error {
	args := m.Called(ctx, lineID)
	return args.Error(0)
}

func (m *CartRepoMock) ClearByUserAndTenant(ctx context.Context, userID int64, tenantID int64) error {
	args := m.Called(ctx, userID, tenantID)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserAndTenant(ctx context.Context, userID int64, tenantID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, tenantID, page, limit)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) DeleteByID(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *OrderRepoMock) ListStaff(ctx context.Context, f repo.StaffOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) SetStock(ctx context.Context, productID int64, newStock int64) error {
	args := m.Called(ctx, productID, newStock)
	return args.Error(0)
}

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

type StaffRepoMock struct{ mock.Mock }

func (m *StaffRepoMock) FindByUserAndTenant(ctx context.Context, userID int64, tenantID int64) (model.StaffAssignment, error) {
	args := m.Called(ctx, userID, tenantID)
	a, _ := args.Get(0).(model.StaffAssignment)
	return a, args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) FindByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Create(ctx context.Context, u model.User) (model.User, error) {
	args := m.Called(ctx, u)
	out, _ := args.Get(0).(model.User)
	return out, args.Error(1)
}

// fixedOrderNumberGenerator returns the same number every time.
type fixedOrderNumberGenerator struct {
	n string
}

func (g *fixedOrderNumberGenerator) Next() string {
	return g.n
}
