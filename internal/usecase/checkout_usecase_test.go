package usecase

import (
	"context"
	"errors"
	"testing"

	"souk/internal/domain/model"
	repo "souk/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type checkoutMocks struct {
	tenants    *TenantRepoMock
	products   *ProductRepoMock
	carts      *CartRepoMock
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
	inventory  *InventoryRepoMock
}

func newCheckoutUsecaseForTest() (*CheckoutUsecase, checkoutMocks) {
	m := checkoutMocks{
		tenants:    &TenantRepoMock{},
		products:   &ProductRepoMock{},
		carts:      &CartRepoMock{},
		orders:     &OrderRepoMock{},
		orderItems: &OrderItemRepoMock{},
		inventory:  &InventoryRepoMock{},
	}

	uc := NewCheckoutUsecase(
		m.tenants, m.products, m.carts,
		m.orders, m.orderItems, m.inventory,
		&fixedOrderNumberGenerator{n: "ORD-TEST0001"},
		zap.NewNop(),
	)
	return uc, m
}

func validCheckoutInput() CheckoutInput {
	return CheckoutInput{
		TenantID:        5,
		TenantSlug:      "bio-market",
		CustomerName:    "Amine B",
		CustomerPhone:   "0555 12 34 56",
		CustomerEmail:   "amine@example.com",
		DeliveryAddress: "12 rue des Oliviers",
		Wilaya:          "Alger",
		Commune:         "Bab El Oued",
		PaymentMethod:   "cash",
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	uc, m := newCheckoutUsecaseForTest()
	ctx := context.Background()

	tenant := model.Tenant{ID: 5, Slug: "bio-market", DeliveryFee: 200, MinimumOrder: 100, IsActive: true}
	product := model.Product{ID: 100, TenantID: 5, Name: "Huile d'olive 1L", Price: 150, StockQuantity: 10, IsActive: true}
	lines := []model.CartItem{{ID: 1, UserID: 10, TenantID: 5, ProductID: 100, Quantity: 2}}

	m.tenants.On("FindByID", mock.Anything, int64(5)).Return(tenant, nil)
	m.carts.On("ListByUserAndTenant", mock.Anything, int64(10), int64(5)).Return(lines, nil)
	m.products.On("FindByID", mock.Anything, int64(100)).Return(product, nil)

	m.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.TenantID == 5 &&
			o.UserID == 10 &&
			o.OrderNumber == "ORD-TEST0001" &&
			o.Status == model.OrderStatusPending &&
			o.PaymentStatus == model.PaymentStatusPending &&
			o.Subtotal == 300 &&
			o.DeliveryFee == 200 &&
			o.Total == 500 &&
			o.DeliveryAddress == "12 rue des Oliviers, Bab El Oued, Alger"
	})).Return(int64(42), nil)

	m.orderItems.On("CreateBulk", mock.Anything, int64(42), mock.MatchedBy(func(items []model.OrderItem) bool {
		if len(items) != 1 {
			return false
		}
		it := items[0]
		return it.ProductID == 100 &&
			it.ProductName == "Huile d'olive 1L" &&
			it.UnitPrice == 150 &&
			it.Quantity == 2 &&
			it.TotalPrice == 300
	})).Return(nil)

	m.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(100), int64(2)).Return(true, nil)
	m.carts.On("ClearByUserAndTenant", mock.Anything, int64(10), int64(5)).Return(nil)

	out, err := uc.PlaceOrder(ctx, 10, validCheckoutInput())

	assert.NoError(t, err)
	assert.Equal(t, int64(42), out.OrderID)
	assert.Equal(t, "ORD-TEST0001", out.OrderNumber)
	assert.Equal(t, int64(500), out.Total)

	m.orders.AssertExpectations(t)
	m.orderItems.AssertExpectations(t)
	m.inventory.AssertExpectations(t)
	m.carts.AssertExpectations(t)
}

func TestPlaceOrder_Unauthenticated(t *testing.T) {
	uc, _ := newCheckoutUsecaseForTest()

	_, err := uc.PlaceOrder(context.Background(), 0, validCheckoutInput())

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 401, he.Status)
}

func TestPlaceOrder_ValidationFailedFieldList(t *testing.T) {
	uc, m := newCheckoutUsecaseForTest()

	in := validCheckoutInput()
	in.CustomerName = ""
	in.CustomerPhone = "123"

	_, err := uc.PlaceOrder(context.Background(), 10, in)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Len(t, he.Fields, 2)

	paths := []string{he.Fields[0].Path, he.Fields[1].Path}
	assert.Contains(t, paths, "customer_name")
	assert.Contains(t, paths, "customer_phone")

	// structural failures never reach storage
	m.tenants.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	m.carts.AssertNotCalled(t, "ListByUserAndTenant", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrder_CardNotAvailable(t *testing.T) {
	uc, _ := newCheckoutUsecaseForTest()

	in := validCheckoutInput()
	in.PaymentMethod = "card"

	_, err := uc.PlaceOrder(context.Background(), 10, in)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Equal(t, "card payments are not yet available", he.Message)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	uc, m := newCheckoutUsecaseForTest()

	tenant := model.Tenant{ID: 5, Slug: "bio-market", IsActive: true}
	m.tenants.On("FindByID", mock.Anything, int64(5)).Return(tenant, nil)
	m.carts.On("ListByUserAndTenant", mock.Anything, int64(10), int64(5)).Return([]model.CartItem{}, nil)

	_, err := uc.PlaceOrder(context.Background(), 10, validCheckoutInput())

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Equal(t, "your cart is empty", he.Message)
	m.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlaceOrder_InactiveProduct(t *testing.T) {
	uc, m := newCheckoutUsecaseForTest()

	tenant := model.Tenant{ID: 5, Slug: "bio-market", IsActive: true}
	product := model.Product{ID: 100, TenantID: 5, Name: "Dattes Deglet Nour", Price: 900, StockQuantity: 3, IsActive: false}
	lines := []model.CartItem{{ID: 1, UserID: 10, TenantID: 5, ProductID: 100, Quantity: 1}}

	m.tenants.On("FindByID", mock.Anything, int64(5)).Return(tenant, nil)
	m.carts.On("ListByUserAndTenant", mock.Anything, int64(10), int64(5)).Return(lines, nil)
	m.products.On("FindByID", mock.Anything, int64(100)).Return(product, nil)

	_, err := uc.PlaceOrder(context.Background(), 10, validCheckoutInput())

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Contains(t, he.Message, "Dattes Deglet Nour")
	m.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.inventory.AssertNotCalled(t, "DecreaseStockIfEnough", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	uc, m := newCheckoutUsecaseForTest()

	tenant := model.Tenant{ID: 5, Slug: "bio-market", IsActive: true}
	product := model.Product{ID: 100, TenantID: 5, Name: "Lait frais", Price: 80, StockQuantity: 2, IsActive: true}
	lines := []model.CartItem{{ID: 1, UserID: 10, TenantID: 5, ProductID: 100, Quantity: 3}}

	m.tenants.On("FindByID", mock.Anything, int64(5)).Return(tenant, nil)
	m.carts.On("ListByUserAndTenant", mock.Anything, int64(10), int64(5)).Return(lines, nil)
	m.products.On("FindByID", mock.Anything, int64(100)).Return(product, nil)

	_, err := uc.PlaceOrder(context.Background(), 10, validCheckoutInput())

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Contains(t, he.Message, "Lait frais")
	assert.Contains(t, he.Message, "only 2 left")
	m.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlaceOrder_BelowMinimumOrder(t *testing.T) {
	uc, m := newCheckoutUsecaseForTest()

	tenant := model.Tenant{ID: 5, Slug: "bio-market", DeliveryFee: 200, MinimumOrder: 1000, IsActive: true}
	product := model.Product{ID: 200, TenantID: 5, Name: "Pain complet", Price: 50, StockQuantity: 5, IsActive: true}
	lines := []model.CartItem{{ID: 1, UserID: 10, TenantID: 5, ProductID: 200, Quantity: 1}}

	m.tenants.On("FindByID", mock.Anything, int64(5)).Return(tenant, nil)
	m.carts.On("ListByUserAndTenant", mock.Anything, int64(10), int64(5)).Return(lines, nil)
	m.products.On("FindByID", mock.Anything, int64(200)).Return(product, nil)

	_, err := uc.PlaceOrder(context.Background(), 10, validCheckoutInput())

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Contains(t, he.Message, "minimum order is 1000")

	// zero writes on a precondition failure
	m.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.orderItems.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything, mock.Anything)
	m.inventory.AssertNotCalled(t, "DecreaseStockIfEnough", mock.Anything, mock.Anything, mock.Anything)
	m.carts.AssertNotCalled(t, "ClearByUserAndTenant", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrder_ItemInsertFailureDeletesOrder(t *testing.T) {
	uc, m := newCheckoutUsecaseForTest()

	tenant := model.Tenant{ID: 5, Slug: "bio-market", DeliveryFee: 0, MinimumOrder: 0, IsActive: true}
	product := model.Product{ID: 100, TenantID: 5, Name: "Couscous fin", Price: 300, StockQuantity: 10, IsActive: true}
	lines := []model.CartItem{{ID: 1, UserID: 10, TenantID: 5, ProductID: 100, Quantity: 1}}

	m.tenants.On("FindByID", mock.Anything, int64(5)).Return(tenant, nil)
	m.carts.On("ListByUserAndTenant", mock.Anything, int64(10), int64(5)).Return(lines, nil)
	m.products.On("FindByID", mock.Anything, int64(100)).Return(product, nil)
	m.orders.On("Create", mock.Anything, mock.Anything).Return(int64(77), nil)
	m.orderItems.On("CreateBulk", mock.Anything, int64(77), mock.Anything).Return(errors.New("insert failed"))
	m.orders.On("DeleteByID", mock.Anything, int64(77)).Return(nil)

	_, err := uc.PlaceOrder(context.Background(), 10, validCheckoutInput())

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 500, he.Status)

	// no order may survive without items
	m.orders.AssertCalled(t, "DeleteByID", mock.Anything, int64(77))
	m.inventory.AssertNotCalled(t, "DecreaseStockIfEnough", mock.Anything, mock.Anything, mock.Anything)
	m.carts.AssertNotCalled(t, "ClearByUserAndTenant", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrder_StockDecrementFailureIsNonFatal(t *testing.T) {
	uc, m := newCheckoutUsecaseForTest()

	tenant := model.Tenant{ID: 5, Slug: "bio-market", DeliveryFee: 0, MinimumOrder: 0, IsActive: true}
	product := model.Product{ID: 100, TenantID: 5, Name: "Tomates", Price: 120, StockQuantity: 4, IsActive: true}
	lines := []model.CartItem{{ID: 1, UserID: 10, TenantID: 5, ProductID: 100, Quantity: 2}}

	m.tenants.On("FindByID", mock.Anything, int64(5)).Return(tenant, nil)
	m.carts.On("ListByUserAndTenant", mock.Anything, int64(10), int64(5)).Return(lines, nil)
	m.products.On("FindByID", mock.Anything, int64(100)).Return(product, nil)
	m.orders.On("Create", mock.Anything, mock.Anything).Return(int64(88), nil)
	m.orderItems.On("CreateBulk", mock.Anything, int64(88), mock.Anything).Return(nil)
	m.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(100), int64(2)).Return(false, errors.New("db down"))
	m.carts.On("ClearByUserAndTenant", mock.Anything, int64(10), int64(5)).Return(nil)

	out, err := uc.PlaceOrder(context.Background(), 10, validCheckoutInput())

	// the order stands even though bookkeeping failed
	assert.NoError(t, err)
	assert.Equal(t, int64(88), out.OrderID)
}

func TestPlaceOrder_CartClearFailureIsNonFatal(t *testing.T) {
	uc, m := newCheckoutUsecaseForTest()

	tenant := model.Tenant{ID: 5, Slug: "bio-market", DeliveryFee: 0, MinimumOrder: 0, IsActive: true}
	product := model.Product{ID: 100, TenantID: 5, Name: "Oranges", Price: 90, StockQuantity: 8, IsActive: true}
	lines := []model.CartItem{{ID: 1, UserID: 10, TenantID: 5, ProductID: 100, Quantity: 1}}

	m.tenants.On("FindByID", mock.Anything, int64(5)).Return(tenant, nil)
	m.carts.On("ListByUserAndTenant", mock.Anything, int64(10), int64(5)).Return(lines, nil)
	m.products.On("FindByID", mock.Anything, int64(100)).Return(product, nil)
	m.orders.On("Create", mock.Anything, mock.Anything).Return(int64(99), nil)
	m.orderItems.On("CreateBulk", mock.Anything, int64(99), mock.Anything).Return(nil)
	m.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(100), int64(1)).Return(true, nil)
	m.carts.On("ClearByUserAndTenant", mock.Anything, int64(10), int64(5)).Return(errors.New("delete failed"))

	out, err := uc.PlaceOrder(context.Background(), 10, validCheckoutInput())

	assert.NoError(t, err)
	assert.Equal(t, int64(99), out.OrderID)
}

func TestPlaceOrder_TenantNotFound(t *testing.T) {
	uc, m := newCheckoutUsecaseForTest()

	m.tenants.On("FindByID", mock.Anything, int64(5)).Return(model.Tenant{}, repo.ErrNotFound)

	_, err := uc.PlaceOrder(context.Background(), 10, validCheckoutInput())

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestPlaceOrder_SlugMismatch(t *testing.T) {
	uc, m := newCheckoutUsecaseForTest()

	tenant := model.Tenant{ID: 5, Slug: "autre-marche", IsActive: true}
	m.tenants.On("FindByID", mock.Anything, int64(5)).Return(tenant, nil)

	_, err := uc.PlaceOrder(context.Background(), 10, validCheckoutInput())

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

// The snapshot taken at validation time is what gets persisted, not a
// fresh read: two lines, both snapshotted before the first write.
func TestPlaceOrder_SnapshotsAllLinesBeforeWriting(t *testing.T) {
	uc, m := newCheckoutUsecaseForTest()

	tenant := model.Tenant{ID: 5, Slug: "bio-market", DeliveryFee: 100, MinimumOrder: 0, IsActive: true}
	p1 := model.Product{ID: 100, TenantID: 5, Name: "Semoule", Price: 250, StockQuantity: 6, IsActive: true}
	p2 := model.Product{ID: 101, TenantID: 5, Name: "Harissa", Price: 130, StockQuantity: 9, IsActive: true}
	lines := []model.CartItem{
		{ID: 1, UserID: 10, TenantID: 5, ProductID: 100, Quantity: 2},
		{ID: 2, UserID: 10, TenantID: 5, ProductID: 101, Quantity: 3},
	}

	m.tenants.On("FindByID", mock.Anything, int64(5)).Return(tenant, nil)
	m.carts.On("ListByUserAndTenant", mock.Anything, int64(10), int64(5)).Return(lines, nil)
	m.products.On("FindByID", mock.Anything, int64(100)).Return(p1, nil)
	m.products.On("FindByID", mock.Anything, int64(101)).Return(p2, nil)

	m.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.Subtotal == 890 && o.Total == 990
	})).Return(int64(50), nil)

	m.orderItems.On("CreateBulk", mock.Anything, int64(50), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 &&
			items[0].ProductName == "Semoule" && items[0].TotalPrice == 500 &&
			items[1].ProductName == "Harissa" && items[1].TotalPrice == 390
	})).Return(nil)

	m.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(100), int64(2)).Return(true, nil)
	m.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(101), int64(3)).Return(true, nil)
	m.carts.On("ClearByUserAndTenant", mock.Anything, int64(10), int64(5)).Return(nil)

	out, err := uc.PlaceOrder(context.Background(), 10, validCheckoutInput())

	assert.NoError(t, err)
	assert.Equal(t, int64(990), out.Total)
	m.orderItems.AssertExpectations(t)
	m.inventory.AssertExpectations(t)
}
