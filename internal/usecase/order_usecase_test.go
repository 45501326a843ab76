package usecase

import (
	"context"
	"net/http"
	"testing"

	"syrupstore/internal/domain/model"
	repo "syrupstore/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Tx用のMocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
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

type TxCartRepoMock struct{ mock.Mock }

func (m *TxCartRepoMock) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	cart, _ := args.Get(0).(model.Cart)
	return cart, args.Error(1)
}

func (m *TxCartRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	cart, _ := args.Get(0).(model.Cart)
	return cart, args.Error(1)
}

func (m *TxCartRepoMock) ClearItems(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

// 5リポジトリをまとめてTxReposにする
type txReposStub struct {
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
	carts      *TxCartRepoMock
	cartItems  *CartItemRepoMock
	products   *CartProductRepoMock
}

func (s *txReposStub) Orders() repo.OrderRepository         { return s.orders }
func (s *txReposStub) OrderItems() repo.OrderItemRepository { return s.orderItems }
func (s *txReposStub) Carts() repo.CartRepository           { return s.carts }
func (s *txReposStub) CartItems() repo.CartItemRepository   { return s.cartItems }
func (s *txReposStub) Products() repo.ProductRepository     { return s.products }

// fnをそのまま実行するTransactionManager。巻き戻しの検証はinfra側のテストで行う
type txManagerStub struct {
	repos *txReposStub
}

func (tm *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(tm.repos)
}

func newTxStub() (*txManagerStub, *txReposStub) {
	repos := &txReposStub{
		orders:     new(OrderRepoMock),
		orderItems: new(OrderItemRepoMock),
		carts:      new(TxCartRepoMock),
		cartItems:  new(CartItemRepoMock),
		products:   new(CartProductRepoMock),
	}
	return &txManagerStub{repos: repos}, repos
}

func validCheckoutInput() CheckoutInput {
	return CheckoutInput{
		PaymentReference: "EMT-2024-0001",
		PayerEmail:       "buyer@example.com",
		ShippingAddress1: "12 Maple Lane",
		ShippingCity:     "Toronto",
		ShippingCountry:  "CA",
		ShippingRegion:   "ON",
		ShippingPostal:   "M5V 2T6",
	}
}

// =====================
// Checkout
// =====================

func TestOrderUsecase_Checkout_TotalsAndSnapshot(t *testing.T) {
	ctx := context.Background()
	tm, repos := newTxStub()
	uc := NewOrderUsecase(tm)

	repos.carts.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	repos.cartItems.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 100, CartID: 10, ProductID: 5, Quantity: 2},
		{ID: 101, CartID: 10, ProductID: 6, Quantity: 1},
	}, nil)
	repos.products.On("FindByID", mock.Anything, int64(5)).Return(model.Product{ID: 5, Name: "Amber 500ml", PriceCents: 1500, IsActive: true}, nil)
	repos.products.On("FindByID", mock.Anything, int64(6)).Return(model.Product{ID: 6, Name: "Dark 250ml", PriceCents: 500, IsActive: true}, nil)

	repos.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		//小計3500 + ONTARIO送料799 = 4299
		return o.TotalCents == 4299 &&
			o.ShippingCents == 799 &&
			o.ShippingZone == "ONTARIO" &&
			o.Status == model.OrderStatusPendingPayment &&
			o.PaymentMethod == model.PaymentMethodEMT
	})).Return(int64(42), nil)

	repos.orderItems.On("CreateBulk", mock.Anything, int64(42), mock.MatchedBy(func(items []model.OrderItem) bool {
		if len(items) != 2 {
			return false
		}
		//名前と単価のスナップショット
		return items[0].ProductName == "Amber 500ml" && items[0].PriceCents == 1500 && items[0].Quantity == 2 &&
			items[1].ProductName == "Dark 250ml" && items[1].PriceCents == 500 && items[1].Quantity == 1
	})).Return(nil)

	repos.carts.On("ClearItems", mock.Anything, int64(10)).Return(nil)

	out, err := uc.Checkout(ctx, 1, validCheckoutInput())
	assert.NoError(t, err)
	assert.Equal(t, int64(42), out.ID)
	assert.Equal(t, int64(4299), out.TotalCents)
	assert.Equal(t, string(model.OrderStatusPendingPayment), out.Status)
	assert.Len(t, out.Items, 2)

	repos.orders.AssertExpectations(t)
	repos.orderItems.AssertExpectations(t)
	repos.carts.AssertCalled(t, "ClearItems", mock.Anything, int64(10))
}

func TestOrderUsecase_Checkout_EmptyCart(t *testing.T) {
	ctx := context.Background()
	tm, repos := newTxStub()
	uc := NewOrderUsecase(tm)

	repos.carts.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	repos.cartItems.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{}, nil)

	_, err := uc.Checkout(ctx, 1, validCheckoutInput())
	assertHTTPStatus(t, err, http.StatusBadRequest, "cart is empty")

	repos.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderUsecase_Checkout_NoCartYet(t *testing.T) {
	ctx := context.Background()
	tm, repos := newTxStub()
	uc := NewOrderUsecase(tm)

	repos.carts.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{}, repo.ErrNotFound)

	_, err := uc.Checkout(ctx, 1, validCheckoutInput())
	assertHTTPStatus(t, err, http.StatusBadRequest, "cart is empty")
}

func TestOrderUsecase_Checkout_MissingPaymentReference(t *testing.T) {
	tm, _ := newTxStub()
	uc := NewOrderUsecase(tm)

	in := validCheckoutInput()
	in.PaymentReference = "  "

	_, err := uc.Checkout(context.Background(), 1, in)
	assertHTTPStatus(t, err, http.StatusBadRequest, "payment_reference required")
}

func TestOrderUsecase_Checkout_MissingAddress(t *testing.T) {
	tm, _ := newTxStub()
	uc := NewOrderUsecase(tm)

	in := validCheckoutInput()
	in.ShippingAddress1 = ""

	_, err := uc.Checkout(context.Background(), 1, in)
	assertHTTPStatus(t, err, http.StatusBadRequest, "shipping_address1 required")
}

// 海外配送はINTERNATIONALの送料で確定する
func TestOrderUsecase_Checkout_InternationalShipping(t *testing.T) {
	ctx := context.Background()
	tm, repos := newTxStub()
	uc := NewOrderUsecase(tm)

	repos.carts.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	repos.cartItems.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 100, CartID: 10, ProductID: 5, Quantity: 1},
	}, nil)
	repos.products.On("FindByID", mock.Anything, int64(5)).Return(model.Product{ID: 5, Name: "Amber", PriceCents: 1000, IsActive: true}, nil)
	repos.orders.On("Create", mock.Anything, mock.Anything).Return(int64(7), nil)
	repos.orderItems.On("CreateBulk", mock.Anything, int64(7), mock.Anything).Return(nil)
	repos.carts.On("ClearItems", mock.Anything, int64(10)).Return(nil)

	in := validCheckoutInput()
	in.ShippingCountry = "US"
	in.ShippingRegion = "NY"
	in.ShippingPostal = "10001"

	out, err := uc.Checkout(ctx, 1, in)
	assert.NoError(t, err)
	assert.Equal(t, int64(2999), out.ShippingCents)
	assert.Equal(t, "INTERNATIONAL", out.ShippingZone)
	assert.Equal(t, int64(3999), out.TotalCents)
}

// =====================
// 照会
// =====================

func TestOrderUsecase_GetMyOrderDetail_OtherUsersOrder(t *testing.T) {
	ctx := context.Background()
	tm, repos := newTxStub()
	uc := NewOrderUsecase(tm)

	repos.orders.On("FindByID", mock.Anything, int64(42)).Return(model.Order{ID: 42, UserID: 9}, nil)

	_, err := uc.GetMyOrderDetail(ctx, 1, 42)
	assertHTTPStatus(t, err, http.StatusNotFound, "not found")
}

func TestOrderUsecase_ListMyOrders(t *testing.T) {
	ctx := context.Background()
	tm, repos := newTxStub()
	uc := NewOrderUsecase(tm)

	repos.orders.On("ListByUserID", mock.Anything, int64(1)).Return([]model.Order{
		{ID: 2, UserID: 1, Status: model.OrderStatusPaid},
		{ID: 1, UserID: 1, Status: model.OrderStatusShipped},
	}, nil)
	repos.orderItems.On("ListByOrderID", mock.Anything, int64(2)).Return([]model.OrderItem{}, nil)
	repos.orderItems.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{}, nil)

	outs, err := uc.ListMyOrders(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, outs, 2)
	assert.Equal(t, int64(2), outs[0].ID)
}
