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
// Mocks（衝突回避の命名）
// =====================

type CartCartRepoMock struct{ mock.Mock }

func (m *CartCartRepoMock) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	cart, _ := args.Get(0).(model.Cart)
	return cart, args.Error(1)
}

func (m *CartCartRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	cart, _ := args.Get(0).(model.Cart)
	return cart, args.Error(1)
}

func (m *CartCartRepoMock) ClearItems(ctx context.Context, cartID int64) error {
	panic("not used in CartUsecase tests")
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) UpsertByCartAndProduct(ctx context.Context, cartID int64, productID int64, addQty int64) error {
	args := m.Called(ctx, cartID, productID, addQty)
	return args.Error(0)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error) {
	args := m.Called(ctx, cartItemID, userID)
	return args.Bool(0), args.Error(1)
}

type CartProductRepoMock struct{ mock.Mock }

func (m *CartProductRepoMock) ListActive(ctx context.Context) ([]model.Product, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) ListAll(ctx context.Context) ([]model.Product, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *CartProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) Patch(ctx context.Context, id int64, patch repo.ProductPatch) error {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) Delete(ctx context.Context, id int64) error {
	panic("not used in CartUsecase tests")
}

func newCartUsecaseForTest() (*CartUsecase, *CartCartRepoMock, *CartItemRepoMock, *CartProductRepoMock) {
	cartRepo := new(CartCartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(CartProductRepoMock)
	return NewCartUsecase(cartRepo, itemRepo, productRepo), cartRepo, itemRepo, productRepo
}

// =====================
// GetCart
// =====================

func TestCartUsecase_GetCart_EmptyCartCreated(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, _ := newCartUsecaseForTest()

	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{}, nil)

	out, err := uc.GetCart(ctx, 1)
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.SubtotalCents)
}

// =====================
// AddItem
// =====================

func TestCartUsecase_AddItem_MergesQuantity(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, productRepo := newCartUsecaseForTest()

	product := model.Product{ID: 5, Name: "Amber Syrup 500ml", PriceCents: 1200, IsActive: true}
	productRepo.On("FindByID", mock.Anything, int64(5)).Return(product, nil)
	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	itemRepo.On("UpsertByCartAndProduct", mock.Anything, int64(10), int64(5), int64(2)).Return(nil)

	//upsert後の状態：1 + 2 = 3
	itemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 100, CartID: 10, ProductID: 5, Quantity: 3},
	}, nil)

	out, err := uc.AddItem(ctx, 1, AddCartInput{ProductID: 5, Quantity: 2})
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(3), out.Items[0].Quantity)
	assert.Equal(t, int64(3600), out.SubtotalCents)

	itemRepo.AssertExpectations(t)
}

// 数量の下限は1（0や負を渡しても1個入る）
func TestCartUsecase_AddItem_QuantityFloorsToOne(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, productRepo := newCartUsecaseForTest()

	product := model.Product{ID: 5, Name: "Dark Syrup 250ml", PriceCents: 899, IsActive: true}
	productRepo.On("FindByID", mock.Anything, int64(5)).Return(product, nil)
	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	itemRepo.On("UpsertByCartAndProduct", mock.Anything, int64(10), int64(5), int64(1)).Return(nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 100, CartID: 10, ProductID: 5, Quantity: 1},
	}, nil)

	_, err := uc.AddItem(ctx, 1, AddCartInput{ProductID: 5, Quantity: -3})
	assert.NoError(t, err)

	itemRepo.AssertCalled(t, "UpsertByCartAndProduct", mock.Anything, int64(10), int64(5), int64(1))
}

func TestCartUsecase_AddItem_InactiveProduct(t *testing.T) {
	ctx := context.Background()
	uc, _, _, productRepo := newCartUsecaseForTest()

	product := model.Product{ID: 5, Name: "Retired", PriceCents: 1000, IsActive: false}
	productRepo.On("FindByID", mock.Anything, int64(5)).Return(product, nil)

	_, err := uc.AddItem(ctx, 1, AddCartInput{ProductID: 5, Quantity: 1})
	assertHTTPStatus(t, err, http.StatusNotFound, "product not found")
}

func TestCartUsecase_AddItem_MissingProduct(t *testing.T) {
	ctx := context.Background()
	uc, _, _, productRepo := newCartUsecaseForTest()

	productRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AddItem(ctx, 1, AddCartInput{ProductID: 99, Quantity: 1})
	assertHTTPStatus(t, err, http.StatusNotFound, "product not found")
}

// =====================
// UpdateItem / RemoveItem
// =====================

func TestCartUsecase_UpdateItem_ZeroQuantityDeletesLine(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, _ := newCartUsecaseForTest()

	itemRepo.On("IsOwnedByUser", mock.Anything, int64(100), int64(1)).Return(true, nil)
	itemRepo.On("DeleteByID", mock.Anything, int64(100)).Return(nil)
	cartRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{}, nil)

	out, err := uc.UpdateItem(ctx, 1, 100, UpdateCartItemInput{Quantity: 0})
	assert.NoError(t, err)
	assert.Empty(t, out.Items)

	itemRepo.AssertCalled(t, "DeleteByID", mock.Anything, int64(100))
	itemRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

// 他人の明細は「存在しない扱い」
func TestCartUsecase_UpdateItem_NotOwned(t *testing.T) {
	ctx := context.Background()
	uc, _, itemRepo, _ := newCartUsecaseForTest()

	itemRepo.On("IsOwnedByUser", mock.Anything, int64(100), int64(2)).Return(false, nil)

	_, err := uc.UpdateItem(ctx, 2, 100, UpdateCartItemInput{Quantity: 5})
	assertHTTPStatus(t, err, http.StatusNotFound, "not found")
}

func TestCartUsecase_RemoveItem_IdempotentWhenMissing(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, _ := newCartUsecaseForTest()

	itemRepo.On("IsOwnedByUser", mock.Anything, int64(100), int64(1)).Return(false, nil)
	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{}, nil)

	out, err := uc.RemoveItem(ctx, 1, 100)
	assert.NoError(t, err)
	assert.Empty(t, out.Items)

	itemRepo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

// 小計は常に現在価格から計算する（カートには価格が無い）
func TestCartUsecase_SubtotalUsesCurrentPrice(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, productRepo := newCartUsecaseForTest()

	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 100, CartID: 10, ProductID: 5, Quantity: 2},
		{ID: 101, CartID: 10, ProductID: 6, Quantity: 1},
	}, nil)
	productRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Product{ID: 5, Name: "A", PriceCents: 1500, IsActive: true}, nil)
	productRepo.On("FindByID", mock.Anything, int64(6)).Return(model.Product{ID: 6, Name: "B", PriceCents: 500, IsActive: true}, nil)

	out, err := uc.GetCart(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(3500), out.SubtotalCents)
}
