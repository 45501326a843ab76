package usecase

import (
	"context"
	"net/http"
	"strings"

	"syrupstore/internal/domain/model"
	repo "syrupstore/internal/repository"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

// 公開中の商品一覧
func (u *ProductUsecase) ListActiveProducts(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.ListActive(ctx)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//非公開商品は一般には見せない
	if !p.IsActive {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return p, nil
}

// スタッフ用：非公開も含む全件
func (u *ProductUsecase) AdminListProducts(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.ListAll(ctx)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

type AdminCreateProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	ImageURL    string
	IsActive    bool
	Inventory   int64
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, in AdminCreateProductInput) (model.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	//価格と在庫は0未満にしない
	if in.PriceCents < 0 {
		in.PriceCents = 0
	}
	if in.Inventory < 0 {
		in.Inventory = 0
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		PriceCents:  in.PriceCents,
		ImageURL:    in.ImageURL,
		IsActive:    in.IsActive,
		Inventory:   in.Inventory,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// AdminUpdateProduct は部分更新。nilのフィールドは今の値を保つ。
func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, productID int64, patch repo.ProductPatch) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	//価格と在庫は0未満にしない（クランプ）
	if patch.PriceCents != nil && *patch.PriceCents < 0 {
		var zero int64 = 0
		patch.PriceCents = &zero
	}
	if patch.Inventory != nil && *patch.Inventory < 0 {
		var zero int64 = 0
		patch.Inventory = &zero
	}

	err := u.productRepo.Patch(ctx, productID, patch)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.productRepo.Delete(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
