package repository

import (
	"context"
	"errors"

	"syrupstore/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 部分更新のパッチ。nil のフィールドは「指定なし」で、今の値を保つ。
// ゼロ値へのリセットとは区別される。
type ProductPatch struct {
	Name        *string
	Description *string
	PriceCents  *int64
	ImageURL    *string
	IsActive    *bool
	Inventory   *int64
}

// 商品の永続化だけを約束。
type ProductRepository interface {
	//公開中（is_active=true）の商品一覧
	ListActive(ctx context.Context) ([]model.Product, error)

	//管理者用の全件一覧
	ListAll(ctx context.Context) ([]model.Product, error)

	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)

	//指定されたフィールドだけ更新する
	Patch(ctx context.Context, id int64, patch ProductPatch) error

	//注文履歴を壊さない削除：order_items の参照をNULLにし、
	//この商品のカート明細を消してから行を削除する
	Delete(ctx context.Context, id int64) error
}
