package repository

import (
	"context"

	"syrupstore/internal/domain/model"
)

type CartRepository interface {
	//ユーザーのカートを取得し、無ければ作る（遅延作成）
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)

	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)

	//明細を全削除する。カートの行自体は残す
	ClearItems(ctx context.Context, cartID int64) error
}
