package repository

import (
	"context"
	"errors"
	"strings"

	"syrupstore/internal/domain/model"
	repo "syrupstore/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 公開商品（is_active=true）のみを返す
func (r *ProductGormRepository) ListActive(ctx context.Context) ([]model.Product, error) {
	var products []model.Product

	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id asc").
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}

	return products, nil
}

// 管理者用：非公開も含めた全件
func (r *ProductGormRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product

	err := r.db.WithContext(ctx).
		Order("id asc").
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}

	return products, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 指定されたフィールドだけ更新。nilは「変更なし」
func (r *ProductGormRepository) Patch(ctx context.Context, id int64, patch repo.ProductPatch) error {
	updates := map[string]interface{}{}

	if patch.Name != nil {
		updates["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.PriceCents != nil {
		updates["price_cents"] = *patch.PriceCents
	}
	if patch.ImageURL != nil {
		updates["image_url"] = *patch.ImageURL
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}
	if patch.Inventory != nil {
		updates["inventory"] = *patch.Inventory
	}

	if len(updates) == 0 {
		//何も指定されていなければ存在確認だけする
		var p model.Product
		err := r.db.WithContext(ctx).Select("id").First(&p, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repo.ErrNotFound
		}
		return err
	}

	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 注文履歴を壊さない削除。
// order_items の参照をNULLにし、カート明細を消してから商品行を削除する。
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Product
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repo.ErrNotFound
			}
			return err
		}

		//注文明細はスナップショット（名前・単価）で表示が生き残る
		if err := tx.Model(&model.OrderItem{}).
			Where("product_id = ?", id).
			Update("product_id", nil).Error; err != nil {
			return err
		}

		//カート明細は商品と一緒に消える
		if err := tx.Where("product_id = ?", id).
			Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Product{}, id).Error
	})
}
