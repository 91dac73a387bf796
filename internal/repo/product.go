package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/prodmanag/backend/internal/models"
)

type ProductFilter struct {
	Keyword    string
	OrderField string
	Desc       bool
	Offset     int
	Limit      int
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

func (r *GormRepo) ListProducts(ctx context.Context, f ProductFilter) (int64, []models.Product, error) {
	base := func() *gorm.DB {
		q := r.DB.WithContext(ctx).Model(&models.Product{})
		if f.Keyword != "" {
			pat := "%" + escapeLike(strings.ToLower(f.Keyword)) + "%"
			q = q.Where(
				`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`,
				pat, pat,
			)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return 0, nil, err
	}

	dir := " ASC"
	if f.Desc {
		dir = " DESC"
	}

	items := make([]models.Product, 0, f.Limit)
	if err := base().
		Order(f.OrderField + dir).
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Save(prod).Error
}

// DeleteProduct removes the record and returns what was deleted.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		return nil, err
	}

	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return &prod, nil
}
