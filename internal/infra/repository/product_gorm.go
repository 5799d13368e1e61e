package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 商品一覧を、トークン検索/カテゴリ/価格帯/在庫/ソート/ページング付きで返す。
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	// 検索語は空白で分割し、どれかのトークンが
	// name/description/sku/manufacturer に当たれば一致
	if strings.TrimSpace(q.Search) != "" {
		tokens := strings.Fields(q.Search)
		or := r.db.Session(&gorm.Session{NewDB: true})
		cond := or
		for i, t := range tokens {
			like := "%" + t + "%"
			tokenCond := or.Where(
				"name ILIKE ? OR description ILIKE ? OR sku ILIKE ? OR manufacturer ILIKE ?",
				like, like, like, like,
			)
			if i == 0 {
				cond = tokenCond
			} else {
				cond = cond.Or(tokenCond)
			}
		}
		tx = tx.Where(cond)
	}

	//カテゴリ（slugで絞る）
	if q.CategorySlug != "" {
		tx = tx.Where(
			"category_id IN (?)",
			r.db.Model(&model.Category{}).Select("id").Where("slug = ?", q.CategorySlug),
		)
	}

	//価格帯
	if q.PriceMin != nil {
		tx = tx.Where("price >= ?", *q.PriceMin)
	}
	if q.PriceMax != nil {
		tx = tx.Where("price <= ?", *q.PriceMax)
	}

	//在庫ありのみ
	if q.InStockOnly {
		tx = tx.Where("in_stock > 0")
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	//sort
	switch q.Sort {
	case "price":
		tx = tx.Order("price asc").Order("id asc")
	case "-price":
		tx = tx.Order("price desc").Order("id desc")
	case "new":
		tx = tx.Order("created_at desc").Order("id desc")
	case "-new":
		tx = tx.Order("created_at asc").Order("id asc")
	default:
		tx = tx.Order("name asc").Order("id asc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

// IDで商品を取得
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

// slugで商品を取得
func (r *ProductGormRepository) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の更新
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":         p.Name,
		"description":  p.Description,
		"manufacturer": p.Manufacturer,
		"price":        p.Price,
		"in_stock":     p.InStock,
		"category_id":  p.CategoryID,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
