package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	tx           repo.TransactionManager
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	tx repo.TransactionManager,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		tx:           tx,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page         int
	Limit        int
	Search       string
	CategorySlug string
	PriceMin     *decimal.Decimal
	PriceMax     *decimal.Decimal
	InStockOnly  bool
	Sort         string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Search) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid search")
	}

	switch in.Sort {
	case "", "price", "-price", "new", "-new":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:         in.Page,
		Limit:        in.Limit,
		Search:       in.Search,
		CategorySlug: in.CategorySlug,
		PriceMin:     in.PriceMin,
		PriceMax:     in.PriceMax,
		InStockOnly:  in.InStockOnly,
		Sort:         in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

// slugで1件取得
func (u *ProductUsecase) GetProductBySlug(ctx context.Context, slug string) (model.Product, error) {
	if strings.TrimSpace(slug) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid slug")
	}

	p, err := u.productRepo.FindBySlug(ctx, slug)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	items, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// 管理者の商品作成入力
type CreateProductInput struct {
	Name         string
	SKU          string
	Description  string
	Manufacturer string
	Price        decimal.Decimal
	InStock      int64
	CategoryID   int64
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (model.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if strings.TrimSpace(in.SKU) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid sku")
	}
	if in.Price.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.CategoryID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid category_id")
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:         in.Name,
		Slug:         Slugify(in.Name),
		SKU:          in.SKU,
		Description:  in.Description,
		Manufacturer: in.Manufacturer,
		Price:        in.Price.Round(2),
		InStock:      in.InStock,
		CategoryID:   in.CategoryID,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 管理者の商品更新入力。nilのフィールドは変更しない
type UpdateProductInput struct {
	Name         *string
	Description  *string
	Manufacturer *string
	Price        *decimal.Decimal
	InStock      *int64
	CategoryID   *int64
	PriceReason  string
}

// UpdateProduct は商品を更新し、変わったフィールドごとに変更ログを、
// 価格が変わったときは価格履歴を、同一トランザクションで明示的に書き込む。
// （保存フックによる暗黙の記録はしない）
func (u *ProductUsecase) UpdateProduct(ctx context.Context, adminUserID int64, productID int64, in UpdateProductInput) (model.Product, error) {
	if adminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Price != nil && in.Price.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.InStock != nil && *in.InStock < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid in_stock")
	}

	var updated model.Product

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		old, err := r.Products().FindByID(ctx, productID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		next := old
		if in.Name != nil {
			next.Name = *in.Name
		}
		if in.Description != nil {
			next.Description = *in.Description
		}
		if in.Manufacturer != nil {
			next.Manufacturer = *in.Manufacturer
		}
		if in.Price != nil {
			next.Price = in.Price.Round(2)
		}
		if in.InStock != nil {
			next.InStock = *in.InStock
		}
		if in.CategoryID != nil {
			next.CategoryID = *in.CategoryID
		}

		if err := r.Products().Update(ctx, next); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//旧値と新値を比べて、変わったフィールドだけログに残す
		for _, d := range diffProduct(old, next) {
			d.ProductID = productID
			d.ChangedByUserID = &adminUserID
			if err := r.ProductHistory().CreateChangeLog(ctx, d); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		//価格変更は価格履歴にも残す
		if !old.Price.Equal(next.Price) {
			h := model.PriceHistory{
				ProductID:       productID,
				OldPrice:        old.Price,
				NewPrice:        next.Price,
				Reason:          in.PriceReason,
				ChangedByUserID: &adminUserID,
			}
			if err := r.ProductHistory().CreatePriceHistory(ctx, h); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		updated = next
		return nil
	})

	if err != nil {
		return model.Product{}, err
	}
	return updated, nil
}

// 変更ログの対象フィールドの差分
func diffProduct(old model.Product, next model.Product) []model.ProductChangeLog {
	var logs []model.ProductChangeLog

	add := func(field string, oldV string, newV string) {
		if oldV == newV {
			return
		}
		logs = append(logs, model.ProductChangeLog{Field: field, OldValue: oldV, NewValue: newV})
	}

	add("name", old.Name, next.Name)
	add("description", old.Description, next.Description)
	add("manufacturer", old.Manufacturer, next.Manufacturer)
	add("price", old.Price.StringFixed(2), next.Price.StringFixed(2))
	add("in_stock", fmt.Sprintf("%d", old.InStock), fmt.Sprintf("%d", next.InStock))
	add("category_id", fmt.Sprintf("%d", old.CategoryID), fmt.Sprintf("%d", next.CategoryID))

	return logs
}

// 変更履歴の取得（管理者画面用）
func (u *ProductUsecase) ListProductChanges(ctx context.Context, productID int64) ([]model.ProductChangeLog, error) {
	if productID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var logs []model.ProductChangeLog

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		l, err := r.ProductHistory().ListChangeLogs(ctx, productID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		logs = l
		return nil
	})

	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (u *ProductUsecase) ListPriceHistory(ctx context.Context, productID int64) ([]model.PriceHistory, error) {
	if productID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var items []model.PriceHistory

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		h, err := r.ProductHistory().ListPriceHistory(ctx, productID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		items = h
		return nil
	})

	if err != nil {
		return nil, err
	}
	return items, nil
}

// Slugify は名前からURL用のslugを作る（小文字、英数字以外はハイフン）。
func Slugify(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	prevDash := false
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash && b.Len() > 0 {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
