package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/prodmanag/backend/internal/models"
	"github.com/prodmanag/backend/internal/repo"
	"github.com/prodmanag/backend/internal/transport"
	"github.com/prodmanag/backend/internal/util"
)

var ErrValidation = errors.New("validation failed")

const (
	titleMinLen = 3
	titleMaxLen = 100
	descMaxLen  = 500
)

// Columns the listing may be ordered by. The query parameter uses the JSON
// field name, the value is the database column.
var sortColumns = map[string]string{
	"title":     "title",
	"price":     "price",
	"createdAt": "created_at",
}

type CatalogService struct {
	Repo *repo.GormRepo
}

type ListQuery struct {
	Page    int
	Limit   int
	Sort    string
	Keyword string
}

type ListResult struct {
	Products   []models.Product
	Total      int64
	Page       int
	TotalPages int64
}

func (s *CatalogService) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	offset, limit := util.Calculate(page, q.Limit)

	sort := q.Sort
	if sort == "" {
		sort = "createdAt"
	}
	desc := strings.HasPrefix(sort, "-")
	col, ok := sortColumns[strings.TrimPrefix(sort, "-")]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort field %q", ErrValidation, sort)
	}

	total, items, err := s.Repo.ListProducts(ctx, repo.ProductFilter{
		Keyword:    strings.TrimSpace(q.Keyword),
		OrderField: col,
		Desc:       desc,
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Products:   items,
		Total:      total,
		Page:       page,
		TotalPages: util.TotalPages(total, limit),
	}, nil
}

func (s *CatalogService) Create(ctx context.Context, req transport.CreateProductRequest, ownerID uint) (*models.Product, error) {
	title, err := validTitle(req.Title)
	if err != nil {
		return nil, err
	}

	desc := strings.TrimSpace(req.Description)
	if utf8.RuneCountInString(desc) > descMaxLen {
		return nil, fmt.Errorf("%w: description cannot exceed %d characters", ErrValidation, descMaxLen)
	}

	price, err := parsePrice(string(req.Price))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var image *string
	if req.Image != nil {
		image, err = normalizeImageURL(*req.Image)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	prod := &models.Product{
		Title:       title,
		Description: desc,
		Price:       price,
		Image:       image,
		CreatedBy:   ownerID,
	}
	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		return nil, err
	}
	return prod, nil
}

// Update applies only the supplied fields. A missing image key leaves the
// stored image alone; an explicit null or empty string clears it.
func (s *CatalogService) Update(ctx context.Context, id uint, req transport.UpdateProductRequest) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title, err := validTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		prod.Title = title
	}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		if utf8.RuneCountInString(desc) > descMaxLen {
			return nil, fmt.Errorf("%w: description cannot exceed %d characters", ErrValidation, descMaxLen)
		}
		prod.Description = desc
	}
	if req.Price != nil {
		price, err := parsePrice(string(*req.Price))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		prod.Price = price
	}
	if req.Image.Defined {
		if req.Image.Value == nil {
			prod.Image = nil
		} else {
			image, err := normalizeImageURL(*req.Image.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrValidation, err)
			}
			prod.Image = image
		}
	}

	if err := s.Repo.SaveProduct(ctx, prod); err != nil {
		return nil, err
	}
	return prod, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.DeleteProduct(ctx, id)
}

func validTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(title)
	if n < titleMinLen {
		return "", fmt.Errorf("%w: title must be at least %d characters", ErrValidation, titleMinLen)
	}
	if n > titleMaxLen {
		return "", fmt.Errorf("%w: title cannot exceed %d characters", ErrValidation, titleMaxLen)
	}
	return title, nil
}
