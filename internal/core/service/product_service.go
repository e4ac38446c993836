package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/dukapro/dukapro/internal/core/domain"
	"github.com/dukapro/dukapro/internal/port"
)

// ProductService manages the catalog. Restocking goes through UpdateProduct
// directly; only the sale transaction decrements stock conditionally.
type ProductService struct {
	repo   port.ProductRepository
	logger *zap.Logger
}

func NewProductService(repo port.ProductRepository, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{repo: repo, logger: logger}
}

func (s *ProductService) List(ctx context.Context, userID int64) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list products", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return products, nil
}

func (s *ProductService) Create(ctx context.Context, userID int64, p domain.Product) (int64, error) {
	var details []string
	if strings.TrimSpace(p.Name) == "" {
		details = append(details, "Field 'name' is required")
	}
	if p.Price < 0 {
		details = append(details, "Field 'price' must not be negative")
	}
	if p.Quantity < 0 {
		details = append(details, "Field 'quantity' must not be negative")
	}
	if len(details) > 0 {
		return 0, &domain.ValidationError{Details: details}
	}

	p.UserID = userID
	id, err := s.repo.CreateProduct(ctx, &p)
	if err != nil {
		s.logger.Error("failed to create product", zap.Int64("user_id", userID), zap.Error(err))
		return 0, err
	}

	s.logger.Info("product created", zap.Int64("user_id", userID), zap.Int64("product_id", id))
	return id, nil
}

func (s *ProductService) Update(ctx context.Context, userID, productID int64, upd domain.ProductUpdate) error {
	var details []string
	if upd == (domain.ProductUpdate{}) {
		details = append(details, "no fields to update")
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		details = append(details, "Field 'name' must not be empty")
	}
	if upd.Price != nil && *upd.Price < 0 {
		details = append(details, "Field 'price' must not be negative")
	}
	if upd.Quantity != nil && *upd.Quantity < 0 {
		details = append(details, "Field 'quantity' must not be negative")
	}
	if len(details) > 0 {
		return &domain.ValidationError{Details: details}
	}

	return s.repo.UpdateProduct(ctx, userID, productID, upd)
}

func (s *ProductService) Delete(ctx context.Context, userID, productID int64) error {
	return s.repo.DeleteProduct(ctx, userID, productID)
}
