package service

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/dukapro/dukapro/internal/core/domain"
	"github.com/dukapro/dukapro/internal/port"
)

// totalTolerance absorbs float rounding when comparing the declared total
// against the recomputed line sum.
const totalTolerance = 0.005

// SaleService validates sale requests and hands them to the repository as
// one atomic unit. It is the only component permitted to mutate sales,
// sale line items, and product stock together.
type SaleService struct {
	repo   port.SaleRepository
	logger *zap.Logger
}

func NewSaleService(repo port.SaleRepository, logger *zap.Logger) *SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{repo: repo, logger: logger}
}

// RecordSale applies a multi-line sale. Validation fails fast with
// *domain.ValidationError before any write is attempted; once validation
// passes, the repository guarantees all-or-nothing persistence.
func (s *SaleService) RecordSale(ctx context.Context, userID int64, lines []domain.SaleLine, declaredTotal float64) (int64, error) {
	if err := validateSale(lines, declaredTotal); err != nil {
		return 0, err
	}

	saleID, err := s.repo.CreateSale(ctx, userID, lines, declaredTotal)
	if err != nil {
		s.logger.Warn("sale rejected",
			zap.Int64("user_id", userID),
			zap.Int("lines", len(lines)),
			zap.Float64("total", declaredTotal),
			zap.Error(err),
		)
		return 0, err
	}

	s.logger.Info("sale recorded",
		zap.Int64("user_id", userID),
		zap.Int64("sale_id", saleID),
		zap.Float64("total", declaredTotal),
	)
	return saleID, nil
}

func (s *SaleService) ListSales(ctx context.Context, userID int64) ([]domain.Sale, error) {
	sales, err := s.repo.ListSales(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list sales", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return sales, nil
}

func validateSale(lines []domain.SaleLine, declaredTotal float64) error {
	var details []string

	if len(lines) == 0 {
		details = append(details, "Field 'items' is required")
	}
	if declaredTotal < 0 {
		details = append(details, "Field 'total_amount' must not be negative")
	}

	sum := 0.0
	for i, line := range lines {
		if line.ProductID <= 0 {
			details = append(details, fmt.Sprintf("items[%d]: productId is required", i))
		}
		if line.Quantity <= 0 {
			details = append(details, fmt.Sprintf("items[%d]: qty must be a positive integer", i))
		}
		if line.UnitPrice < 0 {
			details = append(details, fmt.Sprintf("items[%d]: price must not be negative", i))
		}
		sum += float64(line.Quantity) * line.UnitPrice
	}

	// The caller's total is not trusted: it must match the line sum.
	if len(details) == 0 && math.Abs(sum-declaredTotal) > totalTolerance {
		details = append(details,
			fmt.Sprintf("Field 'total_amount' (%.2f) does not match the sum of items (%.2f)", declaredTotal, sum))
	}

	if len(details) > 0 {
		return &domain.ValidationError{Details: details}
	}
	return nil
}
