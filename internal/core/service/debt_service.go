package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/dukapro/dukapro/internal/core/domain"
	"github.com/dukapro/dukapro/internal/port"
)

// DebtService tracks customer-owed amounts with a pending/paid status.
type DebtService struct {
	repo   port.DebtRepository
	logger *zap.Logger
}

func NewDebtService(repo port.DebtRepository, logger *zap.Logger) *DebtService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DebtService{repo: repo, logger: logger}
}

// List returns the caller's debts. statusFilter is "pending", "paid" or
// "all"/"" for everything.
func (s *DebtService) List(ctx context.Context, userID int64, statusFilter string) ([]domain.Debt, error) {
	var status domain.DebtStatus
	if statusFilter != "" && statusFilter != "all" {
		status = domain.DebtStatus(statusFilter)
		if !domain.ValidDebtStatus(status) {
			return nil, &domain.ValidationError{Details: []string{"Field 'status' must be one of: pending, paid, all"}}
		}
	}

	debts, err := s.repo.ListDebts(ctx, userID, status)
	if err != nil {
		s.logger.Error("failed to list debts", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return debts, nil
}

func (s *DebtService) Create(ctx context.Context, userID int64, d domain.Debt) (int64, error) {
	var details []string
	if strings.TrimSpace(d.CustomerName) == "" {
		details = append(details, "Field 'customer_name' is required")
	}
	if d.Amount <= 0 {
		details = append(details, "Field 'amount' must be greater than zero")
	}
	if d.Status == "" {
		d.Status = domain.DebtStatusPending
	} else if !domain.ValidDebtStatus(d.Status) {
		details = append(details, "Field 'status' must be one of: pending, paid")
	}
	if len(details) > 0 {
		return 0, &domain.ValidationError{Details: details}
	}

	d.UserID = userID
	id, err := s.repo.CreateDebt(ctx, &d)
	if err != nil {
		s.logger.Error("failed to create debt", zap.Int64("user_id", userID), zap.Error(err))
		return 0, err
	}

	s.logger.Info("debt created", zap.Int64("user_id", userID), zap.Int64("debt_id", id))
	return id, nil
}

func (s *DebtService) Update(ctx context.Context, userID, debtID int64, upd domain.DebtUpdate) error {
	var details []string
	if upd == (domain.DebtUpdate{}) {
		details = append(details, "no fields to update")
	}
	if upd.CustomerName != nil && strings.TrimSpace(*upd.CustomerName) == "" {
		details = append(details, "Field 'customer_name' must not be empty")
	}
	if upd.Amount != nil && *upd.Amount <= 0 {
		details = append(details, "Field 'amount' must be greater than zero")
	}
	if upd.Status != nil && !domain.ValidDebtStatus(*upd.Status) {
		details = append(details, "Field 'status' must be one of: pending, paid")
	}
	if len(details) > 0 {
		return &domain.ValidationError{Details: details}
	}

	return s.repo.UpdateDebt(ctx, userID, debtID, upd)
}

func (s *DebtService) Delete(ctx context.Context, userID, debtID int64) error {
	return s.repo.DeleteDebt(ctx, userID, debtID)
}
