package service

import (
	"context"
	"fmt"

	"github.com/horsh321/teem-server/internal/auth"
	"github.com/horsh321/teem-server/internal/model"
	"github.com/horsh321/teem-server/internal/repository"

	"github.com/rs/zerolog"
)

type customerService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	merchantRepo repository.MerchantRepository
	logger       zerolog.Logger
}

// NewCustomerService creates a new customer ledger service.
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	merchantRepo repository.MerchantRepository,
	logger zerolog.Logger,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		merchantRepo: merchantRepo,
		logger:       logger.With().Str("service", "customer").Logger(),
	}
}

// authorize resolves the merchant and checks the caller may read its ledger.
func (s *customerService) authorize(ctx context.Context, caller auth.Identity, merchantCode string) (*model.Merchant, error) {
	merchant, err := findMerchant(ctx, s.merchantRepo, merchantCode, s.logger)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && merchant.UserID != caller.UserID {
		return nil, model.ErrMerchantAccess
	}
	return merchant, nil
}

func (s *customerService) ListByMerchant(ctx context.Context, caller auth.Identity, merchantCode string, page model.Page) (*model.CustomerPage, error) {
	if _, err := s.authorize(ctx, caller, merchantCode); err != nil {
		return nil, err
	}

	count, err := s.customerRepo.CountByMerchant(ctx, merchantCode)
	if err != nil {
		s.logger.Error().Err(err).Str("merchant_code", merchantCode).Msg("failed to count customers")
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	customers, err := s.customerRepo.ListByMerchant(ctx, merchantCode, page.Limit, page.Offset())
	if err != nil {
		s.logger.Error().Err(err).Str("merchant_code", merchantCode).Msg("failed to list customers")
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	return &model.CustomerPage{
		CurrentPage: page.Number,
		TotalPages:  page.TotalPages(count),
		Count:       count,
		Customers:   customers,
	}, nil
}

func (s *customerService) GetByUsername(ctx context.Context, caller auth.Identity, merchantCode, username string) (*model.CustomerDetail, error) {
	if _, err := s.authorize(ctx, caller, merchantCode); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByUsername(ctx, merchantCode, username)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to get customer")
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}

	filter := repository.OrderFilter{MerchantCode: merchantCode, UserID: &customer.UserID}
	count, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer orders: %w", err)
	}

	orders := []model.Order{}
	if count > 0 {
		orders, err = s.orderRepo.List(ctx, filter, count, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to get customer orders: %w", err)
		}
	}

	return &model.CustomerDetail{Customer: *customer, CustomerOrders: orders}, nil
}

// Delete removes the ledger row only; the customer's orders are kept.
func (s *customerService) Delete(ctx context.Context, caller auth.Identity, merchantCode, username string) error {
	if _, err := s.authorize(ctx, caller, merchantCode); err != nil {
		return err
	}

	deleted, err := s.customerRepo.Delete(ctx, merchantCode, username)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to delete customer")
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if !deleted {
		return model.ErrCustomerNotFound
	}

	s.logger.Info().
		Str("merchant_code", merchantCode).
		Str("username", username).
		Msg("customer deleted")
	return nil
}
