package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/horsh321/teem-server/internal/auth"
	"github.com/horsh321/teem-server/internal/model"
	"github.com/horsh321/teem-server/internal/notify"
	"github.com/horsh321/teem-server/internal/pricing"
	"github.com/horsh321/teem-server/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo    repository.OrderRepository
	merchantRepo repository.MerchantRepository
	userRepo     repository.UserRepository
	quoter       pricing.Quoter
	ledger       *LedgerUpdater
	notifier     *notify.Notifier
	guard        bool
	now          func() time.Time
	logger       zerolog.Logger
}

// NewOrderService creates a new order service. With guardTransitions set,
// status updates may only move an order forward.
func NewOrderService(
	orderRepo repository.OrderRepository,
	merchantRepo repository.MerchantRepository,
	userRepo repository.UserRepository,
	quoter pricing.Quoter,
	ledger *LedgerUpdater,
	notifier *notify.Notifier,
	guardTransitions bool,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		merchantRepo: merchantRepo,
		userRepo:     userRepo,
		quoter:       quoter,
		ledger:       ledger,
		notifier:     notifier,
		guard:        guardTransitions,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger.With().Str("service", "order").Logger(),
	}
}

func (s *orderService) Checkout(ctx context.Context, merchantCode string, req *model.CheckoutRequest) (*model.Quote, error) {
	if req == nil {
		return nil, model.ErrInvalidJSON
	}
	if req.Quantity < 0 {
		return nil, model.ErrInvalidQuantity
	}
	if req.SubTotal.IsNegative() {
		return nil, model.ErrInvalidSubTotal
	}
	if strings.TrimSpace(req.ShippingDetails.State) == "" {
		return nil, model.MissingField("shippingDetails.state")
	}

	if _, err := s.merchant(ctx, merchantCode); err != nil {
		return nil, err
	}

	return s.quoter.Quote(ctx, merchantCode, pricing.QuoteInput{
		Quantity:     req.Quantity,
		State:        req.ShippingDetails.State,
		DiscountCode: req.DiscountCode,
		SubTotal:     req.SubTotal,
	})
}

func (s *orderService) CreateOrder(
	ctx context.Context,
	caller auth.Identity,
	merchantCode string,
	req *model.OrderRequest,
) (*OrderReceipt, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID.String()).Msg("failed to get user")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	merchant, err := s.merchant(ctx, merchantCode)
	if err != nil {
		return nil, err
	}

	quote, err := s.quoter.Quote(ctx, merchant.MerchantCode, pricing.QuoteInput{
		Quantity:     req.Quantity,
		State:        req.ShippingDetails.State,
		DiscountCode: req.DiscountCode,
		SubTotal:     req.SubTotal,
	})
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("merchant_code", merchant.MerchantCode).
			Str("discount_code", req.DiscountCode).
			Msg("order pricing failed")
		return nil, err
	}

	now := s.now()
	order := &model.Order{
		ID:              uuid.New(),
		UserID:          user.ID,
		MerchantCode:    merchant.MerchantCode,
		OrderItems:      req.OrderItems,
		ShippingDetails: req.ShippingDetails,
		PaymentMethod:   req.PaymentMethod,
		Quantity:        req.Quantity,
		SubTotal:        quote.SubTotal,
		TaxPrice:        quote.CalcTax,
		ShippingFee:     quote.GetShippingFee,
		Discount:        quote.DiscountValue,
		Total:           quote.Total,
		OrderStatus:     model.StatusOpen,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.DiscountCode != "" {
		code := req.DiscountCode
		order.DiscountCode = &code
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// The order stays persisted if the ledger write fails; the next order
	// recomputes the row from scratch.
	if _, err := s.ledger.Upsert(ctx, user, merchant); err != nil {
		return nil, err
	}

	mail := s.notifier.Notify(ctx, notify.KindOrderCreated, recipient(user), notify.Data{
		OrderID:      order.ID.String(),
		Total:        order.Total.StringFixed(2),
		MerchantName: merchant.MerchantName,
		MerchantCode: merchant.MerchantCode,
	})

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("merchant_code", order.MerchantCode).
		Int("item_count", len(order.OrderItems)).
		Str("total", order.Total.StringFixed(2)).
		Bool("mail_sent", mail.Success).
		Msg("order created successfully")

	return &OrderReceipt{Order: order, Mail: mail}, nil
}

func (s *orderService) ListByMerchant(ctx context.Context, merchantCode string, page model.Page) (*model.OrderPage, error) {
	return s.list(ctx, repository.OrderFilter{MerchantCode: merchantCode}, page)
}

func (s *orderService) ListByCustomer(ctx context.Context, merchantCode string, userID uuid.UUID, page model.Page) (*model.OrderPage, error) {
	return s.list(ctx, repository.OrderFilter{MerchantCode: merchantCode, UserID: &userID}, page)
}

func (s *orderService) list(ctx context.Context, filter repository.OrderFilter, page model.Page) (*model.OrderPage, error) {
	if _, err := s.merchant(ctx, filter.MerchantCode); err != nil {
		return nil, err
	}

	count, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("merchant_code", filter.MerchantCode).Msg("failed to count orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders, err := s.orderRepo.List(ctx, filter, page.Limit, page.Offset())
	if err != nil {
		s.logger.Error().Err(err).Str("merchant_code", filter.MerchantCode).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return &model.OrderPage{
		CurrentPage: page.Number,
		TotalPages:  page.TotalPages(count),
		Count:       count,
		Orders:      orders,
	}, nil
}

func (s *orderService) GetByID(ctx context.Context, merchantCode string, orderID uuid.UUID) (*model.Order, error) {
	if _, err := s.merchant(ctx, merchantCode); err != nil {
		return nil, err
	}
	return s.order(ctx, merchantCode, orderID)
}

func (s *orderService) UpdateStatus(
	ctx context.Context,
	caller auth.Identity,
	merchantCode string,
	orderID uuid.UUID,
	patch model.OrderPatch,
) (*model.Order, error) {
	if patch.Empty() {
		return nil, model.ErrEmptyPatch
	}

	merchant, err := s.merchant(ctx, merchantCode)
	if err != nil {
		return nil, err
	}

	order, err := s.order(ctx, merchantCode, orderID)
	if err != nil {
		return nil, err
	}

	if err := authorizePatch(caller, merchant, order, patch); err != nil {
		s.logger.Warn().
			Str("order_id", order.ID.String()).
			Str("user_id", caller.UserID.String()).
			Err(err).
			Msg("order update rejected")
		return nil, err
	}

	events, err := ApplyPatch(order, patch, s.now(), s.guard)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to update order")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("order_status", string(order.OrderStatus)).
		Bool("paid", events.Paid).
		Bool("delivered", events.Delivered).
		Msg("order updated")

	if events.Paid || events.Delivered {
		s.notifyOwner(ctx, order, merchant, events)
	}

	return order, nil
}

// authorizePatch lets the merchant owner and admins apply any patch; the
// order's owner may only confirm payment.
func authorizePatch(caller auth.Identity, merchant *model.Merchant, order *model.Order, patch model.OrderPatch) error {
	if caller.IsAdmin() || merchant.UserID == caller.UserID {
		return nil
	}
	if order.UserID == caller.UserID {
		if patch.PaymentOnly() {
			return nil
		}
		return model.ErrPaymentOnlyPatch
	}
	return model.ErrMerchantAccess
}

func (s *orderService) notifyOwner(ctx context.Context, order *model.Order, merchant *model.Merchant, events Events) {
	owner, err := s.userRepo.GetByID(ctx, order.UserID)
	if err != nil || owner == nil {
		s.logger.Warn().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("order owner not found, skipping notification")
		return
	}

	data := notify.Data{
		OrderID:      order.ID.String(),
		Total:        order.Total.StringFixed(2),
		MerchantName: merchant.MerchantName,
		MerchantCode: merchant.MerchantCode,
	}
	if order.Reference != nil {
		data.Reference = *order.Reference
	}

	if events.Paid {
		s.notifier.Notify(ctx, notify.KindPaymentReceived, recipient(owner), data)
	}
	if events.Delivered {
		s.notifier.Notify(ctx, notify.KindOrderDelivered, recipient(owner), data)
	}
}

func (s *orderService) Cancel(ctx context.Context, caller auth.Identity, merchantCode string, orderID uuid.UUID) error {
	if _, err := s.merchant(ctx, merchantCode); err != nil {
		return err
	}

	order, err := s.order(ctx, merchantCode, orderID)
	if err != nil {
		return err
	}

	if order.UserID != caller.UserID {
		s.logger.Warn().
			Str("order_id", order.ID.String()).
			Str("user_id", caller.UserID.String()).
			Msg("cancel rejected: caller does not own order")
		return model.ErrNotOrderOwner
	}

	deleted, err := s.orderRepo.Delete(ctx, order.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to delete order")
		return fmt.Errorf("failed to cancel order: %w", err)
	}
	if !deleted {
		return model.ErrOrderNotFound
	}

	s.logger.Info().Str("order_id", order.ID.String()).Msg("order canceled")
	return nil
}

// merchant resolves merchantCode or fails with a domain error.
func (s *orderService) merchant(ctx context.Context, merchantCode string) (*model.Merchant, error) {
	return findMerchant(ctx, s.merchantRepo, merchantCode, s.logger)
}

// order loads an order and hides orders that belong to another merchant.
func (s *orderService) order(ctx context.Context, merchantCode string, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil || order.MerchantCode != merchantCode {
		s.logger.Debug().Str("order_id", orderID.String()).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// validateOrderRequest validates the order request.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.ErrInvalidJSON
	}

	if len(req.OrderItems) == 0 {
		return model.ErrEmptyCart
	}

	if req.Quantity < 0 {
		return model.ErrInvalidQuantity
	}

	if req.SubTotal.IsNegative() {
		return model.ErrInvalidSubTotal
	}

	for i, item := range req.OrderItems {
		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Str("slug", item.Slug).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	if !req.PaymentMethod.Valid() {
		return model.ErrInvalidPayment
	}

	return shippingError(req.ShippingDetails)
}

func findMerchant(ctx context.Context, repo repository.MerchantRepository, merchantCode string, logger zerolog.Logger) (*model.Merchant, error) {
	if merchantCode == "" {
		return nil, model.ErrMissingMerchant
	}

	merchant, err := repo.GetByCode(ctx, merchantCode)
	if err != nil {
		logger.Error().Err(err).Str("merchant_code", merchantCode).Msg("failed to get merchant")
		return nil, fmt.Errorf("failed to get merchant: %w", err)
	}
	if merchant == nil {
		return nil, model.ErrMerchantNotFound
	}
	return merchant, nil
}

func recipient(user *model.User) notify.Address {
	return notify.Address{Name: user.Username, Email: user.Email}
}
