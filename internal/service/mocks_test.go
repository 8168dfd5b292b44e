package service

import (
	"context"

	"github.com/horsh321/teem-server/internal/model"
	"github.com/horsh321/teem-server/internal/notify"
	"github.com/horsh321/teem-server/internal/pricing"
	"github.com/horsh321/teem-server/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter repository.OrderFilter, limit, offset int) ([]model.Order, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter repository.OrderFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Totals(ctx context.Context, userID uuid.UUID, merchantCode string) (model.OrderTotals, error) {
	args := m.Called(ctx, userID, merchantCode)
	return args.Get(0).(model.OrderTotals), args.Error(1)
}

// MockMerchantRepository is a mock implementation of MerchantRepository.
type MockMerchantRepository struct {
	mock.Mock
}

func (m *MockMerchantRepository) GetByCode(ctx context.Context, code string) (*model.Merchant, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) Create(ctx context.Context, merchant *model.Merchant) error {
	args := m.Called(ctx, merchant)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Upsert(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	args := m.Called(ctx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListByMerchant(ctx context.Context, merchantCode string, limit, offset int) ([]model.Customer, error) {
	args := m.Called(ctx, merchantCode, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) CountByMerchant(ctx context.Context, merchantCode string) (int, error) {
	args := m.Called(ctx, merchantCode)
	return args.Int(0), args.Error(1)
}

func (m *MockCustomerRepository) GetByUsername(ctx context.Context, merchantCode, username string) (*model.Customer, error) {
	args := m.Called(ctx, merchantCode, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, merchantCode, username string) (bool, error) {
	args := m.Called(ctx, merchantCode, username)
	return args.Bool(0), args.Error(1)
}

// MockQuoter is a mock implementation of pricing.Quoter.
type MockQuoter struct {
	mock.Mock
}

func (m *MockQuoter) Quote(ctx context.Context, merchantCode string, in pricing.QuoteInput) (*model.Quote, error) {
	args := m.Called(ctx, merchantCode, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quote), args.Error(1)
}

// MockMailer is a mock implementation of notify.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg notify.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// subject matches a message by its subject line.
func subject(s string) interface{} {
	return mock.MatchedBy(func(msg notify.Message) bool { return msg.Subject == s })
}
