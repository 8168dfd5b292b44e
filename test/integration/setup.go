package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/horsh321/teem-server/internal/config"
	"github.com/horsh321/teem-server/internal/database"
	"github.com/horsh321/teem-server/internal/model"
	"github.com/horsh321/teem-server/internal/notify"
	"github.com/horsh321/teem-server/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Handle    *database.Handle
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, opens a pool on it and
// applies the migrations.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	logger := zerolog.Nop()
	handle := database.NewHandle(config.DatabaseConfig{
		URL:             connStr,
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}, logger)

	pool, err := handle.Open(ctx)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.Migrate(ctx, pool, logger); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	t.Cleanup(func() {
		handle.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Handle:    handle,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// Fixture is the seeded marketplace: a seller owning one merchant and a buyer.
type Fixture struct {
	Seller   *model.User
	Buyer    *model.User
	Admin    *model.User
	Merchant *model.Merchant
}

// SeedFixture creates the users and merchant plus the merchant's pricing rows:
//
//	SAVE10   10% off, no threshold
//	BULK20   20% off, 5 items or more
//	EXPIRED  ended yesterday
//	Lagos    5% tax, 1500 shipping
func SeedFixture(t *testing.T, pool *pgxpool.Pool) *Fixture {
	t.Helper()

	ctx := context.Background()
	logger := zerolog.Nop()
	users := repository.NewUserRepository(pool, logger)
	merchants := repository.NewMerchantRepository(pool, logger)

	f := &Fixture{
		Seller: &model.User{Username: "seller", Email: "seller@example.com", Role: model.RoleSeller},
		Buyer:  &model.User{Username: "ada", Email: "ada@example.com", Role: model.RoleUser},
		Admin:  &model.User{Username: "root", Email: "root@example.com", Role: model.RoleAdmin},
	}
	for _, u := range []*model.User{f.Seller, f.Buyer, f.Admin} {
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("failed to seed user %s: %v", u.Username, err)
		}
	}

	f.Merchant = &model.Merchant{
		UserID:        f.Seller.ID,
		MerchantCode:  "M1",
		MerchantName:  "Ada's Shop",
		MerchantEmail: "shop@example.com",
	}
	if err := merchants.Create(ctx, f.Merchant); err != nil {
		t.Fatalf("failed to seed merchant: %v", err)
	}

	statements := []string{
		`INSERT INTO discounts (merchant_code, discount_code, discount_value, quantity, enabled) VALUES ('M1', 'SAVE10', '10', 0, TRUE)`,
		`INSERT INTO discounts (merchant_code, discount_code, discount_value, quantity, enabled) VALUES ('M1', 'BULK20', '20', 5, TRUE)`,
		`INSERT INTO discounts (merchant_code, discount_code, discount_value, quantity, end_date, enabled) VALUES ('M1', 'EXPIRED', '25', 0, NOW() - INTERVAL '1 day', TRUE)`,
		`INSERT INTO taxes (merchant_code, state, country, standard_rate, enabled) VALUES ('M1', 'Lagos', 'Nigeria', '5', TRUE)`,
		`INSERT INTO shipping_rates (merchant_code, state, country, amount) VALUES ('M1', 'Lagos', 'Nigeria', '1500')`,
	}
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			t.Fatalf("failed to seed pricing rows: %v", err)
		}
	}

	return f
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"customers", "orders", "shipping_rates", "taxes", "discounts", "merchants", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// RecordingMailer keeps every message it is asked to send.
type RecordingMailer struct {
	mu       sync.Mutex
	messages []notify.Message
}

func (m *RecordingMailer) Send(_ context.Context, msg notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

// Subjects returns the subjects of the messages sent so far.
func (m *RecordingMailer) Subjects() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	subjects := make([]string, len(m.messages))
	for i, msg := range m.messages {
		subjects[i] = msg.Subject
	}
	return subjects
}
