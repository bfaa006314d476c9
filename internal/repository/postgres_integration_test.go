//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/kantin-next/internal/constants"
	"github.com/kantin-next/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}
	if err := db.Migrator().DropTable(&models.CheckoutAttempt{}); err != nil {
		t.Fatalf("drop table failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func TestPostgresCheckoutAttemptSearchIsCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewCheckoutAttemptRepository(db)

	attempt := &models.CheckoutAttempt{
		SessionID:     "sid",
		UserID:        1,
		PaymentMethod: "ShopeePay",
		ItemCount:     1,
		TotalAmount:   models.NewMoneyFromInt(12000),
		Result:        constants.CheckoutResultSuccess,
	}
	if err := repo.Create(attempt); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	rows, total, err := repo.ListAdmin(CheckoutAttemptListFilter{Search: "shopee"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("expected ILIKE hit, got total=%d", total)
	}
}
