package services_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mattilda/billing_backend/models"
	"github.com/mattilda/billing_backend/services"
)

// memoryCache implements cache.Client in-process so invalidation can be
// observed without redis.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.entries[key]
	return value, ok
}

func (m *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
}

func (m *memoryCache) DeletePrefix(ctx context.Context, prefix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
}

func (m *memoryCache) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// one shared in-memory database per test, named so parallel tests
	// cannot see each other
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	models.MigrateTable(db)
	return db
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fixture struct {
	db         *gorm.DB
	cache      *memoryCache
	schools    *services.SchoolService
	students   *services.StudentService
	invoices   *services.InvoiceService
	payments   *services.PaymentService
	statements *services.StatementService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	cacheClient := newMemoryCache()
	logger := newTestLogger()
	return &fixture{
		db:         db,
		cache:      cacheClient,
		schools:    services.NewSchoolService(db, cacheClient, logger),
		students:   services.NewStudentService(db, cacheClient, logger),
		invoices:   services.NewInvoiceService(db, cacheClient, logger),
		payments:   services.NewPaymentService(db, cacheClient, nil, logger),
		statements: services.NewStatementService(db, logger),
	}
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func statusPtr(v models.InvoiceStatus) *models.InvoiceStatus { return &v }

func decPtr(v decimal.Decimal) *decimal.Decimal { return &v }

func (f *fixture) school(t *testing.T, name string) *models.School {
	t.Helper()
	school, err := f.schools.Create(context.Background(), &models.NewSchool{Name: name})
	if err != nil {
		t.Fatalf("create school: %v", err)
	}
	return school
}

func (f *fixture) student(t *testing.T, schoolId int, first, last string) *models.Student {
	t.Helper()
	student, err := f.students.Create(context.Background(), &models.NewStudent{
		SchoolId:  schoolId,
		FirstName: first,
		LastName:  last,
	})
	if err != nil {
		t.Fatalf("create student: %v", err)
	}
	return student
}

func (f *fixture) invoice(t *testing.T, schoolId, studentId int, amount string) *models.Invoice {
	t.Helper()
	invoice, err := f.invoices.Create(context.Background(), &models.NewInvoice{
		SchoolId:  schoolId,
		StudentId: studentId,
		IssueDate: models.NewDate(2026, time.February, 1),
		DueDate:   models.NewDate(2026, time.March, 1),
		Amount:    dec(t, amount),
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	return invoice
}

func (f *fixture) pay(t *testing.T, invoiceId int, amount string) *models.Payment {
	t.Helper()
	payment, err := f.payments.Create(context.Background(), &models.NewPayment{
		InvoiceId: invoiceId,
		PaidAt:    time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC),
		Amount:    dec(t, amount),
		Method:    "transfer",
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	return payment
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
