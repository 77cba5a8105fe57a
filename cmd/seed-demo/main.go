// seed-demo populates the database with a small demo ledger: two schools,
// a handful of students, and invoices in every state including a partially
// paid and a cancelled one. Safe to run repeatedly; it skips seeding when
// any school already exists.
//
// Usage (from backend directory):
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-demo
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/mattilda/billing_backend/cache"
	"github.com/mattilda/billing_backend/config"
	"github.com/mattilda/billing_backend/models"
	"github.com/mattilda/billing_backend/services"
)

func main() {
	godotenv.Load(".env")
	logger := config.GetLogger()

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable(db)

	ctx := context.Background()
	var count int64
	if err := db.WithContext(ctx).Model(&models.School{}).Count(&count).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to inspect schools: %v\n", err)
		os.Exit(1)
	}
	if count > 0 {
		fmt.Println("schools already present, nothing to seed")
		return
	}

	noop := cache.NewNoopClient()
	schools := services.NewSchoolService(db, noop, logger)
	students := services.NewStudentService(db, noop, logger)
	invoices := services.NewInvoiceService(db, noop, logger)
	payments := services.NewPaymentService(db, noop, nil, logger)

	north, err := schools.Create(ctx, &models.NewSchool{
		Name:    "Colegio del Norte",
		Address: strPtr("Av. Universidad 3000, Monterrey"),
	})
	if err != nil {
		fail("school", err)
	}
	south, err := schools.Create(ctx, &models.NewSchool{
		Name:    "Instituto del Sur",
		Address: strPtr("Calz. de Tlalpan 1500, CDMX"),
	})
	if err != nil {
		fail("school", err)
	}

	ana, err := students.Create(ctx, &models.NewStudent{
		SchoolId: north.ID, FirstName: "Ana", LastName: "Lopez",
	})
	if err != nil {
		fail("student", err)
	}
	luis, err := students.Create(ctx, &models.NewStudent{
		SchoolId: north.ID, FirstName: "Luis", LastName: "Diaz",
	})
	if err != nil {
		fail("student", err)
	}
	eva, err := students.Create(ctx, &models.NewStudent{
		SchoolId: south.ID, FirstName: "Eva", LastName: "Marin",
	})
	if err != nil {
		fail("student", err)
	}

	pending, err := invoices.Create(ctx, &models.NewInvoice{
		SchoolId:  north.ID,
		StudentId: ana.ID,
		IssueDate: models.NewDate(2026, time.August, 1),
		DueDate:   models.NewDate(2026, time.September, 1),
		Amount:    decimal.RequireFromString("1000.00"),
	})
	if err != nil {
		fail("invoice", err)
	}
	if _, err := payments.Create(ctx, &models.NewPayment{
		InvoiceId: pending.ID,
		PaidAt:    time.Date(2026, time.August, 10, 12, 0, 0, 0, time.UTC),
		Amount:    decimal.RequireFromString("400.00"),
		Method:    "transfer",
	}); err != nil {
		fail("payment", err)
	}

	settled, err := invoices.Create(ctx, &models.NewInvoice{
		SchoolId:  north.ID,
		StudentId: luis.ID,
		IssueDate: models.NewDate(2026, time.July, 1),
		DueDate:   models.NewDate(2026, time.August, 1),
		Amount:    decimal.RequireFromString("750.00"),
	})
	if err != nil {
		fail("invoice", err)
	}
	if _, err := payments.Create(ctx, &models.NewPayment{
		InvoiceId: settled.ID,
		PaidAt:    time.Date(2026, time.July, 20, 9, 30, 0, 0, time.UTC),
		Amount:    decimal.RequireFromString("750.00"),
		Method:    "card",
	}); err != nil {
		fail("payment", err)
	}

	dropped, err := invoices.Create(ctx, &models.NewInvoice{
		SchoolId:  south.ID,
		StudentId: eva.ID,
		IssueDate: models.NewDate(2026, time.August, 15),
		DueDate:   models.NewDate(2026, time.September, 15),
		Amount:    decimal.RequireFromString("1200.00"),
	})
	if err != nil {
		fail("invoice", err)
	}
	if _, err := invoices.Cancel(ctx, dropped.ID); err != nil {
		fail("cancel", err)
	}

	fmt.Printf("seeded %d schools, %d students, %d invoices\n", 2, 3, 3)
}

func strPtr(s string) *string { return &s }

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "failed to seed %s: %v\n", what, err)
	os.Exit(1)
}
