package services_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mattilda/billing_backend/models"
)

func TestSchoolStatement(t *testing.T) {
	f := newFixture(t)
	school := f.school(t, "Statement School")
	ana := f.student(t, school.ID, "Ana", "Lopez")
	luis := f.student(t, school.ID, "Luis", "Diaz")
	anaInvoice := f.invoice(t, school.ID, ana.ID, "1000.00")
	f.invoice(t, school.ID, luis.ID, "500.00")
	f.pay(t, anaInvoice.ID, "400.00")

	statement, err := f.statements.GetSchoolStatement(context.Background(), school.ID)
	if err != nil {
		t.Fatalf("statement: %v", err)
	}
	if statement.SchoolName != "Statement School" {
		t.Fatalf("school name = %q", statement.SchoolName)
	}
	if statement.StudentsCount != 2 {
		t.Fatalf("students count = %d, want 2", statement.StudentsCount)
	}
	if !statement.TotalInvoiced.Equal(dec(t, "1500.00")) {
		t.Fatalf("total invoiced = %s, want 1500.00", statement.TotalInvoiced)
	}
	if !statement.TotalPaid.Equal(dec(t, "400.00")) {
		t.Fatalf("total paid = %s, want 400.00", statement.TotalPaid)
	}
	if !statement.TotalPending.Equal(dec(t, "1100.00")) {
		t.Fatalf("total pending = %s, want 1100.00", statement.TotalPending)
	}
	if len(statement.Invoices) != 2 {
		t.Fatalf("items = %d, want 2", len(statement.Invoices))
	}

	item := statement.Invoices[0]
	if item.InvoiceId != anaInvoice.ID {
		t.Fatalf("first item invoice = %d, want %d", item.InvoiceId, anaInvoice.ID)
	}
	if item.StudentName != "Ana Lopez" {
		t.Fatalf("student name = %q", item.StudentName)
	}
	if item.Status != models.InvoiceStatusPartiallyPaid {
		t.Fatalf("item status = %s, want partially_paid", item.Status)
	}
	if !item.Balance.Equal(dec(t, "600.00")) {
		t.Fatalf("item balance = %s, want 600.00", item.Balance)
	}
}

func TestSchoolStatement_CancelledExcludedFromTotals(t *testing.T) {
	f := newFixture(t)
	school := f.school(t, "Colegio Norte")
	ana := f.student(t, school.ID, "Ana", "Lopez")
	kept := f.invoice(t, school.ID, ana.ID, "300.00")
	dropped := f.invoice(t, school.ID, ana.ID, "900.00")
	f.pay(t, dropped.ID, "100.00")
	if _, err := f.invoices.Cancel(context.Background(), dropped.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	statement, err := f.statements.GetSchoolStatement(context.Background(), school.ID)
	if err != nil {
		t.Fatalf("statement: %v", err)
	}
	if !statement.TotalInvoiced.Equal(dec(t, "300.00")) {
		t.Fatalf("total invoiced = %s, want 300.00", statement.TotalInvoiced)
	}
	if !statement.TotalPaid.Equal(dec(t, "0")) {
		t.Fatalf("total paid = %s, want 0", statement.TotalPaid)
	}
	if len(statement.Invoices) != 2 {
		t.Fatalf("cancelled invoice dropped from items: %d items", len(statement.Invoices))
	}
	for _, item := range statement.Invoices {
		if item.InvoiceId == kept.ID && item.Status != models.InvoiceStatusPending {
			t.Fatalf("kept item status = %s, want pending", item.Status)
		}
		if item.InvoiceId == dropped.ID && item.Status != models.InvoiceStatusCancelled {
			t.Fatalf("cancelled item status = %s, want cancelled", item.Status)
		}
	}
}

func TestSchoolStatement_EmptyAndMissing(t *testing.T) {
	f := newFixture(t)
	school := f.school(t, "Empty School")

	statement, err := f.statements.GetSchoolStatement(context.Background(), school.ID)
	if err != nil {
		t.Fatalf("statement: %v", err)
	}
	if !statement.TotalInvoiced.IsZero() || !statement.TotalPending.IsZero() {
		t.Fatalf("empty school totals = %s/%s, want zero", statement.TotalInvoiced, statement.TotalPending)
	}
	if len(statement.Invoices) != 0 {
		t.Fatalf("empty school items = %d", len(statement.Invoices))
	}

	missing, err := f.statements.GetSchoolStatement(context.Background(), 999)
	if err != nil {
		t.Fatalf("missing statement: %v", err)
	}
	if missing != nil {
		t.Fatal("missing school returned a statement")
	}
}

func TestStudentStatement(t *testing.T) {
	f := newFixture(t)
	school := f.school(t, "Colegio Norte")
	ana := f.student(t, school.ID, "Ana", "Lopez")
	luis := f.student(t, school.ID, "Luis", "Diaz")
	anaInvoice := f.invoice(t, school.ID, ana.ID, "1000.00")
	f.invoice(t, school.ID, luis.ID, "500.00")
	f.pay(t, anaInvoice.ID, "400.00")

	statement, err := f.statements.GetStudentStatement(context.Background(), ana.ID)
	if err != nil {
		t.Fatalf("statement: %v", err)
	}
	if statement.StudentName != "Ana Lopez" || statement.SchoolName != "Colegio Norte" {
		t.Fatalf("names = %q / %q", statement.StudentName, statement.SchoolName)
	}
	if !statement.TotalInvoiced.Equal(dec(t, "1000.00")) {
		t.Fatalf("total invoiced = %s, want 1000.00", statement.TotalInvoiced)
	}
	if !statement.TotalPaid.Equal(dec(t, "400.00")) {
		t.Fatalf("total paid = %s, want 400.00", statement.TotalPaid)
	}
	if !statement.TotalPending.Equal(dec(t, "600.00")) {
		t.Fatalf("total pending = %s, want 600.00", statement.TotalPending)
	}
	if len(statement.Invoices) != 1 {
		t.Fatalf("items = %d, want only this student's invoice", len(statement.Invoices))
	}

	missing, err := f.statements.GetStudentStatement(context.Background(), 999)
	if err != nil {
		t.Fatalf("missing statement: %v", err)
	}
	if missing != nil {
		t.Fatal("missing student returned a statement")
	}
}

func TestStudentStatement_JSONShape(t *testing.T) {
	f := newFixture(t)
	school := f.school(t, "Colegio Norte")
	ana := f.student(t, school.ID, "Ana", "Lopez")
	invoice := f.invoice(t, school.ID, ana.ID, "1000.00")
	f.pay(t, invoice.ID, "400.00")

	statement, err := f.statements.GetStudentStatement(context.Background(), ana.ID)
	if err != nil {
		t.Fatalf("statement: %v", err)
	}
	blob, err := json.Marshal(statement)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{
		`"total_invoiced":"1000.00"`,
		`"total_paid":"400.00"`,
		`"total_pending":"600.00"`,
		`"balance":"600.00"`,
		`"status":"partially_paid"`,
		`"due_date":"2026-03-01"`,
	} {
		if !strings.Contains(string(blob), want) {
			t.Fatalf("json %s missing %s", blob, want)
		}
	}
}
