package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/mattilda/billing_backend/cache"
	"github.com/mattilda/billing_backend/models"
)

func TestSchoolCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.schools.Create(ctx, &models.NewSchool{
		Name:    "Colegio Norte",
		Address: strPtr("Av. Reforma 100"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := f.schools.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Name != "Colegio Norte" {
		t.Fatalf("get returned %+v", got)
	}

	updated, err := f.schools.Update(ctx, created.ID, &models.UpdateSchool{
		Name: strPtr("Colegio Norte Renovado"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Colegio Norte Renovado" {
		t.Fatalf("name = %q after update", updated.Name)
	}
	if updated.Address == nil || *updated.Address != "Av. Reforma 100" {
		t.Fatal("untouched field changed on partial update")
	}

	missing, err := f.schools.Get(ctx, 999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatal("missing school returned a row")
	}
}

func TestSchoolList_Pagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"A", "B", "C"} {
		f.school(t, "Colegio "+name)
	}

	page, err := f.schools.List(ctx, 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 2 || page.Limit != 2 || page.Offset != 0 {
		t.Fatalf("page = total %d items %d limit %d offset %d", page.Total, len(page.Items), page.Limit, page.Offset)
	}

	rest, err := f.schools.List(ctx, 2, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if rest.Total != 3 || len(rest.Items) != 1 {
		t.Fatalf("second page = total %d items %d", rest.Total, len(rest.Items))
	}
}

func TestSchoolDelete_Cascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	school := f.school(t, "Colegio Norte")
	other := f.school(t, "Colegio Sur")
	ana := f.student(t, school.ID, "Ana", "Lopez")
	invoice := f.invoice(t, school.ID, ana.ID, "100.00")
	f.pay(t, invoice.ID, "50.00")
	otherStudent := f.student(t, other.ID, "Luis", "Diaz")
	f.invoice(t, other.ID, otherStudent.ID, "200.00")

	f.cache.Set(ctx, cache.SchoolStatementPrefix(school.ID)+":", []byte("stale"), time.Minute)

	deleted, err := f.schools.Delete(ctx, school.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatal("delete reported missing school")
	}

	if n := f.count(t, &models.School{}); n != 1 {
		t.Fatalf("schools left = %d, want 1", n)
	}
	if n := f.count(t, &models.Student{}); n != 1 {
		t.Fatalf("students left = %d, want 1", n)
	}
	if n := f.count(t, &models.Invoice{}); n != 1 {
		t.Fatalf("invoices left = %d, want 1", n)
	}
	if n := f.count(t, &models.Payment{}); n != 0 {
		t.Fatalf("payments left = %d, want 0", n)
	}
	if _, ok := f.cache.Get(ctx, cache.SchoolStatementPrefix(school.ID)+":"); ok {
		t.Fatal("statement cache survived school delete")
	}

	again, err := f.schools.Delete(ctx, school.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if again {
		t.Fatal("second delete reported success")
	}
}
