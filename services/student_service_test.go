package services_test

import (
	"context"
	"testing"

	"github.com/mattilda/billing_backend/models"
	"github.com/mattilda/billing_backend/utils"
)

func TestStudentCreate_DefaultsToActive(t *testing.T) {
	f := newFixture(t)
	school := f.school(t, "Colegio Norte")

	student := f.student(t, school.ID, "Ana", "Lopez")

	if student.Status != models.StudentStatusActive {
		t.Fatalf("status = %s, want active", student.Status)
	}
	if student.FullName() != "Ana Lopez" {
		t.Fatalf("full name = %q", student.FullName())
	}
}

func TestStudentCreate_SchoolMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.students.Create(context.Background(), &models.NewStudent{
		SchoolId:  999,
		FirstName: "Ana",
		LastName:  "Lopez",
	})
	if !utils.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestStudentUpdate_MoveToMissingSchool(t *testing.T) {
	f := newFixture(t)
	school := f.school(t, "Colegio Norte")
	student := f.student(t, school.ID, "Ana", "Lopez")

	_, err := f.students.Update(context.Background(), student.ID, &models.UpdateStudent{
		SchoolId: intPtr(999),
	})
	if !utils.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestStudentUpdate_Status(t *testing.T) {
	f := newFixture(t)
	school := f.school(t, "Colegio Norte")
	student := f.student(t, school.ID, "Ana", "Lopez")

	inactive := models.StudentStatusInactive
	updated, err := f.students.Update(context.Background(), student.ID, &models.UpdateStudent{
		Status: &inactive,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.StudentStatusInactive {
		t.Fatalf("status = %s, want inactive", updated.Status)
	}

	bogus := models.StudentStatus("expelled")
	_, err = f.students.Update(context.Background(), student.ID, &models.UpdateStudent{
		Status: &bogus,
	})
	if !utils.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestStudentList_BySchool(t *testing.T) {
	f := newFixture(t)
	north := f.school(t, "Colegio Norte")
	south := f.school(t, "Colegio Sur")
	f.student(t, north.ID, "Ana", "Lopez")
	f.student(t, north.ID, "Luis", "Diaz")
	f.student(t, south.ID, "Eva", "Marin")

	page, err := f.students.List(context.Background(), 10, 0, intPtr(north.ID))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("total = %d, want 2", page.Total)
	}

	all, err := f.students.List(context.Background(), 10, 0, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if all.Total != 3 {
		t.Fatalf("total = %d, want 3", all.Total)
	}
}

func TestStudentDelete_Cascades(t *testing.T) {
	f := newFixture(t)
	school := f.school(t, "Colegio Norte")
	ana := f.student(t, school.ID, "Ana", "Lopez")
	luis := f.student(t, school.ID, "Luis", "Diaz")
	anaInvoice := f.invoice(t, school.ID, ana.ID, "100.00")
	f.pay(t, anaInvoice.ID, "60.00")
	f.invoice(t, school.ID, luis.ID, "200.00")

	deleted, err := f.students.Delete(context.Background(), ana.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatal("delete reported missing student")
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

	again, err := f.students.Delete(context.Background(), ana.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if again {
		t.Fatal("second delete reported success")
	}
}
