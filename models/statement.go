package models

// Statement views aggregate invoiced/paid/pending totals for a school or
// a student. Cancelled invoices stay in the itemized list but are left out
// of every total.

type StatementInvoiceItem struct {
	InvoiceId   int           `json:"invoice_id"`
	StudentId   int           `json:"student_id"`
	StudentName string        `json:"student_name"`
	Amount      Money         `json:"amount"`
	TotalPaid   Money         `json:"total_paid"`
	Balance     Money         `json:"balance"`
	Status      InvoiceStatus `json:"status"`
	DueDate     Date          `json:"due_date"`
}

type SchoolStatement struct {
	SchoolId      int                    `json:"school_id"`
	SchoolName    string                 `json:"school_name"`
	StudentsCount int64                  `json:"students_count"`
	TotalInvoiced Money                  `json:"total_invoiced"`
	TotalPaid     Money                  `json:"total_paid"`
	TotalPending  Money                  `json:"total_pending"`
	Invoices      []StatementInvoiceItem `json:"invoices"`
}

type StudentStatement struct {
	StudentId     int                    `json:"student_id"`
	StudentName   string                 `json:"student_name"`
	SchoolId      int                    `json:"school_id"`
	SchoolName    string                 `json:"school_name"`
	TotalInvoiced Money                  `json:"total_invoiced"`
	TotalPaid     Money                  `json:"total_paid"`
	TotalPending  Money                  `json:"total_pending"`
	Invoices      []StatementInvoiceItem `json:"invoices"`
}
