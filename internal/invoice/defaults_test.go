package invoice

import (
	"testing"
	"time"
)

func TestNewDocumentDefaults(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	doc := Engine{}.NewDocument(now)

	if doc.InvoiceNumber != "INV-001" {
		t.Fatalf("invoiceNumber = %q", doc.InvoiceNumber)
	}
	if doc.InvoiceDate != "2024-03-10" {
		t.Fatalf("invoiceDate = %q", doc.InvoiceDate)
	}
	if doc.DueDate != "2024-04-09" {
		t.Fatalf("dueDate = %q", doc.DueDate)
	}
	if doc.Currency != "$" {
		t.Fatalf("currency = %q", doc.Currency)
	}
	if doc.TaxInclusive {
		t.Fatal("expected exclusive mode by default")
	}
	if len(doc.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(doc.Items))
	}
	if doc.Subtotal != 0 || doc.Tax != 0 || doc.Total != 0 {
		t.Fatalf("expected zero totals, got %v/%v/%v", doc.Subtotal, doc.Tax, doc.Total)
	}
}
