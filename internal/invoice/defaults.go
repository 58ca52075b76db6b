package invoice

import "time"

const (
	defaultInvoiceNumber = "INV-001"
	defaultCurrency      = "$"
	defaultDueOffsetDays = 30
)

// NewDocument builds a fresh document with the standard starting values: a
// placeholder invoice number, today's date, a due date 30 days out, and no
// line items. Exclusive tax mode is the starting mode.
func (e Engine) NewDocument(now time.Time) Document {
	doc := Document{
		InvoiceNumber: defaultInvoiceNumber,
		InvoiceDate:   now.Format(dateLayout),
		DueDate:       now.AddDate(0, 0, defaultDueOffsetDays).Format(dateLayout),
		Currency:      defaultCurrency,
		Items:         []Item{},
	}
	return RecomputeDocument(doc)
}
