package invoice

import (
	"regexp"
	"strings"
	"time"
)

// dateLayout is the wire format for invoice and due dates.
const dateLayout = "2006-01-02"

// PaymentTerms codes and their due-date offsets in days from the invoice date.
const (
	TermsUponReceipt = "upon-receipt"
	TermsNet7        = "net-7"
	TermsNet15       = "net-15"
	TermsNet30       = "net-30"
)

var termOffsets = map[string]int{
	TermsUponReceipt: 0,
	TermsNet7:        7,
	TermsNet15:       15,
	TermsNet30:       30,
}

var termNotes = map[string]string{
	TermsUponReceipt: "Payment is due upon receipt of this invoice.",
	TermsNet7:        "Payment is due within 7 days of invoice date.",
	TermsNet15:       "Payment is due within 15 days of invoice date.",
	TermsNet30:       "Payment is due within 30 days of invoice date.",
}

// autoNotePattern matches any note sentence this package has generated, so a
// later terms change replaces the old sentence instead of stacking a new one.
var autoNotePattern = regexp.MustCompile(`Payment is due (upon receipt|within \d+ days) of (this invoice|invoice date)\.`)

// KnownTerms reports whether code is one of the supported payment-terms codes.
func KnownTerms(code string) bool {
	_, ok := termOffsets[code]
	return ok
}

// ApplyPaymentTerms sets the payment-terms code, derives the due date from the
// invoice date, and rewrites the generated note sentence. An unknown code
// keeps the due date equal to the invoice date and leaves the notes alone. An
// unparseable invoice date leaves the due date untouched.
func ApplyPaymentTerms(doc Document, code string) Document {
	doc = doc.Clone()
	doc.PaymentTerms = code

	if base, err := time.Parse(dateLayout, doc.InvoiceDate); err == nil {
		doc.DueDate = base.AddDate(0, 0, termOffsets[code]).Format(dateLayout)
	}

	note, ok := termNotes[code]
	if !ok {
		return doc
	}
	rest := strings.TrimSpace(autoNotePattern.ReplaceAllString(doc.Notes, ""))
	if rest == "" {
		doc.Notes = note
	} else {
		doc.Notes = note + "\n\n" + rest
	}
	return doc
}
