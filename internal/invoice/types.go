package invoice

// DiscountType selects how an item's discount value is interpreted.
type DiscountType string

const (
	// DiscountFixed treats the discount as an absolute currency amount.
	DiscountFixed DiscountType = "fixed"
	// DiscountPercentage treats the discount as a percentage of the item amount.
	DiscountPercentage DiscountType = "percentage"
)

// TaxEntry is one named tax applied to an item. Rate is a percentage and
// Amount is derived by the engine; it is never set by callers.
type TaxEntry struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

// Item is a single invoice line. Amount, TotalTax and LineTotal are derived
// and recomputed by the engine on every edit.
type Item struct {
	ID           string       `json:"id"`
	SKU          string       `json:"sku"`
	Name         string       `json:"itemName"`
	Quantity     float64      `json:"quantity"`
	Unit         string       `json:"unit"`
	UnitPrice    float64      `json:"unitPrice"`
	Amount       float64      `json:"amount"`
	Discount     float64      `json:"discount"`
	DiscountType DiscountType `json:"discountType"`
	Taxes        []TaxEntry   `json:"taxes"`
	TotalTax     float64      `json:"totalTax"`
	LineTotal    float64      `json:"lineTotal"`
}

// Party is one address block on the document: the issuing company or the
// billed client.
type Party struct {
	Name         string `json:"name"`
	BusinessID   string `json:"businessId,omitempty"`
	TaxID        string `json:"taxId,omitempty"`
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	Country      string `json:"country"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

// Document is the full invoice snapshot exchanged with clients. Subtotal, Tax
// and Total are derived aggregates.
//
// Total always equals Subtotal: line totals already carry each item's tax
// treatment, so the document-level Tax aggregate is informational and is never
// added on top. Consumers must not read Subtotal+Tax as the amount due.
type Document struct {
	InvoiceNumber string `json:"invoiceNumber"`
	InvoiceDate   string `json:"invoiceDate"`
	DueDate       string `json:"dueDate"`
	Currency      string `json:"currency"`

	Company     Party  `json:"company"`
	CompanyLogo string `json:"companyLogo,omitempty"`
	Client      Party  `json:"client"`

	Items []Item `json:"items"`

	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`

	TaxInclusive bool `json:"taxInclusive"`

	PaymentTerms string `json:"paymentTerms"`
	Notes        string `json:"notes"`
}

// Clone returns a deep copy of the document. Engine operations work on a
// clone so the input snapshot is never mutated.
func (d Document) Clone() Document {
	out := d
	out.Items = make([]Item, len(d.Items))
	for i, it := range d.Items {
		out.Items[i] = it.clone()
	}
	return out
}

func (it Item) clone() Item {
	out := it
	out.Taxes = make([]TaxEntry, len(it.Taxes))
	copy(out.Taxes, it.Taxes)
	return out
}
