package invoice

// PartyPatch carries optional updates to one party block. Nil fields are left
// untouched.
type PartyPatch struct {
	Name         *string `json:"name"`
	BusinessID   *string `json:"businessId"`
	TaxID        *string `json:"taxId"`
	AddressLine1 *string `json:"addressLine1"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Zip          *string `json:"zip"`
	Country      *string `json:"country"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
}

// DocumentPatch carries optional updates to document-level metadata. Nil
// fields are left untouched. Changing TaxInclusive recomputes every item;
// the other fields never affect computed figures.
type DocumentPatch struct {
	InvoiceNumber *string     `json:"invoiceNumber"`
	InvoiceDate   *string     `json:"invoiceDate" validate:"omitempty,datetime=2006-01-02"`
	DueDate       *string     `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Currency      *string     `json:"currency"`
	Company       *PartyPatch `json:"company"`
	Client        *PartyPatch `json:"client"`
	Notes         *string     `json:"notes"`
	TaxInclusive  *bool       `json:"taxInclusive"`
}

func applyPartyPatch(p *Party, patch *PartyPatch) {
	if patch == nil {
		return
	}
	setString(&p.Name, patch.Name)
	setString(&p.BusinessID, patch.BusinessID)
	setString(&p.TaxID, patch.TaxID)
	setString(&p.AddressLine1, patch.AddressLine1)
	setString(&p.City, patch.City)
	setString(&p.State, patch.State)
	setString(&p.Zip, patch.Zip)
	setString(&p.Country, patch.Country)
	setString(&p.Email, patch.Email)
	setString(&p.Phone, patch.Phone)
}

// ApplyPatch merges the patch into the document. When the tax mode changes
// every item is recomputed under the new mode; otherwise the computed figures
// are preserved as-is.
func ApplyPatch(doc Document, patch DocumentPatch) Document {
	doc = doc.Clone()
	setString(&doc.InvoiceNumber, patch.InvoiceNumber)
	setString(&doc.InvoiceDate, patch.InvoiceDate)
	setString(&doc.DueDate, patch.DueDate)
	setString(&doc.Currency, patch.Currency)
	setString(&doc.Notes, patch.Notes)
	applyPartyPatch(&doc.Company, patch.Company)
	applyPartyPatch(&doc.Client, patch.Client)
	if patch.TaxInclusive != nil && *patch.TaxInclusive != doc.TaxInclusive {
		doc.TaxInclusive = *patch.TaxInclusive
		return recomputeAll(doc)
	}
	return doc
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
