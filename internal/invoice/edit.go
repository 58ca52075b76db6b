package invoice

// ItemField names an editable field on an item.
type ItemField string

const (
	FieldSKU          ItemField = "sku"
	FieldName         ItemField = "itemName"
	FieldQuantity     ItemField = "quantity"
	FieldUnit         ItemField = "unit"
	FieldUnitPrice    ItemField = "unitPrice"
	FieldDiscount     ItemField = "discount"
	FieldDiscountType ItemField = "discountType"
)

// TaxField names an editable field on a tax entry.
type TaxField string

const (
	TaxFieldName TaxField = "name"
	TaxFieldRate TaxField = "rate"
)

// KnownItemField reports whether the field name is editable. Handlers reject
// unknown fields at decode time; the engine itself treats them as no-ops.
func KnownItemField(f ItemField) bool {
	switch f {
	case FieldSKU, FieldName, FieldQuantity, FieldUnit, FieldUnitPrice, FieldDiscount, FieldDiscountType:
		return true
	}
	return false
}

// KnownTaxField reports whether the tax field name is editable.
func KnownTaxField(f TaxField) bool {
	return f == TaxFieldName || f == TaxFieldRate
}

// EditKind discriminates the edit variants the engine understands.
type EditKind string

const (
	EditItemField  EditKind = "item_field"
	EditTaxField   EditKind = "tax_field"
	EditAddItem    EditKind = "add_item"
	EditRemoveItem EditKind = "remove_item"
	EditAddTax     EditKind = "add_tax"
	EditRemoveTax  EditKind = "remove_tax"
	EditTaxMode    EditKind = "tax_mode"
)

// Edit is one discrete change to a document. Exactly the fields relevant to
// its Kind are read; the rest are ignored.
type Edit struct {
	Kind      EditKind
	ItemID    string
	TaxID     string
	Field     ItemField
	TaxField  TaxField
	Value     any
	Inclusive bool
}

// Apply dispatches the edit to the matching operation and returns the fully
// recomputed document. Unknown kinds and stale ids return the input unchanged.
func (e Engine) Apply(doc Document, edit Edit) Document {
	switch edit.Kind {
	case EditItemField:
		return ApplyFieldEdit(doc, edit.ItemID, edit.Field, edit.Value)
	case EditTaxField:
		return ApplyTaxEdit(doc, edit.ItemID, edit.TaxID, edit.TaxField, edit.Value)
	case EditAddItem:
		return e.AddItem(doc)
	case EditRemoveItem:
		return RemoveItem(doc, edit.ItemID)
	case EditAddTax:
		return e.AddTax(doc, edit.ItemID)
	case EditRemoveTax:
		return RemoveTax(doc, edit.ItemID, edit.TaxID)
	case EditTaxMode:
		return SetTaxMode(doc, edit.Inclusive)
	default:
		return doc.Clone()
	}
}

// ApplyFieldEdit assigns one raw field value on the identified item, then
// recomputes the item and the document. Numeric fields coerce malformed input
// to zero. A stale item id returns the document unchanged.
func ApplyFieldEdit(doc Document, itemID string, field ItemField, value any) Document {
	doc = doc.Clone()
	idx := indexOfItem(doc.Items, itemID)
	if idx < 0 {
		return doc
	}
	it := &doc.Items[idx]
	switch field {
	case FieldSKU:
		it.SKU = coerceString(value)
	case FieldName:
		it.Name = coerceString(value)
	case FieldUnit:
		it.Unit = coerceString(value)
	case FieldQuantity:
		it.Quantity = coerceNumber(value)
	case FieldUnitPrice:
		it.UnitPrice = coerceNumber(value)
	case FieldDiscount:
		it.Discount = coerceNumber(value)
	case FieldDiscountType:
		if t := DiscountType(coerceString(value)); t == DiscountFixed || t == DiscountPercentage {
			it.DiscountType = t
		}
	default:
		return doc
	}
	doc.Items[idx] = RecomputeItem(doc.Items[idx], doc.TaxInclusive)
	return RecomputeDocument(doc)
}

// ApplyTaxEdit assigns one raw field value on the identified tax entry, then
// recomputes the owning item and the document. Under inclusive mode a rate
// change perturbs the sibling tax amounts as well. Stale ids return the
// document unchanged.
func ApplyTaxEdit(doc Document, itemID, taxID string, field TaxField, value any) Document {
	doc = doc.Clone()
	idx := indexOfItem(doc.Items, itemID)
	if idx < 0 {
		return doc
	}
	tIdx := indexOfTax(doc.Items[idx].Taxes, taxID)
	if tIdx < 0 {
		return doc
	}
	switch field {
	case TaxFieldName:
		doc.Items[idx].Taxes[tIdx].Name = coerceString(value)
	case TaxFieldRate:
		doc.Items[idx].Taxes[tIdx].Rate = coerceNumber(value)
	default:
		return doc
	}
	doc.Items[idx] = RecomputeItem(doc.Items[idx], doc.TaxInclusive)
	return RecomputeDocument(doc)
}
