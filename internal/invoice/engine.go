package invoice

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Default values applied to newly created items and taxes.
const (
	defaultItemQuantity = 1
	defaultItemUnit     = "pcs"
	defaultTaxName      = "VAT"
	defaultTaxRate      = 10
	extraTaxName        = "Tax"
)

// IDGen produces identifiers for new items and taxes. Injectable so the
// engine stays deterministic under test.
type IDGen func() string

// Engine applies edits to a document and recomputes every derived field.
// All operations are value-in value-out: the input document is never mutated,
// and every operation is total — malformed numerics coerce to zero and stale
// identifiers are no-ops.
//
// Negative derived values are allowed: a discount larger than the item amount
// produces a negative line total that propagates into the document totals
// unchanged.
type Engine struct {
	IDs IDGen
}

func (e Engine) newID() string {
	if e.IDs != nil {
		return e.IDs()
	}
	return uuid.NewString()
}

// RecomputeItem recalculates every derived field of one item under the given
// tax mode. Order matters: amount, then discount, then taxes, then line total.
//
// In inclusive mode the item's taxes partition a single extracted tax pool
// proportionally to their rates; they are not computed independently, so
// editing one tax's rate shifts the displayed amounts of its siblings.
func RecomputeItem(it Item, taxInclusive bool) Item {
	it = it.clone()
	it.Amount = it.Quantity * it.UnitPrice

	discount := it.Discount
	if it.DiscountType == DiscountPercentage {
		discount = it.Amount * it.Discount / 100
	}
	base := it.Amount - discount

	if taxInclusive {
		var rateSum float64
		for _, t := range it.Taxes {
			rateSum += t.Rate
		}
		var totalTax float64
		if rateSum > 0 {
			totalTax = base * rateSum / (100 + rateSum)
		}
		for i := range it.Taxes {
			if rateSum > 0 {
				it.Taxes[i].Amount = totalTax * it.Taxes[i].Rate / rateSum
			} else {
				it.Taxes[i].Amount = 0
			}
		}
		it.TotalTax = totalTax
		it.LineTotal = base
		return it
	}

	var totalTax float64
	for i := range it.Taxes {
		it.Taxes[i].Amount = base * it.Taxes[i].Rate / 100
		totalTax += it.Taxes[i].Amount
	}
	it.TotalTax = totalTax
	it.LineTotal = base + totalTax
	return it
}

// RecomputeDocument refreshes the aggregate totals from the item line totals.
// Items are assumed to be individually recomputed already.
func RecomputeDocument(doc Document) Document {
	var subtotal, tax float64
	for _, it := range doc.Items {
		subtotal += it.LineTotal
		tax += it.TotalTax
	}
	doc.Subtotal = subtotal
	doc.Tax = tax
	doc.Total = subtotal
	return doc
}

func recomputeAll(doc Document) Document {
	for i := range doc.Items {
		doc.Items[i] = RecomputeItem(doc.Items[i], doc.TaxInclusive)
	}
	return RecomputeDocument(doc)
}

// AddItem appends a new item with default values and one default tax, then
// recomputes the document.
func (e Engine) AddItem(doc Document) Document {
	doc = doc.Clone()
	item := Item{
		ID:           e.newID(),
		Quantity:     defaultItemQuantity,
		Unit:         defaultItemUnit,
		DiscountType: DiscountFixed,
		Taxes: []TaxEntry{{
			ID:   e.newID(),
			Name: defaultTaxName,
			Rate: defaultTaxRate,
		}},
	}
	doc.Items = append(doc.Items, RecomputeItem(item, doc.TaxInclusive))
	return RecomputeDocument(doc)
}

// RemoveItem deletes the item (and its taxes with it) and recomputes the
// document. An unknown id leaves the document unchanged.
func RemoveItem(doc Document, itemID string) Document {
	doc = doc.Clone()
	items := doc.Items[:0]
	for _, it := range doc.Items {
		if it.ID != itemID {
			items = append(items, it)
		}
	}
	doc.Items = items
	return RecomputeDocument(doc)
}

// AddTax appends an empty tax entry to the item and recomputes. Unknown item
// ids are no-ops.
func (e Engine) AddTax(doc Document, itemID string) Document {
	doc = doc.Clone()
	idx := indexOfItem(doc.Items, itemID)
	if idx < 0 {
		return doc
	}
	doc.Items[idx].Taxes = append(doc.Items[idx].Taxes, TaxEntry{
		ID:   e.newID(),
		Name: extraTaxName,
	})
	doc.Items[idx] = RecomputeItem(doc.Items[idx], doc.TaxInclusive)
	return RecomputeDocument(doc)
}

// RemoveTax deletes one tax entry from the item and recomputes. An item is
// allowed to reach zero taxes. Unknown ids are no-ops.
func RemoveTax(doc Document, itemID, taxID string) Document {
	doc = doc.Clone()
	idx := indexOfItem(doc.Items, itemID)
	if idx < 0 {
		return doc
	}
	taxes := doc.Items[idx].Taxes[:0]
	for _, t := range doc.Items[idx].Taxes {
		if t.ID != taxID {
			taxes = append(taxes, t)
		}
	}
	doc.Items[idx].Taxes = taxes
	doc.Items[idx] = RecomputeItem(doc.Items[idx], doc.TaxInclusive)
	return RecomputeDocument(doc)
}

// SetTaxMode flips the inclusive/exclusive flag and recomputes every item,
// since the tax treatment of each line changes.
func SetTaxMode(doc Document, inclusive bool) Document {
	doc = doc.Clone()
	doc.TaxInclusive = inclusive
	return recomputeAll(doc)
}

func indexOfItem(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfTax(taxes []TaxEntry, id string) int {
	for i := range taxes {
		if taxes[i].ID == id {
			return i
		}
	}
	return -1
}

// coerceNumber normalises a raw scalar into a float. Malformed input becomes
// zero; the engine never rejects numeric edits.
func coerceNumber(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	default:
		return ""
	}
}
