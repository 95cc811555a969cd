package orders

import (
	"github.com/shopspring/decimal"

	"github.com/JaimeStill/printmg/pkg/money"
)

// DeliveryFee is added once to every estimate.
const DeliveryFee = 5000

var doubleSidedMultiplier = decimal.RequireFromString("1.2")

// PricePerPage returns the per-page price of a bound book. Large formats and
// unset sizes use the base price.
func PricePerPage(class FormatClass, f SmallFormat) int64 {
	if class == FormatLarge {
		return 200
	}
	switch f {
	case FormatA3:
		return 1000
	case FormatA4:
		return 500
	case FormatA5:
		return 300
	case FormatCustom:
		return 200
	case SmallFormatUnset:
		return 200
	default:
		return 200
	}
}

// CoverSurcharge returns the per-copy price of the cover paper.
func CoverSurcharge(c Cover) int64 {
	switch c {
	case CoverSimple:
		return 1000
	case CoverPhoto:
		return 3000
	case CoverNone:
		return 0
	default:
		return 0
	}
}

// DuplexMultiplier scales the cover surcharge for double-sided covers.
func DuplexMultiplier(d Duplex) decimal.Decimal {
	switch d {
	case DoubleSided:
		return doubleSidedMultiplier
	case SingleSided, DuplexUnset:
		return decimal.NewFromInt(1)
	default:
		return decimal.NewFromInt(1)
	}
}

// BindingSurcharge returns the per-copy price of the binding.
func BindingSurcharge(b Binding) int64 {
	switch b {
	case BindingSpiral:
		return 2000
	case BindingGlued:
		return 3000
	case BindingStapled:
		return 1000
	case BindingNone:
		return 0
	default:
		return 0
	}
}

// Estimate computes the advisory price of d. It reports false when the draft
// has neither a book page count nor a selected product. The backend computes
// the binding price; this value is never submitted.
func Estimate(d Draft) (money.Money, bool) {
	qty := decimal.NewFromInt(int64(d.Quantity))
	delivery := decimal.NewFromInt(DeliveryFee)

	if d.Book {
		if d.PageCount <= 0 {
			return 0, false
		}

		pages := decimal.NewFromInt(PricePerPage(d.FormatClass, d.SmallFormat)).
			Mul(decimal.NewFromInt(int64(d.PageCount))).
			Mul(qty)
		cover := decimal.NewFromInt(CoverSurcharge(d.Cover)).
			Mul(DuplexMultiplier(d.Duplex)).
			Mul(qty)
		binding := decimal.NewFromInt(BindingSurcharge(d.Binding)).Mul(qty)

		return money.FromDecimal(pages.Add(cover).Add(binding).Add(delivery)), true
	}

	if d.Product == nil {
		return 0, false
	}

	return money.FromDecimal(d.Product.Price.Mul(qty).Add(delivery)), true
}
