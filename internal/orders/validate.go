package orders

import (
	"strings"

	"github.com/JaimeStill/printmg/internal/phone"
)

// BookMinimumQuantity is the smallest print run of a bound book, whatever its format.
const BookMinimumQuantity = 5

// Printer limits for large-format jobs, in centimeters.
const (
	MaxLargeWidth  = 160
	MaxLargeHeight = 100
)

// MinimumQuantity returns the smallest print run accepted for a small format.
func MinimumQuantity(f SmallFormat) int {
	switch f {
	case FormatA5:
		return 30
	case FormatA4:
		return 20
	case FormatA3:
		return 10
	case FormatCustom:
		return 50
	case SmallFormatUnset:
		return 0
	default:
		return 0
	}
}

// ValidateStep1 checks the file selection.
func ValidateStep1(d Draft) error {
	if d.File == nil {
		return &ValidationError{Step: StepFileUpload, Field: "file", Reason: "Veuillez sélectionner un fichier.", Err: ErrNoFile}
	}
	if strings.TrimSpace(d.DisplayName) == "" {
		return invalid(StepFileUpload, "fileName", "Veuillez indiquer le nom du fichier.")
	}
	if !Allowed(d.File.Extension) {
		return unsupported()
	}
	return nil
}

// ValidateStep2 checks the print configuration.
func ValidateStep2(d Draft) error {
	if !d.Book && d.Product == nil {
		return invalid(StepConfiguration, "produit", "Veuillez choisir un produit.")
	}
	if d.Paper == PaperUnset {
		return invalid(StepConfiguration, "paper_type", "Veuillez choisir un type de papier.")
	}
	if d.Finish == FinishUnset {
		return invalid(StepConfiguration, "finish", "Veuillez choisir une finition.")
	}
	if d.Quantity <= 0 {
		return invalid(StepConfiguration, "quantity", "Veuillez indiquer une quantité.")
	}

	if d.Book {
		if d.PageCount <= 0 {
			return invalid(StepConfiguration, "book_pages", "Veuillez indiquer le nombre de pages du livre.")
		}
		if d.Quantity < BookMinimumQuantity {
			return invalid(StepConfiguration, "quantity", "Quantité minimale pour un livre : %d exemplaires.", BookMinimumQuantity)
		}
	}

	switch d.FormatClass {
	case FormatSmall:
		if d.Book {
			return nil
		}
		if d.SmallFormat == SmallFormatUnset {
			return invalid(StepConfiguration, "small_format", "Veuillez choisir un format.")
		}
		if minQty := MinimumQuantity(d.SmallFormat); d.Quantity < minQty {
			return invalid(StepConfiguration, "quantity", "Quantité minimale pour %s : %d.", formatLabel(d.SmallFormat), minQty)
		}
	case FormatLarge:
		// Written as negations so that NaN is rejected.
		if !(d.Width > 0) || !(d.Height > 0) {
			return invalid(StepConfiguration, "largeur", "Merci de préciser la largeur et la hauteur pour le grand format.")
		}
		if d.Width > MaxLargeWidth || d.Height > MaxLargeHeight {
			return invalid(StepConfiguration, "largeur", "La limite du grand format est %dx%d cm.", MaxLargeWidth, MaxLargeHeight)
		}
	default:
		return invalid(StepConfiguration, "format_type", "Veuillez choisir un type de format.")
	}

	return nil
}

// ValidateStep3 checks the contact and payment details.
func ValidateStep3(d Draft) error {
	if _, err := phone.Validate(d.Phone); err != nil {
		return &ValidationError{Step: StepContactPayment, Field: "phone", Reason: err.Error(), Err: err}
	}
	if d.Amount == nil || *d.Amount <= 0 {
		return invalid(StepContactPayment, "amount", "Le montant n'a pas pu être calculé.")
	}
	return nil
}

func formatLabel(f SmallFormat) string {
	if f == FormatCustom {
		return "format personnalisé"
	}
	return string(f)
}
