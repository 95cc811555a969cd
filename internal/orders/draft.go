package orders

import (
	"github.com/google/uuid"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/pkg/money"
)

// Draft is an order being assembled by the wizard. It exists only until it is
// submitted or abandoned.
type Draft struct {
	ID uuid.UUID

	File         *UploadedFile
	DisplayName  string
	Resolution   Resolution
	ColorProfile ColorProfile

	Product   *backend.Product
	Book      bool
	PageCount int

	FormatClass FormatClass
	SmallFormat SmallFormat
	Width       float64
	Height      float64
	Paper       Paper
	Finish      Finish
	Quantity    int
	Duplex      Duplex
	Binding     Binding
	Cover       Cover

	Phone   string
	Options string

	// Amount is the advisory estimate; nil when no estimate can be made.
	Amount *money.Money
}

// NewDraft returns a draft holding the initial values of the wizard.
func NewDraft() Draft {
	return Draft{
		ID:           uuid.New(),
		Resolution:   Resolution300,
		ColorProfile: ProfileCMJN,
		FormatClass:  FormatSmall,
		SmallFormat:  FormatA4,
	}
}
