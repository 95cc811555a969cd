package orders

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/internal/phone"
)

// Step is a state of the wizard.
type Step int

const (
	StepFileUpload Step = iota + 1
	StepConfiguration
	StepContactPayment
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepFileUpload:
		return "file"
	case StepConfiguration:
		return "configuration"
	case StepContactPayment:
		return "contact"
	case StepConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

// Submitter sends a finished order to the backend.
type Submitter interface {
	SubmitOrder(ctx context.Context, sub backend.OrderSubmission) (*backend.OrderReceipt, error)
}

// Wizard walks a Draft through file selection, configuration, contact details
// and confirmation. Every mutator recomputes the estimate.
type Wizard struct {
	step      Step
	draft     Draft
	submitter Submitter
	logger    *slog.Logger
}

// NewWizard returns a wizard on its first step with an initial draft.
func NewWizard(submitter Submitter, logger *slog.Logger) *Wizard {
	w := &Wizard{
		submitter: submitter,
		logger:    logger.With("system", "orders"),
	}
	w.Reset()
	return w
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	return w.step
}

// Draft returns a copy of the current draft.
func (w *Wizard) Draft() Draft {
	return w.draft
}

// Confirming reports whether the confirmation modal is open.
func (w *Wizard) Confirming() bool {
	return w.step == StepConfirmation
}

// Next validates the current step and advances. From the contact step it
// opens the confirmation.
func (w *Wizard) Next() error {
	var err error
	switch w.step {
	case StepFileUpload:
		err = ValidateStep1(w.draft)
	case StepConfiguration:
		err = ValidateStep2(w.draft)
	case StepContactPayment:
		err = ValidateStep3(w.draft)
	case StepConfirmation:
		return ErrAwaitingConfirmation
	}
	if err != nil {
		w.logger.Debug("step blocked", "draft_id", w.draft.ID, "step", w.step, "reason", err)
		return err
	}

	w.step++
	return nil
}

// Back returns to the previous step without validation. From the
// confirmation it behaves as Cancel.
func (w *Wizard) Back() {
	if w.step > StepFileUpload {
		w.step--
	}
}

// Cancel closes the confirmation and returns to the contact step.
func (w *Wizard) Cancel() {
	if w.step == StepConfirmation {
		w.step = StepContactPayment
	}
}

// Confirm submits the draft. On success the wizard is reset; on failure the
// draft and step are kept so the order can be resubmitted.
func (w *Wizard) Confirm(ctx context.Context) (*backend.OrderReceipt, error) {
	if w.step != StepConfirmation {
		return nil, ErrNotConfirming
	}

	for _, validate := range []func(Draft) error{ValidateStep1, ValidateStep2, ValidateStep3} {
		if err := validate(w.draft); err != nil {
			return nil, err
		}
	}

	sub, err := Payload(w.draft)
	if err != nil {
		return nil, err
	}

	receipt, err := w.submitter.SubmitOrder(ctx, sub)
	if err != nil {
		w.logger.Warn("order submission failed", "draft_id", w.draft.ID, "error", err)
		return nil, err
	}

	w.logger.Info("order confirmed", "draft_id", w.draft.ID, "commande_id", receipt.OrderID)
	w.Reset()
	return receipt, nil
}

// Reset discards the draft and returns to the first step.
func (w *Wizard) Reset() {
	w.draft = NewDraft()
	w.step = StepFileUpload
	w.recompute()
}

// SetFile attaches f. A file of an unsupported type is rejected and leaves
// the draft without a file.
func (w *Wizard) SetFile(f *UploadedFile) error {
	if f == nil || !Allowed(f.Extension) {
		w.draft.File = nil
		return unsupported()
	}

	w.draft.File = f
	if strings.TrimSpace(w.draft.DisplayName) == "" {
		w.draft.DisplayName = strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
	}
	if f.Extension == "pdf" && f.PageCount == 0 {
		w.logger.Warn("could not count pdf pages", "file", f.Name)
	}
	if w.draft.Book && w.draft.PageCount <= 0 && f.PageCount > 0 {
		w.draft.PageCount = f.PageCount
	}

	w.recompute()
	return nil
}

// ClearFile removes the attached file.
func (w *Wizard) ClearFile() {
	w.draft.File = nil
	w.recompute()
}

// SetDisplayName sets the name the order's file is listed under.
func (w *Wizard) SetDisplayName(name string) {
	w.draft.DisplayName = strings.TrimSpace(name)
}

// SetResolution sets the declared DPI.
func (w *Wizard) SetResolution(r Resolution) {
	w.draft.Resolution = r
}

// SetColorProfile sets the declared color profile.
func (w *Wizard) SetColorProfile(p ColorProfile) {
	w.draft.ColorProfile = p
}

// SelectProduct picks a catalog product and derives the format from it:
// large-format products force the large class and clear the sheet size;
// others copy the product's default format, A6 becoming custom. Selecting a
// product leaves book mode.
func (w *Wizard) SelectProduct(p backend.Product) {
	w.draft.Product = &p
	w.draft.Book = false
	w.draft.PageCount = 0

	if p.LargeFormat {
		w.draft.FormatClass = FormatLarge
		w.draft.SmallFormat = SmallFormatUnset
	} else {
		w.draft.FormatClass = FormatSmall
		if f, ok := SmallFormatFromProduct(p.DefaultFormat); ok {
			w.draft.SmallFormat = f
		}
	}

	w.recompute()
}

// SetBook switches book mode. Entering book mode deselects the product and
// takes the page count from the attached PDF when known.
func (w *Wizard) SetBook(book bool) {
	w.draft.Book = book
	if book {
		w.draft.Product = nil
		if w.draft.PageCount <= 0 && w.draft.File != nil {
			w.draft.PageCount = w.draft.File.PageCount
		}
	} else {
		w.draft.PageCount = 0
	}
	w.recompute()
}

// SetPageCount sets the number of pages of a book.
func (w *Wizard) SetPageCount(n int) {
	w.draft.PageCount = n
	w.recompute()
}

// SetFormatClass switches between small and large formats.
func (w *Wizard) SetFormatClass(c FormatClass) {
	w.draft.FormatClass = c
	if c == FormatLarge {
		w.draft.SmallFormat = SmallFormatUnset
	}
	w.recompute()
}

// SetSmallFormat sets the sheet size.
func (w *Wizard) SetSmallFormat(f SmallFormat) {
	w.draft.SmallFormat = f
	w.recompute()
}

// SetCustomSize sets the width and height of a large-format job in centimeters.
func (w *Wizard) SetCustomSize(width, height float64) {
	w.draft.Width = width
	w.draft.Height = height
	w.recompute()
}

// SetPaper sets the paper stock.
func (w *Wizard) SetPaper(p Paper) {
	w.draft.Paper = p
	w.recompute()
}

// SetFinish sets the finish.
func (w *Wizard) SetFinish(f Finish) {
	w.draft.Finish = f
	w.recompute()
}

// SetQuantity sets the number of copies.
func (w *Wizard) SetQuantity(q int) {
	w.draft.Quantity = q
	w.recompute()
}

// SetDuplex sets single- or double-sided printing.
func (w *Wizard) SetDuplex(d Duplex) {
	w.draft.Duplex = d
	w.recompute()
}

// SetBinding sets the binding.
func (w *Wizard) SetBinding(b Binding) {
	w.draft.Binding = b
	w.recompute()
}

// SetCover sets the cover paper.
func (w *Wizard) SetCover(c Cover) {
	w.draft.Cover = c
	w.recompute()
}

// SetPhone stores the normalized form of raw. Validation happens on Next.
func (w *Wizard) SetPhone(raw string) {
	w.draft.Phone = phone.Normalize(raw)
}

// SetOptions sets free-text instructions for the print shop.
func (w *Wizard) SetOptions(options string) {
	w.draft.Options = strings.TrimSpace(options)
}

func (w *Wizard) recompute() {
	if amount, ok := Estimate(w.draft); ok {
		w.draft.Amount = &amount
	} else {
		w.draft.Amount = nil
	}
}
