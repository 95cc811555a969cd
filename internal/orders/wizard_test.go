package orders_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/internal/orders"
	"github.com/JaimeStill/printmg/pkg/logging"
)

type fakeSubmitter struct {
	calls int
	last  backend.OrderSubmission
	err   error
}

func (f *fakeSubmitter) SubmitOrder(ctx context.Context, sub backend.OrderSubmission) (*backend.OrderReceipt, error) {
	f.calls++
	f.last = sub
	if f.err != nil {
		return nil, f.err
	}
	return &backend.OrderReceipt{Success: true, OrderID: 42, Amount: decimal.NewFromInt(10500)}, nil
}

func newWizard(sub *fakeSubmitter) *orders.Wizard {
	return orders.NewWizard(sub, logging.Discard())
}

func fillToConfirmation(t *testing.T, w *orders.Wizard) {
	t.Helper()

	if err := w.SetFile(jpg()); err != nil {
		t.Fatalf("SetFile() error = %v", err)
	}
	if err := w.Next(); err != nil {
		t.Fatalf("Next() from file step: %v", err)
	}

	w.SelectProduct(*product("A4", false))
	w.SetPaper(orders.PaperMatte)
	w.SetFinish(orders.FinishMatte)
	w.SetQuantity(20)
	w.SetBinding(orders.BindingStapled)
	if err := w.Next(); err != nil {
		t.Fatalf("Next() from configuration step: %v", err)
	}

	w.SetPhone("+261 34 12 345 67")
	w.SetOptions("livraison le matin")
	if err := w.Next(); err != nil {
		t.Fatalf("Next() from contact step: %v", err)
	}

	if w.Step() != orders.StepConfirmation {
		t.Fatalf("Step() = %v, want %v", w.Step(), orders.StepConfirmation)
	}
}

func TestNewWizard(t *testing.T) {
	w := newWizard(&fakeSubmitter{})

	if w.Step() != orders.StepFileUpload {
		t.Errorf("Step() = %v, want %v", w.Step(), orders.StepFileUpload)
	}

	d := w.Draft()
	if d.FormatClass != orders.FormatSmall || d.SmallFormat != orders.FormatA4 {
		t.Errorf("initial format = %s/%s, want petit/A4", d.FormatClass, d.SmallFormat)
	}
	if d.Amount != nil {
		t.Errorf("initial Amount = %v, want nil", *d.Amount)
	}
}

func TestWizard_RejectsUnsupportedFile(t *testing.T) {
	w := newWizard(&fakeSubmitter{})

	if err := w.SetFile(jpg()); err != nil {
		t.Fatalf("SetFile(jpg) error = %v", err)
	}

	doc := &orders.UploadedFile{Name: "cv.docx", Extension: "docx", Content: []byte("x")}
	err := w.SetFile(doc)
	if !errors.Is(err, orders.ErrUnsupportedExtension) {
		t.Fatalf("SetFile(docx) error = %v, want ErrUnsupportedExtension", err)
	}
	if w.Draft().File != nil {
		t.Error("unsupported file must not stay attached to the draft")
	}

	if err := w.Next(); err == nil {
		t.Error("Next() should be blocked without a file")
	}
	if w.Step() != orders.StepFileUpload {
		t.Errorf("Step() = %v, want %v", w.Step(), orders.StepFileUpload)
	}
}

func TestWizard_SetFileFillsDisplayName(t *testing.T) {
	w := newWizard(&fakeSubmitter{})
	if err := w.SetFile(jpg()); err != nil {
		t.Fatal(err)
	}
	if got := w.Draft().DisplayName; got != "flyer" {
		t.Errorf("DisplayName = %q, want %q", got, "flyer")
	}

	w.SetDisplayName("affiche")
	if err := w.SetFile(&orders.UploadedFile{Name: "other.pdf", Extension: "pdf"}); err != nil {
		t.Fatal(err)
	}
	if got := w.Draft().DisplayName; got != "affiche" {
		t.Errorf("DisplayName = %q, want %q", got, "affiche")
	}
}

func TestWizard_SelectProduct(t *testing.T) {
	tests := []struct {
		name       string
		product    *backend.Product
		wantClass  orders.FormatClass
		wantFormat orders.SmallFormat
	}{
		{"large format clears small format", product("A3", true), orders.FormatLarge, orders.SmallFormatUnset},
		{"A6 maps to custom", product("A6", false), orders.FormatSmall, orders.FormatCustom},
		{"A3 copied", product("A3", false), orders.FormatSmall, orders.FormatA3},
		{"A5 copied", product("a5", false), orders.FormatSmall, orders.FormatA5},
		{"unknown keeps current", product("B2", false), orders.FormatSmall, orders.FormatA3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWizard(&fakeSubmitter{})
			w.SetSmallFormat(orders.FormatA3)

			w.SelectProduct(*tt.product)

			d := w.Draft()
			if d.FormatClass != tt.wantClass {
				t.Errorf("FormatClass = %q, want %q", d.FormatClass, tt.wantClass)
			}
			if d.SmallFormat != tt.wantFormat {
				t.Errorf("SmallFormat = %q, want %q", d.SmallFormat, tt.wantFormat)
			}
		})
	}
}

func TestWizard_BookAndProductExclusive(t *testing.T) {
	w := newWizard(&fakeSubmitter{})

	w.SelectProduct(*product("A4", false))
	w.SetBook(true)
	if d := w.Draft(); d.Product != nil || !d.Book {
		t.Errorf("after SetBook(true): Product = %v, Book = %v", d.Product, d.Book)
	}

	w.SetPageCount(12)
	w.SelectProduct(*product("A4", false))
	if d := w.Draft(); d.Book || d.PageCount != 0 {
		t.Errorf("after SelectProduct: Book = %v, PageCount = %d", d.Book, d.PageCount)
	}
}

func TestWizard_RecomputesEstimate(t *testing.T) {
	w := newWizard(&fakeSubmitter{})

	w.SelectProduct(*product("A4", false))
	w.SetQuantity(20)
	if a := w.Draft().Amount; a == nil || *a != 25000 {
		t.Fatalf("Amount = %v, want 25000", a)
	}

	w.SetQuantity(30)
	if a := w.Draft().Amount; a == nil || *a != 35000 {
		t.Fatalf("Amount = %v, want 35000", a)
	}

	w.SetBook(true)
	if a := w.Draft().Amount; a != nil {
		t.Errorf("Amount = %d, want nil for a book without pages", *a)
	}

	w.SetPageCount(10)
	if a := w.Draft().Amount; a == nil || *a != 500*10*30+5000 {
		t.Errorf("Amount = %v, want %d", a, 500*10*30+5000)
	}
}

func TestWizard_BackNeverValidates(t *testing.T) {
	w := newWizard(&fakeSubmitter{})
	fillToConfirmation(t, w)

	w.SetQuantity(0)
	w.Back()
	if w.Step() != orders.StepContactPayment {
		t.Fatalf("Step() = %v, want %v", w.Step(), orders.StepContactPayment)
	}
	w.Back()
	w.Back()
	if w.Step() != orders.StepFileUpload {
		t.Fatalf("Step() = %v, want %v", w.Step(), orders.StepFileUpload)
	}
	w.Back()
	if w.Step() != orders.StepFileUpload {
		t.Errorf("Back() from the first step moved to %v", w.Step())
	}
}

func TestWizard_Cancel(t *testing.T) {
	sub := &fakeSubmitter{}
	w := newWizard(sub)
	fillToConfirmation(t, w)

	if err := w.Next(); !errors.Is(err, orders.ErrAwaitingConfirmation) {
		t.Errorf("Next() in confirmation error = %v, want ErrAwaitingConfirmation", err)
	}

	w.Cancel()
	if w.Step() != orders.StepContactPayment {
		t.Errorf("Step() = %v, want %v", w.Step(), orders.StepContactPayment)
	}
	if w.Draft().File == nil {
		t.Error("Cancel() must keep the draft")
	}
	if sub.calls != 0 {
		t.Errorf("submitter called %d times, want 0", sub.calls)
	}
}

func TestWizard_ConfirmResets(t *testing.T) {
	sub := &fakeSubmitter{}
	w := newWizard(sub)
	fillToConfirmation(t, w)
	before := w.Draft()

	receipt, err := w.Confirm(context.Background())
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if receipt.OrderID != 42 {
		t.Errorf("OrderID = %d, want 42", receipt.OrderID)
	}
	if sub.calls != 1 {
		t.Errorf("submitter called %d times, want 1", sub.calls)
	}

	if w.Step() != orders.StepFileUpload {
		t.Errorf("Step() = %v, want %v", w.Step(), orders.StepFileUpload)
	}
	if w.Confirming() {
		t.Error("confirmation should be closed")
	}

	d := w.Draft()
	if d.ID == before.ID {
		t.Error("draft ID was not renewed")
	}
	if d.File != nil || d.Product != nil || d.Amount != nil {
		t.Errorf("draft not reset: file=%v product=%v amount=%v", d.File, d.Product, d.Amount)
	}
	if d.Quantity != 0 || d.Phone != "" || d.Options != "" || d.Binding != orders.BindingNone {
		t.Errorf("draft not reset: %+v", d)
	}
	if d.FormatClass != orders.FormatSmall || d.SmallFormat != orders.FormatA4 {
		t.Errorf("format = %s/%s, want petit/A4", d.FormatClass, d.SmallFormat)
	}
}

func TestWizard_ConfirmFailureKeepsState(t *testing.T) {
	rejected := &backend.ServerError{Status: 400, Fields: map[string][]string{"detail": {"Produit indisponible"}}}
	sub := &fakeSubmitter{err: rejected}
	w := newWizard(sub)
	fillToConfirmation(t, w)
	before := w.Draft()

	_, err := w.Confirm(context.Background())
	if !errors.Is(err, rejected) {
		t.Fatalf("Confirm() error = %v, want %v", err, rejected)
	}

	if w.Step() != orders.StepConfirmation {
		t.Errorf("Step() = %v, want %v", w.Step(), orders.StepConfirmation)
	}
	after := w.Draft()
	if after.ID != before.ID || after.File != before.File || after.Quantity != before.Quantity {
		t.Error("draft changed after a failed submission")
	}

	sub.err = nil
	if _, err := w.Confirm(context.Background()); err != nil {
		t.Errorf("resubmission error = %v", err)
	}
}

func TestWizard_ConfirmOutsideConfirmation(t *testing.T) {
	w := newWizard(&fakeSubmitter{})
	if _, err := w.Confirm(context.Background()); !errors.Is(err, orders.ErrNotConfirming) {
		t.Errorf("Confirm() error = %v, want ErrNotConfirming", err)
	}
}
