package i18n_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/internal/i18n"
	"github.com/JaimeStill/printmg/pkg/money"
)

func TestNegotiate(t *testing.T) {
	tests := []struct {
		pref string
		want string
	}{
		{"fr", "fr"},
		{"en", "en"},
		{"mlg", "mlg"},
		{"mg", "mlg"},
		{"mg-MG,en;q=0.8", "mlg"},
		{"en-US", "en"},
		{"fr-CA,fr;q=0.9", "fr"},
		{"de", "fr"},
		{"", "fr"},
		{"%%%", "fr"},
	}

	for _, tt := range tests {
		t.Run(tt.pref, func(t *testing.T) {
			if got := i18n.Negotiate(tt.pref); got != tt.want {
				t.Errorf("Negotiate(%q) = %q, want %q", tt.pref, got, tt.want)
			}
		})
	}
}

func TestTranslator_T(t *testing.T) {
	en := i18n.New("en")
	if got := en.T("orders.header.status"); got != "Status" {
		t.Errorf("T(orders.header.status) = %q, want Status", got)
	}
	if got := en.T("orders.deleted", 12); got != "Order #12 moved to the trash." {
		t.Errorf("T(orders.deleted, 12) = %q", got)
	}
	if got := en.T("no.such.key"); got != "no.such.key" {
		t.Errorf("T(missing) = %q, want the key", got)
	}
}

func TestTranslator_FallsBackToFrench(t *testing.T) {
	mlg := i18n.New("mlg")
	fr := i18n.New("fr")

	key := "wizard.advisory"
	if mlg.Has(key) {
		t.Fatalf("mlg bundle unexpectedly defines %s", key)
	}
	if got, want := mlg.T(key), fr.T(key); got != want {
		t.Errorf("mlg T(%s) = %q, want French %q", key, got, want)
	}
	if got := mlg.T("orders.status.TERMINE"); got != "Vita" {
		t.Errorf("mlg T(orders.status.TERMINE) = %q, want Vita", got)
	}
}

func TestBundlesComplete(t *testing.T) {
	for _, locale := range []string{"en"} {
		tr := i18n.New(locale)
		for _, key := range i18n.Keys() {
			if !tr.Has(key) {
				t.Errorf("%s bundle is missing %s", locale, key)
			}
		}
	}
}

func TestStatusLabel(t *testing.T) {
	fr := i18n.New("fr")
	for _, code := range backend.OrderStatuses {
		if got := fr.StatusLabel(code); got == "" || strings.HasPrefix(got, "orders.status.") {
			t.Errorf("StatusLabel(%s) = %q", code, got)
		}
	}
	if got := fr.StatusLabel("ANNULEE"); got != "ANNULEE" {
		t.Errorf("StatusLabel(unknown) = %q", got)
	}
}

func TestAmount(t *testing.T) {
	if got := i18n.New("en").Amount(money.Money(12500)); got != "12,500 Ar" {
		t.Errorf("Amount() = %q, want %q", got, "12,500 Ar")
	}
}
