package orders_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/JaimeStill/printmg/internal/orders"
	"github.com/JaimeStill/printmg/pkg/money"
)

func TestEstimate_Product(t *testing.T) {
	tests := []struct {
		name  string
		price string
		qty   int
		want  money.Money
	}{
		{"whole price", "1000", 20, 25000},
		{"rounds half up", "1250.5", 3, 8752},
		{"rounds to nearest unit", "333.33", 3, 6000},
		{"zero quantity is delivery only", "1000", 0, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := orders.NewDraft()
			d.Product = product("A4", false)
			d.Product.Price = decimal.RequireFromString(tt.price)
			d.Quantity = tt.qty

			got, ok := orders.Estimate(d)
			if !ok {
				t.Fatal("Estimate() reported no estimate")
			}
			if got != tt.want {
				t.Errorf("Estimate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEstimate_Book(t *testing.T) {
	tests := []struct {
		name    string
		format  orders.SmallFormat
		pages   int
		qty     int
		cover   orders.Cover
		binding orders.Binding
		duplex  orders.Duplex
		want    money.Money
	}{
		{
			name: "A4 photo spiral double-sided", format: orders.FormatA4, pages: 10, qty: 5,
			cover: orders.CoverPhoto, binding: orders.BindingSpiral, duplex: orders.DoubleSided,
			want: 500*10*5 + 3600*5 + 2000*5 + 5000,
		},
		{
			name: "A3 plain", format: orders.FormatA3, pages: 4, qty: 5,
			want: 1000*4*5 + 5000,
		},
		{
			name: "A5 simple cover single-sided glued", format: orders.FormatA5, pages: 20, qty: 6,
			cover: orders.CoverSimple, binding: orders.BindingGlued, duplex: orders.SingleSided,
			want: 300*20*6 + 1000*6 + 3000*6 + 5000,
		},
		{
			name: "custom stapled", format: orders.FormatCustom, pages: 8, qty: 10,
			binding: orders.BindingStapled,
			want: 200*8*10 + 1000*10 + 5000,
		},
		{
			name: "double-sided simple cover rounds", format: orders.FormatA4, pages: 1, qty: 7,
			cover: orders.CoverSimple, duplex: orders.DoubleSided,
			want: 500*7 + 1200*7 + 5000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := orders.NewDraft()
			d.Book = true
			d.SmallFormat = tt.format
			d.PageCount = tt.pages
			d.Quantity = tt.qty
			d.Cover = tt.cover
			d.Binding = tt.binding
			d.Duplex = tt.duplex

			got, ok := orders.Estimate(d)
			if !ok {
				t.Fatal("Estimate() reported no estimate")
			}
			if got != tt.want {
				t.Errorf("Estimate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEstimate_NoInputs(t *testing.T) {
	d := orders.NewDraft()
	d.Quantity = 10
	if _, ok := orders.Estimate(d); ok {
		t.Error("Estimate() without product or book should report no estimate")
	}

	d.Book = true
	if _, ok := orders.Estimate(d); ok {
		t.Error("Estimate() for a book without page count should report no estimate")
	}
}

func TestPricePerPage(t *testing.T) {
	tests := []struct {
		class  orders.FormatClass
		format orders.SmallFormat
		want   int64
	}{
		{orders.FormatSmall, orders.FormatA3, 1000},
		{orders.FormatSmall, orders.FormatA4, 500},
		{orders.FormatSmall, orders.FormatA5, 300},
		{orders.FormatSmall, orders.FormatCustom, 200},
		{orders.FormatSmall, orders.SmallFormatUnset, 200},
		{orders.FormatLarge, orders.SmallFormatUnset, 200},
	}

	for _, tt := range tests {
		if got := orders.PricePerPage(tt.class, tt.format); got != tt.want {
			t.Errorf("PricePerPage(%s, %q) = %d, want %d", tt.class, tt.format, got, tt.want)
		}
	}
}
