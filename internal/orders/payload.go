package orders

import (
	"strconv"

	"github.com/JaimeStill/printmg/internal/backend"
)

// Payload builds the multipart submission of d. Unset optional fields are
// omitted rather than sent empty, and the estimate is never included.
func Payload(d Draft) (backend.OrderSubmission, error) {
	if d.File == nil {
		return backend.OrderSubmission{}, ErrNoFile
	}

	var fields []backend.Field
	add := func(name, value string) {
		if value != "" {
			fields = append(fields, backend.Field{Name: name, Value: value})
		}
	}

	add("fileName", d.DisplayName)
	add("file_format", d.File.Extension)
	if d.Resolution != 0 {
		add("dpi", strconv.Itoa(int(d.Resolution)))
	}
	add("colorProfile", string(d.ColorProfile))

	if d.Product != nil {
		add("produit", strconv.Itoa(d.Product.ID))
	}
	if d.Book {
		add("book_pages", strconv.Itoa(d.PageCount))
	}

	add("format_type", string(d.FormatClass))
	switch d.FormatClass {
	case FormatSmall:
		add("small_format", string(d.SmallFormat))
	case FormatLarge:
		if d.Width > 0 {
			add("largeur", strconv.FormatFloat(d.Width, 'f', -1, 64))
		}
		if d.Height > 0 {
			add("hauteur", strconv.FormatFloat(d.Height, 'f', -1, 64))
		}
	}

	add("paper_type", string(d.Paper))
	add("finish", string(d.Finish))
	if d.Quantity > 0 {
		add("quantity", strconv.Itoa(d.Quantity))
	}
	add("duplex", string(d.Duplex))
	add("binding", string(d.Binding))
	add("cover_paper", string(d.Cover))

	add("phone", d.Phone)
	add("options", d.Options)

	return backend.OrderSubmission{
		Fields:   fields,
		FileName: d.File.Name,
		File:     d.File.Content,
	}, nil
}
