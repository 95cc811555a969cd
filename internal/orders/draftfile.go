package orders

import (
	"context"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/printmg/internal/backend"
)

// DraftFile is a TOML description of an order, used to fill the wizard
// non-interactively.
type DraftFile struct {
	File         string `toml:"file"`
	Name         string `toml:"name"`
	Resolution   string `toml:"dpi"`
	ColorProfile string `toml:"color_profile"`

	Product   int  `toml:"product"`
	Book      bool `toml:"book"`
	PageCount int  `toml:"book_pages"`

	Format   string  `toml:"format"`
	Size     string  `toml:"size"`
	Width    float64 `toml:"width"`
	Height   float64 `toml:"height"`
	Paper    string  `toml:"paper"`
	Finish   string  `toml:"finish"`
	Quantity int     `toml:"quantity"`
	Duplex   string  `toml:"duplex"`
	Binding  string  `toml:"binding"`
	Cover    string  `toml:"cover"`

	Phone   string `toml:"phone"`
	Options string `toml:"options"`
}

// ProductFinder resolves a catalog product by id.
type ProductFinder interface {
	Find(ctx context.Context, id int) (backend.Product, error)
}

// LoadDraftFile reads a draft description from path.
func LoadDraftFile(path string) (*DraftFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read draft file: %w", err)
	}

	var df DraftFile
	if err := toml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse draft file: %w", err)
	}

	return &df, nil
}

// Apply replays the description onto w in wizard order: the file, then the
// product or book, then the format and add-ons, then contact details.
func (df *DraftFile) Apply(ctx context.Context, w *Wizard, products ProductFinder, maxSize int64) error {
	if df.File != "" {
		f, err := ReadFile(df.File, maxSize)
		if err != nil {
			return err
		}
		if err := w.SetFile(f); err != nil {
			return err
		}
	}
	if df.Name != "" {
		w.SetDisplayName(df.Name)
	}
	if df.Resolution != "" {
		r, err := ParseResolution(df.Resolution)
		if err != nil {
			return err
		}
		w.SetResolution(r)
	}
	if df.ColorProfile != "" {
		p, err := ParseColorProfile(df.ColorProfile)
		if err != nil {
			return err
		}
		w.SetColorProfile(p)
	}

	if df.Book {
		w.SetBook(true)
		if df.PageCount > 0 {
			w.SetPageCount(df.PageCount)
		}
	} else if df.Product != 0 {
		p, err := products.Find(ctx, df.Product)
		if err != nil {
			return err
		}
		w.SelectProduct(p)
	}

	if df.Format != "" {
		c, err := ParseFormatClass(df.Format)
		if err != nil {
			return err
		}
		w.SetFormatClass(c)
	}
	if df.Size != "" {
		f, err := ParseSmallFormat(df.Size)
		if err != nil {
			return err
		}
		w.SetSmallFormat(f)
	}
	if df.Width > 0 || df.Height > 0 {
		w.SetCustomSize(df.Width, df.Height)
	}

	if err := applyField(df.Paper, ParsePaper, w.SetPaper); err != nil {
		return err
	}
	if err := applyField(df.Finish, ParseFinish, w.SetFinish); err != nil {
		return err
	}
	if err := applyField(df.Duplex, ParseDuplex, w.SetDuplex); err != nil {
		return err
	}
	if err := applyField(df.Binding, ParseBinding, w.SetBinding); err != nil {
		return err
	}
	if err := applyField(df.Cover, ParseCover, w.SetCover); err != nil {
		return err
	}

	if df.Quantity > 0 {
		w.SetQuantity(df.Quantity)
	}
	if df.Phone != "" {
		w.SetPhone(df.Phone)
	}
	if df.Options != "" {
		w.SetOptions(df.Options)
	}

	return nil
}

func applyField[T any](value string, parse func(string) (T, error), set func(T)) error {
	if value == "" {
		return nil
	}
	v, err := parse(value)
	if err != nil {
		return err
	}
	set(v)
	return nil
}
