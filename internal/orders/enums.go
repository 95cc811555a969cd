package orders

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// FormatClass separates sheet formats from large-format printing.
type FormatClass string

const (
	FormatSmall FormatClass = "petit"
	FormatLarge FormatClass = "grand"
)

// SmallFormat is the sheet size of a small-format order.
type SmallFormat string

const (
	SmallFormatUnset SmallFormat = ""
	FormatA5         SmallFormat = "A5"
	FormatA4         SmallFormat = "A4"
	FormatA3         SmallFormat = "A3"
	FormatCustom     SmallFormat = "custom"
)

// Paper is the stock the order is printed on.
type Paper string

const (
	PaperUnset  Paper = ""
	PaperGlossy Paper = "glace"
	PaperMatte  Paper = "mat"
)

// Finish is the surface treatment applied after printing.
type Finish string

const (
	FinishUnset    Finish = ""
	FinishGloss    Finish = "brillant"
	FinishMatte    Finish = "mate"
	FinishStandard Finish = "standard"
)

// Duplex selects single- or double-sided printing.
type Duplex string

const (
	DuplexUnset Duplex = ""
	SingleSided Duplex = "recto"
	DoubleSided Duplex = "recto_verso"
)

// Binding is the finishing of a bound document.
type Binding string

const (
	BindingNone    Binding = ""
	BindingSpiral  Binding = "spirale"
	BindingGlued   Binding = "dos_colle"
	BindingStapled Binding = "agrafe"
)

// Cover is the cover paper of a bound document.
type Cover string

const (
	CoverNone   Cover = ""
	CoverSimple Cover = "simple"
	CoverPhoto  Cover = "photo"
)

// Resolution is the declared print resolution in DPI.
type Resolution int

const (
	Resolution150 Resolution = 150
	Resolution300 Resolution = 300
)

// ColorProfile is the declared color space of the file.
type ColorProfile string

const (
	ProfileCMJN ColorProfile = "CMJN"
	ProfileCYMK ColorProfile = "CYMK"
)

var (
	formatClasses = []FormatClass{FormatSmall, FormatLarge}
	smallFormats  = []SmallFormat{FormatA5, FormatA4, FormatA3, FormatCustom}
	papers        = []Paper{PaperGlossy, PaperMatte}
	finishes      = []Finish{FinishGloss, FinishMatte, FinishStandard}
	duplexes      = []Duplex{SingleSided, DoubleSided}
	bindings      = []Binding{BindingSpiral, BindingGlued, BindingStapled}
	covers        = []Cover{CoverSimple, CoverPhoto}
	resolutions   = []Resolution{Resolution150, Resolution300}
	profiles      = []ColorProfile{ProfileCMJN, ProfileCYMK}
)

func parseEnum[T ~string](kind, s string, values []T, unset T, allowUnset bool) (T, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") || strings.EqualFold(s, "aucun") {
		if allowUnset {
			return unset, nil
		}
		return unset, fmt.Errorf("%s required", kind)
	}
	for _, v := range values {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	return unset, fmt.Errorf("unknown %s %q (must be one of %v)", kind, s, values)
}

// ParseFormatClass accepts "petit", "grand", "small" or "large".
func ParseFormatClass(s string) (FormatClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small":
		return FormatSmall, nil
	case "large":
		return FormatLarge, nil
	}
	return parseEnum("format class", s, formatClasses, "", false)
}

// ParseSmallFormat accepts A5, A4, A3 or custom; A6 maps to custom.
func ParseSmallFormat(s string) (SmallFormat, error) {
	if f, ok := SmallFormatFromProduct(s); ok {
		return f, nil
	}
	return parseEnum("format", s, smallFormats, SmallFormatUnset, false)
}

// ParsePaper parses a paper code.
func ParsePaper(s string) (Paper, error) {
	return parseEnum("paper", s, papers, PaperUnset, false)
}

// ParseFinish parses a finish code.
func ParseFinish(s string) (Finish, error) {
	return parseEnum("finish", s, finishes, FinishUnset, false)
}

// ParseDuplex parses a duplex code; an empty value leaves duplex unset.
func ParseDuplex(s string) (Duplex, error) {
	return parseEnum("duplex", s, duplexes, DuplexUnset, true)
}

// ParseBinding parses a binding code; an empty value means no binding.
func ParseBinding(s string) (Binding, error) {
	return parseEnum("binding", s, bindings, BindingNone, true)
}

// ParseCover parses a cover code; an empty value means no cover.
func ParseCover(s string) (Cover, error) {
	return parseEnum("cover", s, covers, CoverNone, true)
}

// ParseColorProfile parses a color profile code.
func ParseColorProfile(s string) (ColorProfile, error) {
	return parseEnum("color profile", s, profiles, "", false)
}

// ParseResolution parses a DPI value.
func ParseResolution(s string) (Resolution, error) {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "dpi"))
	if err != nil {
		return 0, fmt.Errorf("invalid resolution %q", s)
	}
	r := Resolution(n)
	if !slices.Contains(resolutions, r) {
		return 0, fmt.Errorf("unsupported resolution %d (must be 150 or 300)", n)
	}
	return r, nil
}

// SmallFormatFromProduct maps a catalog default format onto a small format.
// A6 has no sheet option of its own and is printed as a custom format.
func SmallFormatFromProduct(code string) (SmallFormat, bool) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "A3":
		return FormatA3, true
	case "A4":
		return FormatA4, true
	case "A5":
		return FormatA5, true
	case "A6", "CUSTOM":
		return FormatCustom, true
	default:
		return SmallFormatUnset, false
	}
}

// Valid methods report whether a value is one of the known codes. Optional
// enumerations accept their unset value.

func (c FormatClass) Valid() bool { return slices.Contains(formatClasses, c) }
func (f SmallFormat) Valid() bool { return slices.Contains(smallFormats, f) }
func (p Paper) Valid() bool { return slices.Contains(papers, p) }
func (f Finish) Valid() bool { return slices.Contains(finishes, f) }
func (d Duplex) Valid() bool { return d == DuplexUnset || slices.Contains(duplexes, d) }
func (b Binding) Valid() bool { return b == BindingNone || slices.Contains(bindings, b) }
func (c Cover) Valid() bool { return c == CoverNone || slices.Contains(covers, c) }
func (r Resolution) Valid() bool { return slices.Contains(resolutions, r) }
func (p ColorProfile) Valid() bool { return slices.Contains(profiles, p) }
