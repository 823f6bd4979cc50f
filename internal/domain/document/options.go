package document

import (
	"time"

	"github.com/sepur/finance/internal/domain/finance"
)

// Branding defaults printed on every document
const (
	DefaultCompanyName = "Sepur Engineering Roblox"
	DefaultProductName = "Sepur Finance"
)

// BuildOptions carries the environment a document is built in
type BuildOptions struct {
	CompanyName     string
	ProductName     string
	DefaultCurrency string
	Now             time.Time
	Page            PageSetup
}

// DefaultBuildOptions returns the standard branding with an A4 portrait page
func DefaultBuildOptions(now time.Time) BuildOptions {
	return BuildOptions{
		CompanyName:     DefaultCompanyName,
		ProductName:     DefaultProductName,
		DefaultCurrency: finance.DefaultCurrency,
		Now:             now,
		Page: PageSetup{
			PaperSize:   PaperSizeA4,
			Orientation: OrientationPortrait,
			Margins:     DefaultMargins(),
		},
	}
}

func (o BuildOptions) withDefaults() BuildOptions {
	if o.CompanyName == "" {
		o.CompanyName = DefaultCompanyName
	}
	if o.ProductName == "" {
		o.ProductName = DefaultProductName
	}
	if o.DefaultCurrency == "" {
		o.DefaultCurrency = finance.DefaultCurrency
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if !o.Page.PaperSize.IsValid() {
		o.Page.PaperSize = PaperSizeA4
	}
	if !o.Page.Orientation.IsValid() {
		o.Page.Orientation = OrientationPortrait
	}
	if o.Page.Margins == (Margins{}) {
		o.Page.Margins = DefaultMargins()
	}
	return o
}
