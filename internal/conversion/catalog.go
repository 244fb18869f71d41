package conversion

import (
	"fxconvert/internal/domain"
	"slices"
)

// DefaultCurrencies is the catalog offered when none is configured.
var DefaultCurrencies = []string{"USD", "EUR", "GBP", "JPY", "AUD", "CAD", "CHF", "CNY", "INR"}

// Catalog is the fixed, ordered list of currencies a user may pick from. It never changes after creation.
type Catalog struct {
	codesSet map[string]struct{} // read only
	codesLst []string            // read only, catalog order
}

func (c *Catalog) ValidateCode(code string) error {
	if code == "" {
		return domain.ErrCurrencyRequired
	}
	if !c.Contains(code) {
		return domain.ErrCurrencyUnsupported
	}
	return nil
}

func (c *Catalog) Contains(code string) bool {
	_, ok := c.codesSet[code]
	return ok
}

func (c *Catalog) Codes() []string {
	return slices.Clone(c.codesLst)
}

// NewCatalog normalizes codes, drops blanks and duplicates and keeps first-seen order.
func NewCatalog(codes []string) *Catalog {
	if len(codes) == 0 {
		codes = DefaultCurrencies
	}
	set := make(map[string]struct{}, len(codes))
	lst := make([]string, 0, len(codes))
	for _, raw := range codes {
		code := domain.NormalizeCode(raw)
		if code == "" {
			continue
		}
		if _, dup := set[code]; dup {
			continue
		}
		set[code] = struct{}{}
		lst = append(lst, code)
	}
	return &Catalog{codesSet: set, codesLst: lst}
}
