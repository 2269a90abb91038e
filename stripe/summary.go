package stripe

import (
	"fmt"
	"strings"
	"unicode"

	stripeapi "github.com/stripe/stripe-go/v82"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PriceSummary is the normalized view of a resolved price returned alongside
// checkout responses, so the front end can render what is being sold without
// a second lookup.
type PriceSummary struct {
	Amount        *int64  `json:"amount"`
	Currency      string  `json:"currency"`
	Type          string  `json:"type"` // "recurring" or "one_time"
	Interval      *string `json:"interval"`
	IntervalCount *int64  `json:"interval_count"`
	PriceID       string  `json:"priceId"`
	ProductID     string  `json:"productId"`
}

// SummarizePrice builds a PriceSummary from a provider price object.
func SummarizePrice(price *stripeapi.Price) *PriceSummary {
	summary := &PriceSummary{
		Currency: "usd",
		Type:     "one_time",
		PriceID:  price.ID,
	}
	if price.UnitAmount != 0 {
		amount := price.UnitAmount
		summary.Amount = &amount
	}
	if price.Currency != "" {
		summary.Currency = string(price.Currency)
	}
	if price.Recurring != nil {
		summary.Type = "recurring"
		interval := string(price.Recurring.Interval)
		summary.Interval = &interval
		count := price.Recurring.IntervalCount
		summary.IntervalCount = &count
	}
	if price.Product != nil {
		summary.ProductID = price.Product.ID
	}
	return summary
}

// ProductDisplay is the display-ready payload of the product reader.
type ProductDisplay struct {
	Product  ProductInfo  `json:"product"`
	Price    PriceInfo    `json:"price"`
	Computed ComputedInfo `json:"computed"`
}

// ProductInfo carries the raw product fields the front end renders.
type ProductInfo struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
	DefaultPrice string   `json:"default_price,omitempty"`
}

// PriceInfo carries the raw price fields the front end renders.
type PriceInfo struct {
	ID         string         `json:"id"`
	Currency   string         `json:"currency"`
	UnitAmount *int64         `json:"unit_amount"`
	Recurring  *RecurringInfo `json:"recurring"`
}

// RecurringInfo describes a recurring billing cadence.
type RecurringInfo struct {
	Interval      string `json:"interval"`
	IntervalCount int64  `json:"interval_count"`
}

// ComputedInfo is the block of precomputed display strings. The key names
// match the component slots of the site builder consuming this API.
type ComputedInfo struct {
	ProductName    string          `json:"ProductSummary-name"`
	CurrencyAmount *CurrencyAmount `json:"CurrencyAmount"`
	Description    string          `json:"product-summary-product-description"`
}

// CurrencyAmount is a locale-formatted amount plus its recurring cadence label.
type CurrencyAmount struct {
	Amount    int64           `json:"amount"`
	Currency  string          `json:"currency"`
	Formatted string          `json:"formatted"`
	Recurring *RecurringLabel `json:"recurring"`
}

// RecurringLabel is a human-readable recurring cadence.
type RecurringLabel struct {
	Interval      string `json:"interval"`
	IntervalCount int64  `json:"interval_count"`
	Label         string `json:"label"`
}

// FormatAmount renders an amount of minor currency units as an en-US
// currency string, e.g. 1999/"usd" -> "$19.99". The amount is always divided
// by 100, matching the behavior of the previous client formatting.
func FormatAmount(amount int64, code string) string {
	unit, err := currency.ParseISO(strings.ToUpper(code))
	if err != nil {
		return fmt.Sprintf("%.2f %s", float64(amount)/100, strings.ToUpper(code))
	}
	p := message.NewPrinter(language.AmericanEnglish)
	return joinSymbol(p.Sprintf("%v", currency.Symbol(unit.Amount(float64(amount)/100))))
}

// joinSymbol removes the separator x/text places between a currency symbol
// and the number ("$ 19.99" -> "$19.99"). Spaces next to alphabetic codes
// ("SEK 123.50") are kept.
func joinSymbol(s string) string {
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	for i, r := range runes {
		if unicode.IsSpace(r) {
			afterSymbol := i > 0 && unicode.Is(unicode.Sc, runes[i-1])
			beforeSymbol := i+1 < len(runes) && unicode.Is(unicode.Sc, runes[i+1])
			if afterSymbol || beforeSymbol {
				continue
			}
		}
		out = append(out, r)
	}
	return string(out)
}

// CadenceLabel renders a recurring cadence as a human label:
// "per month", or "every 3 weeks" when the interval count is above one.
func CadenceLabel(interval string, intervalCount int64) string {
	if intervalCount > 1 {
		return fmt.Sprintf("every %d %ss", intervalCount, interval)
	}
	return fmt.Sprintf("per %s", interval)
}

// DisplayProduct builds the display payload for a resolved product and price.
func DisplayProduct(product *stripeapi.Product, price *stripeapi.Price) *ProductDisplay {
	display := &ProductDisplay{
		Product: ProductInfo{
			ID:          product.ID,
			Name:        product.Name,
			Description: product.Description,
			Images:      product.Images,
		},
		Price: PriceInfo{
			ID:       price.ID,
			Currency: "usd",
		},
		Computed: ComputedInfo{
			ProductName: product.Name,
			Description: product.Description,
		},
	}
	if product.DefaultPrice != nil {
		display.Product.DefaultPrice = product.DefaultPrice.ID
	}
	if price.Currency != "" {
		display.Price.Currency = string(price.Currency)
	}
	if price.Recurring != nil {
		display.Price.Recurring = &RecurringInfo{
			Interval:      string(price.Recurring.Interval),
			IntervalCount: max(price.Recurring.IntervalCount, 1),
		}
	}
	if price.UnitAmount != 0 {
		amount := price.UnitAmount
		display.Price.UnitAmount = &amount

		currencyAmount := &CurrencyAmount{
			Amount:    amount,
			Currency:  display.Price.Currency,
			Formatted: FormatAmount(amount, display.Price.Currency),
		}
		if rec := display.Price.Recurring; rec != nil {
			currencyAmount.Recurring = &RecurringLabel{
				Interval:      rec.Interval,
				IntervalCount: rec.IntervalCount,
				Label:         CadenceLabel(rec.Interval, rec.IntervalCount),
			}
		}
		display.Computed.CurrencyAmount = currencyAmount
	}
	return display
}
