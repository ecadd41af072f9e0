package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/agrosuite/dashboard/internal/record"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder is displayed instead of missing values
const Placeholder = "-"

var dateLayouts = map[string]string{
	"pt": "02/01/2006",
	"en": "01/02/2006",
	"es": "02/01/2006",
}

// Formatter formats record values using the conventions of a locale
type Formatter struct {
	tag        language.Tag
	printer    *message.Printer
	currency   string
	dateLayout string
}

// NewFormatter creates a new formatter for a BCP 47 locale such as 'pt-BR'
func NewFormatter(locale, currencySymbol string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, err
	}
	base, _ := tag.Base()
	layout, ok := dateLayouts[base.String()]
	if !ok {
		layout = record.DateLayout
	}
	return &Formatter{
		tag:        tag,
		printer:    message.NewPrinter(tag),
		currency:   currencySymbol,
		dateLayout: layout,
	}, nil
}

// Locale returns the locale tag of the formatter
func (formatter *Formatter) Locale() string {
	return formatter.tag.String()
}

// Number formats a number with a fixed amount of decimals and locale separators
func (formatter *Formatter) Number(value record.Number, decimals int) string {
	return formatter.printer.Sprint(number.Decimal(finite(value.Float()),
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals),
	))
}

// Currency formats a monetary amount, prefixed with the currency symbol
func (formatter *Formatter) Currency(value record.Number) string {
	return formatter.currency + " " + formatter.Number(value, 2)
}

// Percent formats a percentage with one decimal
func (formatter *Formatter) Percent(value record.Number) string {
	return formatter.Number(value, 1) + "%"
}

// Date formats a date using the locale date layout
func (formatter *Formatter) Date(date record.Date) string {
	if date.IsZero() {
		return Placeholder
	}
	return date.Format(formatter.dateLayout)
}

// Text returns the trimmed text or the placeholder if it is blank
func (formatter *Formatter) Text(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return Placeholder
	}
	return value
}

// Decimal formats a value as a plain two-decimal string without locale separators, e.g. '450.00'
func Decimal(value float64) string {
	return strconv.FormatFloat(finite(value), 'f', 2, 64)
}

func finite(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
