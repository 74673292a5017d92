// Package mappings holds the static translation tables and formatting
// primitives used to turn a raw offer into its display form.
package mappings

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Kind codes arrive with inconsistent casing in the data source, so both
// variants of each code map to the same label.
var kindLabels = map[string]string{
	"Presencial": "Presencial",
	"presencial": "Presencial",
	"EaD":        "EaD",
	"ead":        "EaD",
}

var levelLabels = map[string]string{
	"bacharelado":  "Graduação (bacharelado)",
	"tecnologo":    "Graduação (tecnólogo)",
	"licenciatura": "Graduação (licenciatura)",
}

// KindLabel translates a delivery-modality code. ok is false for codes
// outside the table; callers decide the fallback.
func KindLabel(code string) (label string, ok bool) {
	label, ok = kindLabels[code]
	return label, ok
}

// LevelLabel translates a degree-type code. ok is false for codes
// outside the table.
func LevelLabel(code string) (label string, ok bool) {
	label, ok = levelLabels[code]
	return label, ok
}

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatCurrency renders an amount as Brazilian Real, pt-BR style:
// "R$" + NBSP + grouped value with two decimals, e.g. "R$ 1.000,00".
func FormatCurrency(amount float64) string {
	return ptBR.Sprintf("R$\u00a0%v", number.Decimal(amount, number.Scale(2)))
}

// DiscountPercentage computes the rounded discount of offeredPrice over
// fullPrice and renders it as "NN%". Rounding is half-away-from-zero.
// A fullPrice <= 0 would make the division meaningless, so it yields "0%".
func DiscountPercentage(fullPrice, offeredPrice float64) string {
	if fullPrice <= 0 {
		return "0%"
	}
	discount := math.Round(((fullPrice - offeredPrice) / fullPrice) * 100)
	return fmt.Sprintf("%d%%", int(discount))
}
