// Package display formats numeric answers for presentation. The core
// engine only ever supplies the raw float64; everything locale-shaped
// happens here.
package display

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Magnitude bounds for plain decimal rendering. Outside [1e-6, 1e16)
// the answer switches to scientific notation.
const (
	decimalMin = 1e-6
	decimalMax = 1e16
)

// maxFractionDigits bounds the fractional digits of plain decimal
// rendering.
const maxFractionDigits = 20

// Formatter renders answers with locale-aware grouping separators.
type Formatter struct {
	printer *message.Printer
}

// New creates a Formatter for the given locale tag.
func New(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Answer formats a numeric answer: grouped decimal with up to 20
// fractional digits for 0 and magnitudes in [1e-6, 1e16), scientific
// notation otherwise. NaN and infinities render via strconv.
func (f *Formatter) Answer(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	abs := math.Abs(v)
	if v == 0 || (abs >= decimalMin && abs < decimalMax) {
		return f.printer.Sprint(number.Decimal(v,
			number.MaxFractionDigits(maxFractionDigits),
		))
	}

	return strconv.FormatFloat(v, 'e', -1, 64)
}
