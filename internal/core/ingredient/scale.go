package ingredient

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	mixedFractionQty  = regexp.MustCompile(`^(\d+)\s+(\d+)/(\d+)\s+(.+)$`)
	simpleFractionQty = regexp.MustCompile(`^(\d+)/(\d+)\s+(.+)$`)
	decimalQty        = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s+(.+)$`)
)

// fractionSnapTolerance is how close a fractional remainder must be to a
// common cooking fraction to be displayed as one.
const fractionSnapTolerance = 0.001

// Scaler multiplies leading quantities in ingredient lines.
// "2 cups flour" scaled by 2 becomes "4 cups flour"; lines without a leading
// quantity pass through unchanged.
type Scaler struct{}

// NewScaler creates a Scaler.
func NewScaler() *Scaler {
	return &Scaler{}
}

type parsedQuantity struct {
	value float64
	rest  string
}

// parseLeadingQuantity parses a leading mixed fraction ("1 1/2"), simple
// fraction ("1/2"), or decimal/integer ("2", "2.5") followed by at least one
// space and a remainder.
func parseLeadingQuantity(text string) *parsedQuantity {
	trimmed := strings.TrimSpace(text)
	if m := mixedFractionQty.FindStringSubmatch(trimmed); m != nil {
		whole, _ := strconv.Atoi(m[1])
		num, _ := strconv.Atoi(m[2])
		den, _ := strconv.Atoi(m[3])
		if den == 0 {
			return nil
		}
		return &parsedQuantity{value: float64(whole) + float64(num)/float64(den), rest: strings.TrimSpace(m[4])}
	}
	if m := simpleFractionQty.FindStringSubmatch(trimmed); m != nil {
		num, _ := strconv.Atoi(m[1])
		den, _ := strconv.Atoi(m[2])
		if den == 0 {
			return nil
		}
		return &parsedQuantity{value: float64(num) / float64(den), rest: strings.TrimSpace(m[3])}
	}
	if m := decimalQty.FindStringSubmatch(trimmed); m != nil {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil
		}
		return &parsedQuantity{value: value, rest: strings.TrimSpace(m[2])}
	}
	return nil
}

// formatQuantity renders a scaled value as a human-friendly quantity string.
// Whole numbers are unadorned; fractional remainders snap to the nearest
// common cooking fraction when close enough, otherwise two decimals.
func formatQuantity(value float64) string {
	if value <= 0 {
		return ""
	}
	intPart := int(math.Floor(value))
	frac := value - float64(intPart)
	if frac < 0.01 {
		return strconv.Itoa(intPart)
	}
	if frac > 0.99 {
		return strconv.Itoa(intPart + 1)
	}
	if name := snapFraction(frac); name != "" {
		if intPart > 0 {
			return strconv.Itoa(intPart) + " " + name
		}
		return name
	}
	if value == math.Trunc(value) {
		return strconv.Itoa(int(math.Round(value)))
	}
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func snapFraction(frac float64) string {
	switch {
	case math.Abs(frac-0.25) < fractionSnapTolerance:
		return "1/4"
	case math.Abs(frac-0.33) < fractionSnapTolerance || math.Abs(frac-1.0/3.0) < fractionSnapTolerance:
		return "1/3"
	case math.Abs(frac-0.5) < fractionSnapTolerance:
		return "1/2"
	case math.Abs(frac-0.66) < fractionSnapTolerance || math.Abs(frac-2.0/3.0) < fractionSnapTolerance:
		return "2/3"
	case math.Abs(frac-0.75) < fractionSnapTolerance:
		return "3/4"
	}
	return ""
}

// Scale multiplies the leading quantity of every line by factor. Lines
// without a parseable leading quantity are returned unmodified, and a scaled
// value that formats to empty (corrupt input scaling to zero or below) keeps
// the original line rather than dropping the ingredient name.
func (s *Scaler) Scale(lines []string, factor float64) []string {
	if factor == 1 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		parsed := parseLeadingQuantity(line)
		if parsed == nil {
			out[i] = line
			continue
		}
		formatted := formatQuantity(parsed.value * factor)
		if formatted == "" {
			out[i] = line
			continue
		}
		out[i] = strings.TrimSpace(formatted + " " + parsed.rest)
	}
	return out
}
