package format

import (
	"math/big"
	"strconv"
	"strings"
)

// FormatNumberString inserts thousands separators into a decimal string.
// A leading minus sign is kept in front of the first group.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	b.Grow(len(sign) + len(s) + len(s)/3)
	b.WriteString(sign)
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatTerm renders a sequence term with thousands separators.
func FormatTerm(v *big.Int) string {
	if v == nil {
		return ""
	}
	return FormatNumberString(v.String())
}

// FormatCompact renders v in at most width characters. Values that do not
// fit are shown in scientific notation, e.g. 1.2e9.
func FormatCompact(v uint64, width int) string {
	s := strconv.FormatUint(v, 10)
	if len(s) <= width {
		return s
	}
	exp := strconv.Itoa(len(s) - 1)
	mantissa := width - len(exp) - 1
	switch {
	case mantissa >= 3:
		return s[:1] + "." + s[1:mantissa-1] + "e" + exp
	case mantissa >= 1:
		return s[:1] + "e" + exp
	default:
		return strings.Repeat("#", max(width, 0))
	}
}

// FormatBytes renders n with a binary unit suffix, e.g. "12.3 MiB".
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return strconv.FormatUint(n, 10) + " B"
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit && exp < 5; m /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatFloat(float64(n)/float64(div), 'f', 1, 64) + " " + string("KMGTPE"[exp]) + "iB"
}
