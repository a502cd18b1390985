package cents

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/govalues/decimal"
)

const (
	// MaxCents is the largest cent count an [Amount] can hold.
	// It matches the coefficient limit of [decimal.Decimal], which means
	// that the largest amount is 99999999999999999.99.
	MaxCents uint64 = 9_999_999_999_999_999_999

	centScale    = 2   // number of digits after the decimal point
	centsPerUnit = 100 // 10^centScale

	maxWhole = int64(MaxCents / centsPerUnit) // largest integer part
)

var (
	// ErrInvalidAmount is returned when a string is not a decimal number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount is returned when an input or a result is below zero.
	ErrNegativeAmount = errors.New("negative amount")
	// ErrAmountOverflow is returned when a result is greater than [MaxCents].
	ErrAmountOverflow = errors.New("amount overflow")
)

// Amount type represents a non-negative monetary amount with exactly two
// digits after the decimal point.
// It is stored as a whole number of cents, so sums and products are exact.
// Its zero value corresponds to 0.00.
//
// Amount is comparable: two amounts are equal if and only if they hold
// the same number of cents, and amounts can be used as map keys.
// Amount is safe for concurrent reads; the in-place methods
// [Amount.Accumulate] and [Amount.Scale] require external synchronization.
type Amount struct {
	cents uint64 // number of hundredths of a unit
}

// newAmountUnsafe creates a new amount without checking the range.
// Use it only if you are absolutely sure that the argument is valid.
func newAmountUnsafe(cents uint64) Amount {
	return Amount{cents: cents}
}

// newAmountSafe creates a new amount and checks the range.
func newAmountSafe(cents uint64) (Amount, error) {
	if cents > MaxCents {
		return Amount{}, ErrAmountOverflow
	}
	return newAmountUnsafe(cents), nil
}

// newAmountFromDecimal rounds the decimal to cents and checks the sign
// and the range.
func newAmountFromDecimal(d decimal.Decimal) (Amount, error) {
	d = d.Round(centScale)
	if d.IsNeg() {
		return Amount{}, ErrNegativeAmount
	}
	d = d.Pad(centScale)
	if d.Scale() < centScale {
		return Amount{}, ErrAmountOverflow
	}
	return newAmountSafe(d.Coef())
}

// Zero returns an amount equal to 0.00.
// It is the same as the zero value Amount{}.
func Zero() Amount {
	return Amount{}
}

// NewAmount returns an amount equal to cents / 100.
// See also method [Amount.Cents].
//
// NewAmount returns an error if cents is greater than [MaxCents].
func NewAmount(cents uint64) (Amount, error) {
	a, err := newAmountSafe(cents)
	if err != nil {
		return Amount{}, fmt.Errorf("converting cents: %w", err)
	}
	return a, nil
}

// MustNewAmount is like [NewAmount] but panics if the amount cannot be constructed.
// It simplifies safe initialization of global variables holding amounts.
func MustNewAmount(cents uint64) Amount {
	a, err := NewAmount(cents)
	if err != nil {
		panic(fmt.Sprintf("NewAmount(%v) failed: %v", cents, err))
	}
	return a
}

// NewAmountFromDecimal converts a decimal to a (possibly rounded) amount.
// Digits beyond the second fractional digit are rounded using
// [rounding half to even] (banker's rounding).
// See also method [Amount.Decimal].
//
// NewAmountFromDecimal returns an error if:
//   - the rounded decimal is negative;
//   - the integer part of the result has more than 17 digits.
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func NewAmountFromDecimal(d decimal.Decimal) (Amount, error) {
	a, err := newAmountFromDecimal(d)
	if err != nil {
		return Amount{}, fmt.Errorf("converting decimal: %w", err)
	}
	return a, nil
}

// NewAmountFromInt64 converts a pair of integers, representing the whole and
// fractional parts, to a (possibly rounded) amount equal to whole + frac / 10^scale.
// See also method [Amount.Int64].
//
// NewAmountFromInt64 returns an error if:
//   - the whole and fractional parts have different signs;
//   - the scale is negative or greater than [decimal.MaxScale];
//   - frac / 10^scale is not within the range (-1, 1);
//   - the result is negative;
//   - the integer part of the result has more than 17 digits.
func NewAmountFromInt64(whole, frac int64, scale int) (Amount, error) {
	d, err := decimal.NewFromInt64(whole, frac, scale)
	if err != nil {
		if whole > maxWhole && frac >= 0 && scale >= decimal.MinScale && scale <= decimal.MaxScale {
			return Amount{}, fmt.Errorf("converting integers: %w: %w", ErrAmountOverflow, err)
		}
		return Amount{}, fmt.Errorf("converting integers: %w: %w", ErrInvalidAmount, err)
	}
	a, err := newAmountFromDecimal(d)
	if err != nil {
		return Amount{}, fmt.Errorf("converting integers: %w", err)
	}
	return a, nil
}

// NewAmountFromFloat64 converts a float to a (possibly rounded) amount.
// The float is first formatted using the shortest representation that
// reads back to the same float, and then parsed like [ParseAmount] does.
// See also method [Amount.Float64].
//
// NewAmountFromFloat64 returns an error if:
//   - the float is a special value (NaN or Inf);
//   - the float is negative after rounding;
//   - the integer part of the result has more than 17 digits.
func NewAmountFromFloat64(f float64) (Amount, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Amount{}, fmt.Errorf("converting float: special value %v: %w", f, ErrInvalidAmount)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	a, err := ParseAmount(s)
	if err != nil {
		return Amount{}, fmt.Errorf("converting float: %w", err)
	}
	return a, nil
}

// ParseAmount converts a decimal string to a (possibly rounded) amount.
// The input string must be in one of the following formats:
//
//	44.12
//	+44.12
//	44.1
//	.5
//	4.412e1
//
// Digits beyond the second fractional digit are rounded using
// [rounding half to even] (banker's rounding).
// Negative strings that round to zero, such as "-0.001", are accepted as 0.00.
// See also [decimal.Parse] for the complete grammar.
//
// ParseAmount returns an error wrapping:
//   - [ErrInvalidAmount] if the string is not a decimal number, is longer
//     than 330 bytes, or has an exponent outside [-330, 330];
//   - [ErrNegativeAmount] if the number is negative;
//   - [ErrAmountOverflow] if the integer part has more than 17 digits.
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.Parse(s)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing amount: %w: %w", classifyParseError(s), err)
	}
	a, err := newAmountFromDecimal(d)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing amount: %w", err)
	}
	return a, nil
}

// MustParseAmount is like [ParseAmount] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding amounts.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(fmt.Sprintf("ParseAmount(%q) failed: %v", s, err))
	}
	return a
}

// Cents returns the amount in cents.
// See also constructor [NewAmount].
func (a Amount) Cents() uint64 {
	return a.cents
}

// Decimal returns the decimal representation of the amount.
// The scale of the result is always 2.
// See also constructor [NewAmountFromDecimal].
func (a Amount) Decimal() decimal.Decimal {
	whole, frac := a.Int64()
	d, err := decimal.NewFromInt64(whole, frac, centScale)
	if err != nil {
		// The range of Amount is a subset of the range of Decimal.
		panic(fmt.Sprintf("converting %v to decimal: %v", a, err))
	}
	return d.Pad(centScale)
}

// Int64 returns a pair of integers representing the whole and fractional
// parts of the amount, such that a = whole + frac / 100.
// See also constructor [NewAmountFromInt64].
func (a Amount) Int64() (whole, frac int64) {
	return int64(a.cents / centsPerUnit), int64(a.cents % centsPerUnit)
}

// Float64 returns the nearest binary floating-point number rounded
// using [rounding half to even] (banker's rounding).
// See also constructor [NewAmountFromFloat64].
//
// This conversion may lose data, as float64 has a smaller precision
// than the amount.
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (a Amount) Float64() (f float64, ok bool) {
	return a.Decimal().Float64()
}

// IsZero returns:
//
//	true  if a = 0
//	false otherwise
func (a Amount) IsZero() bool {
	return a.cents == 0
}

// IsInt returns true if there are no cents after the decimal point.
func (a Amount) IsInt() bool {
	return a.cents%centsPerUnit == 0
}

// Add returns the exact sum of amounts a and b.
// See also method [Amount.Accumulate].
//
// Add returns an error if the result is greater than [MaxCents].
func (a Amount) Add(b Amount) (Amount, error) {
	c, err := a.add(b)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v + %v]: %w", a, b, err)
	}
	return c, nil
}

func (a Amount) add(b Amount) (Amount, error) {
	x, y := a.Cents(), b.Cents()
	if x > MaxCents-y {
		return Amount{}, ErrAmountOverflow
	}
	return newAmountUnsafe(x + y), nil
}

// Sub returns the exact difference between amounts a and b.
//
// Sub returns an error if b is greater than a.
func (a Amount) Sub(b Amount) (Amount, error) {
	c, err := a.sub(b)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v - %v]: %w", a, b, err)
	}
	return c, nil
}

func (a Amount) sub(b Amount) (Amount, error) {
	x, y := a.Cents(), b.Cents()
	if y > x {
		return Amount{}, ErrNegativeAmount
	}
	return newAmountUnsafe(x - y), nil
}

// Mul returns the exact product of amount a and a whole count n,
// for example a unit price multiplied by a quantity.
// See also method [Amount.Scale].
//
// Mul returns an error if the result is greater than [MaxCents].
func (a Amount) Mul(n uint64) (Amount, error) {
	c, err := a.mul(n)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v * %v]: %w", a, n, err)
	}
	return c, nil
}

func (a Amount) mul(n uint64) (Amount, error) {
	x := a.Cents()
	if n != 0 && x > MaxCents/n {
		return Amount{}, ErrAmountOverflow
	}
	return newAmountUnsafe(x * n), nil
}

// Accumulate adds amount b to amount a in place.
// See also method [Amount.Add].
//
// Accumulate returns an error if the sum is greater than [MaxCents].
// In that case amount a is left unchanged.
func (a *Amount) Accumulate(b Amount) error {
	c, err := a.Add(b)
	if err != nil {
		return err
	}
	*a = c
	return nil
}

// Scale multiplies amount a by a whole count n in place.
// Scale(0) makes the amount zero and Scale(1) leaves it as is.
// See also method [Amount.Mul].
//
// Scale returns an error if the product is greater than [MaxCents].
// In that case amount a is left unchanged.
func (a *Amount) Scale(n uint64) error {
	c, err := a.Mul(n)
	if err != nil {
		return err
	}
	*a = c
	return nil
}

// Sum returns the exact sum of the amounts.
// The sum of an empty list is zero.
//
// Sum returns an error if any intermediate sum is greater than [MaxCents].
func Sum(amounts ...Amount) (Amount, error) {
	var total Amount
	for i, a := range amounts {
		if err := total.Accumulate(a); err != nil {
			return Amount{}, fmt.Errorf("summing amount %d: %w", i, err)
		}
	}
	return total, nil
}

// Cmp compares amounts and returns:
//
//	-1 if a < b
//	 0 if a = b
//	+1 if a > b
func (a Amount) Cmp(b Amount) int {
	switch x, y := a.Cents(), b.Cents(); {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// Equal returns true if amounts hold the same number of cents.
// It is the same as a == b.
func (a Amount) Equal(b Amount) bool {
	return a == b
}

// Less returns true if a < b.
func (a Amount) Less(b Amount) bool {
	return a.Cmp(b) < 0
}

// Min returns the smaller amount.
func (a Amount) Min(b Amount) Amount {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Max returns the larger amount.
func (a Amount) Max(b Amount) Amount {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// String implements the [fmt.Stringer] interface and returns a string
// representation of an amount with exactly two digits after the decimal
// point, for example "44.01" or "0.00".
// See also methods [Amount.UnpaddedString], [Amount.Format].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (a Amount) String() string {
	var buf [24]byte
	pos := len(buf) - 1
	coef := a.Cents()
	scale := centScale

	// Coefficient
	for {
		buf[pos] = byte(coef%10) + '0'
		pos--
		coef /= 10
		if scale > 0 {
			scale--
			// Decimal point
			if scale == 0 {
				buf[pos] = '.'
				pos--
				// Leading 0
				if coef == 0 {
					buf[pos] = '0'
					pos--
				}
			}
		}
		if coef == 0 && scale == 0 {
			break
		}
	}

	return string(buf[pos+1:])
}

// UnpaddedString returns the amount as "<whole>.<cents>" without
// zero-padding the cents, for example "44.1" for 44.01 and "0.0" for zero.
// It exists for compatibility with consumers of the legacy format
// and should not be used for display.
// See also method [Amount.String].
func (a Amount) UnpaddedString() string {
	buf := make([]byte, 0, 24)
	buf = strconv.AppendUint(buf, a.cents/centsPerUnit, 10)
	buf = append(buf, '.')
	buf = strconv.AppendUint(buf, a.cents%centsPerUnit, 10)
	return string(buf)
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb   | Example | Description     |
//	| ------ | ------- | --------------- |
//	| %s, %v | 5.67    | Amount          |
//	| %q     | "5.67"  | Quoted amount   |
//	| %f     | 5.67    | Amount          |
//	| %d     | 567     | Amount in cents |
//
// The '-', '+', ' ', '0' format flags can be used with all verbs.
//
// Precision is only supported for the %f verb.
// Precision smaller than 2 is ignored, as amounts are never rounded
// for display.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
//
//gocyclo:ignore
func (a Amount) Format(state fmt.State, verb rune) {
	coef := a.Cents()

	// Trailing zeros
	tzeros := 0
	if verb == 'f' || verb == 'F' {
		if p, ok := state.Precision(); ok && p > centScale {
			tzeros = p - centScale
		}
	}

	// Integer and fractional digits
	intdigs, fracdigs := 0, 0
	switch verb {
	case 'd', 'D':
		intdigs = digits(coef)
	default:
		fracdigs = centScale
		intdigs = digits(coef / centsPerUnit)
	}

	// Decimal point
	dpoint := 0
	if fracdigs > 0 || tzeros > 0 {
		dpoint = 1
	}

	// Arithmetic sign
	rsign := 0
	if state.Flag('+') || state.Flag(' ') {
		rsign = 1
	}

	// Opening and closing quotes
	lquote, tquote := 0, 0
	if verb == 'q' || verb == 'Q' {
		lquote, tquote = 1, 1
	}

	// Calculating padding
	width := lquote + rsign + intdigs + dpoint + fracdigs + tzeros + tquote
	lspaces, lzeros, tspaces := 0, 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		case state.Flag('0'):
			lzeros = w - width
		default:
			lspaces = w - width
		}
		width = w
	}

	buf := make([]byte, width)
	pos := width - 1

	// Trailing spaces
	for i := 0; i < tspaces; i++ {
		buf[pos] = ' '
		pos--
	}

	// Closing quote
	if tquote > 0 {
		buf[pos] = '"'
		pos--
	}

	// Trailing zeros
	for i := 0; i < tzeros; i++ {
		buf[pos] = '0'
		pos--
	}

	// Fractional digits
	for i := 0; i < fracdigs; i++ {
		buf[pos] = byte(coef%10) + '0'
		pos--
		coef /= 10
	}

	// Decimal point
	if dpoint > 0 {
		buf[pos] = '.'
		pos--
	}

	// Integer digits
	for i := 0; i < intdigs; i++ {
		buf[pos] = byte(coef%10) + '0'
		pos--
		coef /= 10
	}

	// Leading zeros
	for i := 0; i < lzeros; i++ {
		buf[pos] = '0'
		pos--
	}

	// Arithmetic sign
	if rsign > 0 {
		if state.Flag('+') {
			buf[pos] = '+'
		} else {
			buf[pos] = ' '
		}
		pos--
	}

	// Opening quote
	if lquote > 0 {
		buf[pos] = '"'
		pos--
	}

	// Leading spaces
	for i := 0; i < lspaces; i++ {
		buf[pos] = ' '
		pos--
	}

	// Writing result
	//nolint:errcheck
	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V', 'f', 'F', 'd', 'D':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(cents.Amount="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}

// classifyParseError picks the sentinel for a string rejected by [decimal.Parse].
// Well-formed numbers of 10^17 or more in magnitude are reported by sign,
// the rest (too long, exponent out of range) are invalid.
func classifyParseError(s string) error {
	if !isNumeric(s) {
		return ErrInvalidAmount
	}
	// isNumeric guarantees that the only possible error is ErrRange,
	// in which case f is ±Inf or ±0.
	f, _ := strconv.ParseFloat(s, 64)
	if math.Abs(f) < float64(maxWhole+1) {
		return ErrInvalidAmount
	}
	if f < 0 {
		return ErrNegativeAmount
	}
	return ErrAmountOverflow
}

// isNumeric reports whether s matches the grammar accepted by [decimal.Parse]:
//
//	[sign] significand [('e' | 'E') [sign] digits]
func isNumeric(s string) bool {
	pos, width := 0, len(s)

	// Sign
	if pos < width && (s[pos] == '+' || s[pos] == '-') {
		pos++
	}

	// Significand
	hasCoef := false
	for pos < width && s[pos] >= '0' && s[pos] <= '9' {
		pos++
		hasCoef = true
	}
	if pos < width && s[pos] == '.' {
		pos++
		for pos < width && s[pos] >= '0' && s[pos] <= '9' {
			pos++
			hasCoef = true
		}
	}
	if !hasCoef {
		return false
	}

	// Exponent
	if pos < width && (s[pos] == 'e' || s[pos] == 'E') {
		pos++
		if pos < width && (s[pos] == '+' || s[pos] == '-') {
			pos++
		}
		hasExp := false
		for pos < width && s[pos] >= '0' && s[pos] <= '9' {
			pos++
			hasExp = true
		}
		if !hasExp {
			return false
		}
	}

	return pos == width
}

// digits returns the number of decimal digits in x.
// Zero has one digit.
func digits(x uint64) int {
	n := 1
	for x >= 10 {
		x /= 10
		n++
	}
	return n
}
