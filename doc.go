/*
Package cents implements non-negative monetary amounts with exactly two
digits after the decimal point.
An [Amount] is stored as a whole number of cents, so sums and products
never suffer from binary floating-point rounding errors.
Decimal parsing and conversions rely on the [decimal] package.

# Features

  - Exact fixed-point arithmetic on a uint64 count of cents
  - Parsing of decimal strings without an intermediate float
  - In-place accumulation and scaling by a whole count
  - Comparable values that can be used as map keys
  - Checked arithmetic that reports overflow instead of wrapping around

# Representation

An Amount holds a single unsigned integer, the number of hundredths of a unit.
The represented value is cents / 100.
Two amounts are equal if and only if their cent counts are equal, therefore
"1.5" and "1.50" parse to the same Amount and the same map key.
The zero value of Amount is 0.00.

# Supported Ranges

Amounts range from 0.00 to 99999999999999999.99, that is from 0 to [MaxCents]
cents.
The upper bound matches the coefficient limit of [decimal.Decimal], so every
amount can be converted to a decimal and back without loss.
Negative amounts are not representable.

# Operations

Amounts can be added, subtracted and multiplied by a whole count, either
returning a new value ([Amount.Add], [Amount.Sub], [Amount.Mul]) or modifying
the receiver in place ([Amount.Accumulate], [Amount.Scale]).
Division is not supported.

# Rounding

Strings, decimals and floats with more than two fractional digits are rounded
to cents using rounding half to even (banker's rounding).
Arithmetic never rounds.

# Formatting

[Amount.String] always renders two fractional digits, e.g. "44.01".
[Amount.UnpaddedString] reproduces the legacy format, which does not pad
the cents, e.g. "44.1" for the same amount.

# Errors

Constructors and arithmetic operations return errors that wrap
[ErrInvalidAmount], [ErrNegativeAmount] or [ErrAmountOverflow].
In-place operations leave the receiver unchanged when they fail.
Only the Must* helpers panic.
*/
package cents
