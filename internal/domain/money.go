package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Money is an amount in the currency's minor units.
type Money struct {
	Amount   int64
	Currency currency.Unit
}

func Zero(cur currency.Unit) Money {
	return Money{Currency: cur}
}

// FromDecimal converts a major-unit amount such as 100.00 into minor units.
// Amounts with more fractional digits than the currency allows are rejected.
func FromDecimal(amount decimal.Decimal, cur currency.Unit) (Money, error) {
	scale := minorScale(cur)

	minor := amount.Shift(scale)
	if !minor.IsInteger() {
		return Money{}, fmt.Errorf("amount %s has more than %d fractional digits for %s", amount, scale, cur)
	}

	if minor.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || minor.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return Money{}, fmt.Errorf("amount %s: %w", amount, ErrMoneyOverflow)
	}

	return Money{Amount: minor.IntPart(), Currency: cur}, nil
}

// ParseMoney parses a major-unit string amount and an ISO currency code.
func ParseMoney(amount, code string) (Money, error) {
	cur, err := currency.ParseISO(code)
	if err != nil {
		return Money{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("decimal.NewFromString: %w", err)
	}

	return FromDecimal(d, cur)
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Amount, -minorScale(m.Currency))
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%s + %s: %w", m.Currency, other.Currency, ErrCurrencyMismatch)
	}

	sum := m.Amount + other.Amount
	if (other.Amount > 0 && sum < m.Amount) || (other.Amount < 0 && sum > m.Amount) {
		return Money{}, fmt.Errorf("%d + %d: %w", m.Amount, other.Amount, ErrMoneyOverflow)
	}

	return Money{Amount: sum, Currency: m.Currency}, nil
}

func (m Money) Mul(qty int64) (Money, error) {
	if m.Amount == 0 || qty == 0 {
		return Money{Currency: m.Currency}, nil
	}

	product := m.Amount * qty
	if product/qty != m.Amount || (m.Amount == -1 && qty == math.MinInt64) || (qty == -1 && m.Amount == math.MinInt64) {
		return Money{}, fmt.Errorf("%d * %d: %w", m.Amount, qty, ErrMoneyOverflow)
	}

	return Money{Amount: product, Currency: m.Currency}, nil
}

func (m Money) IsZero() bool {
	return m.Amount == 0
}

func (m Money) IsNegative() bool {
	return m.Amount < 0
}

func (m Money) IsPositive() bool {
	return m.Amount > 0
}

// Major formats the amount in major units with the currency's fixed precision, e.g. 250.00.
func (m Money) Major() string {
	return m.Decimal().StringFixed(minorScale(m.Currency))
}

func (m Money) String() string {
	return m.Currency.String() + " " + m.Major()
}

// minorScale is the number of minor-unit digits of cur, 2 for PHP or USD, 0 for JPY.
func minorScale(cur currency.Unit) int32 {
	scale, _ := currency.Standard.Rounding(cur)
	return int32(scale)
}
