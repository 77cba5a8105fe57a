package models

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money serializes a decimal amount as a fixed-point string with two
// decimal places ("1000.00"), never as a floating-point number.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.StringFixed(2))), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	d, err := decimal.NewFromString(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	m.Decimal = d
	return nil
}
