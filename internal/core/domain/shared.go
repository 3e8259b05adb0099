package domain

import "math"

type Amount int

func NewAmountFromCents(cents int) Amount {
	return Amount(cents)
}

func NewAmountFromValue(value int) Amount {
	return Amount(value * 100)
}

// NewAmountFromDecimal converts a decimal price such as 179.9 into cents.
func NewAmountFromDecimal(value float64) Amount {
	return Amount(math.Round(value * 100))
}

func (a Amount) Add(b Amount) Amount {
	return a + b
}

func (a Amount) Multiply(b int) Amount {
	return a * Amount(b)
}

func (a Amount) ToValue() int {
	return int(a) / 100
}

func (a Amount) ToDecimal() float64 {
	return float64(a) / 100
}

type Event interface {
	GetName() string
	GetEntityName() string
}
