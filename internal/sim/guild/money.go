package guild

import "fmt"

// Money is an amount in the smallest currency unit (copper). Amounts are
// never negative; construction and arithmetic enforce this.
type Money int64

const CopperPerGold = 100

// NewMoney validates a raw minor-unit amount.
func NewMoney(v int64) (Money, error) {
	if v < 0 {
		return 0, fmt.Errorf("money: negative amount %d", v)
	}
	return Money(v), nil
}

// FromGold converts whole gold to copper.
func FromGold(g int64) (Money, error) {
	return NewMoney(g * CopperPerGold)
}

// Add never overflows in practice (amounts are bounded by the economy).
func (m Money) Add(o Money) Money { return m + o }

// Sub panics if the result would be negative: callers must check funds
// before settling. A negative amount is an engine defect, not a rejection.
func (m Money) Sub(o Money) Money {
	if o > m {
		panic(fmt.Sprintf("money: %d - %d underflow", m, o))
	}
	return m - o
}

// Bp applies integer basis points, flooring toward zero so that splitting an
// amount can never create value.
func (m Money) Bp(bp int64) Money {
	if bp < 0 {
		panic(fmt.Sprintf("money: negative basis points %d", bp))
	}
	return Money(int64(m) * bp / 10000)
}

func (m Money) String() string {
	return fmt.Sprintf("%dc", int64(m))
}
