package model

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// Amount wraps an unsigned integer balance (u128 in the design). It marshals
// as a plain decimal string, matching the "amounts are unsigned integers"
// rule at the command surface — hex is reserved for addresses and raw
// transaction bytes.
type Amount struct {
	v *big.Int
}

// ZeroAmount is the additive identity.
func ZeroAmount() Amount { return Amount{v: new(big.Int)} }

// NewAmount builds an Amount from a non-negative int64, for tests and literals.
func NewAmount(n int64) Amount {
	if n < 0 {
		panic("model: NewAmount requires a non-negative value")
	}
	return Amount{v: big.NewInt(n)}
}

// AmountFromBigInt wraps an existing *big.Int, rejecting negative values.
func AmountFromBigInt(n *big.Int) (Amount, error) {
	if n == nil {
		return ZeroAmount(), nil
	}
	if n.Sign() < 0 {
		return Amount{}, fmt.Errorf("amount must be non-negative, got %s", n.String())
	}
	return Amount{v: new(big.Int).Set(n)}, nil
}

func (a Amount) Int() *big.Int {
	if a.v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(a.v)
}

func (a Amount) IsZero() bool { return a.v == nil || a.v.Sign() == 0 }

func (a Amount) Sign() int {
	if a.v == nil {
		return 0
	}
	return a.v.Sign()
}

func (a Amount) Cmp(b Amount) int { return a.Int().Cmp(b.Int()) }

func (a Amount) Add(b Amount) Amount {
	return Amount{v: new(big.Int).Add(a.Int(), b.Int())}
}

// Sub returns a-b. Callers must check a.Cmp(b) >= 0 first; the ledger never
// allows a balance to go negative, so this is only ever called with that
// precondition already verified.
func (a Amount) Sub(b Amount) Amount {
	return Amount{v: new(big.Int).Sub(a.Int(), b.Int())}
}

func (a Amount) String() string { return a.Int().String() }

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return fmt.Errorf("invalid amount: %q", s)
	}
	parsed, err := AmountFromBigInt(n)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
