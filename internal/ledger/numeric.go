// internal/ledger/numeric.go
package ledger

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

var ErrNumericOverflow = errors.New("ledger integer out of int64 range")

// NumericPolicy decides what happens when a wire integer does not fit in int64.
type NumericPolicy string

const (
	NumericReject   NumericPolicy = "reject"
	NumericSaturate NumericPolicy = "saturate"
)

func ParseNumericPolicy(s string) (NumericPolicy, error) {
	switch NumericPolicy(s) {
	case NumericReject, NumericSaturate:
		return NumericPolicy(s), nil
	case "":
		return NumericReject, nil
	}
	return "", fmt.Errorf("unknown numeric policy %q", s)
}

// BigInt is an arbitrary precision integer as it crosses the ledger boundary.
// It decodes from JSON numbers or decimal strings and encodes as a decimal string.
type BigInt struct {
	v *big.Int
}

func NewBigInt(n int64) BigInt {
	return BigInt{v: big.NewInt(n)}
}

func ParseBigInt(s string) (BigInt, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return BigInt{}, fmt.Errorf("invalid integer %q", s)
	}
	return BigInt{v: v}, nil
}

func (b BigInt) big() *big.Int {
	if b.v == nil {
		return new(big.Int)
	}
	return b.v
}

func (b BigInt) String() string {
	return b.big().String()
}

func (b BigInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(b.String())), nil
}

func (b *BigInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		b.v = nil
		return nil
	}
	s := string(data)
	if len(data) >= 2 && data[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("invalid integer %s: %w", s, err)
		}
		s = unquoted
	}
	parsed, err := ParseBigInt(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Int64 narrows the value under the given policy.
func (b BigInt) Int64(policy NumericPolicy) (int64, error) {
	v := b.big()
	if v.IsInt64() {
		return v.Int64(), nil
	}
	if policy == NumericSaturate {
		if v.Sign() < 0 {
			return math.MinInt64, nil
		}
		return math.MaxInt64, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrNumericOverflow, v.String())
}

// decoder narrows wire values and keeps the first conversion error.
type decoder struct {
	policy NumericPolicy
	err    error
}

func (d *decoder) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *decoder) int(b BigInt) int64 {
	v, err := b.Int64(d.policy)
	if err != nil {
		d.fail(err)
	}
	return v
}

func (d *decoder) optInt(b *BigInt) *int64 {
	if b == nil {
		return nil
	}
	v := d.int(*b)
	return &v
}

func optBigInt(v *int64) *BigInt {
	if v == nil {
		return nil
	}
	b := NewBigInt(*v)
	return &b
}
