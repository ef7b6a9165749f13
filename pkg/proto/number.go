package proto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Number is a JSON number kept as its literal text, so integral and
// fractional values round-trip without committing to a Go numeric width.
type Number string

var errEmptyNumber = errors.New("empty number")

// NumberFromInt returns the Number for i.
func NumberFromInt(i int64) Number {
	return Number(strconv.FormatInt(i, 10))
}

// NumberFromFloat returns the shortest Number that parses back to f.
func NumberFromFloat(f float64) Number {
	return Number(strconv.FormatFloat(f, 'g', -1, 64))
}

func (n Number) String() string { return string(n) }

// Float64 returns the number as a float64.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// Int64 returns the number as an int64. Fractional numbers are an error.
func (n Number) Int64() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n == "" {
		return nil, errEmptyNumber
	}
	if !isNumberLiteral([]byte(n)) {
		return nil, fmt.Errorf("invalid number literal %q", string(n))
	}
	return []byte(n), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	if !isNumberLiteral(data) {
		return fmt.Errorf("expected a number, got %s", data)
	}
	*n = Number(data)
	return nil
}

// isNumberLiteral reports whether data is a single JSON number token.
func isNumberLiteral(data []byte) bool {
	if len(data) == 0 || (data[0] != '-' && (data[0] < '0' || data[0] > '9')) {
		return false
	}
	return json.Valid(data)
}
