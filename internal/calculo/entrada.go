// Package calculo holds the arithmetic of a cash-register reconciliation:
// denomination sums, register totals, book balance, discrepancy alerts and
// the physical count check. Every function is pure.
package calculo

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Entrada is an amount or count exactly as typed in a form field.
// It unmarshals from a JSON string, number or null.
type Entrada string

func (e *Entrada) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*e = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*e = Entrada(str)
		return nil
	}
	*e = Entrada(s)
	return nil
}

// Entero parses the leading integer of the input.
func (e Entrada) Entero() int64 { return ParseEntero(string(e)) }

// Monto returns the input as a whole currency amount.
func (e Entrada) Monto() decimal.Decimal { return decimal.NewFromInt(e.Entero()) }

// ParseEntero reads an optional sign followed by digits, skipping leading
// blanks, and stops at the first non-digit. Empty or unparsable input is 0,
// so "12.7" is 12 and "abc" is 0.
func ParseEntero(s string) int64 {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
