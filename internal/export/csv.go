// Package export renders register and cash-count lists as semicolon CSV and
// the monthly summary as a plain-text report. Output is write-only; nothing
// here parses it back.
package export

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/shopspring/decimal"
)

// BOM prefixes every CSV so spreadsheets pick UTF-8 and show accents right.
const BOM = "\uFEFF"

// Columna is one output column.
type Columna[T any] struct {
	Nombre string
	Valor  func(T) string
}

// Esquema is an ordered column layout for rows of type T.
type Esquema[T any] []Columna[T]

func (e Esquema[T]) Cabeceras() []string {
	out := make([]string, len(e))
	for i, c := range e {
		out[i] = c.Nombre
	}
	return out
}

// CSV writes the header and one line per row, ';' separated and '\n'
// terminated except for the last line. Fields holding ';', '"' or a line
// break are quoted with inner quotes doubled. encoding/csv also quotes a
// field that starts with a space and the literal `\.`.
func CSV[T any](esquema Esquema[T], filas []T) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(BOM)

	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.Write(esquema.Cabeceras()); err != nil {
		return nil, err
	}
	rec := make([]string, len(esquema))
	for _, f := range filas {
		for i, c := range esquema {
			rec[i] = c.Valor(f)
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Numero renders an amount with the locale decimal comma.
func Numero(d decimal.Decimal) string {
	return strings.ReplaceAll(d.String(), ".", ",")
}

func texto[T any](nombre string, fn func(T) string) Columna[T] {
	return Columna[T]{Nombre: nombre, Valor: fn}
}

func numero[T any](nombre string, fn func(T) decimal.Decimal) Columna[T] {
	return Columna[T]{Nombre: nombre, Valor: func(v T) string { return Numero(fn(v)) }}
}
