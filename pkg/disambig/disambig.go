// Package disambig validates disambiguation symbol lists such as
// lang/phones/disambig.txt.
//
// A disambiguation symbol is "#" followed by a non-empty name. The name may
// not be "-1" (reserved for the epsilon backoff symbol), may not be blank, and
// unless numeric names are allowed may not consist only of digits.
package disambig

import (
	"errors"
	"strings"
	"unicode"

	"github.com/chriscow/kutils/pkg/table"
)

var (
	ErrMissingHashPrefix       = errors.New("disambiguation symbol must start with '#'")
	ErrBareHash                = errors.New("disambiguation symbol has nothing after '#'")
	ErrReservedSymbol          = errors.New("disambiguation symbol #-1 is reserved")
	ErrWhitespaceOnlySymbol    = errors.New("disambiguation symbol name is whitespace only")
	ErrNumericSymbolDisallowed = errors.New("numeric disambiguation symbol not allowed")
)

type rule struct {
	fails func(name string, allowNumeric bool) bool
	err   error
}

// rules run in order against the text after '#'; the first that fails wins.
var rules = []rule{
	{func(name string, _ bool) bool { return name == "" }, ErrBareHash},
	{func(name string, _ bool) bool { return name == "-1" }, ErrReservedSymbol},
	{func(name string, _ bool) bool { return strings.TrimFunc(name, unicode.IsSpace) == "" }, ErrWhitespaceOnlySymbol},
	{func(name string, allowNumeric bool) bool { return !allowNumeric && allDigits(name) }, ErrNumericSymbolDisallowed},
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Classify checks a single symbol and returns nil or exactly one of the
// Err* values of this package.
func Classify(symbol string, allowNumeric bool) error {
	name, ok := strings.CutPrefix(symbol, "#")
	if !ok {
		return ErrMissingHashPrefix
	}
	for _, r := range rules {
		if r.fails(name, allowNumeric) {
			return r.err
		}
	}
	return nil
}

// Validate checks the first field of every row and stops at the first
// invalid symbol. An empty row counts as a symbol without the '#' prefix.
func Validate(rows table.Table, allowNumeric bool) error {
	for _, r := range rows.Rows {
		sym := r.Key()
		if err := Classify(sym, allowNumeric); err != nil {
			return &table.Error{Kind: err, Source: rows.Source, Line: r.Line, Token: sym}
		}
	}
	return nil
}
