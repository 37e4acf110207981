package interp

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lavendeux/lavendish/internal/ast"
	"github.com/lavendeux/lavendish/internal/lexer"
	"github.com/lavendeux/lavendish/internal/value"
)

// evalLiteral materializes a scalar literal token into a Value. The
// lexer does the scanning; this is the inverse of its raw-text shapes
// (spec.md §4.2/§6).
func evalLiteral(n *ast.Literal) (value.Value, error) {
	switch n.Kind {
	case "int":
		return parseIntLiteral(n.Raw)
	case "float":
		return parseFloatLiteral(n.Raw)
	case "fixed":
		return parseFixedLiteral(n.Raw)
	case "currency":
		return parseCurrencyLiteral(n.Raw)
	case "string":
		return value.String{Val: n.Raw}, nil
	case "regex":
		return parseRegexLiteral(n.Raw)
	case "bool":
		return value.Bool{Val: n.Raw == "true"}, nil
	case "nil":
		return value.NilValue, nil
	case "const":
		return parseConstLiteral(n.Raw)
	default:
		return nil, &SyntaxError{Message: "unknown literal kind " + n.Kind, Pos: n.Pos()}
	}
}

func parseConstLiteral(raw string) (value.Value, error) {
	switch raw {
	case "pi":
		return value.Float{Val: math.Pi}, nil
	case "e":
		return value.Float{Val: math.E}, nil
	case "tau":
		return value.Float{Val: 2 * math.Pi}, nil
	default:
		return nil, &value.ValueError{Message: "unknown constant: " + raw}
	}
}

func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r == ',' {
			return -1
		}
		return r
	}, s)
}

type widthSpec struct {
	w        value.Width
	unsigned bool
}

var intWidthSuffixes = map[string]widthSpec{
	"u8": {value.W8, true}, "u16": {value.W16, true}, "u32": {value.W32, true}, "u64": {value.W64, true},
	"i8": {value.W8, false}, "i16": {value.W16, false}, "i32": {value.W32, false}, "i64": {value.W64, false},
}

// parseIntLiteral inverts the lexer's hex/binary/octal/decimal integer
// scanning, including underscore/comma digit separators and the
// optional trailing width suffix (default i64 signed when absent).
func parseIntLiteral(raw string) (value.Value, error) {
	text := raw
	width := value.W64
	signed := true
	for suf, spec := range intWidthSuffixes {
		if strings.HasSuffix(text, suf) {
			text = strings.TrimSuffix(text, suf)
			width, signed = spec.w, !spec.unsigned
			break
		}
	}
	text = stripSeparators(text)

	base := 10
	switch {
	case strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X"):
		base, text = 16, text[2:]
	case strings.HasPrefix(text, "0b") || strings.HasPrefix(text, "0B"):
		base, text = 2, text[2:]
	case strings.HasPrefix(text, "0o") || strings.HasPrefix(text, "0O"):
		base, text = 8, text[2:]
	}

	bits, err := strconv.ParseUint(text, base, 64)
	if err != nil {
		return nil, &value.OverflowError{Message: "integer literal out of range: " + raw}
	}
	i := value.Int{Val: int64(bits), Width: width, Signed: signed}
	return i.Wrap(), nil
}

func parseFloatLiteral(raw string) (value.Value, error) {
	f, err := strconv.ParseFloat(stripSeparators(raw), 64)
	if err != nil {
		return nil, &value.ValueError{Message: "malformed float literal: " + raw}
	}
	return value.Float{Val: f}, nil
}

// parseFixedLiteral strips the trailing D/F suffix the lexer leaves on
// a Fixed token's raw text.
func parseFixedLiteral(raw string) (value.Value, error) {
	if len(raw) == 0 {
		return nil, &value.ValueError{Message: "empty fixed literal"}
	}
	body := stripSeparators(raw[:len(raw)-1])
	d, err := decimal.NewFromString(body)
	if err != nil {
		return nil, &value.ValueError{Message: "malformed fixed literal: " + raw}
	}
	return value.Fixed{Val: d}, nil
}

// parseCurrencyLiteral inverts the lexer's three Currency raw-text
// shapes: a glyph prefix (`$10.00`), a trailing glyph (`10.00$`), or a
// trailing three-letter code (`10.00USD`).
func parseCurrencyLiteral(raw string) (value.Value, error) {
	runes := []rune(raw)
	if len(runes) == 0 {
		return nil, &value.ValueError{Message: "empty currency literal"}
	}
	if tag, ok := lexer.CurrencyTag(runes[0]); ok {
		return currencyFromParts(stripSeparators(string(runes[1:])), tag, raw)
	}
	if len(raw) >= 3 && lexer.IsCurrencyCode(raw[len(raw)-3:]) {
		code := raw[len(raw)-3:]
		return currencyFromParts(stripSeparators(raw[:len(raw)-3]), code, raw)
	}
	if tag, ok := lexer.CurrencyTag(runes[len(runes)-1]); ok {
		return currencyFromParts(stripSeparators(string(runes[:len(runes)-1])), tag, raw)
	}
	return nil, &value.ValueError{Message: "malformed currency literal: " + raw}
}

func currencyFromParts(numeric, tag, raw string) (value.Value, error) {
	d, err := decimal.NewFromString(numeric)
	if err != nil {
		return nil, &value.ValueError{Message: "malformed currency literal: " + raw}
	}
	return value.Currency{Val: d, Tag: tag}, nil
}

// parseRegexLiteral turns a `/body/flags` token into a String carrying
// a Go-regexp-compatible pattern: there is no Regex Value variant in
// the data model, so `matches` just regexp.Compile's the String
// directly. Flags are folded in as an inline group per Go's
// (?flags)body syntax.
func parseRegexLiteral(raw string) (value.Value, error) {
	parts := strings.SplitN(raw, "\x00", 2)
	body := parts[0]
	if len(parts) < 2 || parts[1] == "" {
		return value.String{Val: body}, nil
	}
	return value.String{Val: "(?" + parts[1] + ")" + body}, nil
}
