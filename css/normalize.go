package css

import (
	"regexp"
	"strconv"
	"strings"
)

// Parse adapters normalize values before the tree reaches the renderer, so
// that stylesheets produced by different compilers compare equal when they
// are structurally equal. The renderer itself never re-tokenizes values.

const numPat = `(\d*(?:\.\d*)?)`

var (
	longHexColorRe = regexp.MustCompile(`#[0-9a-fA-F]{6}\b`)
	commaRe        = regexp.MustCompile(`,\s*`)
	bareFloatRe    = regexp.MustCompile(`(^|[^\d])(\.\d+)`)
	pointZeroPxRe  = regexp.MustCompile(`(\d)\.0+px`)
	rgbaRe         = regexp.MustCompile(`rgba\(` + numPat + `,\s*` + numPat + `,\s*` + numPat + `,\s*` + numPat + `\)`)
	colonRe        = regexp.MustCompile(`:\s*`)
	slashRe        = regexp.MustCompile(`\s*/\s*`)
	spacesRe       = regexp.MustCompile(` +`)
	relationRe     = regexp.MustCompile(`\s*([+>])\s*`)
	unicodeEscRe   = regexp.MustCompile(`\\[A-Fa-f0-9]{4}\s*`)
)

// shortenHexColor collapses #rrggbb to #rgb when each channel repeats its
// digit (e.g. #223344 -> #234).
func shortenHexColor(s string) string {
	return longHexColorRe.ReplaceAllStringFunc(s, func(m string) string {
		if m[1] == m[2] && m[3] == m[4] && m[5] == m[6] {
			return "#" + string(m[1]) + string(m[3]) + string(m[5])
		}
		return m
	})
}

// decodeUnicodeEscapes replaces \XXXX escapes (and the whitespace that
// terminates them) with the corresponding rune.
func decodeUnicodeEscapes(s string) string {
	return unicodeEscRe.ReplaceAllStringFunc(s, func(m string) string {
		code, err := strconv.ParseUint(strings.TrimSpace(m[1:]), 16, 32)
		if err != nil {
			return m
		}
		return string(rune(code))
	})
}

// normalizeValue canonicalizes a declaration value: colors, comma and rgba
// spacing, leading zeroes on bare floats, redundant .0 pixel fractions,
// collapsed runs of spaces and decoded unicode escapes. Slash spacing is
// only normalized for the font shorthand where it separates size from
// line-height.
func normalizeValue(property, value string) string {
	value = shortenHexColor(value)
	value = commaRe.ReplaceAllString(value, ", ")
	value = bareFloatRe.ReplaceAllString(value, "${1}0${2}")
	value = pointZeroPxRe.ReplaceAllString(value, "${1}px")
	value = rgbaRe.ReplaceAllString(value, "rgba($1, $2, $3, $4)")
	if property == "font" {
		value = slashRe.ReplaceAllString(value, " / ")
	}
	value = spacesRe.ReplaceAllString(value, " ")
	value = decodeUnicodeEscapes(value)
	return strings.TrimSpace(value)
}

// normalizeSelector canonicalizes combinator spacing ("a>b" -> "a > b") and
// collapses internal whitespace.
func normalizeSelector(s string) string {
	s = relationRe.ReplaceAllString(s, " $1 ")
	s = spacesRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// normalizeConditionPrelude canonicalizes comma and colon spacing in
// conditional at-rule preludes (media query lists, supports conditions).
// The tokenizer does not surface whitespace after the colon in
// parenthesized features, so colon spacing is restored here.
func normalizeConditionPrelude(s string) string {
	s = commaRe.ReplaceAllString(s, ", ")
	s = colonRe.ReplaceAllString(s, ": ")
	s = spacesRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
