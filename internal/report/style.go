package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/tablediff/internal/locale"
)

// Style selects a builder chain.
type Style string

const (
	// StyleAligned is Base wrapped in Aligned. This is the default.
	StyleAligned Style = "aligned"
	// StyleRaw is Base alone; extra-item lines keep their own widths.
	StyleRaw Style = "raw"
	// StyleBox is Pretty.
	StyleBox Style = "box"
)

// Styles lists the valid styles in display order.
var Styles = []Style{StyleAligned, StyleRaw, StyleBox}

// ErrUnknownStyle is returned by ParseStyle for names not in Styles.
var ErrUnknownStyle = errors.New("unknown report style")

// ParseStyle resolves a style name. The empty string selects StyleAligned.
func ParseStyle(s string) (Style, error) {
	if s == "" {
		return StyleAligned, nil
	}
	for _, st := range Styles {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	names := make([]string, len(Styles))
	for i, st := range Styles {
		names[i] = string(st)
	}
	return "", fmt.Errorf("%w %q (valid: %s)", ErrUnknownStyle, s, strings.Join(names, ", "))
}

// New returns the builder chain for style, formatting extra items with ctx.
// Unknown styles fall back to StyleAligned.
func New[T any](style Style, ctx locale.Context) Builder[T] {
	switch style {
	case StyleRaw:
		return NewBase[T]().WithLocale(ctx)
	case StyleBox:
		return NewPretty[T](ctx)
	default:
		return NewAligned[T](NewBase[T]().WithLocale(ctx))
	}
}
