// Package locale carries the formatting context used when actual values are
// turned into strings for comparison and rendering.
//
// A Context is an immutable value passed explicitly to the calls that need
// it. Nothing here reads or mutates process-wide state, so two goroutines
// diffing under different locales never interfere.
package locale

import (
	"fmt"
	"reflect"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Context is a formatting context. The zero value is Invariant: numbers are
// printed the way fmt prints them, with no grouping and a '.' decimal point.
type Context struct {
	tag     language.Tag
	printer *message.Printer
}

// Invariant formats values without any locale conventions.
var Invariant = Context{}

// New returns a context for tag. language.Und yields Invariant.
//
// Neutral tags ("de") are widened to their most likely specific region
// ("de-DE") so number conventions are always defined.
func New(tag language.Tag) Context {
	if tag == language.Und {
		return Invariant
	}
	if r, conf := tag.Region(); conf != language.Exact && r.IsCountry() {
		if specific, err := language.Compose(tag, r); err == nil {
			tag = specific
		}
	}
	return Context{tag: tag, printer: message.NewPrinter(tag)}
}

// Parse builds a context from a BCP 47 string. An empty string yields
// Invariant.
func Parse(s string) (Context, error) {
	if s == "" {
		return Invariant, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return Invariant, fmt.Errorf("invalid locale %q: %w", s, err)
	}
	return New(tag), nil
}

// Tag returns the context's language tag (language.Und for Invariant).
func (c Context) Tag() language.Tag { return c.tag }

// IsInvariant reports whether c applies no locale conventions.
func (c Context) IsInvariant() bool { return c.printer == nil }

// String returns the BCP 47 form of the tag, or "invariant".
func (c Context) String() string {
	if c.IsInvariant() {
		return "invariant"
	}
	return c.tag.String()
}

// Format renders v as a cell string.
//
// nil, nil pointers and nil interfaces render as "". Pointers are followed.
// Numbers go through the locale printer unless c is Invariant; everything
// else uses fmt's %v, so fmt.Stringer implementations are honoured.
func (c Context) Format(v any) string {
	if v == nil {
		return ""
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return ""
		}
		if _, ok := rv.Interface().(fmt.Stringer); ok {
			break
		}
		rv = rv.Elem()
	}
	v = rv.Interface()

	if c.printer == nil {
		return fmt.Sprint(v)
	}
	if _, ok := v.(fmt.Stringer); ok {
		return fmt.Sprint(v)
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return c.printer.Sprintf("%d", v)
	case reflect.Float32, reflect.Float64:
		return c.printer.Sprint(v)
	default:
		return fmt.Sprint(v)
	}
}
