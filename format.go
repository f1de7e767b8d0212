package finance

import (
	"strconv"
	"strings"
)

// Display renders c as "<ticker>: <name>".
func Display(c Company) string {
	return c.Ticker() + ": " + c.Name()
}

// Debug renders the five fields of c positionally, in the order
// (full_name, name, ticker, isin, extra_id). Present values are quoted and absent
// optional values print as nil:
//
//	(nil, "Inditex", "ITX", "ES0148396007", nil)
func Debug(c Company) string {
	var b strings.Builder
	b.WriteByte('(')
	writeOptional(&b, c.FullName)
	b.WriteString(", ")
	b.WriteString(strconv.Quote(c.Name()))
	b.WriteString(", ")
	b.WriteString(strconv.Quote(c.Ticker()))
	b.WriteString(", ")
	b.WriteString(strconv.Quote(c.ISIN()))
	b.WriteString(", ")
	writeOptional(&b, c.ExtraID)
	b.WriteByte(')')
	return b.String()
}

func writeOptional(b *strings.Builder, get func() (string, bool)) {
	v, ok := get()
	if !ok {
		b.WriteString("nil")
		return
	}
	b.WriteString(strconv.Quote(v))
}

// View attaches the rendering contracts to any Company, so that it can be passed
// straight to the fmt package: %v and %s print the Display form, %#v the Debug
// form.
type View struct {
	Company
}

// String implements fmt.Stringer.
func (v View) String() string { return Display(v.Company) }

// GoString implements fmt.GoStringer.
func (v View) GoString() string { return Debug(v.Company) }
