package labels

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Label is the data printed on one shelf/product label.
type Label struct {
	ProductName string
	Barcode     string
	Price       decimal.Decimal
	Branch      string
}

// ZPL renders the label as ZPL II text for a 2x1in thermal label: product
// name, a Code 128 barcode, and the price. The output is plain text the
// dashboard offers as a file download; actual printing happens elsewhere.
func (l Label) ZPL() string {
	var b strings.Builder
	b.WriteString("^XA\n")
	b.WriteString("^CF0,30\n")
	fmt.Fprintf(&b, "^FO20,20^FD%s^FS\n", sanitize(l.ProductName))
	if l.Branch != "" {
		b.WriteString("^CF0,20\n")
		fmt.Fprintf(&b, "^FO20,55^FD%s^FS\n", sanitize(l.Branch))
	}
	fmt.Fprintf(&b, "^FO20,85^BY2^BCN,60,Y,N,N^FD%s^FS\n", sanitize(l.Barcode))
	b.WriteString("^CF0,35\n")
	fmt.Fprintf(&b, "^FO20,160^FD%s^FS\n", l.Price.StringFixed(2))
	b.WriteString("^XZ\n")
	return b.String()
}

// Batch renders one ZPL document per label, concatenated the way label
// printers consume them.
func Batch(ls []Label) string {
	var b strings.Builder
	for _, l := range ls {
		b.WriteString(l.ZPL())
	}
	return b.String()
}

// sanitize strips the characters ZPL treats as control codes from free text.
func sanitize(s string) string {
	return strings.NewReplacer("^", "", "~", "", "\n", " ", "\r", " ").Replace(s)
}
