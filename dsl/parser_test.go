package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/labelkit/dsl"
)

const sampleDSL = `
# shipping label, 100x50mm
label Shipping {
  width: 100mm
  height: 50mm
  density: 8dpmm

  section address {
    font: 0
    size: 60mm 30mm
    origin: 0 0
    padding: 10, 10, 10, 10
    orientation: portrait
    border: all
    border-thickness: 3
    align: C
    font-size: 40
  }

  /* the barcode-side column */
  section "order id" { font: A; size: 320 80; origin: 480 0; orientation: landscape }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Shipping" {
		t.Fatalf("expected label name Shipping, got %s", doc.Name)
	}

	assigns := doc.Assignments()
	if len(assigns) != 3 {
		t.Fatalf("expected 3 label assignments, got %d", len(assigns))
	}
	if assigns[0].Key != "width" || assigns[0].Values[0].Text() != "100mm" {
		t.Fatalf("unexpected width assignment: %+v", assigns[0])
	}
	if assigns[2].Values[0].Number == nil || *assigns[2].Values[0].Number != "8dpmm" {
		t.Fatalf("density should lex as a number, got %+v", assigns[2].Values[0])
	}

	sections := doc.Sections()
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	addr := sections[0]
	if addr.Key != "address" {
		t.Fatalf("expected section address, got %s", addr.Key)
	}
	if len(addr.Assignments) != 9 {
		t.Fatalf("expected 9 section assignments, got %d", len(addr.Assignments))
	}
	padding := addr.Assignments[3]
	if padding.Key != "padding" || strings.Join(padding.Texts(), " ") != "10 10 10 10" {
		t.Fatalf("unexpected padding: %+v", padding.Texts())
	}
	size := addr.Assignments[1]
	if got := strings.Join(size.Texts(), " "); got != "60mm 30mm" {
		t.Fatalf("unexpected size values: %s", got)
	}
	if addr.Assignments[6].Key != "border-thickness" {
		t.Fatalf("expected hyphenated key, got %s", addr.Assignments[6].Key)
	}

	order := sections[1]
	if order.Key != "order id" {
		t.Fatalf("quoted section key not unquoted: %q", order.Key)
	}
	if len(order.Assignments) != 4 {
		t.Fatalf("expected 4 inline assignments, got %d", len(order.Assignments))
	}
	if order.Assignments[0].Values[0].Ident == nil || *order.Assignments[0].Values[0].Ident != "A" {
		t.Fatalf("font A should be an ident, got %+v", order.Assignments[0].Values[0])
	}
	if order.Pos.Line == 0 {
		t.Fatalf("section position not recorded")
	}
}

func TestParseNegativeNumber(t *testing.T) {
	doc, err := dsl.ParseString(`label L { section a { origin: -4 10 } }`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	got := doc.Sections()[0].Assignments[0].Texts()
	if got[0] != "-4" || got[1] != "10" {
		t.Fatalf("unexpected origin values: %v", got)
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		`label { }`,
		`label L { section { font: 0 } }`,
		`label L { width 100mm }`,
		`label L { section a { font: } }`,
	}
	for _, src := range bad {
		if _, err := dsl.ParseString(src); err == nil {
			t.Fatalf("expected parse error for %q", src)
		}
	}
}

func TestParseReader(t *testing.T) {
	doc, err := dsl.Parse("inline.label", strings.NewReader(`label "Quoted Name" { width: 2in }`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Quoted Name" {
		t.Fatalf("unexpected name %q", doc.Name)
	}
}
