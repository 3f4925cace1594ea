package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)(?:dpmm|dpi|dots|mm|cm|in)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:;,]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document is the root AST node of a label template file.
type Document struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Name    Name           `parser:"Newline* 'label' @(Ident | String)"`
	Entries []*Entry       `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}' Newline*"`
}

// Entry is either a nested section or a label-level assignment.
type Entry struct {
	Section    *Section    `parser:"  @@"`
	Assignment *Assignment `parser:"| @@"`
}

// Section declares one keyed region of the label.
type Section struct {
	Pos         lexer.Position `parser:"" json:"-"`
	Key         Name           `parser:"'section' @(Ident | String)"`
	Assignments []*Assignment  `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Assignment uses colon syntax (key: value [value...]).
type Assignment struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Key    string         `parser:"@Ident ':'"`
	Values []*Value       `parser:"@@ ( ','? @@ )*"`
}

// Value is a single scalar token on the right-hand side of an assignment.
type Value struct {
	Pos    lexer.Position `parser:"" json:"-"`
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Ident  *string        `parser:"| @Ident"`
}

// Text returns the value as plain text regardless of its token kind.
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// Texts returns the text of every value of an assignment.
func (a *Assignment) Texts() []string {
	out := make([]string, 0, len(a.Values))
	for _, v := range a.Values {
		out = append(out, v.Text())
	}
	return out
}

// Sections returns the section declarations in source order.
func (d *Document) Sections() []*Section {
	var out []*Section
	for _, e := range d.Entries {
		if e.Section != nil {
			out = append(out, e.Section)
		}
	}
	return out
}

// Assignments returns the label-level assignments in source order.
func (d *Document) Assignments() []*Assignment {
	var out []*Assignment
	for _, e := range d.Entries {
		if e.Assignment != nil {
			out = append(out, e.Assignment)
		}
	}
	return out
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Name is an identifier or a quoted string used as a label name or section key.
type Name string

// Capture implements participle.Capture.
func (n *Name) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("name capture requires value")
	}
	raw := values[0]
	if strings.HasPrefix(raw, `"`) {
		val, err := strconv.Unquote(raw)
		if err != nil {
			return err
		}
		raw = val
	}
	*n = Name(raw)
	return nil
}

// Parse parses a label template from an io.Reader; filename is used in error positions.
func Parse(filename string, r io.Reader) (*Document, error) {
	return documentParser.Parse(filename, r)
}

// ParseString parses a label template from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}
