package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+|\.\d+)(?:px)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:;,]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// File is the root AST node of a preset file.
type File struct {
	Presets []*Preset `parser:"Newline* ( @@ Newline* )*"`
}

// Preset declares a named card layout, optionally derived from another one.
type Preset struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Name       string         `parser:"'preset' @Ident"`
	Extends    string         `parser:"( 'extends' @Ident )?"`
	Statements []*Statement   `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement is a single `key [:] value...` line inside a preset.
type Statement struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Key  string         `parser:"@Ident ':'?"`
	Args []*Value       `parser:"( @@ ','? )*"`
}

// Value is one statement argument.
type Value struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Number *string        `parser:"  @Number"`
	Color  *string        `parser:"| @Color"`
	String *StringLiteral `parser:"| @String"`
	Ident  *string        `parser:"| @Ident"`
}

// Text returns the argument as written, without quotes or a px suffix.
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.Number != nil:
		n := *v.Number
		if len(n) > 2 && n[len(n)-2:] == "px" {
			n = n[:len(n)-2]
		}
		return n
	case v.Color != nil:
		return *v.Color
	case v.String != nil:
		return string(*v.String)
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// Float parses a numeric argument.
func (v *Value) Float() (float64, error) {
	if v == nil || v.Number == nil {
		return 0, fmt.Errorf("%s: 需要数值，得到 %q", v.position(), v.Text())
	}
	f, err := strconv.ParseFloat(v.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: 无效数值 %q: %w", v.position(), v.Text(), err)
	}
	return f, nil
}

// Int parses an integral numeric argument.
func (v *Value) Int() (int, error) {
	f, err := v.Float()
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("%s: 需要整数，得到 %q", v.position(), v.Text())
	}
	return int(f), nil
}

func (v *Value) position() string {
	if v == nil {
		return "?"
	}
	return v.Pos.String()
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

// Parse parses preset declarations from an io.Reader.
func Parse(r io.Reader) (*File, error) {
	return fileParser.Parse("", r)
}

// ParseString parses preset declarations from a string.
func ParseString(input string) (*File, error) {
	return fileParser.ParseString("", input)
}
