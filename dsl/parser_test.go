package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/newscard/dsl"
)

const sampleDSL = `
/* house styles */
preset evening extends classic {
  background: #1E1E1E
  ink #EEE; rule #444444
  padding 44px
  spacing 16, 10
  line-spacing 1.15
  font headline bold 54
  bind caption1 "${author.name} · ${published}"
}

preset minimal {
}
`

func TestParsePresets(t *testing.T) {
	file, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(file.Presets) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(file.Presets))
	}

	p := file.Presets[0]
	if p.Name != "evening" || p.Extends != "classic" {
		t.Fatalf("unexpected header %s extends %s", p.Name, p.Extends)
	}
	keys := make([]string, 0, len(p.Statements))
	for _, st := range p.Statements {
		keys = append(keys, st.Key)
	}
	want := "background,ink,rule,padding,spacing,line-spacing,font,bind"
	if got := strings.Join(keys, ","); got != want {
		t.Fatalf("keys = %s, want %s", got, want)
	}

	bg := p.Statements[0]
	if len(bg.Args) != 1 || bg.Args[0].Color == nil || bg.Args[0].Text() != "#1E1E1E" {
		t.Fatalf("background should parse as a color, got %+v", bg.Args)
	}
	if ink := p.Statements[1].Args[0]; ink.Text() != "#EEE" {
		t.Fatalf("short color = %q", ink.Text())
	}

	pad, err := p.Statements[3].Args[0].Int()
	if err != nil || pad != 44 {
		t.Fatalf("padding = %d, %v", pad, err)
	}
	sp := p.Statements[4].Args
	if len(sp) != 2 {
		t.Fatalf("spacing args = %d", len(sp))
	}
	ls, err := p.Statements[5].Args[0].Float()
	if err != nil || ls != 1.15 {
		t.Fatalf("line-spacing = %v, %v", ls, err)
	}

	font := p.Statements[6].Args
	if len(font) != 3 || font[0].Ident == nil || font[1].Text() != "bold" {
		t.Fatalf("unexpected font args %+v", font)
	}
	bind := p.Statements[7].Args
	if len(bind) != 2 || bind[1].String == nil {
		t.Fatalf("bind template should be a string literal")
	}
	if got := bind[1].Text(); got != "${author.name} · ${published}" {
		t.Fatalf("template = %q", got)
	}

	if m := file.Presets[1]; m.Name != "minimal" || m.Extends != "" || len(m.Statements) != 0 {
		t.Fatalf("unexpected empty preset %+v", m)
	}
}

func TestValueConversions(t *testing.T) {
	file, err := dsl.ParseString(`preset x { a 12 3.5 -2 word "text" }`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	args := file.Presets[0].Statements[0].Args
	if len(args) != 5 {
		t.Fatalf("expected 5 args, got %d", len(args))
	}
	if n, err := args[0].Int(); err != nil || n != 12 {
		t.Fatalf("Int = %d, %v", n, err)
	}
	if _, err := args[1].Int(); err == nil {
		t.Fatalf("3.5 is not an integer")
	}
	if n, err := args[2].Int(); err != nil || n != -2 {
		t.Fatalf("negative Int = %d, %v", n, err)
	}
	if _, err := args[3].Float(); err == nil {
		t.Fatalf("identifier is not a number")
	}
	if args[4].Text() != "text" {
		t.Fatalf("string Text = %q", args[4].Text())
	}
}

func TestParseErrorsCarryPosition(t *testing.T) {
	_, err := dsl.ParseString("preset ok {\n  padding 10\n}\npreset {\n}\n")
	if err == nil {
		t.Fatalf("expected syntax error")
	}
	if !strings.Contains(err.Error(), "4:") {
		t.Fatalf("error should point at line 4: %v", err)
	}
}
