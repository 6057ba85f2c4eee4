package console

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pixil98/go-loadout/internal/loadout"
)

const DefaultWidth = 80

// templateFuncs provides sprig plus the console's own formatting helpers.
var templateFuncs = func() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["requirement"] = DescribeRequirement
	fm["wordwrap"] = func(width int, s string) string { return wordwrap.String(s, width) }
	return fm
}()

// ExpandTemplate expands a template string using the provided data.
// The data can be any struct - templates access fields via {{ .FieldName }}.
func ExpandTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// Wrap word-wraps text to DefaultWidth, preserving ANSI escape sequences.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}

// WrapIndented wraps text so that, once indented by n spaces, it still fits
// DefaultWidth.
func WrapIndented(text string, n int) string {
	return indent.String(wordwrap.String(text, DefaultWidth-n), uint(n))
}

// DescribeRequirement renders a requirement with grouped quantities,
// e.g. "Coins (995) x1,000 @3".
func DescribeRequirement(r loadout.Requirement) string {
	desc := r.DescribeWith(comma)
	if r.Bound() {
		desc += fmt.Sprintf(" @%d", r.Slot)
	}
	return desc
}

func comma(n int) string {
	return humanize.Comma(int64(n))
}
