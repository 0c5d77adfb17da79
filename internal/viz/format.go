package viz

import (
	"encoding/json"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"labor-dashboard/internal/model"
)

const (
	// NoValue is the text of a cell whose field is absent or null.
	NoValue = "—"
	textYes = "Sí"
	textNo  = "No"
)

var displayLocale = language.MustParse("es-CL")

// cellFormatter renders cells for one projection. message.Printer is not
// safe for concurrent use, so each projection owns one.
type cellFormatter struct {
	p *message.Printer
}

func newCellFormatter() *cellFormatter {
	return &cellFormatter{p: message.NewPrinter(displayLocale)}
}

func (f *cellFormatter) number(v float64) string {
	return f.p.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

func boolText(b bool) string {
	if b {
		return textYes
	}
	return textNo
}

func missingCell() model.Cell {
	return model.Cell{Text: NoValue, Missing: true}
}

// cell renders field of r according to spec.Kind.
func (f *cellFormatter) cell(r model.Record, spec model.FieldSpec) model.Cell {
	raw, ok := r[spec.Field]
	if !ok || raw == nil {
		return missingCell()
	}
	switch spec.Kind {
	case model.KindNumeric:
		v, ok := LookupNumber(r, spec.Field)
		if !ok {
			return missingCell()
		}
		return model.Cell{Value: v, Text: f.number(v)}
	case model.KindBoolean:
		if b, ok := Boolean(r, spec.Field); ok {
			return model.Cell{Value: b, Text: boolText(b)}
		}
		return model.Cell{Value: raw, Text: Category(r, spec.Field, "")}
	case model.KindCategorical:
		return model.Cell{Value: raw, Text: Category(r, spec.Field, "")}
	}

	switch v := raw.(type) {
	case bool:
		return model.Cell{Value: v, Text: boolText(v)}
	case string:
		return model.Cell{Value: v, Text: v}
	case json.Number, float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		if n, ok := LookupNumber(r, spec.Field); ok {
			return model.Cell{Value: n, Text: f.number(n)}
		}
		return missingCell()
	}
	return model.Cell{Value: raw, Text: Category(r, spec.Field, "")}
}
