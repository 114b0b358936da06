package chef

import (
	"strconv"
	"strings"

	units "github.com/bcicen/go-units"
)

// Kind is the runtime dry/wet tag carried by a Value. Liquid
// ingredients print as Unicode scalars on output; dry (and
// unspecified, which is treated as dry) ingredients print as decimal
// numbers.
type Kind int

const (
	Dry Kind = iota
	Wet
)

func (k Kind) String() string {
	if k == Wet {
		return "wet"
	}
	return "dry"
}

// Value is an ingredient amount plus the kind tag it carried at the
// moment it was captured. Kind tags on values are snapshots: they do
// not track later changes to the kind of the ingredient variable that
// produced them (spec.md §3 invariant).
type Value struct {
	Amount int
	Kind   Kind
}

// Format renders a Value for a Serves/Refrigerate dish dump: wet
// values as the Unicode scalar equal to Amount mod 0x110000, dry
// values as an unpadded decimal integer (spec.md §4.4).
func (v Value) Format() string {
	if v.Kind == Wet {
		scalar := v.Amount % 0x110000
		if scalar < 0 {
			scalar += 0x110000
		}
		return string(rune(scalar))
	}
	return strconv.Itoa(v.Amount)
}

// MeasureType qualifies an ambiguous measure unit (cups, teaspoons,
// tablespoons) as dry.
type MeasureType int

const (
	NoMeasureType MeasureType = iota
	Heaped
	Level
)

// Unit is one of the nine measure units spec.md §3 recognises.
type Unit string

const (
	UnitGrams       Unit = "g"
	UnitKilograms   Unit = "kg"
	UnitPinches     Unit = "pinch"
	UnitMillilitres Unit = "ml"
	UnitLitres      Unit = "l"
	UnitDashes      Unit = "dash"
	UnitCups        Unit = "cup"
	UnitTeaspoons   Unit = "tsp"
	UnitTablespoons Unit = "tbsp"
)

// canonicalGoUnits maps each recognised Unit to the name go-units
// knows it by, so Measure.Kind can ask the library for the unit's
// physical Kind (Mass vs. Volume) instead of hand-switching on Unit.
// go-units has no notion of "pinch" or "dash" as kitchen measures, so
// those two borrow the mass/volume unit they approximate (gram,
// milliliter) purely to get the right Kind out of the library.
var canonicalGoUnits = map[Unit]string{
	UnitGrams:       "gram",
	UnitKilograms:   "kilogram",
	UnitPinches:     "gram",
	UnitMillilitres: "milliliter",
	UnitLitres:      "liter",
	UnitDashes:      "milliliter",
	UnitCups:        "cup",
	UnitTeaspoons:   "teaspoon",
	UnitTablespoons: "tablespoon",
}

// unitSynonyms maps every source spelling spec.md §3 allows (including
// the plural forms "pinches"/"dashes" and the written-out
// "teaspoon(s)"/"tablespoon(s)") onto the canonical Unit and the name
// go-units knows it by. go-units itself only resolves the canonical
// unit names; the synonym table is the one piece of this
// classification not delegated to the library.
var unitSynonyms = map[string]struct {
	unit    Unit
	goUnits string
}{
	"g":          {UnitGrams, "gram"},
	"gram":       {UnitGrams, "gram"},
	"grams":      {UnitGrams, "gram"},
	"kg":         {UnitKilograms, "kilogram"},
	"kilogram":   {UnitKilograms, "kilogram"},
	"kilograms":  {UnitKilograms, "kilogram"},
	"pinch":      {UnitPinches, "gram"},
	"pinches":    {UnitPinches, "gram"},
	"ml":         {UnitMillilitres, "milliliter"},
	"millilitre": {UnitMillilitres, "milliliter"},
	"millilitres": {UnitMillilitres, "milliliter"},
	"milliliter": {UnitMillilitres, "milliliter"},
	"milliliters": {UnitMillilitres, "milliliter"},
	"l":          {UnitLitres, "liter"},
	"litre":      {UnitLitres, "liter"},
	"litres":     {UnitLitres, "liter"},
	"liter":      {UnitLitres, "liter"},
	"liters":     {UnitLitres, "liter"},
	"dash":       {UnitDashes, "milliliter"},
	"dashes":     {UnitDashes, "milliliter"},
	"cup":        {UnitCups, "cup"},
	"cups":       {UnitCups, "cup"},
	"teaspoon":   {UnitTeaspoons, "teaspoon"},
	"teaspoons":  {UnitTeaspoons, "teaspoon"},
	"tsp":        {UnitTeaspoons, "teaspoon"},
	"tablespoon": {UnitTablespoons, "tablespoon"},
	"tablespoons": {UnitTablespoons, "tablespoon"},
	"tbsp":       {UnitTablespoons, "tablespoon"},
}

// LookupUnit resolves free-form unit text from an ingredient
// declaration to a canonical Unit, going through go-units so that the
// dry/wet classification below is driven by the library's notion of
// physical quantity (mass vs. volume) rather than a hand-maintained
// switch. ok is false if text does not name one of the nine
// recognised units.
func LookupUnit(text string) (Unit, bool) {
	entry, ok := unitSynonyms[strings.ToLower(strings.TrimSpace(text))]
	if !ok {
		return "", false
	}
	// Confirm go-units actually knows the unit we're about to classify
	// by; a lookup failure here means the synonym table and the
	// installed go-units version have drifted apart, which we treat
	// the same as "not a unit" rather than panicking on recipe input.
	if _, err := units.Find(entry.goUnits); err != nil {
		return "", false
	}
	return entry.unit, true
}

// Measure is an ingredient declaration's optional amount qualifier:
// a unit, and for the ambiguous cup/teaspoon/tablespoon family an
// optional heaped/level measure-type.
type Measure struct {
	Unit Unit
	Type MeasureType
}

// Kind derives the dry/wet classification for a measure, per spec.md
// §3: any measure qualified heaped or level is dry; otherwise grams/
// kilograms/pinches are dry, millilitres/litres/dashes are wet, and
// cups/teaspoons/tablespoons are unspecified (treated as dry).
//
// The three ambiguous units are settled by the measure-type on the
// declaration alone, overriding whatever go-units would say about
// them. Every other unit's dry/wet classification comes from
// go-units' own Mass/Volume Kind for the unit, not a hand-maintained
// switch over Unit.
func (m Measure) Kind() Kind {
	if m.Type == Heaped || m.Type == Level {
		return Dry
	}
	switch m.Unit {
	case UnitCups, UnitTeaspoons, UnitTablespoons:
		return Dry // unspecified without heaped/level: treated as dry
	}

	goName, ok := canonicalGoUnits[m.Unit]
	if !ok {
		return Dry
	}
	resolved, err := units.Find(goName)
	if err != nil {
		return Dry // unreachable for a Unit produced by LookupUnit
	}
	if resolved.Kind == units.Volume {
		return Wet
	}
	return Dry
}

func normaliseIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
