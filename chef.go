package chef

// Program is a fully lifted and (once validator.Validate has run)
// checked Chef program: a main recipe plus a case-insensitive map of
// auxiliary recipes keyed by their normalised (lower-cased,
// whitespace-trimmed) title. If two auxiliary recipes share a title,
// the later declaration wins (spec.md §9, open question).
type Program struct {
	Main      Recipe
	Auxiliary map[string]Recipe
}

// NormaliseTitle lower-cases and trims a recipe title for use as an
// auxiliary-recipe map key or a Serve-with lookup key.
func NormaliseTitle(title string) string {
	return normaliseIdentifier(title)
}

// Recipe is one named unit of Chef source: a main recipe or an
// auxiliary ("sous-chef") recipe. Title and Comments retain their
// original source text; Instructions has already been through the
// structural lifter by the time a Recipe lives inside a Program, so
// Verb/VerbUntil sentinels appear as nested *Loop nodes rather than
// flat pairs.
type Recipe struct {
	Title       string
	Comments    string
	Ingredients []IngredientDecl
	CookingTime *int // minutes; parsed but unused at runtime, spec.md §3
	OvenTemp    *int // degrees Celsius; parsed but unused at runtime
	OvenGasMark *int
	Instructions []Instruction
}

// IngredientDecl is one line of a recipe's Ingredients section.
type IngredientDecl struct {
	Name         string
	InitialValue *int
	Measure      *Measure
}

// Kind derives the dry/wet/unspecified classification for this
// declaration's measure, per spec.md §3. A declaration with no measure
// is unspecified, which this implementation's arithmetic and Take
// semantics treat as dry.
func (d IngredientDecl) Kind() Kind {
	if d.Measure == nil {
		return Dry
	}
	return d.Measure.Kind()
}
