package chef

// Instruction is one lifted method sentence. Every concrete sentence
// type below implements it; interp and validator dispatch on the
// concrete type with a type switch.
type Instruction interface {
	Span() Span
}

type base struct {
	span Span
}

func (b base) Span() Span { return b.span }

func newBase(span Span) base { return base{span: span} }

// Take reads one line from stdin into Ingredient.
type Take struct {
	base
	Ingredient string
}

func NewTake(span Span, ingredient string) Take {
	return Take{newBase(span), ingredient}
}

// Put pushes a copy of Ingredient's current value onto Bowl.
type Put struct {
	base
	Ingredient string
	Bowl       int
}

func NewPut(span Span, ingredient string, bowl int) Put {
	return Put{newBase(span), ingredient, bowl}
}

// Fold pops the top of Bowl into Ingredient.
type Fold struct {
	base
	Ingredient string
	Bowl       int
}

func NewFold(span Span, ingredient string, bowl int) Fold {
	return Fold{newBase(span), ingredient, bowl}
}

// ArithOp is the binary operator an Arith instruction applies.
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSubtract
	OpMultiply
	OpDivide
)

func (op ArithOp) String() string {
	switch op {
	case OpAdd:
		return "Add"
	case OpSubtract:
		return "Remove"
	case OpMultiply:
		return "Combine"
	case OpDivide:
		return "Divide"
	default:
		return "Arith"
	}
}

func (op ArithOp) Apply(bowlTop, ingredient int) (int, error) {
	switch op {
	case OpAdd:
		return bowlTop + ingredient, nil
	case OpSubtract:
		return bowlTop - ingredient, nil
	case OpMultiply:
		return bowlTop * ingredient, nil
	case OpDivide:
		if ingredient == 0 {
			return 0, errDivideByZero
		}
		return bowlTop / ingredient, nil
	default:
		return 0, errDivideByZero // unreachable for well-formed programs
	}
}

// Arith implements Add/Remove/Combine/Divide: read the top of Bowl
// (without popping), combine it with Ingredient's value under Op, and
// push the result.
type Arith struct {
	base
	Op         ArithOp
	Ingredient string
	Bowl       int
}

func NewArith(span Span, op ArithOp, ingredient string, bowl int) Arith {
	return Arith{newBase(span), op, ingredient, bowl}
}

// AddDryIngredients sums the current values of every dry ingredient
// and replaces Bowl's contents with that single sum (spec.md §9's
// chosen reading of the ambiguous Chef-spec wording).
type AddDryIngredients struct {
	base
	Bowl int
}

func NewAddDryIngredients(span Span, bowl int) AddDryIngredients {
	return AddDryIngredients{newBase(span), bowl}
}

// Liquefy retags Ingredient's current value as wet.
type Liquefy struct {
	base
	Ingredient string
}

func NewLiquefy(span Span, ingredient string) Liquefy {
	return Liquefy{newBase(span), ingredient}
}

// LiquefyContents retags every value currently in Bowl as wet.
type LiquefyContents struct {
	base
	Bowl int
}

func NewLiquefyContents(span Span, bowl int) LiquefyContents {
	return LiquefyContents{newBase(span), bowl}
}

// Stir rolls the top of Bowl down by Minutes positions (clamped at the
// bottom).
type Stir struct {
	base
	Bowl    int
	Minutes int
}

func NewStir(span Span, bowl, minutes int) Stir {
	return Stir{newBase(span), bowl, minutes}
}

// StirIngredient is Stir with the roll distance read from an
// ingredient's value instead of a literal.
type StirIngredient struct {
	base
	Ingredient string
	Bowl       int
}

func NewStirIngredient(span Span, ingredient string, bowl int) StirIngredient {
	return StirIngredient{newBase(span), ingredient, bowl}
}

// Mix randomly permutes Bowl.
type Mix struct {
	base
	Bowl int
}

func NewMix(span Span, bowl int) Mix {
	return Mix{newBase(span), bowl}
}

// Clean empties Bowl.
type Clean struct {
	base
	Bowl int
}

func NewClean(span Span, bowl int) Clean {
	return Clean{newBase(span), bowl}
}

// Pour appends Bowl's contents, bottom-to-top, onto Dish.
type Pour struct {
	base
	Bowl int
	Dish int
}

func NewPour(span Span, bowl, dish int) Pour {
	return Pour{newBase(span), bowl, dish}
}

// Loop is a structurally-lifted Verb/Verb-until pair: while
// Ingredient's value is non-zero, run Body; decrement Ingredient by
// one (clamped at zero) on natural fall-through, skip the decrement on
// SetAside. The opening Verb is retained for display only — the
// closing until's verb is not checked against it (spec.md §9,
// deviation from the canonical Chef spec).
type Loop struct {
	base
	Verb       string
	Ingredient string
	Body       []Instruction
}

func NewLoop(span Span, verb, ingredient string, body []Instruction) Loop {
	return Loop{newBase(span), verb, ingredient, body}
}

// SetAside breaks out of the innermost enclosing Loop without running
// its trailing decrement. A run-time error outside any loop.
type SetAside struct {
	base
}

func NewSetAside(span Span) SetAside { return SetAside{newBase(span)} }

// ServeWith invokes the named auxiliary recipe as a sous-chef call:
// deep copies of the caller's bowls and dishes, synchronous, with the
// callee's bowl 1 appended onto the caller's bowl 1 on return.
type ServeWith struct {
	base
	Recipe string
}

func NewServeWith(span Span, recipe string) ServeWith {
	return ServeWith{newBase(span), recipe}
}

// Refrigerate ends the current call frame. If Hours is non-nil, the
// recipe's first *Hours dishes are printed first.
type Refrigerate struct {
	base
	Hours *int
}

func NewRefrigerate(span Span, hours *int) Refrigerate {
	return Refrigerate{newBase(span), hours}
}

// Serves prints dishes 1..Count, draining each top-to-bottom.
type Serves struct {
	base
	Count int
}

func NewServes(span Span, count int) Serves {
	return Serves{newBase(span), count}
}

// VerbStart and VerbUntil are stage-1 sentinels: the parser emits
// them verbatim for rules 20/21, and the lifter consumes matched
// pairs of them to build Loop nodes, discarding the sentinels
// themselves. Neither should survive past lifting; interp and
// validator never see them.
type VerbStart struct {
	base
	Verb       string
	Ingredient string
}

func NewVerbStart(span Span, verb, ingredient string) VerbStart {
	return VerbStart{newBase(span), verb, ingredient}
}

type VerbUntil struct {
	base
	Verb string
}

func NewVerbUntil(span Span, verb string) VerbUntil {
	return VerbUntil{newBase(span), verb}
}
