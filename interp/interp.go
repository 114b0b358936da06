// Package interp implements spec.md §4.4: a stack machine executing a
// validated Program. It owns each call frame's ingredient
// environment, bowls, dishes, loop control flags, and subroutine
// semantics, and drives blocking stdin reads for Take.
package interp

import (
	"bufio"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/hilli/chef"
)

// Option configures an Interp at construction time.
type Option func(*Interp)

// WithSeed fixes the Mix-well PRNG's seed, for reproducible runs —
// spec.md §9 leaves the randomness source unspecified but asks that
// implementations allow seeding for test reproducibility.
func WithSeed(seed int64) Option {
	return func(ip *Interp) { ip.rng = rand.New(rand.NewSource(seed)) }
}

// WithFormatter overrides how Serves/Refrigerate render popped
// values; defaults to chef.DefaultFormatter.
func WithFormatter(f chef.OutputFormatter) Option {
	return func(ip *Interp) { ip.formatter = f }
}

// Interp executes a *chef.Program against a pair of I/O streams.
type Interp struct {
	stdin     *bufio.Reader
	stdout    io.Writer
	formatter chef.OutputFormatter
	rng       *rand.Rand
}

// New builds an Interp reading Take input from stdin and writing
// Serves/Refrigerate output to stdout.
func New(stdin io.Reader, stdout io.Writer, opts ...Option) *Interp {
	ip := &Interp{
		stdin:     bufio.NewReader(stdin),
		stdout:    stdout,
		formatter: chef.DefaultFormatter,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(ip)
	}
	return ip
}

// Run invokes program's main recipe with empty bowls and dishes.
func (ip *Interp) Run(program *chef.Program) error {
	f := newFrame(program.Main)
	if err := ip.execBlock(program, program.Main.Instructions, f); err != nil {
		return err
	}
	if f.terminate && f.refrigerateHours != nil {
		return ip.printDishes(f, *f.refrigerateHours)
	}
	return nil
}

// frame is interpreter state for one recipe invocation (spec.md §3's
// "Call frame"): local environment, local bowls, local dishes, and
// the two control flags that drive Set aside / Refrigerate.
type frame struct {
	env              map[string]chef.Value
	declaredKind     map[string]chef.Kind
	bowls            map[int][]chef.Value
	dishes           map[int][]chef.Value
	loopDepth        int
	breakPending     bool
	terminate        bool
	refrigerateHours *int
}

// newFrame builds the local environment from a recipe's ingredient
// declarations in source order: repeated declarations, last wins,
// including a later declaration with no initial value clearing an
// earlier one's (spec.md §4.4).
func newFrame(recipe chef.Recipe) *frame {
	f := &frame{
		env:          make(map[string]chef.Value),
		declaredKind: make(map[string]chef.Kind),
		bowls:        make(map[int][]chef.Value),
		dishes:       make(map[int][]chef.Value),
	}
	for _, decl := range recipe.Ingredients {
		key := normalise(decl.Name)
		kind := decl.Kind()
		f.declaredKind[key] = kind
		if decl.InitialValue != nil {
			f.env[key] = chef.Value{Amount: *decl.InitialValue, Kind: kind}
		} else {
			delete(f.env, key)
		}
	}
	return f
}

func normalise(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (f *frame) value(name string) (chef.Value, bool) {
	v, ok := f.env[normalise(name)]
	return v, ok
}

func (f *frame) setValue(name string, v chef.Value) { f.env[normalise(name)] = v }

func (f *frame) bowlTop(n int) (chef.Value, bool) {
	b := f.bowls[n]
	if len(b) == 0 {
		return chef.Value{}, false
	}
	return b[len(b)-1], true
}

func (f *frame) bowlPop(n int) (chef.Value, bool) {
	b := f.bowls[n]
	if len(b) == 0 {
		return chef.Value{}, false
	}
	v := b[len(b)-1]
	f.bowls[n] = b[:len(b)-1]
	return v, true
}

func (f *frame) bowlPush(n int, v chef.Value) {
	f.bowls[n] = append(f.bowls[n], v)
}

// dishIndex maps a 1-based ordinal from source text (as seen in
// Serves N / Refrigerate for N hours) to the internal bowl/dish
// index, unifying ordinal 1 with the default (spec.md §4.5).
func dishIndex(ordinal int) int {
	if ordinal <= 1 {
		return 0
	}
	return ordinal
}

// execBlock runs instructions in order, stopping early if Refrigerate
// or Set aside fires partway through (terminate/breakPending).
func (ip *Interp) execBlock(program *chef.Program, instructions []chef.Instruction, f *frame) error {
	for _, inst := range instructions {
		if err := ip.execInstruction(program, inst, f); err != nil {
			return err
		}
		if f.terminate || f.breakPending {
			return nil
		}
	}
	return nil
}

func (ip *Interp) execInstruction(program *chef.Program, inst chef.Instruction, f *frame) error {
	switch v := inst.(type) {
	case chef.Take:
		return ip.execTake(v, f)
	case chef.Put:
		val, ok := f.value(v.Ingredient)
		if !ok {
			return uninitialised(v.Span(), v.Ingredient)
		}
		f.bowlPush(v.Bowl, val)
		return nil
	case chef.Fold:
		popped, ok := f.bowlPop(v.Bowl)
		if !ok {
			return emptyBowl(v.Span())
		}
		f.setValue(v.Ingredient, popped)
		return nil
	case chef.Arith:
		top, ok := f.bowlTop(v.Bowl)
		if !ok {
			return emptyBowl(v.Span())
		}
		operand, ok := f.value(v.Ingredient)
		if !ok {
			return uninitialised(v.Span(), v.Ingredient)
		}
		result, err := v.Op.Apply(top.Amount, operand.Amount)
		if err != nil {
			return chef.NewRuntimeError(v.Span(), err, "%v", err)
		}
		f.bowlPush(v.Bowl, chef.Value{Amount: result, Kind: operand.Kind})
		return nil
	case chef.AddDryIngredients:
		sum := 0
		for _, val := range f.env {
			if val.Kind == chef.Dry {
				sum += val.Amount
			}
		}
		f.bowls[v.Bowl] = []chef.Value{{Amount: sum, Kind: chef.Dry}}
		return nil
	case chef.Liquefy:
		val, ok := f.value(v.Ingredient)
		if !ok {
			return uninitialised(v.Span(), v.Ingredient)
		}
		val.Kind = chef.Wet
		f.setValue(v.Ingredient, val)
		return nil
	case chef.LiquefyContents:
		bowl := f.bowls[v.Bowl]
		for i := range bowl {
			bowl[i].Kind = chef.Wet
		}
		return nil
	case chef.Stir:
		return ip.execStir(v.Span(), v.Bowl, v.Minutes, f)
	case chef.StirIngredient:
		operand, ok := f.value(v.Ingredient)
		if !ok {
			return uninitialised(v.Span(), v.Ingredient)
		}
		return ip.execStir(v.Span(), v.Bowl, operand.Amount, f)
	case chef.Mix:
		bowl := f.bowls[v.Bowl]
		ip.rng.Shuffle(len(bowl), func(i, j int) { bowl[i], bowl[j] = bowl[j], bowl[i] })
		return nil
	case chef.Clean:
		f.bowls[v.Bowl] = nil
		return nil
	case chef.Pour:
		f.dishes[v.Dish] = append(f.dishes[v.Dish], f.bowls[v.Bowl]...)
		return nil
	case chef.Loop:
		return ip.execLoop(program, v, f)
	case chef.SetAside:
		if f.loopDepth == 0 {
			return chef.NewRuntimeError(v.Span(), chef.ErrSetAsideOutside, "%v", chef.ErrSetAsideOutside)
		}
		f.breakPending = true
		return nil
	case chef.ServeWith:
		return ip.execServeWith(program, v, f)
	case chef.Refrigerate:
		f.terminate = true
		f.refrigerateHours = v.Hours
		return nil
	case chef.Serves:
		return ip.printDishes(f, v.Count)
	default:
		return chef.NewError(chef.RuntimeError, inst.Span(), "unhandled instruction %T", inst)
	}
}

func (ip *Interp) execStir(span chef.Span, bowl, minutes int, f *frame) error {
	top, ok := f.bowlPop(bowl)
	if !ok {
		return emptyBowl(span)
	}
	remaining := f.bowls[bowl]
	pos := len(remaining) - minutes
	if pos < 0 {
		pos = 0
	}
	inserted := make([]chef.Value, 0, len(remaining)+1)
	inserted = append(inserted, remaining[:pos]...)
	inserted = append(inserted, top)
	inserted = append(inserted, remaining[pos:]...)
	f.bowls[bowl] = inserted
	return nil
}

func (ip *Interp) execLoop(program *chef.Program, loop chef.Loop, f *frame) error {
	key := normalise(loop.Ingredient)
	f.loopDepth++
	defer func() { f.loopDepth-- }()

	for {
		guard, ok := f.env[key]
		if !ok {
			return uninitialised(loop.Span(), loop.Ingredient)
		}
		if guard.Amount == 0 {
			return nil
		}
		if err := ip.execBlock(program, loop.Body, f); err != nil {
			return err
		}
		if f.terminate {
			return nil
		}
		if f.breakPending {
			f.breakPending = false
			return nil
		}
		guard = f.env[key]
		if guard.Amount > 0 {
			guard.Amount--
			f.env[key] = guard
		}
	}
}

func (ip *Interp) execServeWith(program *chef.Program, sw chef.ServeWith, f *frame) error {
	recipe, ok := program.Auxiliary[chef.NormaliseTitle(sw.Recipe)]
	if !ok {
		return chef.NewError(chef.ReferenceError, sw.Span(), "recipe %q not found", sw.Recipe)
	}

	callee := newFrame(recipe)
	callee.bowls = cloneValueMap(f.bowls)
	callee.dishes = cloneValueMap(f.dishes)

	if err := ip.execBlock(program, recipe.Instructions, callee); err != nil {
		return err
	}
	if callee.terminate && callee.refrigerateHours != nil {
		if err := ip.printDishes(callee, *callee.refrigerateHours); err != nil {
			return err
		}
	}
	f.bowls[0] = append(f.bowls[0], callee.bowls[0]...)
	return nil
}

func cloneValueMap(src map[int][]chef.Value) map[int][]chef.Value {
	dst := make(map[int][]chef.Value, len(src))
	for k, v := range src {
		cp := make([]chef.Value, len(v))
		copy(cp, v)
		dst[k] = cp
	}
	return dst
}

func (ip *Interp) execTake(t chef.Take, f *frame) error {
	kind := f.declaredKind[normalise(t.Ingredient)]
	for {
		line, err := ip.stdin.ReadString('\n')
		if line == "" && err != nil {
			return chef.NewRuntimeError(t.Span(), chef.ErrEndOfInput, "end of input while reading %q", t.Ingredient)
		}
		if n, perr := strconv.Atoi(strings.TrimSpace(line)); perr == nil {
			f.setValue(t.Ingredient, chef.Value{Amount: n, Kind: kind})
			return nil
		}
		if err != nil {
			return chef.NewRuntimeError(t.Span(), chef.ErrEndOfInput, "end of input while reading %q", t.Ingredient)
		}
	}
}

// printDishes prints dishes 1..n, draining each top to bottom, per
// spec.md §4.4's Serves formatting rule.
func (ip *Interp) printDishes(f *frame, n int) error {
	var out strings.Builder
	for ordinal := 1; ordinal <= n; ordinal++ {
		dish := f.dishes[dishIndex(ordinal)]
		for i := len(dish) - 1; i >= 0; i-- {
			out.WriteString(ip.formatter.FormatValue(dish[i]))
		}
	}
	out.WriteByte('\n')
	_, err := io.WriteString(ip.stdout, out.String())
	return err
}

func uninitialised(span chef.Span, ingredient string) error {
	return chef.NewRuntimeError(span, chef.ErrUninitialised, "ingredient %q has no value", ingredient)
}

func emptyBowl(span chef.Span) error {
	return chef.NewRuntimeError(span, chef.ErrEmptyBowl, "%v", chef.ErrEmptyBowl)
}
