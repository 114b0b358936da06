// Package parser implements stage 1 of the pipeline (spec.md §4.1): it
// recognises a recipe's concrete syntax (title, ingredients, cooking
// time, method sentences) and produces a flat chef.Recipe per recipe
// in the source, with VerbStart/VerbUntil sentinels standing in for
// loop boundaries. The lifter package turns those sentinels into
// nested chef.Loop nodes.
package parser

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/hilli/chef"
	"github.com/hilli/chef/lexer"
	"github.com/hilli/chef/token"
)

// Parser recognises Chef source text. It carries no state between
// calls; New exists for symmetry with the rest of the pipeline's
// packages (lifter.Lift, validator.Validate are bare funcs, but
// parser keeps the constructor shape ParseString/ParseBytes/
// ParseReader are hung off of).
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// ParseString parses Chef source text into a flat recipe per recipe
// found, in source order.
func (p *Parser) ParseString(input string) ([]chef.Recipe, error) {
	lx := lexer.New(input)

	var recipes []chef.Recipe
	for {
		recipe, ok, err := p.parseRecipe(lx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		recipes = append(recipes, recipe)
	}
	if len(recipes) == 0 {
		return nil, chef.NewError(chef.SyntaxError, chef.NewSpan(0, 0), "source contains no recipes")
	}
	return recipes, nil
}

// ParseBytes parses Chef source supplied as a byte slice.
func (p *Parser) ParseBytes(input []byte) ([]chef.Recipe, error) {
	return p.ParseString(string(input))
}

// ParseReader reads all of r and parses it as Chef source.
func (p *Parser) ParseReader(r io.Reader) ([]chef.Recipe, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	return p.ParseBytes(content)
}

// parseRecipe consumes the sections belonging to one recipe: title,
// optional comments, ingredients, optional cooking time/oven lines,
// method. ok is false (with a nil error) when the lexer has nothing
// left to offer, signalling a clean end of input between recipes.
func (p *Parser) parseRecipe(lx *lexer.Lexer) (chef.Recipe, bool, error) {
	titleSec, ok := lx.NextSection()
	if !ok {
		return chef.Recipe{}, false, nil
	}
	title, err := parseTitleSection(titleSec)
	if err != nil {
		return chef.Recipe{}, false, err
	}
	recipe := chef.Recipe{Title: title}

	sec, ok := lx.NextSection()
	if !ok {
		return chef.Recipe{}, false, missingSection(titleSec, title, "Ingredients")
	}

	if !isIngredientsHeader(firstLine(sec.Text)) {
		recipe.Comments = strings.TrimSpace(sec.Text)
		sec, ok = lx.NextSection()
		if !ok {
			return chef.Recipe{}, false, missingSection(titleSec, title, "Ingredients")
		}
	}

	if !isIngredientsHeader(firstLine(sec.Text)) {
		return chef.Recipe{}, false, chef.NewError(chef.SyntaxError, spanOf(sec),
			"recipe %q: expected an Ingredients section, found %q", title, firstLine(sec.Text))
	}
	decls, err := parseIngredientsSection(sec)
	if err != nil {
		return chef.Recipe{}, false, err
	}
	recipe.Ingredients = decls

	sec, ok = lx.NextSection()
	if !ok {
		return chef.Recipe{}, false, missingSection(titleSec, title, "Method")
	}
	for !isMethodHeader(firstLine(sec.Text)) {
		if err := parseAmbientSection(&recipe, sec); err != nil {
			return chef.Recipe{}, false, err
		}
		sec, ok = lx.NextSection()
		if !ok {
			return chef.Recipe{}, false, missingSection(titleSec, title, "Method")
		}
	}

	instructions, err := parseMethodSection(sec)
	if err != nil {
		return chef.Recipe{}, false, err
	}
	recipe.Instructions = instructions

	return recipe, true, nil
}

func missingSection(titleSec lexer.Section, title, name string) error {
	return chef.NewError(chef.SyntaxError, spanOf(titleSec), "recipe %q: missing %s section", title, name)
}

func spanOf(sec lexer.Section) chef.Span {
	return chef.NewSpan(sec.Start, sec.End)
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return strings.TrimRight(text[:idx], "\r")
	}
	return text
}

func headerEquals(line, word string) bool {
	return strings.EqualFold(strings.TrimSuffix(strings.TrimSpace(line), "."), word)
}

func isIngredientsHeader(line string) bool { return headerEquals(line, "ingredients") }
func isMethodHeader(line string) bool      { return headerEquals(line, "method") }

func parseTitleSection(sec lexer.Section) (string, error) {
	title := strings.TrimSuffix(strings.TrimSpace(sec.Text), ".")
	if title == "" {
		return "", chef.NewError(chef.SyntaxError, spanOf(sec), "recipe title is empty")
	}
	return title, nil
}

// stripHeader checks that sec's first line is the given header (an
// optional trailing period tolerated) and returns the remaining text
// plus its byte offset within sec.Text.
func stripHeader(sec lexer.Section, header string) (body string, offset int, err error) {
	idx := strings.IndexByte(sec.Text, '\n')
	var line string
	if idx == -1 {
		line, idx = sec.Text, len(sec.Text)
	} else {
		line = sec.Text[:idx]
	}
	if !headerEquals(line, header) {
		return "", 0, chef.NewError(chef.SyntaxError, chef.NewSpan(sec.Start, sec.Start+len(line)),
			"expected %q header, found %q", header, strings.TrimRight(line, "\r"))
	}
	if idx < len(sec.Text) {
		return sec.Text[idx+1:], idx + 1, nil
	}
	return "", idx, nil
}

func parseIngredientsSection(sec lexer.Section) ([]chef.IngredientDecl, error) {
	body, offset, err := stripHeader(sec, "ingredients")
	if err != nil {
		return nil, err
	}

	var decls []chef.IngredientDecl
	pos := 0
	for _, line := range strings.Split(body, "\n") {
		lineLen := len(line)
		trimmed := strings.TrimSpace(strings.TrimRight(line, "\r"))
		if trimmed != "" {
			decl, err := parseIngredientLine(trimmed)
			if err != nil {
				span := chef.NewSpan(sec.Start+offset+pos, sec.Start+offset+pos+lineLen)
				return nil, chef.NewError(chef.SyntaxError, span, "%s", err)
			}
			decls = append(decls, decl)
		}
		pos += lineLen + 1
	}
	return decls, nil
}

// parseIngredientLine parses one "[value] [heaped|level] [unit] name"
// declaration. Only the measure-type/unit pair is optional as a unit;
// a bare measure-type with no recognised unit after it is treated as
// part of the name instead of a malformed measure.
func parseIngredientLine(line string) (chef.IngredientDecl, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return chef.IngredientDecl{}, fmt.Errorf("ingredient line has no name")
	}

	idx := 0
	var initial *int
	if n, err := strconv.Atoi(fields[idx]); err == nil {
		initial = &n
		idx++
	}

	var measure *chef.Measure
	if idx < len(fields) {
		measureType := chef.NoMeasureType
		save := idx
		switch strings.ToLower(fields[idx]) {
		case "heaped":
			measureType = chef.Heaped
			idx++
		case "level":
			measureType = chef.Level
			idx++
		}
		if idx < len(fields) {
			if unit, ok := chef.LookupUnit(fields[idx]); ok {
				measure = &chef.Measure{Unit: unit, Type: measureType}
				idx++
			} else {
				idx = save
			}
		} else {
			idx = save
		}
	}

	name := strings.Join(fields[idx:], " ")
	if name == "" {
		return chef.IngredientDecl{}, fmt.Errorf("ingredient line %q has no name", line)
	}
	return chef.IngredientDecl{Name: name, InitialValue: initial, Measure: measure}, nil
}

var (
	cookingTimeRe = regexp.MustCompile(`(?i)^cooking time:\s*(\d+)\s*(?:hours?|minutes?)\s*\.?$`)
	ovenRe        = regexp.MustCompile(`(?i)^pre-?heat oven to\s*(\d+)\s*degrees\s*celsius(?:\s*\(gas mark\s*(\d+)\))?\s*\.?$`)
)

// parseAmbientSection parses a section between Ingredients and Method
// holding cooking-time and/or oven-temperature lines: parsed per
// spec.md §3 but not consulted at runtime.
func parseAmbientSection(recipe *chef.Recipe, sec lexer.Section) error {
	for _, line := range strings.Split(sec.Text, "\n") {
		trimmed := strings.TrimSpace(strings.TrimRight(line, "\r"))
		if trimmed == "" {
			continue
		}
		if m := cookingTimeRe.FindStringSubmatch(trimmed); m != nil {
			n, _ := strconv.Atoi(m[1])
			recipe.CookingTime = &n
			continue
		}
		if m := ovenRe.FindStringSubmatch(trimmed); m != nil {
			n, _ := strconv.Atoi(m[1])
			recipe.OvenTemp = &n
			if m[2] != "" {
				g, _ := strconv.Atoi(m[2])
				recipe.OvenGasMark = &g
			}
			continue
		}
		return chef.NewError(chef.SyntaxError, spanOf(sec),
			"expected a cooking time, oven temperature, or Method section, found %q", trimmed)
	}
	return nil
}

func parseMethodSection(sec lexer.Section) ([]chef.Instruction, error) {
	body, offset, err := stripHeader(sec, "method")
	if err != nil {
		return nil, err
	}
	sentences := lexer.SplitSentences(body, sec.Start+offset)
	instructions := make([]chef.Instruction, 0, len(sentences))
	for _, sent := range sentences {
		inst, err := recognizeSentence(sent)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, inst)
	}
	return instructions, nil
}

func recognizeSentence(sent lexer.Sentence) (chef.Instruction, error) {
	span := chef.NewSpan(sent.Start, sent.End)
	for _, rule := range sentenceRules {
		if s, ok := rule(sent.Text); ok {
			s.Text = sent.Text
			return toInstruction(s, span)
		}
	}
	return nil, chef.NewError(chef.SyntaxError, span, "unrecognised method sentence: %q", sent.Text)
}

func toInstruction(s token.Sentence, span chef.Span) (chef.Instruction, error) {
	switch s.Kind {
	case token.TAKE:
		return chef.NewTake(span, s.Ingredient), nil
	case token.PUT:
		return chef.NewPut(span, s.Ingredient, s.Bowl), nil
	case token.FOLD:
		return chef.NewFold(span, s.Ingredient, s.Bowl), nil
	case token.ADD_DRY:
		return chef.NewAddDryIngredients(span, s.Bowl), nil
	case token.ADD:
		return chef.NewArith(span, chef.OpAdd, s.Ingredient, s.Bowl), nil
	case token.REMOVE:
		return chef.NewArith(span, chef.OpSubtract, s.Ingredient, s.Bowl), nil
	case token.COMBINE:
		return chef.NewArith(span, chef.OpMultiply, s.Ingredient, s.Bowl), nil
	case token.DIVIDE:
		return chef.NewArith(span, chef.OpDivide, s.Ingredient, s.Bowl), nil
	case token.LIQUEFY_CONTENTS:
		return chef.NewLiquefyContents(span, s.Bowl), nil
	case token.LIQUEFY:
		return chef.NewLiquefy(span, s.Ingredient), nil
	case token.STIR_MINUTES:
		return chef.NewStir(span, s.Bowl, s.Minutes), nil
	case token.STIR_INGREDIENT:
		return chef.NewStirIngredient(span, s.Ingredient, s.Bowl), nil
	case token.MIX:
		return chef.NewMix(span, s.Bowl), nil
	case token.CLEAN:
		return chef.NewClean(span, s.Bowl), nil
	case token.POUR:
		return chef.NewPour(span, s.Bowl, s.Dish), nil
	case token.SET_ASIDE:
		return chef.NewSetAside(span), nil
	case token.SERVE_WITH:
		return chef.NewServeWith(span, s.Recipe), nil
	case token.REFRIGERATE:
		return chef.NewRefrigerate(span, s.Hours), nil
	case token.SERVES:
		return chef.NewServes(span, s.Count), nil
	case token.VERB:
		return chef.NewVerbStart(span, s.Verb, s.Ingredient), nil
	case token.VERB_UNTIL:
		return chef.NewVerbUntil(span, s.Verb), nil
	default:
		return nil, chef.NewError(chef.SyntaxError, span, "unhandled sentence kind %v", s.Kind)
	}
}
