package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hilli/chef/token"
)

// sentenceRules holds the twenty-one production rules of spec.md
// §4.1 in the exact order the contract requires: prefixes overlap
// (e.g. "Add dry ingredients" vs "Add X"), so the first rule whose
// shape matches wins.
var sentenceRules = []func(string) (token.Sentence, bool){
	matchTake,
	matchPut,
	matchFold,
	matchAddDry,
	matchAdd,
	matchRemove,
	matchCombine,
	matchDivide,
	matchLiquefyContents,
	matchLiquefy,
	matchStirMinutes,
	matchStirIngredient,
	matchMix,
	matchClean,
	matchPour,
	matchSetAside,
	matchServeWith,
	matchRefrigerate,
	matchServes,
	matchVerbUntil,
	matchVerb,
}

func matchTake(s string) (token.Sentence, bool) {
	rest, ok := trimPrefixFold(s, "take ")
	if !ok {
		return token.Sentence{}, false
	}
	name, after := captureName(rest, " from ")
	if name == "" || after == "" {
		return token.Sentence{}, false
	}
	after = trimOptional(strings.TrimSpace(after), "the")
	if !strings.EqualFold(strings.TrimSpace(after), "refrigerator") {
		return token.Sentence{}, false
	}
	return token.Sentence{Kind: token.TAKE, Ingredient: name}, true
}

func matchAddDry(s string) (token.Sentence, bool) {
	rest, ok := trimPrefixFold(s, "add dry ingredients")
	if !ok {
		return token.Sentence{}, false
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return token.Sentence{Kind: token.ADD_DRY}, true
	}
	rest, ok = trimPrefixFold(rest, "to ")
	if !ok {
		return token.Sentence{}, false
	}
	rest, bowl, ok := parseUtensil(rest, "mixing bowl")
	if !ok || strings.TrimSpace(rest) != "" {
		return token.Sentence{}, false
	}
	return token.Sentence{Kind: token.ADD_DRY, Bowl: bowl, HasBowl: true}, true
}

// matchNameIntoBowl implements the common "<prefix><name>[<stop>[the]
// [Nth] mixing bowl]" shape shared by Put, Fold, Add, Remove, Combine,
// Divide, and the Stir-into-bowl form. bowlOptional controls whether
// the trailing bowl clause may be omitted.
func matchNameIntoBowl(s, prefix, stop string, kind token.Kind, bowlOptional bool) (token.Sentence, bool) {
	rest, ok := trimPrefixFold(s, prefix)
	if !ok {
		return token.Sentence{}, false
	}
	name, after := captureName(rest, stop)
	if name == "" {
		return token.Sentence{}, false
	}
	sent := token.Sentence{Kind: kind, Ingredient: name}
	if after == "" {
		if !bowlOptional {
			return token.Sentence{}, false
		}
		return sent, true
	}
	utensil, bowl, ok := parseUtensil(after, "mixing bowl")
	if !ok || strings.TrimSpace(utensil) != "" {
		return token.Sentence{}, false
	}
	sent.Bowl, sent.HasBowl = bowl, true
	return sent, true
}

func matchPut(s string) (token.Sentence, bool) {
	return matchNameIntoBowl(s, "put ", " into ", token.PUT, false)
}

func matchFold(s string) (token.Sentence, bool) {
	return matchNameIntoBowl(s, "fold ", " into ", token.FOLD, false)
}

func matchAdd(s string) (token.Sentence, bool) {
	return matchNameIntoBowl(s, "add ", " to ", token.ADD, true)
}

func matchRemove(s string) (token.Sentence, bool) {
	return matchNameIntoBowl(s, "remove ", " from ", token.REMOVE, true)
}

func matchCombine(s string) (token.Sentence, bool) {
	return matchNameIntoBowl(s, "combine ", " into ", token.COMBINE, true)
}

func matchDivide(s string) (token.Sentence, bool) {
	return matchNameIntoBowl(s, "divide ", " into ", token.DIVIDE, true)
}

func matchStirIngredient(s string) (token.Sentence, bool) {
	return matchNameIntoBowl(s, "stir ", " into ", token.STIR_INGREDIENT, false)
}

func matchLiquefyContents(s string) (token.Sentence, bool) {
	rest, ok := trimPrefixFold(s, "liquefy contents of ")
	if !ok {
		rest, ok = trimPrefixFold(s, "liquify contents of ")
	}
	if !ok {
		return token.Sentence{}, false
	}
	rest, bowl, ok := parseUtensil(rest, "mixing bowl")
	if !ok || strings.TrimSpace(rest) != "" {
		return token.Sentence{}, false
	}
	return token.Sentence{Kind: token.LIQUEFY_CONTENTS, Bowl: bowl, HasBowl: true}, true
}

func matchLiquefy(s string) (token.Sentence, bool) {
	rest, ok := trimPrefixFold(s, "liquefy ")
	if !ok {
		rest, ok = trimPrefixFold(s, "liquify ")
	}
	rest = strings.TrimSpace(rest)
	if !ok || rest == "" {
		return token.Sentence{}, false
	}
	return token.Sentence{Kind: token.LIQUEFY, Ingredient: rest}, true
}

var stirMinutesRe = regexp.MustCompile(`(?i)^(\d+)\s*minutes?$`)

func matchStirMinutes(s string) (token.Sentence, bool) {
	rest, ok := trimPrefixFold(s, "stir ")
	if !ok {
		return token.Sentence{}, false
	}
	rest, bowl, ok := parseUtensil(rest, "mixing bowl")
	if !ok {
		return token.Sentence{}, false
	}
	rest, ok = trimPrefixFold(strings.TrimSpace(rest), "for ")
	if !ok {
		return token.Sentence{}, false
	}
	m := stirMinutesRe.FindStringSubmatch(strings.TrimSpace(rest))
	if m == nil {
		return token.Sentence{}, false
	}
	n, _ := strconv.Atoi(m[1])
	return token.Sentence{Kind: token.STIR_MINUTES, Bowl: bowl, HasBowl: true, Minutes: n}, true
}

func matchMix(s string) (token.Sentence, bool) {
	rest, ok := trimPrefixFold(s, "mix ")
	if !ok {
		return token.Sentence{}, false
	}
	rest = strings.TrimSpace(rest)
	if strings.EqualFold(rest, "well") {
		return token.Sentence{Kind: token.MIX}, true
	}
	idx := lastIndexFold(rest, " well")
	if idx == -1 {
		return token.Sentence{}, false
	}
	utensil, bowl, ok := parseUtensil(rest[:idx], "mixing bowl")
	if !ok || strings.TrimSpace(utensil) != "" {
		return token.Sentence{}, false
	}
	return token.Sentence{Kind: token.MIX, Bowl: bowl, HasBowl: true}, true
}

func matchClean(s string) (token.Sentence, bool) {
	rest, ok := trimPrefixFold(s, "clean ")
	if !ok {
		return token.Sentence{}, false
	}
	rest, bowl, ok := parseUtensil(rest, "mixing bowl")
	if !ok || strings.TrimSpace(rest) != "" {
		return token.Sentence{}, false
	}
	return token.Sentence{Kind: token.CLEAN, Bowl: bowl, HasBowl: true}, true
}

func matchPour(s string) (token.Sentence, bool) {
	rest, ok := trimPrefixFold(s, "pour contents of ")
	if !ok {
		return token.Sentence{}, false
	}
	rest, bowl, ok := parseUtensil(rest, "mixing bowl")
	if !ok {
		return token.Sentence{}, false
	}
	rest, ok = trimPrefixFold(strings.TrimSpace(rest), "into ")
	if !ok {
		return token.Sentence{}, false
	}
	rest, dish, ok := parseUtensil(rest, "baking dish")
	if !ok || strings.TrimSpace(rest) != "" {
		return token.Sentence{}, false
	}
	return token.Sentence{Kind: token.POUR, Bowl: bowl, HasBowl: true, Dish: dish, HasDish: true}, true
}

func matchSetAside(s string) (token.Sentence, bool) {
	if !strings.EqualFold(strings.TrimSpace(s), "set aside") {
		return token.Sentence{}, false
	}
	return token.Sentence{Kind: token.SET_ASIDE}, true
}

func matchServeWith(s string) (token.Sentence, bool) {
	rest, ok := trimPrefixFold(s, "serve with ")
	rest = strings.TrimSpace(rest)
	if !ok || rest == "" {
		return token.Sentence{}, false
	}
	return token.Sentence{Kind: token.SERVE_WITH, Recipe: rest}, true
}

var hoursRe = regexp.MustCompile(`(?i)^(\d+)\s*hours?$`)

func matchRefrigerate(s string) (token.Sentence, bool) {
	rest, ok := trimPrefixFold(s, "refrigerate")
	if !ok {
		return token.Sentence{}, false
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return token.Sentence{Kind: token.REFRIGERATE}, true
	}
	rest, ok = trimPrefixFold(rest, "for ")
	if !ok {
		return token.Sentence{}, false
	}
	m := hoursRe.FindStringSubmatch(strings.TrimSpace(rest))
	if m == nil {
		return token.Sentence{}, false
	}
	n, _ := strconv.Atoi(m[1])
	return token.Sentence{Kind: token.REFRIGERATE, Hours: &n, HasHours: true}, true
}

func matchServes(s string) (token.Sentence, bool) {
	rest, ok := trimPrefixFold(s, "serves ")
	if !ok {
		return token.Sentence{}, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return token.Sentence{}, false
	}
	return token.Sentence{Kind: token.SERVES, Count: n}, true
}

func matchVerbUntil(s string) (token.Sentence, bool) {
	_, rest, ok := captureVerb(s)
	if !ok {
		return token.Sentence{}, false
	}
	rest = trimOptional(strings.TrimSpace(rest), "the")
	name, after := captureName(rest, " until ")
	verbed := strings.TrimSpace(after)
	if name == "" || after == "" || verbed == "" {
		return token.Sentence{}, false
	}
	return token.Sentence{Kind: token.VERB_UNTIL, Verb: verbed, Ingredient: name}, true
}

func matchVerb(s string) (token.Sentence, bool) {
	verb, rest, ok := captureVerb(s)
	if !ok {
		return token.Sentence{}, false
	}
	name := strings.TrimSpace(trimOptional(strings.TrimSpace(rest), "the"))
	if name == "" {
		return token.Sentence{}, false
	}
	return token.Sentence{Kind: token.VERB, Verb: verb, Ingredient: name}, true
}

// --- shared text-scanning helpers ---

func trimPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

// trimOptional strips word (followed by a space, or matching s
// exactly) from the front of s, case-insensitively; s is returned
// unchanged if word isn't there; this is how every "[the]" and
// similar bracket-optional fragment in spec.md §4.1 is handled.
func trimOptional(s, word string) string {
	if rest, ok := trimPrefixFold(s, word+" "); ok {
		return rest
	}
	if strings.EqualFold(s, word) {
		return ""
	}
	return s
}

var ordinalRe = regexp.MustCompile(`^(\d+)(?:st|nd|rd|th)\b\s*`)

// parseUtensil consumes an optional "the ", an optional ordinal, and
// the required noun phrase ("mixing bowl" or "baking dish") from the
// front of s. ok is false if the noun phrase isn't there at all.
// Ordinal 0 (absent) and explicit "1st" both normalise to index 0
// (spec.md §4.5's unification of the default utensil with "1st").
func parseUtensil(s, noun string) (rest string, index int, ok bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(trimOptional(s, "the"))
	if m := ordinalRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n != 1 {
			index = n
		}
		s = s[len(m[0]):]
	}
	s = strings.TrimSpace(s)
	rest, ok = trimPrefixFold(s, noun)
	return strings.TrimSpace(rest), index, ok
}

// captureName returns the text of s up to the earliest occurrence of
// any stop fragment (each including its own surrounding whitespace,
// e.g. " into "), trimmed, plus whatever follows the matched fragment
// (rest == "" both when nothing follows and when no stop matched —
// callers that need to tell those apart check the matched stop
// separately, which none of spec.md §4.1's rules need to).
func captureName(s string, stops ...string) (name, rest string) {
	lower := strings.ToLower(s)
	bestIdx := -1
	bestLen := 0
	for _, stop := range stops {
		if idx := strings.Index(lower, strings.ToLower(stop)); idx >= 0 && (bestIdx == -1 || idx < bestIdx) {
			bestIdx, bestLen = idx, len(stop)
		}
	}
	if bestIdx == -1 {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(s[:bestIdx]), s[bestIdx+bestLen:]
}

func captureVerb(s string) (verb, rest string, ok bool) {
	i := 0
	for i < len(s) && isASCIILetter(s[i]) {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != ' ' {
		return "", s, false
	}
	return s[:i], strings.TrimSpace(s[i:]), true
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func lastIndexFold(s, substr string) int {
	return strings.LastIndex(strings.ToLower(s), strings.ToLower(substr))
}
