package lexer

import "testing"

func TestNextSectionSplitsOnBlankLines(t *testing.T) {
	input := "Title here.\n\nIngredients.\na: 1 g\n\nMethod.\nPut a into bowl."

	l := New(input)

	var got []string
	for {
		sec, ok := l.NextSection()
		if !ok {
			break
		}
		got = append(got, sec.Text)
	}

	want := []string{
		"Title here.",
		"Ingredients.\na: 1 g",
		"Method.\nPut a into bowl.",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d sections, want %d: %#v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("section %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNextSectionToleratesCRLFAndLeadingBlanks(t *testing.T) {
	input := "\r\n\r\nTitle.\r\n\r\nMethod.\r\nSet aside."

	l := New(input)

	sec, ok := l.NextSection()
	if !ok || sec.Text != "Title." {
		t.Fatalf("first section = %q, %v, want %q, true", sec.Text, ok, "Title.")
	}
	sec, ok = l.NextSection()
	if !ok || sec.Text != "Method.\r\nSet aside." {
		t.Fatalf("second section = %q, %v", sec.Text, ok)
	}
	if _, ok := l.NextSection(); ok {
		t.Fatalf("expected no third section")
	}
}

func TestPeekSectionDoesNotConsume(t *testing.T) {
	l := New("One.\n\nTwo.")

	peeked, ok := l.PeekSection()
	if !ok || peeked.Text != "One." {
		t.Fatalf("peek = %q, %v", peeked.Text, ok)
	}
	next, ok := l.NextSection()
	if !ok || next.Text != "One." {
		t.Fatalf("next after peek = %q, %v", next.Text, ok)
	}
	next, ok = l.NextSection()
	if !ok || next.Text != "Two." {
		t.Fatalf("second next = %q, %v", next.Text, ok)
	}
}

func TestPutBackSectionReplays(t *testing.T) {
	l := New("First.\n\nSecond.")

	first, _ := l.NextSection()
	l.PutBackSection(first)

	replayed, ok := l.NextSection()
	if !ok || replayed.Text != "First." {
		t.Fatalf("replayed = %q, %v", replayed.Text, ok)
	}
}

func TestSectionSpansPointIntoOriginalSource(t *testing.T) {
	input := "Title.\n\nMethod.\nPut a into bowl."
	l := New(input)

	l.NextSection() // Title.
	method, _ := l.NextSection()

	if got := input[method.Start:method.End]; got != method.Text {
		t.Fatalf("span %d:%d = %q, want %q", method.Start, method.End, got, method.Text)
	}
}

func TestSplitSentencesBreaksOnPeriodWhitespace(t *testing.T) {
	text := "Put a into bowl. Add b to bowl. Serves 1."
	sentences := SplitSentences(text, 100)

	want := []string{"Put a into bowl", "Add b to bowl", "Serves 1"}
	if len(sentences) != len(want) {
		t.Fatalf("got %d sentences, want %d: %#v", len(sentences), len(want), sentences)
	}
	for i, s := range sentences {
		if s.Text != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, s.Text, want[i])
		}
	}
	if sentences[0].Start != 100 {
		t.Errorf("first sentence start = %d, want 100 (base offset)", sentences[0].Start)
	}
}

func TestSplitSentencesIgnoresBlankTrailer(t *testing.T) {
	sentences := SplitSentences("Set aside.\n", 0)
	if len(sentences) != 1 || sentences[0].Text != "Set aside" {
		t.Fatalf("sentences = %#v", sentences)
	}
}
