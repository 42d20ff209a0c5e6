package domain

import (
	"strings"
)

// Grammar is a grammar point with an optional example.
type Grammar struct {
	Title              string `json:"title" validate:"required,max=500"`
	Explanation        string `json:"explanation"`
	ExampleSentence    string `json:"exampleSentence"`
	ExampleTranslation string `json:"exampleTranslation"`
}

// VerbConjugation holds the six verb forms a learner may record for a
// vocabulary entry. Every form is optional.
type VerbConjugation struct {
	Present      string `json:"present,omitempty"`
	Negative     string `json:"negative,omitempty"`
	Past         string `json:"past,omitempty"`
	PastNegative string `json:"pastNegative,omitempty"`
	TeForm       string `json:"teForm,omitempty"`
	TaiForm      string `json:"taiForm,omitempty"`
}

// Forms returns the non-empty forms as label/value pairs in display order.
func (c VerbConjugation) Forms() [][2]string {
	all := [][2]string{
		{"Present", c.Present},
		{"Negative", c.Negative},
		{"Past", c.Past},
		{"Past Negative", c.PastNegative},
		{"Te-form", c.TeForm},
		{"Tai-form", c.TaiForm},
	}
	var out [][2]string
	for _, f := range all {
		if v := strings.TrimSpace(f[1]); v != "" {
			out = append(out, [2]string{f[0], v})
		}
	}
	return out
}

// Vocabulary is a word with its reading and meaning.
type Vocabulary struct {
	Word               string           `json:"word" validate:"required,max=200"`
	Reading            string           `json:"reading"`
	Meaning            string           `json:"meaning"`
	ExampleSentence    string           `json:"exampleSentence"`
	ConjugationSummary string           `json:"conjugationSummary,omitempty"`
	Conjugation        *VerbConjugation `json:"conjugation,omitempty"`
}

// Sentence is an example sentence with its translation.
type Sentence struct {
	JapaneseText  string `json:"japaneseText" validate:"required"`
	Translation   string `json:"translation"`
	LinkedGrammar string `json:"linkedGrammar,omitempty"`
}

func (Grammar) Kind() Kind    { return KindGrammar }
func (Vocabulary) Kind() Kind { return KindVocab }
func (Sentence) Kind() Kind   { return KindSentence }

func (g Grammar) front() string { return g.Title }

func (g Grammar) back() string {
	var b strings.Builder
	b.WriteString(g.Title)
	if g.Explanation != "" {
		b.WriteString("\n" + g.Explanation)
	}
	if g.ExampleSentence != "" {
		b.WriteString("\n" + g.ExampleSentence)
		if g.ExampleTranslation != "" {
			b.WriteString(" / " + g.ExampleTranslation)
		}
	}
	return b.String()
}

func (g Grammar) searchable() []string { return []string{g.Title, g.Explanation} }

func (v Vocabulary) front() string { return v.Word }

func (v Vocabulary) back() string {
	var b strings.Builder
	b.WriteString(v.Word)
	if v.Reading != "" {
		b.WriteString("\nReading: " + v.Reading)
	}
	meaning := v.Meaning
	if meaning == "" {
		meaning = "-"
	}
	b.WriteString("\n" + meaning)
	if v.Conjugation != nil {
		forms := v.Conjugation.Forms()
		if len(forms) > 0 {
			b.WriteString("\nVerb conjugation:")
			for _, f := range forms {
				b.WriteString("\n  " + f[0] + ": " + f[1])
			}
		}
	}
	return b.String()
}

func (v Vocabulary) searchable() []string { return []string{v.Word, v.Meaning, v.Reading} }

func (s Sentence) front() string { return s.JapaneseText }

func (s Sentence) back() string {
	if s.Translation == "" {
		return s.JapaneseText
	}
	return s.JapaneseText + "\n" + s.Translation
}

func (s Sentence) searchable() []string { return []string{s.JapaneseText, s.Translation} }
