package lang

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Language is the user-facing language of a query or reply.
type Language string

const (
	French  Language = "French"
	English Language = "English"
)

// Detector identifies whether a text is French or English.
// Detection is statistical and local; no network call is involved.
type Detector struct {
	detector lingua.LanguageDetector
}

func NewDetector() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.French).
		Build()
	return &Detector{detector: detector}
}

// Detect classifies text as French or English. Ambiguous, empty or
// undetectable input falls back to English; Detect never fails.
func (d *Detector) Detect(text string) Language {
	text = strings.TrimSpace(text)
	if text == "" {
		return English
	}

	detected, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return English
	}
	if detected == lingua.French {
		return French
	}
	return English
}
