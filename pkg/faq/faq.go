package faq

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Set is the read-only FAQ reference consulted by the intent classifier.
// Questions are canonical French platform questions; a query matching one
// of them routes to the document backend.
type Set struct {
	questions []string
	answers   map[string]string
}

// NewSet builds a Set from parallel question/answer pairs.
func NewSet(pairs map[string]string) *Set {
	s := &Set{answers: make(map[string]string, len(pairs))}
	for q, a := range pairs {
		s.questions = append(s.questions, q)
		s.answers[normalize(q)] = a
	}
	return s
}

// Empty returns a Set with no entries.
func Empty() *Set {
	return &Set{answers: map[string]string{}}
}

// LoadCSV reads a two-column question,answer CSV. A header row named
// "question"/"answer" is skipped.
func LoadCSV(path string) (*Set, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open faq file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse faq csv: %w", err)
	}

	s := &Set{answers: make(map[string]string, len(records))}
	for i, rec := range records {
		if len(rec) < 2 {
			continue
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "question") {
			continue
		}
		question := strings.TrimSpace(rec[0])
		answer := strings.TrimSpace(rec[1])
		if question == "" {
			continue
		}
		s.questions = append(s.questions, question)
		s.answers[normalize(question)] = answer
	}

	return s, nil
}

// Questions returns the canonical question list in file order.
func (s *Set) Questions() []string {
	out := make([]string, len(s.questions))
	copy(out, s.questions)
	return out
}

// Answer looks up the answer for an exact (case-insensitive) question.
func (s *Set) Answer(question string) (string, bool) {
	a, ok := s.answers[normalize(question)]
	return a, ok
}

func (s *Set) Len() int {
	return len(s.questions)
}

func normalize(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
