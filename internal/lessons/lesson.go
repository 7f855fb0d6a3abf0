// Package lessons holds the tutorial catalog and the practice exercise
// attached to each lesson.
package lessons

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNotFound is returned by Get for an unknown lesson ID.
var ErrNotFound = errors.New("lesson not found")

// DefaultMaxLength caps how many characters an exercise answer may hold.
const DefaultMaxLength = 500

// Difficulty is the audience level of a lesson.
type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// Lesson is one entry in the tutorial catalog.
type Lesson struct {
	ID          int
	Title       string
	Description string
	Duration    string
	Difficulty  Difficulty
	Topics      []string
	Exercise    Exercise
}

// Exercise is the free-text practice question graded by a rule set.
type Exercise struct {
	Prompt      string
	RuleSetID   string
	Placeholder string
	MaxLength   int
}

// All returns every lesson in catalog order.
func All() []Lesson {
	out := make([]Lesson, len(catalog))
	for i, l := range catalog {
		out[i] = l.clone()
	}
	return out
}

// Get returns the lesson with the given ID.
func Get(id int) (Lesson, error) {
	for _, l := range catalog {
		if l.ID == id {
			return l.clone(), nil
		}
	}
	return Lesson{}, fmt.Errorf("%w: %d", ErrNotFound, id)
}

// Count returns the number of lessons in the catalog.
func Count() int {
	return len(catalog)
}

func (l Lesson) clone() Lesson {
	l.Topics = slices.Clone(l.Topics)
	return l
}
