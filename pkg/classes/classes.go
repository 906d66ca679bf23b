package classes

// Package classes holds the object class configuration.
// The class table is fixed at startup and never mutated while annotating.

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
)

// Class is one annotatable object class.
type Class struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"` // #rrggbb
}

// Set is an immutable collection of classes, ordered by insertion.
type Set struct {
	ordered []Class
	byID    map[int]Class
}

// DefaultSet returns the built-in six-class palette.
func DefaultSet() *Set {
	set, _ := NewSet([]Class{
		{0, "object 1", "#ff0000"},
		{1, "object 2", "#00ff00"},
		{2, "object 3", "#0000ff"},
		{3, "object 4", "#ffff00"},
		{4, "object 5", "#ff00ff"},
		{5, "object 6", "#00ffff"},
	})
	return set
}

// NewSet validates the class list and builds a Set.
func NewSet(list []Class) (*Set, error) {
	s := &Set{
		byID: map[int]Class{},
	}
	for _, c := range list {
		if c.ID < 0 {
			return nil, fmt.Errorf("Class '%v' has negative id %v", c.Name, c.ID)
		}
		if c.Name == "" {
			return nil, fmt.Errorf("Class %v has an empty name", c.ID)
		}
		if _, _, _, err := ParseHexColor(c.Color); err != nil {
			return nil, fmt.Errorf("Class '%v': %w", c.Name, err)
		}
		if _, exists := s.byID[c.ID]; exists {
			return nil, fmt.Errorf("Duplicate class id %v", c.ID)
		}
		s.ordered = append(s.ordered, c)
		s.byID[c.ID] = c
	}
	if len(s.ordered) == 0 {
		return nil, fmt.Errorf("Class list is empty")
	}
	return s, nil
}

// Load reads a class table from a JSON file (an array of Class objects).
func Load(filename string) (*Set, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	list := []Class{}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("Failed to parse class file %v: %w", filename, err)
	}
	return NewSet(list)
}

// Get returns the class with the given id.
func (s *Set) Get(id int) (Class, bool) {
	c, ok := s.byID[id]
	return c, ok
}

func (s *Set) Has(id int) bool {
	_, ok := s.byID[id]
	return ok
}

// List returns the classes in their configured order.
func (s *Set) List() []Class {
	out := make([]Class, len(s.ordered))
	copy(out, s.ordered)
	return out
}

func (s *Set) Count() int {
	return len(s.ordered)
}

// First returns the first configured class (the default selection).
func (s *Set) First() Class {
	return s.ordered[0]
}

// RGBA parses the class color. Invalid colors come out as opaque black,
// but NewSet rejects those up front.
func (c Class) RGBA() color.RGBA {
	r, g, b, err := ParseHexColor(c.Color)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// ContrastColor returns black or white, whichever reads better on top of
// the class color. Uses the standard perceived-brightness weighting.
func (c Class) ContrastColor() color.RGBA {
	r, g, b, _ := ParseHexColor(c.Color)
	brightness := (int(r)*299 + int(g)*587 + int(b)*114) / 1000
	if brightness > 128 {
		return color.RGBA{A: 255} // black
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}

// ParseHexColor parses a #rrggbb string.
func ParseHexColor(s string) (r, g, b uint8, err error) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, fmt.Errorf("Invalid color '%v' (expected #rrggbb)", s)
	}
	var ri, gi, bi int
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &ri, &gi, &bi); err != nil {
		return 0, 0, 0, fmt.Errorf("Invalid color '%v' (expected #rrggbb)", s)
	}
	return uint8(ri), uint8(gi), uint8(bi), nil
}
