package control

import (
	"strconv"
	"strings"
	"sync"
)

// Field selects one of the two mass inputs.
type Field int

const (
	FieldA Field = iota
	FieldB
)

func (f Field) String() string {
	if f == FieldB {
		return "B"
	}
	return "A"
}

// TextMass holds the raw text of the two mass inputs. Only the active field
// receives edits. It is safe to edit from a UI goroutine while a driver reads
// the masses.
type TextMass struct {
	mu     sync.Mutex
	text   [2]string
	active Field
}

func NewTextMass(a, b float64) *TextMass {
	return &TextMass{
		text: [2]string{formatMass(a), formatMass(b)},
	}
}

func formatMass(m float64) string {
	return strconv.FormatFloat(m, 'g', -1, 64)
}

// Masses parses both fields. Text that is not a number yields 0.
func (t *TextMass) Masses() (float64, float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ParseMass(t.text[FieldA]), ParseMass(t.text[FieldB])
}

// ParseMass converts user text to a mass, falling back to 0 on failure.
func ParseMass(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func (t *TextMass) Active() Field {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *TextMass) Text(f Field) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text[f]
}

// Toggle moves editing to the other field.
func (t *TextMass) Toggle() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = 1 - t.active
}

// Type appends s to the active field.
func (t *TextMass) Type(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.text[t.active] += s
}

// Backspace removes the last rune of the active field.
func (t *TextMass) Backspace() {
	t.mu.Lock()
	defer t.mu.Unlock()
	r := []rune(t.text[t.active])
	if len(r) == 0 {
		return
	}
	t.text[t.active] = string(r[:len(r)-1])
}

// Set replaces the text of field f.
func (t *TextMass) Set(f Field, s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.text[f] = s
}
