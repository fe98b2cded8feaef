// Package object implements the dynamic object model of the exercise
// bridge: the closed set of runtime value variants, the class-definition
// registry built at exercise construction time, and instances created
// from those definitions.
package object

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the runtime variant of a JikiObject.
type Kind string

const (
	KindNumber     Kind = "number"
	KindString     Kind = "string"
	KindBoolean    Kind = "boolean"
	KindList       Kind = "list"
	KindDictionary Kind = "dictionary"
	KindInstance   Kind = "instance"
)

// JikiObject is the closed set of values the bridge passes between the
// interpreted script and host code. Every host-side check pattern-matches
// on the variant; there is no implicit coercion between variants.
type JikiObject interface {
	// Kind returns the runtime variant tag.
	Kind() Kind

	// Inspect returns the student-facing display form of the value.
	Inspect() string

	// Equal reports deep equality with another value. Numbers compare
	// with a small tolerance; instances compare by identity.
	Equal(other JikiObject) bool
}

const numberTolerance = 1e-9

// Number is a 64-bit floating point value.
type Number struct {
	Val float64
}

func NewNumber(v float64) *Number { return &Number{Val: v} }

func (n *Number) Kind() Kind { return KindNumber }

func (n *Number) Inspect() string {
	if n.Val == math.Trunc(n.Val) && math.Abs(n.Val) < 1e15 {
		return strconv.FormatInt(int64(n.Val), 10)
	}
	return strconv.FormatFloat(n.Val, 'g', -1, 64)
}

func (n *Number) Equal(other JikiObject) bool {
	o, ok := other.(*Number)
	return ok && math.Abs(n.Val-o.Val) <= numberTolerance
}

// String is a text value.
type String struct {
	Val string
}

func NewString(v string) *String { return &String{Val: v} }

func (s *String) Kind() Kind { return KindString }

func (s *String) Inspect() string { return fmt.Sprintf("%q", s.Val) }

func (s *String) Equal(other JikiObject) bool {
	o, ok := other.(*String)
	return ok && s.Val == o.Val
}

// Boolean is a truth value.
type Boolean struct {
	Val bool
}

func NewBoolean(v bool) *Boolean { return &Boolean{Val: v} }

func (b *Boolean) Kind() Kind { return KindBoolean }

func (b *Boolean) Inspect() string { return strconv.FormatBool(b.Val) }

func (b *Boolean) Equal(other JikiObject) bool {
	o, ok := other.(*Boolean)
	return ok && b.Val == o.Val
}

// List is an ordered sequence of values.
type List struct {
	Items []JikiObject
}

func NewList(items ...JikiObject) *List { return &List{Items: items} }

func (l *List) Kind() Kind { return KindList }

func (l *List) Inspect() string {
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts[i] = item.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l *List) Equal(other JikiObject) bool {
	o, ok := other.(*List)
	if !ok || len(l.Items) != len(o.Items) {
		return false
	}
	for i, item := range l.Items {
		if !item.Equal(o.Items[i]) {
			return false
		}
	}
	return true
}

// Dictionary is a string-keyed mapping. Insertion order is irrelevant;
// Inspect renders keys sorted so display is deterministic.
type Dictionary struct {
	Entries map[string]JikiObject
}

func NewDictionary(entries map[string]JikiObject) *Dictionary {
	if entries == nil {
		entries = make(map[string]JikiObject)
	}
	return &Dictionary{Entries: entries}
}

func (d *Dictionary) Kind() Kind { return KindDictionary }

func (d *Dictionary) Inspect() string {
	keys := make([]string, 0, len(d.Entries))
	for k := range d.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%q: %s", k, d.Entries[k].Inspect())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (d *Dictionary) Equal(other JikiObject) bool {
	o, ok := other.(*Dictionary)
	if !ok || len(d.Entries) != len(o.Entries) {
		return false
	}
	for k, v := range d.Entries {
		ov, present := o.Entries[k]
		if !present || !v.Equal(ov) {
			return false
		}
	}
	return true
}
