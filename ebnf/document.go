package ebnf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arr-ai/frozen"
)

var (
	ErrDuplicateProduction = errors.New("duplicate production")
	ErrInvalidArgument     = errors.New("invalid argument")
)

// Document is an EBNF grammar: productions keyed by name, iterated in
// insertion order. A Document is not safe for concurrent mutation.
type Document struct {
	names       []string
	productions map[string]*Production
	comments    int
}

func NewDocument() *Document {
	return &Document{productions: map[string]*Production{}}
}

// Add inserts a production under a new name.
func (d *Document) Add(name string, prod *Production) error {
	if _, has := d.productions[name]; has {
		return fmt.Errorf("%w: %q", ErrDuplicateProduction, name)
	}
	if prod.Attrs == nil {
		prod.Attrs = Attrs{}
	}
	d.names = append(d.names, name)
	d.productions[name] = prod
	return nil
}

func (d *Document) Get(name string) *Production {
	return d.productions[name]
}

func (d *Document) Has(name string) bool {
	_, has := d.productions[name]
	return has
}

func (d *Document) Len() int {
	return len(d.names)
}

// Comments is the number of comments in the source the document was parsed
// from. String does not reproduce them.
func (d *Document) Comments() int {
	return d.comments
}

// Names returns the production names in insertion order.
func (d *Document) Names() []string {
	return append([]string{}, d.names...)
}

func (d *Document) nameSet() frozen.Set[string] {
	names := frozen.NewSet[string]()
	for _, name := range d.names {
		names = names.With(name)
	}
	return names
}

// Each calls f for every production in insertion order.
func (d *Document) Each(f func(name string, prod *Production)) {
	for _, name := range d.names {
		f(name, d.productions[name])
	}
}

// StartProduction is the production marked <start>, or failing that the first
// one declared. It is "" for an empty document.
func (d *Document) StartProduction() string {
	for _, name := range d.names {
		if d.productions[name].IsStart() {
			return name
		}
	}
	if len(d.names) > 0 {
		return d.names[0]
	}
	return ""
}

// SetStartProduction marks name as the only start production.
func (d *Document) SetStartProduction(name string) error {
	if !d.Has(name) {
		return fmt.Errorf("%w: start production %q must be present in the grammar", ErrInvalidArgument, name)
	}
	for _, n := range d.names {
		if n == name {
			d.productions[n].Attrs[AttrStart] = true
		} else {
			delete(d.productions[n].Attrs, AttrStart)
		}
	}
	return nil
}

// FindProductionByExpr returns the name of the first production whose body
// equals e, or "".
func (d *Document) FindProductionByExpr(e Expr) string {
	for _, name := range d.names {
		if Equal(d.productions[name].Expr, e) {
			return name
		}
	}
	return ""
}

// Equal compares documents production by production, in order.
func (d *Document) Equal(other *Document) bool {
	if d == other {
		return true
	}
	if d == nil || other == nil || len(d.names) != len(other.names) {
		return false
	}
	for i, name := range d.names {
		if other.names[i] != name || !d.productions[name].Equal(other.productions[name]) {
			return false
		}
	}
	return true
}

func (d *Document) Clone() *Document {
	clone := NewDocument()
	clone.comments = d.comments
	for _, name := range d.names {
		clone.names = append(clone.names, name)
		clone.productions[name] = d.productions[name].Clone()
	}
	return clone
}

// String renders the document in source form; the result parses back to an
// equal document.
func (d *Document) String() string {
	var sb strings.Builder
	for _, name := range d.names {
		sb.WriteString(name)
		sb.WriteString(d.productions[name].String())
		sb.WriteString("\n")
	}
	return sb.String()
}
