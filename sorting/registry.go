// Package sorting resolves caller supplied sort field names to typed accessors
// for one entity type, and applies the resulting order either to a gorm query
// or to an in-memory slice.
//
// Ordering is not stable across ties: the database applies its own
// tie-break and the in-memory path uses an unstable sort.
package sorting

import (
	"slices"
	"strings"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rpupo63/unified-blog-backend/errs"
)

type Direction int

const (
	Asc Direction = iota
	Desc
)

// ParseDirection recognises "asc" and "desc" in any case. Anything else,
// including the empty string, is ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return Desc
	}
	return Asc
}

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Field describes one sortable field of T.
type Field[T any] struct {
	// Name is the public field name, matched case-insensitively.
	Name string
	// Column is the storage column used when ordering queries.
	Column string
	// Compare orders two values in ascending order.
	Compare func(a, b *T) int
}

// Registry maps field names to fields for a single entity type. It is built
// once and is safe for concurrent use.
type Registry[T any] struct {
	entity string
	fields map[string]Field[T]

	// raw caller input -> resolved field; entries are never evicted
	resolved sync.Map
}

func NewRegistry[T any](entity string, fields ...Field[T]) *Registry[T] {
	r := &Registry[T]{
		entity: entity,
		fields: make(map[string]Field[T], len(fields)),
	}
	for _, f := range fields {
		r.fields[strings.ToLower(f.Name)] = f
	}
	return r
}

// Resolve returns the field registered under name. Unknown names fail with
// errs.ErrInvalidSortField and are not cached.
func (r *Registry[T]) Resolve(name string) (Field[T], error) {
	if cached, ok := r.resolved.Load(name); ok {
		return cached.(Field[T]), nil
	}

	f, ok := r.fields[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Field[T]{}, errs.NewInvalidSortFieldError(r.entity, name, r.Names())
	}
	r.resolved.Store(name, f)
	return f, nil
}

// Names lists the registered field names.
func (r *Registry[T]) Names() []string {
	names := make([]string, 0, len(r.fields))
	for _, f := range r.fields {
		names = append(names, f.Name)
	}
	slices.Sort(names)
	return names
}

// Scope returns a gorm scope ordering by the named field. An empty name
// leaves the query order untouched.
func (r *Registry[T]) Scope(name string, dir Direction) (func(*gorm.DB) *gorm.DB, error) {
	if strings.TrimSpace(name) == "" {
		return func(db *gorm.DB) *gorm.DB { return db }, nil
	}

	f, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}

	return func(db *gorm.DB) *gorm.DB {
		return db.Order(clause.OrderByColumn{
			Column: clause.Column{Table: clause.CurrentTable, Name: f.Column},
			Desc:   dir == Desc,
		})
	}, nil
}

// Sort orders items in place by the named field. An empty name keeps the
// current order.
func (r *Registry[T]) Sort(items []T, name string, dir Direction) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}

	f, err := r.Resolve(name)
	if err != nil {
		return err
	}

	slices.SortFunc(items, func(a, b T) int {
		c := f.Compare(&a, &b)
		if dir == Desc {
			return -c
		}
		return c
	})
	return nil
}
