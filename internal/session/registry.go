package session

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateSession indicates two records share a session id.
	ErrDuplicateSession = errors.New("duplicate session id")
	// ErrMissingField indicates a record lacks a required field.
	ErrMissingField = errors.New("missing required field")
	// ErrUnknownSession indicates a lookup for an id the registry does not hold.
	ErrUnknownSession = errors.New("unknown session id")
)

// Record is one session row: a unique id, the path to the session's pose
// source file, and categorical attribute values matching the registry's
// column schema positionally.
type Record struct {
	ID     uint32
	Path   string
	Values []string
}

// Attributes is one session's categorical metadata, read-only.
type Attributes struct {
	columns []string
	values  []string
}

// Columns returns the attribute column names in declaration order.
func (a Attributes) Columns() []string {
	return append([]string(nil), a.columns...)
}

// Values returns the attribute values in column order.
func (a Attributes) Values() []string {
	return append([]string(nil), a.values...)
}

// Get returns the value for the named column.
func (a Attributes) Get(name string) (string, bool) {
	for i, col := range a.columns {
		if col == name {
			return a.values[i], true
		}
	}
	return "", false
}

// Registry holds one entry per session, keyed by id, preserving input order.
type Registry struct {
	columns []string
	records []Record
	byID    map[uint32]int
}

// Build validates an ordered record sequence against the declared attribute
// columns and indexes it by session id. Every record must carry a source path
// and exactly one value per column.
func Build(columns []string, records []Record) (*Registry, error) {
	reg := &Registry{
		columns: append([]string(nil), columns...),
		records: make([]Record, 0, len(records)),
		byID:    make(map[uint32]int, len(records)),
	}
	for i, rec := range records {
		if _, ok := reg.byID[rec.ID]; ok {
			return nil, fmt.Errorf("%w: %d (rows %d and %d)", ErrDuplicateSession, rec.ID, reg.byID[rec.ID], i)
		}
		if rec.Path == "" {
			return nil, fmt.Errorf("%w: session %d has no path", ErrMissingField, rec.ID)
		}
		if len(rec.Values) != len(reg.columns) {
			return nil, fmt.Errorf("session %d: %d attribute values for %d columns", rec.ID, len(rec.Values), len(reg.columns))
		}
		reg.byID[rec.ID] = len(reg.records)
		reg.records = append(reg.records, rec)
	}
	return reg, nil
}

// Lookup returns the attributes for a session id.
func (r *Registry) Lookup(id uint32) (Attributes, error) {
	idx, ok := r.byID[id]
	if !ok {
		return Attributes{}, fmt.Errorf("%w: %d", ErrUnknownSession, id)
	}
	return Attributes{columns: r.columns, values: r.records[idx].Values}, nil
}

// PathFor returns the source path registered for a session id.
func (r *Registry) PathFor(id uint32) (string, error) {
	idx, ok := r.byID[id]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownSession, id)
	}
	return r.records[idx].Path, nil
}

// IDs returns every registered session id in input order.
func (r *Registry) IDs() []uint32 {
	ids := make([]uint32, len(r.records))
	for i, rec := range r.records {
		ids[i] = rec.ID
	}
	return ids
}

// Has reports whether the registry holds the given id.
func (r *Registry) Has(id uint32) bool {
	_, ok := r.byID[id]
	return ok
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int { return len(r.records) }

// Columns returns the attribute column names in declaration order.
func (r *Registry) Columns() []string {
	return append([]string(nil), r.columns...)
}

// Records returns the registered records in input order.
func (r *Registry) Records() []Record {
	return append([]Record(nil), r.records...)
}
