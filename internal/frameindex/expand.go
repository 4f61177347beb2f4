package frameindex

import (
	"fmt"

	"posekit/internal/session"
)

// Table is the per-frame metadata view produced by Expand. Row i holds the
// attributes of the session that owns frame i.
type Table struct {
	columns []string
	// rows holds one shared attribute row per distinct session id.
	rows map[uint32]session.Attributes
	// frames[i] is the session id owning frame i.
	frames []uint32
}

// Expand broadcasts registry attributes onto every frame in ids. Row order
// matches input order and the row count equals len(ids) exactly. The expansion
// is pure: the result depends only on ids and the registry contents.
func Expand(ids []uint32, reg *session.Registry) (*Table, error) {
	t := &Table{
		columns: reg.Columns(),
		rows:    make(map[uint32]session.Attributes),
		frames:  append([]uint32(nil), ids...),
	}
	for i, id := range ids {
		if _, ok := t.rows[id]; ok {
			continue
		}
		attrs, err := reg.Lookup(id)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		t.rows[id] = attrs
	}
	return t, nil
}

// Len returns the number of frames (rows).
func (t *Table) Len() int { return len(t.frames) }

// Columns returns the attribute column names.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// SessionID returns the session id owning frame i.
func (t *Table) SessionID(i int) uint32 { return t.frames[i] }

// Row returns the attribute row for frame i.
func (t *Table) Row(i int) session.Attributes {
	return t.rows[t.frames[i]]
}

// Column materializes one attribute column across all frames.
func (t *Table) Column(name string) ([]string, error) {
	found := false
	for _, col := range t.columns {
		if col == name {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("no attribute column %q", name)
	}
	out := make([]string, len(t.frames))
	for i, id := range t.frames {
		v, _ := t.rows[id].Get(name)
		out[i] = v
	}
	return out, nil
}
