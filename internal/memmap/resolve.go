// internal/memmap/resolve.go
package memmap

import (
	"fmt"
	"sort"
)

// View is the descriptor set effective for one machine model, with
// model-5+ offset overrides already applied. Both decode and encode
// paths address fields through a View, never through ad hoc arithmetic.
type View struct {
	model  int
	groups int // 0 = not yet narrowed by image data
	fields []Field
	byName map[string]int
}

// ForModel resolves the registry for a board-reported model id.
func (r *Registry) ForModel(model int) (*View, error) {
	if model < ModelMin || model > ModelMax {
		return nil, fmt.Errorf("memmap: model id %d out of range %d-%d", model, ModelMin, ModelMax)
	}
	fields := r.resolved(model)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Offset < fields[j].Offset })
	return newView(model, 0, fields), nil
}

func newView(model, groups int, fields []Field) *View {
	v := &View{
		model:  model,
		groups: groups,
		fields: fields,
		byName: make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		v.byName[f.Name] = i
	}
	return v
}

// ForGroups narrows the view to the group count the image reports.
// Group-2/3 blocks exist per the num_groups field, not per model id, so
// this filter runs after an initial decode.
func (v *View) ForGroups(n int) *View {
	if n < 1 {
		n = 1
	}
	kept := make([]Field, 0, len(v.fields))
	for _, f := range v.fields {
		if f.Group > n {
			continue
		}
		kept = append(kept, f)
	}
	return newView(v.model, n, kept)
}

// Model returns the model id the view was resolved for.
func (v *View) Model() int { return v.model }

// Lookup returns the effective descriptor for a name.
func (v *View) Lookup(name string) (Field, error) {
	i, ok := v.byName[name]
	if !ok {
		return Field{}, &NotFoundError{Name: name}
	}
	return v.fields[i], nil
}

// Fields returns the effective descriptors in offset order.
// Callers MUST NOT mutate the returned slice.
func (v *View) Fields() []Field { return v.fields }
