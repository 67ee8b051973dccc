// internal/memmap/registry.go
package memmap

import (
	"fmt"
	"sort"
)

// NotFoundError reports a lookup for a name the map does not contain.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("memmap: unknown field %q", e.Name)
}

// OverlapError reports two descriptors claiming the same bytes on one model.
// A corrupt map silently produces wrong-address reads and writes, so
// construction refuses to proceed.
type OverlapError struct {
	Model int
	A, B  string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf(
		"memmap: fields %q and %q overlap on model %d",
		e.A, e.B, e.Model,
	)
}

// Registry is the validated field set. Built once at startup, immutable
// afterwards, safe to share across concurrent callers.
type Registry struct {
	fields []Field
	byName map[string]int
}

// New validates descriptors and builds a Registry.
// It performs declarative validation only and fails fast: a registry
// that constructs is safe to address with.
func New(fields []Field) (*Registry, error) {
	r := &Registry{
		fields: make([]Field, len(fields)),
		byName: make(map[string]int, len(fields)),
	}
	copy(r.fields, fields)

	for i, f := range r.fields {
		if f.Name == "" {
			return nil, fmt.Errorf("memmap: field %d has no name", i)
		}
		if _, dup := r.byName[f.Name]; dup {
			return nil, fmt.Errorf("memmap: duplicate field %q", f.Name)
		}
		if f.Offset < 0 {
			return nil, fmt.Errorf("memmap: field %q: negative offset", f.Name)
		}
		if w := f.Encoding.Width(); w == 0 {
			return nil, fmt.Errorf("memmap: field %q: unknown encoding %q", f.Name, f.Encoding)
		} else if f.Length != w {
			return nil, fmt.Errorf(
				"memmap: field %q: length %d does not match encoding %s (want %d)",
				f.Name, f.Length, f.Encoding, w,
			)
		}
		if !scaleDividesPowerOfTen(f.scale()) {
			return nil, fmt.Errorf(
				"memmap: field %q: scale %d has no exact decimal rendering",
				f.Name, f.Scale,
			)
		}
		if f.Bool && f.Enum != nil {
			return nil, fmt.Errorf("memmap: field %q: bool and enum are mutually exclusive", f.Name)
		}
		if err := checkEnum(f); err != nil {
			return nil, err
		}
		if f.Limit != nil {
			if f.Limit.Min > f.Limit.Max {
				return nil, fmt.Errorf("memmap: field %q: limit min > max", f.Name)
			}
			if !fitsWidth(uint64(f.Limit.Max), f.Length) {
				return nil, fmt.Errorf("memmap: field %q: limit exceeds %d-byte range", f.Name, f.Length)
			}
		}
		if f.AltOffset < 0 {
			return nil, fmt.Errorf("memmap: field %q: negative alt offset", f.Name)
		}
		r.byName[f.Name] = i
	}

	// Per-model overlap check over the resolved descriptor sets.
	for model := ModelMin; model <= ModelMax; model++ {
		resolved := r.resolved(model)
		sort.Slice(resolved, func(i, j int) bool {
			return resolved[i].Offset < resolved[j].Offset
		})
		for i := 1; i < len(resolved); i++ {
			prev, cur := resolved[i-1], resolved[i]
			if cur.Offset < prev.End() {
				return nil, &OverlapError{Model: model, A: prev.Name, B: cur.Name}
			}
		}
	}

	return r, nil
}

// Lookup returns the baseline descriptor for a name.
func (r *Registry) Lookup(name string) (Field, error) {
	i, ok := r.byName[name]
	if !ok {
		return Field{}, &NotFoundError{Name: name}
	}
	return r.fields[i], nil
}

// Names returns every field name, sorted by baseline offset.
func (r *Registry) Names() []string {
	out := make([]string, len(r.fields))
	for i, f := range r.fields {
		out[i] = f.Name
	}
	sort.Slice(out, func(i, j int) bool {
		return r.fields[r.byName[out[i]]].Offset < r.fields[r.byName[out[j]]].Offset
	})
	return out
}

// OverrideLimit replaces a field's write bound. Limits are policy, not
// protocol, so config may override them. MUST be called during startup,
// before the registry is shared.
func (r *Registry) OverrideLimit(name string, l Limit) error {
	i, ok := r.byName[name]
	if !ok {
		return &NotFoundError{Name: name}
	}
	f := &r.fields[i]
	if f.Access == ReadOnly {
		return fmt.Errorf("memmap: field %q is read-only, limit is meaningless", name)
	}
	if l.Min > l.Max {
		return fmt.Errorf("memmap: field %q: limit min > max", name)
	}
	if !fitsWidth(uint64(l.Max), f.Length) {
		return fmt.Errorf("memmap: field %q: limit exceeds %d-byte range", name, f.Length)
	}
	lc := l
	f.Limit = &lc
	return nil
}

// resolved returns the model's descriptor set with scope filtering and
// offset overrides applied. Used identically by every caller: there is
// exactly one place that decides where a field lives.
func (r *Registry) resolved(model int) []Field {
	out := make([]Field, 0, len(r.fields))
	for _, f := range r.fields {
		switch f.Scope {
		case ScopeBaseline:
			if model >= Model5Plus {
				continue
			}
		case ScopeModel5Plus:
			if model < Model5Plus {
				continue
			}
		}
		if model >= Model5Plus && f.AltOffset > 0 {
			f.Offset = f.AltOffset
		}
		out = append(out, f)
	}
	return out
}

func scaleDividesPowerOfTen(s int) bool {
	if s <= 0 {
		return false
	}
	for s%2 == 0 {
		s /= 2
	}
	for s%5 == 0 {
		s /= 5
	}
	return s == 1
}

func fitsWidth(v uint64, length int) bool {
	switch length {
	case 1:
		return v <= 0xFF
	case 2:
		return v <= 0xFFFF
	case 4:
		return v <= 0xFFFFFFFF
	default:
		return false
	}
}

func checkEnum(f Field) error {
	if f.Enum == nil {
		return nil
	}
	seen := make(map[string]uint32, len(f.Enum))
	for raw, label := range f.Enum {
		if label == "" {
			return fmt.Errorf("memmap: field %q: empty enum label for raw %d", f.Name, raw)
		}
		if prev, dup := seen[label]; dup {
			return fmt.Errorf(
				"memmap: field %q: enum label %q maps both %d and %d",
				f.Name, label, prev, raw,
			)
		}
		seen[label] = raw
		if !fitsWidth(uint64(raw), f.Length) {
			return fmt.Errorf("memmap: field %q: enum raw %d exceeds %d-byte range", f.Name, raw, f.Length)
		}
	}
	return nil
}
