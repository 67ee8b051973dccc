// internal/codec/resolve.go
package codec

import (
	"fmt"

	"github.com/tamzrod/ascaso-link/internal/memmap"
)

// Well-known field names the resolver depends on.
const (
	FieldModel     = "model"
	FieldNumGroups = "num_groups"
)

// ResolveView derives the effective descriptor set from the image
// itself: the model id picks scope and offsets, then the board-reported
// group count gates the group-2/3 blocks. When the group-count byte is
// outside the image (short read), the model id's implied count is the
// fallback.
func ResolveView(img Image, reg *memmap.Registry) (*memmap.View, error) {
	modelField, err := reg.Lookup(FieldModel)
	if err != nil {
		return nil, err
	}
	modelVal, err := Decode(img, modelField)
	if err != nil {
		return nil, fmt.Errorf("codec: model id unreadable: %w", err)
	}
	model := int(modelVal.Raw)

	view, err := reg.ForModel(model)
	if err != nil {
		return nil, err
	}

	groups := memmap.GroupCount(model)
	if gf, err := view.Lookup(FieldNumGroups); err == nil {
		if gv, err := Decode(img, gf); err == nil && gv.Raw > 0 {
			groups = int(gv.Raw)
		}
	}

	return view.ForGroups(groups), nil
}
