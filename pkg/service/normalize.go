// Row flattening: the translation from stored rows to the client-visible
// record shape. An object row is one record under its own ID; an
// object-array row expands to one record per item under synthesized
// composite IDs. Positional rows are tolerated at read time by mapping
// values through the definition's field order; migration is the real fix.
package service

import (
	"github.com/lupapyme/registro/pkg/types"
)

// FlattenRow converts one stored row into its flattened records. def is
// only consulted for positional rows; it may be nil, in which case a
// positional row flattens to a record with no data fields.
func FlattenRow(reg *types.Registro, def *types.ModelDefinition) []types.FlatRecord {
	switch reg.Data.Encoding() {
	case types.EncodingObjectArray:
		items := reg.Data.Items()
		out := make([]types.FlatRecord, len(items))
		for i, item := range items {
			out[i] = types.FlatRecord{
				ID:         types.EncodeItemID(reg.ID, i),
				TenantID:   reg.TenantID,
				CreatedAt:  reg.CreatedAt,
				OriginalID: reg.ID,
				ItemIndex:  i,
				Fields:     copyFields(item),
			}
		}
		return out
	case types.EncodingPositional:
		fields := map[string]any{}
		if def != nil {
			fields = positionalFields(reg.Data.Positional(), def.CamposInOrder())
		}
		return []types.FlatRecord{{
			ID:        reg.ID,
			TenantID:  reg.TenantID,
			CreatedAt: reg.CreatedAt,
			Fields:    fields,
		}}
	default:
		return []types.FlatRecord{{
			ID:        reg.ID,
			TenantID:  reg.TenantID,
			CreatedAt: reg.CreatedAt,
			Fields:    copyFields(reg.Data.Object()),
		}}
	}
}

// positionalFields pairs values with fields by display order. Values past
// the end of the field list are dropped.
func positionalFields(values []any, campos []types.FieldDef) map[string]any {
	fields := make(map[string]any, len(campos))
	for i, c := range campos {
		if i >= len(values) {
			break
		}
		fields[c.Name] = values[i]
	}
	return fields
}

// copyFields copies a data map so flattened records never alias payload
// storage. A nil map copies to an empty one.
func copyFields(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
