// Mutation routing for composite record IDs. Get, Update and Delete all
// start by decoding the ID; a composite ID targets one item of an
// object-array row, a plain ID targets the whole stored row. The three
// operations deliberately do not treat a plain ID on an array row the same
// way: Get reads item 0, while Update and Delete act on the whole row.
package service

import (
	"errors"

	"github.com/lupapyme/registro/pkg/types"
)

// Get fetches one flattened record. For an array row addressed without an
// index the first item is returned; an index past the end of the array is
// not found.
func (s *Service) Get(id, tenantID string) types.RecordResult {
	rowID, index, composite := types.DecodeRecordID(id)
	if !composite {
		rowID, index = id, 0
	}

	reg, err := s.records.FindOne(rowID, tenantID)
	if err != nil {
		return s.recordFailure("fetch", id, err)
	}

	if reg.Data.IsArray() {
		flat := s.flattenAll(tenantID, []*types.Registro{reg})
		if index < 0 || index >= len(flat) {
			return types.RecordResult{Success: false, Error: "record not found"}
		}
		return types.RecordResult{Success: true, Data: &flat[index]}
	}

	flat := s.flattenAll(tenantID, []*types.Registro{reg})
	return types.RecordResult{Success: true, Data: &flat[0]}
}

// Create stores a new record. The payload is stored as given; the only
// shape rule is that the deprecated positional encoding is refused.
func (s *Service) Create(tenantID, tipo string, data types.Payload) types.CreateResult {
	if data.Encoding() == types.EncodingPositional {
		return types.CreateResult{Success: false, Error: "positional data is no longer accepted"}
	}
	id, err := s.records.Create(tenantID, tipo, data)
	if err != nil {
		s.logger.Error("creating record for tenant %s: %s", tenantID, err)
		return types.CreateResult{Success: false, Error: "could not create record"}
	}
	return types.CreateResult{Success: true, ID: id}
}

// Update modifies a record. A composite ID on an array row shallow-merges
// the patch into that item and writes the whole array back; any other
// combination replaces the row's data with the patch.
func (s *Service) Update(id, tenantID string, patch map[string]any) types.OpResult {
	rowID, index, composite := types.DecodeRecordID(id)

	if composite {
		reg, err := s.records.FindOne(rowID, tenantID)
		if err != nil {
			return s.opFailure("update", id, err)
		}
		if reg.Data.Encoding() == types.EncodingObjectArray {
			items := reg.Data.Items()
			if index >= len(items) {
				return types.OpResult{Success: false, Error: "record not found"}
			}
			merged := copyFields(items[index])
			for k, v := range patch {
				merged[k] = v
			}
			updated := make([]map[string]any, len(items))
			copy(updated, items)
			updated[index] = merged
			if err := s.records.UpdateData(rowID, tenantID, types.ObjectArrayPayload(updated)); err != nil {
				return s.opFailure("update", id, err)
			}
			return types.OpResult{Success: true}
		}
		// Composite ID over a non-array row: the decode was a false
		// positive or the row changed shape. Fall through to full replace
		// of the row the decode resolved to.
		id = rowID
	}

	if err := s.records.UpdateData(id, tenantID, types.ObjectPayload(patch)); err != nil {
		return s.opFailure("update", id, err)
	}
	return types.OpResult{Success: true}
}

// Delete removes a record. A composite ID on an array row drops that item,
// shifting the indices of the items after it; deleting the last item
// deletes the row. An index past the end of the array is a no-op success.
// Any other combination deletes the whole row.
func (s *Service) Delete(id, tenantID string) types.OpResult {
	rowID, index, composite := types.DecodeRecordID(id)

	if composite {
		reg, err := s.records.FindOne(rowID, tenantID)
		if err != nil {
			return s.opFailure("delete", id, err)
		}
		if reg.Data.Encoding() == types.EncodingObjectArray {
			items := reg.Data.Items()
			if index >= len(items) {
				// Nothing at that index; the outcome the caller asked for
				// already holds.
				return types.OpResult{Success: true}
			}
			remaining := make([]map[string]any, 0, len(items)-1)
			remaining = append(remaining, items[:index]...)
			remaining = append(remaining, items[index+1:]...)
			if len(remaining) == 0 {
				if err := s.records.Delete(rowID, tenantID); err != nil {
					return s.opFailure("delete", id, err)
				}
				return types.OpResult{Success: true}
			}
			if err := s.records.UpdateData(rowID, tenantID, types.ObjectArrayPayload(remaining)); err != nil {
				return s.opFailure("delete", id, err)
			}
			return types.OpResult{Success: true}
		}
		id = rowID
	}

	if err := s.records.Delete(id, tenantID); err != nil {
		return s.opFailure("delete", id, err)
	}
	return types.OpResult{Success: true}
}

// recordFailure maps a store error to a RecordResult envelope, logging
// anything that is not a plain not-found.
func (s *Service) recordFailure(verb, id string, err error) types.RecordResult {
	return types.RecordResult{Success: false, Error: s.failureMessage(verb, id, err)}
}

// opFailure maps a store error to an OpResult envelope.
func (s *Service) opFailure(verb, id string, err error) types.OpResult {
	return types.OpResult{Success: false, Error: s.failureMessage(verb, id, err)}
}

func (s *Service) failureMessage(verb, id string, err error) string {
	if errors.Is(err, types.ErrNotFound) {
		return "record not found"
	}
	s.logger.Error("%s record %s failed: %s", verb, id, err)
	return "could not " + verb + " record"
}
