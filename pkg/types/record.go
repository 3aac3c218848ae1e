package types

import (
	"encoding/json"
	"time"
)

// Registro is a stored business record. Data is accepted as given at create
// time; nothing validates it against the tenant's model definition.
type Registro struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	Tipo      string    `json:"tipo"`
	Data      Payload   `json:"data"`
	CreatedAt time.Time `json:"createdAt"`
}

// Reserved bookkeeping field names on a flattened record. Search skips
// these; imports must not map spreadsheet columns onto them.
var ReservedFieldNames = map[string]bool{
	"id":         true,
	"createdAt":  true,
	"tenantId":   true,
	"originalId": true,
	"itemIndex":  true,
}

// FlatRecord is the query-time, client-visible shape of a record: one per
// object-form row, one per item of an object-array row. Derived, never
// persisted. For array-expanded records OriginalID holds the storage row ID
// and ItemIndex the item's position; both are absent otherwise.
type FlatRecord struct {
	ID         string
	TenantID   string
	CreatedAt  time.Time
	OriginalID string
	ItemIndex  int
	Fields     map[string]any
}

// Expanded reports whether the record was expanded from an array item.
func (r *FlatRecord) Expanded() bool {
	return r.OriginalID != ""
}

// Field returns the named data field's value.
func (r *FlatRecord) Field(name string) (any, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// MarshalJSON flattens the data fields to the top level next to the
// bookkeeping fields, matching the shape table UIs and exporters consume.
// A data field that collides with a bookkeeping name loses to the
// bookkeeping value.
func (r FlatRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+5)
	for k, v := range r.Fields {
		out[k] = v
	}
	out["id"] = r.ID
	out["tenantId"] = r.TenantID
	out["createdAt"] = r.CreatedAt
	if r.Expanded() {
		out["originalId"] = r.OriginalID
		out["itemIndex"] = r.ItemIndex
	}
	return json.Marshal(out)
}
