package service

import (
	"fmt"
	"time"

	"github.com/shopmonkeyus/go-common/logger"

	"github.com/lupapyme/registro/pkg/types"
)

// fakeDefinitions is an in-memory DefinitionStore keyed by tenant and tipo.
// Setting err makes every operation fail with it.
type fakeDefinitions struct {
	defs map[string]*types.ModelDefinition
	err  error
}

func newFakeDefinitions() *fakeDefinitions {
	return &fakeDefinitions{defs: map[string]*types.ModelDefinition{}}
}

func defKey(tenantID, tipo string) string { return tenantID + "/" + tipo }

func (f *fakeDefinitions) Get(tenantID, tipo string) (*types.ModelDefinition, error) {
	if f.err != nil {
		return nil, f.err
	}
	def, ok := f.defs[defKey(tenantID, tipo)]
	if !ok {
		return nil, types.ErrNotFound
	}
	return def, nil
}

func (f *fakeDefinitions) GetByID(id string) (*types.ModelDefinition, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, def := range f.defs {
		if def.ID == id {
			return def, nil
		}
	}
	return nil, types.ErrNotFound
}

func (f *fakeDefinitions) ListByTenant(tenantID string) ([]*types.ModelDefinition, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []*types.ModelDefinition{}
	for _, def := range f.defs {
		if def.TenantID == tenantID {
			out = append(out, def)
		}
	}
	return out, nil
}

func (f *fakeDefinitions) Create(tenantID, tipo string, campos []types.FieldDef) (*types.ModelDefinition, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := types.ValidateCampos(campos); err != nil {
		return nil, err
	}
	def := &types.ModelDefinition{
		ID:        fmt.Sprintf("def%d", len(f.defs)+1),
		TenantID:  tenantID,
		Tipo:      tipo,
		Campos:    campos,
		CreatedAt: time.Now().UTC(),
	}
	f.defs[defKey(tenantID, tipo)] = def
	return def, nil
}

func (f *fakeDefinitions) ReplaceFields(id string, campos []types.FieldDef) (*types.ModelDefinition, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := types.ValidateCampos(campos); err != nil {
		return nil, err
	}
	for _, def := range f.defs {
		if def.ID == id {
			def.Campos = campos
			return def, nil
		}
	}
	return nil, types.ErrNotFound
}

func (f *fakeDefinitions) Delete(id string) error {
	if f.err != nil {
		return f.err
	}
	for key, def := range f.defs {
		if def.ID == id {
			delete(f.defs, key)
			return nil
		}
	}
	return types.ErrNotFound
}

// fakeRecords is an in-memory RecordStore preserving insertion order.
type fakeRecords struct {
	seq   int
	rows  map[string]*types.Registro
	order []string
	err   error
}

func newFakeRecords() *fakeRecords {
	return &fakeRecords{rows: map[string]*types.Registro{}}
}

// add inserts a row with a fixed ID and creation time, bypassing Create.
func (f *fakeRecords) add(id, tenantID, tipo string, data types.Payload, createdAt time.Time) {
	f.rows[id] = &types.Registro{
		ID:        id,
		TenantID:  tenantID,
		Tipo:      tipo,
		Data:      data,
		CreatedAt: createdAt,
	}
	f.order = append(f.order, id)
}

func (f *fakeRecords) Create(tenantID, tipo string, data types.Payload) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.seq++
	id := fmt.Sprintf("r%d", f.seq)
	f.add(id, tenantID, tipo, data, time.Now().UTC())
	return id, nil
}

func (f *fakeRecords) FindOne(id, tenantID string) (*types.Registro, error) {
	if f.err != nil {
		return nil, f.err
	}
	reg, ok := f.rows[id]
	if !ok || reg.TenantID != tenantID {
		return nil, types.ErrNotFound
	}
	return reg, nil
}

func (f *fakeRecords) FindMany(tenantID string, filter types.RowFilter) ([]*types.Registro, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []*types.Registro{}
	for _, id := range f.order {
		reg, ok := f.rows[id]
		if !ok || reg.TenantID != tenantID {
			continue
		}
		if !filter.From.IsZero() && !filter.To.IsZero() {
			if reg.CreatedAt.Before(filter.From) || reg.CreatedAt.After(filter.To) {
				continue
			}
		}
		if filter.OrderType != "" && filter.OrderType != types.OrderTypeAll {
			if reg.Data.Object()["orderType"] != filter.OrderType {
				continue
			}
		}
		out = append(out, reg)
	}
	return out, nil
}

func (f *fakeRecords) UpdateData(id, tenantID string, data types.Payload) error {
	if f.err != nil {
		return f.err
	}
	reg, ok := f.rows[id]
	if !ok || reg.TenantID != tenantID {
		return types.ErrNotFound
	}
	reg.Data = data
	return nil
}

func (f *fakeRecords) Delete(id, tenantID string) error {
	if f.err != nil {
		return f.err
	}
	reg, ok := f.rows[id]
	if !ok || reg.TenantID != tenantID {
		return types.ErrNotFound
	}
	delete(f.rows, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

// newTestService wires a Service over fresh fakes.
func newTestService() (*Service, *fakeDefinitions, *fakeRecords) {
	fd := newFakeDefinitions()
	fr := newFakeRecords()
	return New(fd, fr, logger.NewTestLogger()), fd, fr
}
