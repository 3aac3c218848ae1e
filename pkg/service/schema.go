// Model definition operations. Reads degrade instead of failing: a broken
// store or a missing definition yields a built-in default so the table UI
// always has columns to render.
package service

import (
	"errors"
	"time"

	"github.com/lupapyme/registro/pkg/types"
)

// defaultCampos is the fallback field list served when a tenant's
// definition cannot be loaded.
var defaultCampos = []types.FieldDef{
	{Name: "nombre", Label: "Nombre", Type: types.FieldTypeString, Required: true, Order: 1},
	{Name: "descripcion", Label: "Descripción", Type: types.FieldTypeText, Order: 2},
	{Name: "precio", Label: "Precio", Type: types.FieldTypeNumber, Required: true, Order: 3},
	{Name: "categoria", Label: "Categoría", Type: types.FieldTypeString, Order: 4},
	{Name: "stock", Label: "Stock", Type: types.FieldTypeNumber, Order: 5},
}

// DefaultDefinition builds the fallback definition for a tenant and tipo.
// Its ID is empty: it exists only in the response, never in storage.
func DefaultDefinition(tenantID, tipo string) *types.ModelDefinition {
	campos := make([]types.FieldDef, len(defaultCampos))
	copy(campos, defaultCampos)
	return &types.ModelDefinition{
		TenantID:  tenantID,
		Tipo:      tipo,
		Campos:    campos,
		CreatedAt: time.Now().UTC(),
	}
}

// GetDefinition returns the tenant's definition for the record type,
// degrading to the built-in default when the store fails or holds nothing.
// The degrade is a success from the caller's point of view.
func (s *Service) GetDefinition(tenantID, tipo string) types.DefinitionResult {
	def, err := s.definitions.Get(tenantID, tipo)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			s.logger.Warn("no definition for tenant %s tipo %s, serving the default", tenantID, tipo)
		} else {
			s.logger.Error("loading definition for tenant %s tipo %s: %s", tenantID, tipo, err)
		}
		return types.DefinitionResult{Success: true, Data: DefaultDefinition(tenantID, tipo)}
	}
	return types.DefinitionResult{Success: true, Data: def}
}

// CreateDefinition stores a new definition for the tenant.
func (s *Service) CreateDefinition(tenantID, tipo string, campos []types.FieldDef) types.DefinitionResult {
	def, err := s.definitions.Create(tenantID, tipo, campos)
	if err != nil {
		return s.definitionFailure("create", err)
	}
	return types.DefinitionResult{Success: true, Data: def}
}

// ReplaceDefinitionFields swaps a definition's whole field list.
func (s *Service) ReplaceDefinitionFields(id string, campos []types.FieldDef) types.DefinitionResult {
	def, err := s.definitions.ReplaceFields(id, campos)
	if err != nil {
		return s.definitionFailure("update", err)
	}
	return types.DefinitionResult{Success: true, Data: def}
}

// DeleteDefinition removes a definition. Existing records of its tipo stay
// behind; reads over them degrade to the default definition.
func (s *Service) DeleteDefinition(id string) types.OpResult {
	if err := s.definitions.Delete(id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return types.OpResult{Success: false, Error: "definition not found"}
		}
		s.logger.Error("deleting definition %s: %s", id, err)
		return types.OpResult{Success: false, Error: "could not delete definition"}
	}
	return types.OpResult{Success: true}
}

// ListDefinitions returns every definition the tenant owns.
func (s *Service) ListDefinitions(tenantID string) ([]*types.ModelDefinition, error) {
	return s.definitions.ListByTenant(tenantID)
}

func (s *Service) definitionFailure(verb string, err error) types.DefinitionResult {
	switch {
	case errors.Is(err, types.ErrNotFound):
		return types.DefinitionResult{Success: false, Error: "definition not found"}
	case errors.Is(err, types.ErrEmptyFieldName),
		errors.Is(err, types.ErrDuplicateFieldName),
		errors.Is(err, types.ErrInvalidFieldType):
		return types.DefinitionResult{Success: false, Error: err.Error()}
	default:
		s.logger.Error("%s definition failed: %s", verb, err)
		return types.DefinitionResult{Success: false, Error: "could not " + verb + " definition"}
	}
}
