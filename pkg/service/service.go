// Package service is the business layer over the definition and record
// stores: flattening of stored rows into client-visible records, the query
// pipeline, the mutation routing for composite record IDs, and client
// analytics. Public methods return result envelopes, not errors; failures
// are logged here and reported as display messages.
package service

import (
	"github.com/shopmonkeyus/go-common/logger"

	"github.com/lupapyme/registro/pkg/types"
)

// DefinitionStore is the model definition persistence contract.
type DefinitionStore interface {
	Get(tenantID, tipo string) (*types.ModelDefinition, error)
	GetByID(id string) (*types.ModelDefinition, error)
	ListByTenant(tenantID string) ([]*types.ModelDefinition, error)
	Create(tenantID, tipo string, campos []types.FieldDef) (*types.ModelDefinition, error)
	ReplaceFields(id string, campos []types.FieldDef) (*types.ModelDefinition, error)
	Delete(id string) error
}

// RecordStore is the record persistence contract.
type RecordStore interface {
	Create(tenantID, tipo string, data types.Payload) (string, error)
	FindOne(id, tenantID string) (*types.Registro, error)
	FindMany(tenantID string, filter types.RowFilter) ([]*types.Registro, error)
	UpdateData(id, tenantID string, data types.Payload) error
	Delete(id, tenantID string) error
}

// Service owns the two stores and routes every record and definition
// operation through them.
type Service struct {
	definitions DefinitionStore
	records     RecordStore
	logger      logger.Logger
}

// New creates a Service over the given stores.
func New(definitions DefinitionStore, records RecordStore, log logger.Logger) *Service {
	return &Service{
		definitions: definitions,
		records:     records,
		logger:      log.WithPrefix("[service]"),
	}
}
