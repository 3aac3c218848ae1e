package types

// Result envelopes for the public service surface. Operations catch every
// internal error at their boundary and report it here as a display message;
// callers branch on Success, never on the message text.

// QueryResult is the outcome of a record query. On failure Data is empty
// and Pagination zeroed so callers can render an empty state directly.
type QueryResult struct {
	Success    bool         `json:"success"`
	Data       []FlatRecord `json:"data"`
	Pagination PageInfo     `json:"pagination"`
	Error      string       `json:"error,omitempty"`
}

// RecordResult is the outcome of fetching a single flattened record.
type RecordResult struct {
	Success bool        `json:"success"`
	Data    *FlatRecord `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateResult is the outcome of creating a storage row.
type CreateResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OpResult is the outcome of an update or delete.
type OpResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// DefinitionResult is the outcome of a model definition operation.
type DefinitionResult struct {
	Success bool             `json:"success"`
	Data    *ModelDefinition `json:"data,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// AnalyticsResult is the outcome of a client analytics computation.
type AnalyticsResult struct {
	Success bool             `json:"success"`
	Data    *ClientAnalytics `json:"data,omitempty"`
	Error   string           `json:"error,omitempty"`
}
