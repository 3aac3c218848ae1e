// Package types defines the domain types, result envelopes, and standard
// errors for the Registro storage system: field descriptors and model
// definitions, record payloads with their legacy encodings, flattened
// query-time records, and the composite record ID scheme.
package types
