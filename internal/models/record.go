package models

import (
	"encoding/json"
	"fmt"
)

// Field names a column of an extracted contact.
type Field string

// Fields carried by contact records. The string values double as CSV headers,
// SQL column names and JSON keys.
const (
	FieldDistrict    Field = "district"
	FieldOrg         Field = "org"
	FieldOrgType     Field = "org_type"
	FieldPhoneNumber Field = "phone_number"
	FieldZipCode     Field = "zip_code"
	FieldEmail       Field = "email"
	FieldDate        Field = "date"
	FieldTitle       Field = "title"
	FieldName        Field = "name"
	FieldAddress     Field = "address"
	FieldCity        Field = "city"
)

// ContactFields lists the fields produced by the per-line extractors, in the
// order they are merged into a record.
var ContactFields = []Field{
	FieldPhoneNumber,
	FieldZipCode,
	FieldEmail,
	FieldDate,
	FieldTitle,
	FieldName,
	FieldAddress,
	FieldCity,
}

// Kind tells a person record from an organization record.
type Kind string

const (
	KindPerson       Kind = "person"
	KindOrganization Kind = "organization"
)

// IsValid checks if the Kind is recognized.
func (k Kind) IsValid() bool {
	switch k {
	case KindPerson, KindOrganization:
		return true
	}
	return false
}

// ContactRecord is an insertion-ordered mapping from field to optional value.
// A key can be present with no value; that is how an unmatched field is kept
// in the header without inventing a placeholder.
type ContactRecord struct {
	kind   Kind
	keys   []Field
	values map[Field]*string
}

// NewContactRecord returns an empty record of the given kind.
func NewContactRecord(kind Kind) *ContactRecord {
	return &ContactRecord{
		kind:   kind,
		values: make(map[Field]*string),
	}
}

// Kind reports whether the record is a person or an organization.
func (r *ContactRecord) Kind() Kind { return r.kind }

// SetKind re-labels the record; the assembler decides the kind only after all
// fields of a line have been merged.
func (r *ContactRecord) SetKind(kind Kind) { r.kind = kind }

// Set stores a present value.
func (r *ContactRecord) Set(f Field, v string) {
	r.SetOptional(f, v, true)
}

// SetOptional registers f and stores v when ok, or marks f absent otherwise.
// An existing key keeps its original position.
func (r *ContactRecord) SetOptional(f Field, v string, ok bool) {
	if _, seen := r.values[f]; !seen {
		r.keys = append(r.keys, f)
	}
	if !ok {
		r.values[f] = nil
		return
	}
	val := v
	r.values[f] = &val
}

// Get returns the value of f and whether it is present.
func (r *ContactRecord) Get(f Field) (string, bool) {
	v := r.values[f]
	if v == nil {
		return "", false
	}
	return *v, true
}

// Has reports whether f is a key of the record, present or absent.
func (r *ContactRecord) Has(f Field) bool {
	_, ok := r.values[f]
	return ok
}

// Name is shorthand for the name field, empty when absent.
func (r *ContactRecord) Name() string {
	v, _ := r.Get(FieldName)
	return v
}

// Keys returns the record's fields in first-set order.
func (r *ContactRecord) Keys() []Field {
	out := make([]Field, len(r.keys))
	copy(out, r.keys)
	return out
}

// Values renders the record against header. Absent and unknown fields become
// empty strings, matching how a CSV writer treats null.
func (r *ContactRecord) Values(header []Field) []string {
	out := make([]string, len(header))
	for i, f := range header {
		out[i], _ = r.Get(f)
	}
	return out
}

// Nullable renders the record against header as pointers; nil marks an
// absent value.
func (r *ContactRecord) Nullable(header []Field) []*string {
	out := make([]*string, len(header))
	for i, f := range header {
		out[i] = r.values[f]
	}
	return out
}

// Map returns the record as a JSON-friendly map; absent values are nil.
func (r *ContactRecord) Map() map[string]*string {
	m := make(map[string]*string, len(r.keys))
	for _, f := range r.keys {
		m[string(f)] = r.values[f]
	}
	return m
}

// MarshalJSON encodes the fields as an object with null for absent values.
func (r *ContactRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

func (r *ContactRecord) String() string {
	return fmt.Sprintf("%s%v", r.kind, r.Map())
}
