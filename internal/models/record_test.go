package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactRecordKeepsFirstSetOrder(t *testing.T) {
	rec := NewContactRecord(KindPerson)
	rec.Set(FieldDistrict, "05")
	rec.SetOptional(FieldOrg, "", false)
	rec.Set(FieldName, "Jane Doe")
	rec.Set(FieldDistrict, "06")

	assert.Equal(t, []Field{FieldDistrict, FieldOrg, FieldName}, rec.Keys())

	v, ok := rec.Get(FieldDistrict)
	assert.True(t, ok)
	assert.Equal(t, "06", v)

	_, ok = rec.Get(FieldOrg)
	assert.False(t, ok, "org was registered absent")
	assert.True(t, rec.Has(FieldOrg))
	assert.False(t, rec.Has(FieldCity))
}

func TestContactRecordValuesRenderAbsentAsEmpty(t *testing.T) {
	rec := NewContactRecord(KindPerson)
	rec.Set(FieldName, "Jane Doe")
	rec.SetOptional(FieldEmail, "", false)

	got := rec.Values([]Field{FieldEmail, FieldName, FieldCity})
	assert.Equal(t, []string{"", "Jane Doe", ""}, got)

	nullable := rec.Nullable([]Field{FieldEmail, FieldName})
	assert.Nil(t, nullable[0])
	require.NotNil(t, nullable[1])
	assert.Equal(t, "Jane Doe", *nullable[1])
}

func TestContactRecordMarshalJSON(t *testing.T) {
	rec := NewContactRecord(KindOrganization)
	rec.Set(FieldOrgType, "Civic")
	rec.SetOptional(FieldZipCode, "", false)

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"org_type":"Civic","zip_code":null}`, string(b))
}

func TestContactDocumentValidate(t *testing.T) {
	rec := NewContactRecord(KindPerson)
	rec.Set(FieldName, "Jane Doe")

	doc := NewContactDocument("run-1", "civics.txt", 3, rec)
	require.NoError(t, doc.Validate())
	assert.Equal(t, KindPerson, doc.Kind)
	assert.Equal(t, 3, doc.Sequence)

	b, err := doc.ToJSON()
	require.NoError(t, err)
	var back ContactDocument
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, doc.ID, back.ID)
	assert.Equal(t, "Jane Doe", *back.Fields["name"])

	doc.RunID = ""
	assert.Error(t, doc.Validate())

	bad := &ContactDocument{ID: "x", RunID: "y", Kind: "robot"}
	assert.Error(t, bad.Validate())
}
