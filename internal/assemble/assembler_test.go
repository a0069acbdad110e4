package assemble

import (
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nakshatra-tomar/civic-contact-extract/internal/models"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func get(t *testing.T, rec *models.ContactRecord, f models.Field) string {
	t.Helper()
	v, ok := rec.Get(f)
	require.True(t, ok, "field %s should be present", f)
	return v
}

func TestAssembleFourLineScenario(t *testing.T) {
	people, orgs := Assemble([]string{
		"Council District: 05 Civic Assoc",
		"PO Box 1 UPPER MARLBORO MD 20772",
		"Contact Information:",
		"VICE-PRESIDENT JANE DOE 3015551234 jane@example.com",
	}, quietLogger())

	require.Len(t, orgs, 1)
	require.Len(t, people, 1)

	org := orgs[0]
	assert.Equal(t, models.KindOrganization, org.Kind())
	assert.Equal(t, "05", get(t, org, models.FieldDistrict))

	person := people[0]
	assert.Equal(t, models.KindPerson, person.Kind())
	assert.Equal(t, "05", get(t, person, models.FieldDistrict))
	assert.Equal(t, "Jane Doe", get(t, person, models.FieldName))
	assert.Equal(t, "Vice-President", get(t, person, models.FieldTitle))
	assert.Equal(t, "301-555-1234", get(t, person, models.FieldPhoneNumber))
	assert.Equal(t, "Jane@Example.Com", get(t, person, models.FieldEmail))

	// No organization preceded the block, and the mixed-case block text
	// yields no org type, so neither record carries an org.
	_, orgKnown := org.Get(models.FieldOrg)
	assert.False(t, orgKnown)
	assert.True(t, org.Has(models.FieldOrg))
	_, personKnown := person.Get(models.FieldOrg)
	assert.False(t, personKnown)
}

func TestAssembleDirectoryPage(t *testing.T) {
	a := New(quietLogger())
	for _, l := range []string{
		"THE MARYLAND_NATIONAL CAPITAL PARK AND PLANNING COMMISSION",
		"REGISTERED ASSOCIATIONS (by Council District)",
		"05Council District: FOXHALL ESTATES HOMEOWNERS 09/01/2015",
		"1234 FOXHALL RD UPPER MARLBORO20772MD3015550000",
		"Area:",
		"Contact Information:",
		"PRESIDENT JOHN SMITH 3015551111 john@foxhall.org",
		"SECRETARY MARY JONES 12 ELM RD BOWIE20715MD3015552222",
		"9/14/2016",
	} {
		a.Feed(l)
	}

	orgs := a.Organizations()
	require.Len(t, orgs, 1)
	org := orgs[0]
	assert.Equal(t, []models.Field{
		models.FieldDistrict, models.FieldOrg,
		models.FieldPhoneNumber, models.FieldZipCode, models.FieldEmail, models.FieldDate,
		models.FieldTitle, models.FieldName, models.FieldAddress, models.FieldCity,
		models.FieldOrgType,
	}, org.Keys())
	assert.Equal(t, "05", get(t, org, models.FieldDistrict))
	_, ok := org.Get(models.FieldOrg)
	assert.False(t, ok, "first organization has no predecessor")
	assert.Equal(t, "Homeowners", get(t, org, models.FieldOrgType))
	assert.Equal(t, "301-555-0000", get(t, org, models.FieldPhoneNumber))
	assert.Equal(t, "20772", get(t, org, models.FieldZipCode))
	assert.Equal(t, "09/01/2015", get(t, org, models.FieldDate))
	assert.Equal(t, "Upper Marlboro", get(t, org, models.FieldCity))
	_, ok = org.Get(models.FieldName)
	assert.False(t, ok)

	people := a.People()
	require.Len(t, people, 2)
	assert.Equal(t, append([]models.Field{models.FieldDistrict, models.FieldOrg}, models.ContactFields...), people[0].Keys())

	john := people[0]
	assert.Equal(t, "Foxhall Estates", get(t, john, models.FieldOrg))
	assert.Equal(t, "President", get(t, john, models.FieldTitle))
	assert.Equal(t, "John Smith", get(t, john, models.FieldName))
	assert.Equal(t, "301-555-1111", get(t, john, models.FieldPhoneNumber))
	assert.Equal(t, "John@Foxhall.Org", get(t, john, models.FieldEmail))
	assert.False(t, john.Has(models.FieldOrgType))

	mary := people[1]
	assert.Equal(t, "Mary Jones", get(t, mary, models.FieldName))
	assert.Equal(t, "12 Elm Rd", get(t, mary, models.FieldAddress))
	assert.Equal(t, "Bowie", get(t, mary, models.FieldCity))
	assert.Equal(t, "20715", get(t, mary, models.FieldZipCode))
	assert.Equal(t, "301-555-2222", get(t, mary, models.FieldPhoneNumber))

	stats := a.Stats()
	assert.Equal(t, 9, stats.Lines)
	assert.Equal(t, 4, stats.Skipped)
	assert.Equal(t, 2, stats.People)
	assert.Equal(t, 1, stats.Organizations)
	assert.Equal(t, 2, stats.Discarded)
	assert.Empty(t, a.PendingBuffer())
}

func TestAssembleSkipLinesProduceNothing(t *testing.T) {
	people, orgs := Assemble([]string{
		"9/14/2016",
		"PRINCE GEORGE'S COUNTY PLANNING DEPARTMENT",
		"State: Email:Organization Name: Zip:Type: Date:",
	}, quietLogger())
	assert.Empty(t, people)
	assert.Empty(t, orgs)
}

func TestAssembleSkipLinesStayOutOfBuffer(t *testing.T) {
	a := New(quietLogger())
	a.Feed("ABC CIVIC")
	a.Feed("Address: Ext.Telephone:City:Planning")
	assert.Equal(t, " ABC CIVIC", a.PendingBuffer())
}

func TestAssembleAbandonsUnterminatedBlock(t *testing.T) {
	a := New(quietLogger())
	for _, l := range []string{
		"07Council District: LAKE ARBOR CIVIC",
		"10 LAKE DR BOWIE20721MD",
		"PRESIDENT AMY CHO 3015554444",
	} {
		a.Feed(l)
	}
	assert.Empty(t, a.Organizations())
	require.Len(t, a.People(), 1)
	assert.Equal(t, "07", a.District())
	assert.Equal(t, " 07Council District: LAKE ARBOR CIVIC 10 LAKE DR BOWIE20721MD", a.PendingBuffer())

	_, known := a.People()[0].Get(models.FieldOrg)
	assert.False(t, known, "no block has been closed yet")
}

func TestAssembleTitledLineWithoutNameIsDiscarded(t *testing.T) {
	a := New(quietLogger())
	a.Feed("TREASURER 3015551234")
	assert.Empty(t, a.People())
	assert.Equal(t, 1, a.Stats().Discarded)
	assert.Empty(t, a.PendingBuffer(), "titled lines are not organization text")
}

func TestAssembleDistrictNeverRegressesWithinBlock(t *testing.T) {
	a := New(quietLogger())
	a.Feed("03Council District: A CIVIC")
	a.Feed("Contact Information:")
	a.Feed("PRESIDENT X Y 3015551234")
	a.Feed("04Council District: B HISTORIC")
	a.Feed("Contact Information:")
	a.Feed("SECRETARY Z W 3015551234")

	orgs := a.Organizations()
	require.Len(t, orgs, 2)
	assert.Equal(t, "03", get(t, orgs[0], models.FieldDistrict))
	assert.Equal(t, "04", get(t, orgs[1], models.FieldDistrict))
	_, ok := orgs[0].Get(models.FieldOrg)
	assert.False(t, ok, "organization rows carry the org current before their block")
	assert.Equal(t, "A", get(t, orgs[1], models.FieldOrg))
	assert.Equal(t, "Historic", get(t, orgs[1], models.FieldOrgType))

	people := a.People()
	require.Len(t, people, 2)
	assert.Equal(t, "03", get(t, people[0], models.FieldDistrict))
	assert.Equal(t, "A", get(t, people[0], models.FieldOrg))
	assert.Equal(t, "04", get(t, people[1], models.FieldDistrict))
	assert.Equal(t, "B", get(t, people[1], models.FieldOrg))
}

func TestAssembleFieldsAbsentBeforeFirstHeader(t *testing.T) {
	people, _ := Assemble([]string{"PRESIDENT JOHN SMITH"}, quietLogger())
	require.Len(t, people, 1)
	_, ok := people[0].Get(models.FieldDistrict)
	assert.False(t, ok)
	_, ok = people[0].Get(models.FieldPhoneNumber)
	assert.False(t, ok)
}

func TestAssembleLogsLineKind(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	a := New(logger)
	a.Feed("Area:")
	a.Feed("PRESIDENT AMY CHO")
	a.Feed("ABC CIVIC")

	var kinds []string
	for _, e := range hook.AllEntries() {
		if e.Message == "line classified" {
			kinds = append(kinds, e.Data["kind"].(fmt.Stringer).String())
		}
	}
	assert.Equal(t, []string{"skip", "titled", "org_text"}, kinds)
	assert.Equal(t, " ABC CIVIC", a.PendingBuffer())
}
