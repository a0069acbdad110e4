// Package assemble groups classified lines into person and organization
// records in a single forward pass.
package assemble

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nakshatra-tomar/civic-contact-extract/internal/classify"
	"github.com/nakshatra-tomar/civic-contact-extract/internal/extract"
	"github.com/nakshatra-tomar/civic-contact-extract/internal/models"
)

// TriggerMarker closes the organization block being buffered.
const TriggerMarker = "Contact Information:"

// Stats counts what happened to the lines fed so far.
type Stats struct {
	Lines         int `json:"lines"`
	Skipped       int `json:"skipped"`
	People        int `json:"people"`
	Organizations int `json:"organizations"`
	Discarded     int `json:"discarded"`
}

// Assembler carries the state that spans lines: the sticky district, the
// last finalized organization and the text of the organization block still
// being read. It is not safe for concurrent use.
type Assembler struct {
	district string
	org      string
	orgKnown bool
	buffer   strings.Builder

	people []*models.ContactRecord
	orgs   []*models.ContactRecord
	stats  Stats

	logger logrus.FieldLogger
}

// New returns an Assembler with empty state. A nil logger falls back to the
// standard logrus logger.
func New(logger logrus.FieldLogger) *Assembler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Assembler{logger: logger}
}

// Assemble runs a fresh Assembler over lines and returns both outputs.
func Assemble(lines []string, logger logrus.FieldLogger) (people, orgs []*models.ContactRecord) {
	a := New(logger)
	for _, l := range lines {
		a.Feed(l)
	}
	return a.People(), a.Organizations()
}

// Feed processes one line.
func (a *Assembler) Feed(line string) {
	line = strings.TrimSpace(line)
	a.stats.Lines++
	kind := classify.Classify(line)
	a.logger.WithField("kind", kind).Debug("line classified")
	if kind == classify.LineSkip {
		a.stats.Skipped++
		return
	}

	a.district = classify.District(line, a.district)

	rec := a.newRecord(models.KindPerson)
	extract.Contact(line).Apply(rec)

	if kind == classify.LineOrgText {
		a.buffer.WriteString(" ")
		a.buffer.WriteString(line)
	}

	switch {
	case strings.Contains(line, TriggerMarker):
		a.flushOrganization(rec)
	case rec.Name() != "":
		a.people = append(a.people, rec)
		a.stats.People++
	default:
		a.stats.Discarded++
	}
}

// flushOrganization re-extracts every field from the buffered block, records
// the organization and starts a new block. The record keeps the org it was
// created with, the one current before this block; only later lines see the
// name derived here.
func (a *Assembler) flushOrganization(rec *models.ContactRecord) {
	block := a.buffer.String()
	a.buffer.Reset()

	name, orgType, ok := extract.OrgNameAndType(block)
	a.org, a.orgKnown = name, ok && name != ""

	rec.SetKind(models.KindOrganization)
	extract.Contact(block).Apply(rec)
	rec.SetOptional(models.FieldOrgType, orgType, ok)

	a.orgs = append(a.orgs, rec)
	a.stats.Organizations++

	a.logger.WithFields(logrus.Fields{
		"district": a.district,
		"org":      a.org,
		"org_type": orgType,
	}).Debug("organization block closed")
}

func (a *Assembler) newRecord(kind models.Kind) *models.ContactRecord {
	rec := models.NewContactRecord(kind)
	rec.SetOptional(models.FieldDistrict, a.district, a.district != "")
	rec.SetOptional(models.FieldOrg, a.org, a.orgKnown)
	return rec
}

// People returns the person records emitted so far, in input order.
func (a *Assembler) People() []*models.ContactRecord { return a.people }

// Organizations returns the organization records emitted so far.
func (a *Assembler) Organizations() []*models.ContactRecord { return a.orgs }

// Stats returns the line counters.
func (a *Assembler) Stats() Stats { return a.stats }

// PendingBuffer is the text of an organization block that has not seen its
// trigger yet. It is never turned into a record.
func (a *Assembler) PendingBuffer() string { return a.buffer.String() }

// District is the current sticky district code.
func (a *Assembler) District() string { return a.district }
