// Package extract pulls typed fields out of single lines of directory text.
// Every extractor is best-effort: a miss is reported through the ok result and
// never as an error.
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/nakshatra-tomar/civic-contact-extract/internal/models"
)

// Precompiled regexes (avoid recompiling every call).
var (
	rePhone = regexp.MustCompile(
		`(?P<area_code>\(?\d{3}\)?[\s\-\(\)]*)` +
			`(?P<first_three>\d{3}[\-\s\(\)]*)` +
			`(?P<last_four>\d{4}[\-\s]*)`)
	// The zip is always printed glued to the state code; RE2 has no
	// lookahead so MD is consumed and the digits come from the group.
	reZip   = regexp.MustCompile(`(\d{5})MD`)
	reEmail = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z-.]+`)
	reDate  = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)

	phoneGroups = []string{"area_code", "first_three", "last_four"}
)

const (
	vicePresident       = "VICE PRESIDENT"
	vicePresidentJoined = "VICE-PRESIDENT"
	districtMarker      = "Council District:"
	maxTitleNameTokens  = 4
)

// Phone finds the first 3-3-4 digit run and returns it as AAA-EEE-LLLL.
func Phone(line string) (string, bool) {
	m := rePhone.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	parts := make([]string, 0, len(phoneGroups))
	for _, g := range phoneGroups {
		parts = append(parts, digitsOnly(m[rePhone.SubexpIndex(g)]))
	}
	return strings.Join(parts, "-"), true
}

// Zip returns a five digit run that is immediately followed by "MD".
func Zip(line string) (string, bool) {
	m := reZip.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Email returns the first local@domain token, minus any digits glued to its
// front by the flattening, title-cased.
func Email(line string) (string, bool) {
	m := reEmail.FindString(line)
	if m == "" {
		return "", false
	}
	m = strings.TrimLeft(m, "0123456789")
	if m == "" {
		return "", false
	}
	return TitleCase(m), true
}

// Date returns the first MM/DD/YYYY token verbatim. No calendar check.
func Date(line string) (string, bool) {
	m := reDate.FindString(line)
	if m == "" {
		return "", false
	}
	return m, true
}

// HasTitle reports whether the line opens with one of the known role titles.
func HasTitle(line string) bool {
	return leadingTitle(normalizeTitle(line)) != ""
}

// TitleAndName splits a person line into its role title and the name that
// follows it. Everything from the first digit on (phone, address) is ignored;
// at most four tokens are considered and a trailing token carrying "@" is
// dropped. ok is false when the line does not start with a title; name may
// be empty when only the title was printed.
func TitleAndName(line string) (title, name string, ok bool) {
	line = normalizeTitle(line)
	if leadingTitle(line) == "" {
		return "", "", false
	}
	head := line
	if idx := firstDigitIndex(line); idx > -1 {
		head = line[:idx]
	}
	tokens := strings.Fields(head)
	if len(tokens) > maxTitleNameTokens {
		tokens = tokens[:maxTitleNameTokens]
	}
	if n := len(tokens); n > 0 && strings.Contains(tokens[n-1], "@") {
		tokens = tokens[:n-1]
	}
	if len(tokens) == 0 {
		return "", "", false
	}
	return TitleCase(tokens[0]), TitleCase(strings.Join(tokens[1:], " ")), true
}

// AddressAndCity returns the text between the first digit and the first known
// city, plus that city. Neither index may be zero: a line that starts with a
// digit or with the city carries no address. The pair is rejected when the
// address would swallow a phone number or an email.
func AddressAndCity(line string) (address, city string, ok bool) {
	start := firstDigitIndex(line)
	city, end := firstOf(Cities, line)
	if start <= 0 || end <= 0 {
		return "", "", false
	}
	candidate := ""
	if start < end {
		candidate = line[start:end]
	}
	if !hasNoPhoneOrEmail(candidate) {
		return "", "", false
	}
	return TitleCase(strings.TrimSpace(candidate)), TitleCase(city), true
}

// OrgNameAndType finds the first organization type keyword and treats the text
// before it as the organization name. A leading "Council District:" header is
// removed first. The pair is rejected when the name holds a phone or email.
func OrgNameAndType(line string) (name, orgType string, ok bool) {
	line = CleanOrgLine(line)
	orgType, idx := firstOf(OrgTypes, line)
	if idx < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(line[:idx])
	if !hasNoPhoneOrEmail(name) {
		return "", "", false
	}
	return TitleCase(name), TitleCase(orgType), true
}

// CleanOrgLine drops everything up to and including "Council District:". A
// standalone two digit district code printed right after the marker
// ("Council District: 05 ...") is dropped too, so it never reaches the
// organization name; the plain directory layout prints the code before the
// marker and is unaffected.
func CleanOrgLine(line string) string {
	if idx := strings.Index(line, districtMarker); idx > -1 {
		line = strings.TrimSpace(line[idx+len(districtMarker):])
		if len(line) >= 2 && isASCIIDigit(line[0]) && isASCIIDigit(line[1]) &&
			(len(line) == 2 || line[2] == ' ') {
			line = line[2:]
		}
	}
	return strings.TrimSpace(line)
}

// Fields holds the optional values found by the per-line extractors.
type Fields struct {
	values map[models.Field]string
}

// Get returns the value extracted for f.
func (f Fields) Get(field models.Field) (string, bool) {
	v, ok := f.values[field]
	return v, ok
}

// Apply merges the extracted values into rec in models.ContactFields order,
// marking missing fields absent.
func (f Fields) Apply(rec *models.ContactRecord) {
	for _, field := range models.ContactFields {
		v, ok := f.values[field]
		rec.SetOptional(field, v, ok)
	}
}

// Contact runs every per-line extractor over text.
func Contact(text string) Fields {
	out := Fields{values: make(map[models.Field]string, len(models.ContactFields))}
	put := func(f models.Field, v string, ok bool) {
		if ok && v != "" {
			out.values[f] = v
		}
	}

	v, ok := Phone(text)
	put(models.FieldPhoneNumber, v, ok)
	v, ok = Zip(text)
	put(models.FieldZipCode, v, ok)
	v, ok = Email(text)
	put(models.FieldEmail, v, ok)
	v, ok = Date(text)
	put(models.FieldDate, v, ok)

	title, name, ok := TitleAndName(text)
	put(models.FieldTitle, title, ok)
	put(models.FieldName, name, ok)

	address, city, ok := AddressAndCity(text)
	put(models.FieldAddress, address, ok)
	put(models.FieldCity, city, ok)
	return out
}

// --- helpers ---

func normalizeTitle(line string) string {
	return strings.ReplaceAll(line, vicePresident, vicePresidentJoined)
}

func leadingTitle(line string) string {
	for _, t := range Titles {
		if strings.HasPrefix(line, t) {
			return t
		}
	}
	return ""
}

func firstDigitIndex(s string) int {
	for i, r := range s {
		if unicode.IsDigit(r) {
			return i
		}
	}
	return -1
}

func hasNoPhoneOrEmail(s string) bool {
	return !rePhone.MatchString(s) && !reEmail.MatchString(s)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isASCIIDigit(c byte) bool { return c >= '0' && c <= '9' }
