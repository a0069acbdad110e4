package extract

import "strings"

// Lookup tables are ordered; the first entry found anywhere in a line wins,
// regardless of where in the line a later entry would have matched.

// Titles recognized at the start of a person line. VICE-PRESIDENT must come
// before PRESIDENT.
var Titles = []string{
	"VICE-PRESIDENT",
	"PRESIDENT",
	"SECRETARY",
	"TREASURER",
	"OTHERS",
}

// Cities that terminate an address. LAUREL is listed twice in the source
// directory's table; the duplicate is harmless and kept.
var Cities = []string{
	"UPPER MARLBORO",
	"CHELTENHAM",
	"DISTRICT HEIGHT",
	"CLINTON",
	"BRANDYWINE",
	"CROFTON",
	"TEMPLE HILLS",
	"WALDORF",
	"VIENNA",
	"ACCOKEEK",
	"LA PLATA",
	"FORT WASHINGTON",
	"SUITLAND",
	"OXON HILL",
	"HYATTSVILLE",
	"LAUREL",
	"BOWIE",
	"LANHAM",
	"COLUMBIA",
	"BLADENSBURG",
	"GREENBELT",
	"COLLEGE PARK",
	"GLENN DALE",
	"BELTSVILLE",
	"BRENTWOOD",
	"MOUNT RAINIER",
	"ELLICOTT CITY",
	"LAUREL",
	"OAKTON",
}

// OrgTypes are the association categories printed after an organization name.
// OTHER precedes CIVIC, so "OTHER CIVIC" resolves to Other.
var OrgTypes = []string{
	"CITIZEN",
	"HOMEOWNERS",
	"OTHER",
	"CIVIC",
	"HOME OWNERS",
	"CONDOMINIUM",
	"ENVIRONMENT",
	"BUSINESS",
	"HISTORIC",
}

// firstOf returns the first vocabulary entry contained in s and its byte index.
func firstOf(vocab []string, s string) (string, int) {
	for _, v := range vocab {
		if idx := strings.Index(s, v); idx > -1 {
			return v, idx
		}
	}
	return "", -1
}
