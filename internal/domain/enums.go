package domain

import "strings"

// DueType identifies one canonical port charge category.
type DueType string

const (
	DueLight                DueType = "Light Dues"
	DuePort                 DueType = "Port Dues"
	DueTowage               DueType = "Towage Dues"
	DueVTS                  DueType = "VTS Dues"
	DuePilotage             DueType = "Pilotage Dues"
	DueRunningOfVesselLines DueType = "Running of Vessel Lines Dues"
)

// catalog is the fixed, ordered set of dues the calculator understands.
var catalog = []DueType{
	DueLight,
	DuePort,
	DueTowage,
	DueVTS,
	DuePilotage,
	DueRunningOfVesselLines,
}

// Catalog returns a copy of the due type catalog in canonical order.
func Catalog() []DueType {
	out := make([]DueType, len(catalog))
	copy(out, catalog)
	return out
}

// CatalogNames returns the catalog as plain strings.
func CatalogNames() []string {
	out := make([]string, len(catalog))
	for i, d := range catalog {
		out[i] = string(d)
	}
	return out
}

// LookupDueType returns the catalog entry whose name equals name, ignoring
// case and surrounding whitespace.
func LookupDueType(name string) (DueType, bool) {
	name = strings.TrimSpace(name)
	for _, d := range catalog {
		if strings.EqualFold(string(d), name) {
			return d, true
		}
	}
	return "", false
}

// DueNames converts due types to their display names.
func DueNames(dues []DueType) []string {
	out := make([]string, len(dues))
	for i, d := range dues {
		out[i] = string(d)
	}
	return out
}

// RulesStoreBackend selects where the extracted rules document is persisted.
type RulesStoreBackend string

const (
	RulesStoreFile     RulesStoreBackend = "file"
	RulesStoreS3       RulesStoreBackend = "s3"
	RulesStorePostgres RulesStoreBackend = "postgres"
)

// MIMETypePDF is the content type of the tariff document attachment.
const MIMETypePDF = "application/pdf"
