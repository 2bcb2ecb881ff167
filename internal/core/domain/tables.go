package domain

// TableID identifies one of the four independently paginated result
// tables. Navigating one table never affects the others.
type TableID int

const (
	// TableBusiness is the business listing rows table.
	TableBusiness TableID = iota

	// TableDemo is the demographic rows table.
	TableDemo

	// TableZipIndustry is the ZIP-by-industry group counts table.
	TableZipIndustry

	// TableTopIndividual is the top individual-count ZIPs table.
	TableTopIndividual
)

// AllTables lists the result tables in display order.
func AllTables() []TableID {
	return []TableID{TableBusiness, TableDemo, TableZipIndustry, TableTopIndividual}
}

// String returns the display title of the table.
func (t TableID) String() string {
	switch t {
	case TableBusiness:
		return "Business Data"
	case TableDemo:
		return "Demographic Data"
	case TableZipIndustry:
		return "ZIP x Industry Groups"
	case TableTopIndividual:
		return "Top Individual ZIPs"
	default:
		return "unknown"
	}
}

// Rows selects this table's collection from a report.
func (t TableID) Rows(report *AnalysisReport) []Record {
	if report == nil {
		return nil
	}
	switch t {
	case TableBusiness:
		return report.BusinessRows
	case TableDemo:
		return report.DemoRows
	case TableZipIndustry:
		return report.ZipIndustryGroups
	case TableTopIndividual:
		return report.TopIndividualZipcodes
	default:
		return nil
	}
}
