package domain

import "time"

// AnalysisReport is the structured aggregate returned by the analysis
// service on success.
type AnalysisReport struct {
	// TotalZipcodes is the number of distinct ZIP codes analysed.
	TotalZipcodes int `json:"total_zipcodes"`

	// CorrelationWithIncome is the correlation between business density
	// and median income. Nil when the service could not compute it.
	CorrelationWithIncome *float64 `json:"correlation_with_income"`

	// TopZipcodes are the ZIPs with the most businesses.
	TopZipcodes []Record `json:"top_zipcodes"`

	// BusinessRows are the parsed business listing rows.
	BusinessRows []Record `json:"business_data"`

	// DemoRows are the parsed demographic rows.
	DemoRows []Record `json:"demo_data"`

	// ZipIndustryGroups are counts grouped by ZIP and industry.
	ZipIndustryGroups []Record `json:"grouped_by_zip_industry"`

	// TopIndividualZipcodes are ZIPs ranked by individual counts.
	TopIndividualZipcodes []Record `json:"top_individual_zipcodes"`
}

// AnalysisRun ties a successful report to the inputs that produced it.
// The ID scopes follow-up chart fetches: a later run supersedes all
// in-flight work tagged with an earlier ID.
type AnalysisRun struct {
	// ID uniquely identifies this analysis cycle.
	ID string

	// Pair holds the files as the user assigned them. When the swap
	// retry won, the service submitted the swapped orientation; the
	// user-facing assignment is intentionally left untouched.
	Pair UploadPair

	// Report is the successful analysis payload.
	Report *AnalysisReport

	// StartedAt is when the run began.
	StartedAt time.Time
}
