package models

// Enumerated JobFields values accepted by the API. An empty value means
// "not provided".
var (
	EmploymentTypes = []string{
		"FULL_TIME",
		"PART_TIME",
		"CONTRACT",
		"TEMPORARY",
		"INTERN",
		"VOLUNTEER",
		"PER_DIEM",
		"OTHER",
	}
	RemoteTypes = []string{"ONSITE", "REMOTE", "HYBRID"}
	SalaryUnits = []string{"HOUR", "DAY", "WEEK", "MONTH", "YEAR"}
)

// ModulesAll is the wire value selecting every module the API offers.
const ModulesAll = "all"

// Response status values reported by the jobs endpoint.
const (
	StatusHeld      = "held"
	StatusPublished = "published"
)
