package domain

// JobURL is an opaque locator for a single posting, as produced by listing
// extraction. Providers resolve it into a fetchable URL with JobPageURL.
type JobURL = string

// JobRecord is built once per job page and discarded after classification.
type JobRecord struct {
	URL            string
	Title          string
	Qualifications []string
}

// Verdict is the classifier's decision for one JobRecord.
type Verdict struct {
	EntryLevel bool
	Reason     string // "" when entry level; see Reason* constants
	Evidence   string // title or qualification statement that tripped the rule
}

const (
	ReasonTitle          = "title"
	ReasonExperience     = "experience"
	ReasonGraduateDegree = "graduate_degree"
	ReasonNotFound       = "not_found"
	ReasonFetch          = "fetch_failure"
)
