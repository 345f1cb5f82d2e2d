package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"entryhunt/internal/domain"
)

func TestTitleIsEntryLevel(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Senior Backend Engineer", false},
		{"senior backend engineer", false},
		{"Sr. Data Analyst", false},
		{"SR Software Engineer", false},
		{"Engineering Manager", false},
		{"Product Managers Rotation", false},
		{"Ops Mngr", false},
		{"Team Lead, Payments", false},
		{"LEAD Developer", false},
		{"Team Leader, Support", false},
		{"Managerial Accountant", false},
		{"Backend Engineer I", true},
		{"Junior Frontend Developer", true},
		{"Leadership Development Program", true},
		{"Israel Office Engineer", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleIsEntryLevel(tt.title))
		})
	}
}

func TestQualificationsAreEntryLevel(t *testing.T) {
	tests := []struct {
		name  string
		quals []string
		want  bool
	}{
		{"empty list", nil, true},
		{"plain bachelor", []string{"Bachelor's degree in Computer Science"}, true},
		{"years with plus", []string{"Bachelor's degree", "3+ years of experience"}, false},
		{"number word", []string{"five years of industry experience"}, false},
		{"abbreviated", []string{"2 yrs with Go"}, false},
		{"or more", []string{"1 or more years building APIs"}, false},
		{"no space", []string{"10+years in payments"}, false},
		{"range", []string{"5-7 years of experience"}, false},
		{"full width digits", []string{"３ years of experience"}, false},
		{"calendar year", []string{"Graduating in 2025"}, true},
		{"yearly is not years", []string{"often yearly reviews"}, true},
		{"phd alone", []string{"PhD in Machine Learning"}, false},
		{"phd with bachelor option", []string{"PhD or Bachelor's degree"}, true},
		{"dotted phd", []string{"Ph.D. in Physics"}, false},
		{"masters", []string{"Master's degree required"}, false},
		{"curly apostrophe", []string{"Master’s degree required"}, false},
		{"ms or bs", []string{"MS or BS in Computer Science"}, true},
		{"msc or bsc", []string{"MSc or BSc in Computer Science"}, true},
		{"dotted msc or bsc", []string{"M.Sc. or B.Sc. in Mathematics"}, true},
		{"slashed bsc msc", []string{"BSc/MSc in Physics"}, true},
		{"msc alone", []string{"MSc in Data Science"}, false},
		{"dotted ms", []string{"M.S. in Statistics"}, false},
		{"doctorate", []string{"Doctorate preferred"}, false},
		{"scrum master", []string{"Scrum Master certification a plus"}, true},
		{"systems", []string{"Distributed SYSTEMS coursework"}, true},
		{"second statement trips", []string{"Strong communication", "PhD"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QualificationsAreEntryLevel(tt.quals))
		})
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		rec      domain.JobRecord
		want     bool
		reason   string
		evidence string
	}{
		{
			name: "entry level",
			rec:  domain.JobRecord{Title: "Software Engineer I", Qualifications: []string{"BS in CS"}},
			want: true,
		},
		{
			name:     "title wins first",
			rec:      domain.JobRecord{Title: "Senior Engineer", Qualifications: []string{"5 years"}},
			reason:   domain.ReasonTitle,
			evidence: "Senior Engineer",
		},
		{
			name:     "experience",
			rec:      domain.JobRecord{Title: "Engineer", Qualifications: []string{"Go", "3+ years of experience"}},
			reason:   domain.ReasonExperience,
			evidence: "3+ years of experience",
		},
		{
			name:     "graduate degree",
			rec:      domain.JobRecord{Title: "Research Engineer", Qualifications: []string{"PhD"}},
			reason:   domain.ReasonGraduateDegree,
			evidence: "PhD",
		},
		{
			name: "empty record",
			rec:  domain.JobRecord{},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Evaluate(tt.rec)
			assert.Equal(t, tt.want, v.EntryLevel)
			assert.Equal(t, tt.reason, v.Reason)
			assert.Equal(t, tt.evidence, v.Evidence)
		})
	}
}
