// Package classify decides whether a job posting is plausibly entry level
// from its title and qualification statements.
package classify

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"entryhunt/internal/domain"
)

var (
	seniorityRe = regexp.MustCompile(`(?i)\b(?:senior|sr|manager(?:ial)?|mngr|lead(?:er)?)s?\b`)

	// a number word or 1-2 digit numeral, optional "+", "plus" or "or more", then year(s)/yr(s)
	experienceRe = regexp.MustCompile(`(?i)\b(?:one|two|three|four|five|six|seven|eight|nine|ten|\d{1,2})\s?(?:\+|plus|or more)?\s*(?:years?|yrs?)\b`)

	// abbreviations are case sensitive so "ms" and "ma" in prose do not trip them
	graduateRe  = regexp.MustCompile(`\bM\.?\s?Sc?\b|\b[Pp][Hh]\.?\s?[Dd]\b|(?i:\bmaster'?s\b|\bmaster of (?:science|arts)\b|\bdoctorate\b)`)
	bachelorsRe = regexp.MustCompile(`\bB\.?\s?(?:A|Sc?)\b|(?i:\bbachelor)`)
)

// TitleIsEntryLevel reports false if the title carries a seniority marker.
// An empty title passes.
func TitleIsEntryLevel(title string) bool {
	return !seniorityRe.MatchString(normalize(title))
}

// QualificationsAreEntryLevel reports false if any statement asks for years
// of experience, or names a graduate degree without a bachelor's option.
// An empty list passes.
func QualificationsAreEntryLevel(qualifications []string) bool {
	reason, _ := disqualifying(qualifications)
	return reason == ""
}

// Evaluate applies both predicates. A job is entry level only if both pass.
func Evaluate(rec domain.JobRecord) domain.Verdict {
	if t := normalize(rec.Title); seniorityRe.MatchString(t) {
		return domain.Verdict{Reason: domain.ReasonTitle, Evidence: rec.Title}
	}
	if reason, statement := disqualifying(rec.Qualifications); reason != "" {
		return domain.Verdict{Reason: reason, Evidence: statement}
	}
	return domain.Verdict{EntryLevel: true}
}

func disqualifying(qualifications []string) (reason, statement string) {
	for _, q := range qualifications {
		n := normalize(q)
		if experienceRe.MatchString(n) {
			return domain.ReasonExperience, q
		}
		if graduateRe.MatchString(n) && !bachelorsRe.MatchString(n) {
			return domain.ReasonGraduateDegree, q
		}
	}
	return "", ""
}

var apostrophes = strings.NewReplacer("\u2019", "'", "\u2018", "'", "\u02bc", "'")

// normalize folds compatibility forms (full-width digits, ligatures) and
// typographic apostrophes so the patterns see plain ASCII where possible.
func normalize(s string) string {
	return apostrophes.Replace(norm.NFKC.String(s))
}
