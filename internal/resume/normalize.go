package resume

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrMissingRequiredSection is returned when neither profile nor education
// survives sanitization; such a resume is not analyzable.
var ErrMissingRequiredSection = errors.New("missing required section")

const (
	maxTextLen  = 1000
	maxPhoneLen = 15

	profileValidThreshold    = 60
	educationValidThreshold  = 50
	projectValidThreshold    = 60
	experienceValidThreshold = 60
	minSkillCount            = 3
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Normalize sanitizes a raw resume payload into its canonical Snapshot.
// Missing optional fields never cause an error; only a payload whose profile
// and education are both unusable fails with ErrMissingRequiredSection.
func Normalize(raw RawSnapshot) (Snapshot, error) {
	snap := Snapshot{
		Profile:    normalizeProfile(raw.Profile),
		Education:  normalizeEducation(raw.Education),
		Projects:   normalizeProjects(raw.Projects),
		Experience: normalizeExperience(raw.Experience),
	}

	if raw.ExtraDetails != nil {
		snap.Skills = normalizeSkills(raw.ExtraDetails.Skills)
		snap.Achievements = normalizeTextList(raw.ExtraDetails.Achievements)
		snap.Extracurricular = normalizeTextList(raw.ExtraDetails.ExtraCoCurricular)
	} else {
		snap.Skills = normalizeSkills(nil)
		snap.Achievements = normalizeTextList(nil)
		snap.Extracurricular = normalizeTextList(nil)
	}

	if !snap.Profile.IsValid && !snap.Education.IsValid {
		return Snapshot{}, fmt.Errorf("%w: profile, education", ErrMissingRequiredSection)
	}
	return snap, nil
}

func normalizeProfile(raw *RawProfile) Profile {
	if raw == nil {
		return Profile{}
	}
	p := Profile{
		FirstName:  SanitizeText(raw.FirstName),
		LastName:   SanitizeText(raw.LastName),
		Email:      SanitizeEmail(raw.Email),
		Mobile:     SanitizePhone(raw.Mobile),
		Address:    SanitizeText(raw.Address),
		LinkedIn:   SanitizeURL(raw.LinkedIn),
		GitHub:     SanitizeURL(raw.GitHub),
		CodeChef:   SanitizeText(raw.CodeChef),
		LeetCode:   SanitizeText(raw.LeetCode),
		CodeForces: SanitizeText(raw.CodeForces),
	}
	p.Completeness = completeness(p.FirstName, p.LastName, p.Email, p.Mobile)
	p.IsValid = p.Completeness >= profileValidThreshold
	return p
}

func normalizeEducation(raw []RawEducation) EducationSection {
	entries := make([]EducationEntry, 0, len(raw))
	for _, edu := range raw {
		e := EducationEntry{
			College:    SanitizeText(edu.College),
			Year:       SanitizeText(edu.Year),
			Field:      SanitizeText(edu.Field),
			Branch:     SanitizeText(edu.Branch),
			StartYear:  SanitizeYear(edu.StartYear),
			EndYear:    SanitizeYear(edu.EndYear),
			City:       SanitizeText(edu.City),
			Grades:     SanitizeText(edu.Grades),
			Board:      SanitizeText(firstNonEmpty(edu.Board1, edu.Board2)),
			Percentage: SanitizeText(firstNonEmpty(edu.Percentage, edu.Percentage2)),
		}
		e.Completeness = completeness(e.College, e.Field, e.StartYear, e.EndYear)
		entries = append(entries, e)
	}

	mean := meanCompleteness(len(entries), func(i int) int { return entries[i].Completeness })
	return EducationSection{
		Entries:      entries,
		IsValid:      len(entries) > 0 && mean >= educationValidThreshold,
		Completeness: mean,
		Count:        len(entries),
	}
}

func normalizeProjects(raw []RawProject) ProjectSection {
	entries := make([]ProjectEntry, 0, len(raw))
	for _, proj := range raw {
		p := ProjectEntry{
			Title:       SanitizeText(proj.Title),
			Description: SanitizeText(proj.Description),
			TechStack:   SanitizeText(proj.TechStack),
			Link:        SanitizeURL(proj.Link),
		}
		p.Completeness = completeness(p.Title, p.Description, p.TechStack)
		p.DescriptionLength = len(p.Description)
		p.HasTechStack = p.TechStack != ""
		p.HasLink = p.Link != ""
		entries = append(entries, p)
	}

	mean := meanCompleteness(len(entries), func(i int) int { return entries[i].Completeness })
	return ProjectSection{
		Entries:      entries,
		IsValid:      len(entries) > 0 && mean >= projectValidThreshold,
		Completeness: mean,
		Count:        len(entries),
	}
}

func normalizeExperience(raw []RawExperience) ExperienceSection {
	entries := make([]ExperienceEntry, 0, len(raw))
	for _, exp := range raw {
		e := ExperienceEntry{
			Role:        SanitizeText(exp.Role),
			Institute:   SanitizeText(exp.Institute),
			StartDate:   SanitizeText(exp.StartDate),
			EndDate:     SanitizeText(exp.EndDate),
			Description: SanitizeText(exp.Description),
		}
		e.Completeness = completeness(e.Role, e.Institute, e.StartDate, e.EndDate, e.Description)
		e.DescriptionLength = len(e.Description)
		e.HasDates = e.StartDate != "" && e.EndDate != ""
		entries = append(entries, e)
	}

	mean := meanCompleteness(len(entries), func(i int) int { return entries[i].Completeness })
	return ExperienceSection{
		Entries:      entries,
		IsValid:      len(entries) > 0 && mean >= experienceValidThreshold,
		Completeness: mean,
		Count:        len(entries),
	}
}

func normalizeSkills(raw map[string][]string) SkillsSection {
	categories := make(map[string][]string, len(raw))
	total := 0
	for category, skills := range raw {
		cleaned := make([]string, 0, len(skills))
		for _, skill := range skills {
			if s := SanitizeText(skill); s != "" {
				cleaned = append(cleaned, s)
			}
		}
		categories[category] = cleaned
		total += len(cleaned)
	}
	return SkillsSection{
		Categories:    categories,
		IsValid:       total >= minSkillCount,
		TotalSkills:   total,
		CategoryCount: len(categories),
	}
}

func normalizeTextList(raw []string) TextSection {
	entries := make([]string, 0, len(raw))
	for _, line := range raw {
		if s := SanitizeText(line); s != "" {
			entries = append(entries, s)
		}
	}
	return TextSection{
		Entries: entries,
		Count:   len(entries),
		IsValid: len(entries) > 0,
	}
}

// completeness is the share of non-empty fields, rounded to an integer percent.
func completeness(fields ...string) int {
	if len(fields) == 0 {
		return 0
	}
	filled := 0
	for _, f := range fields {
		if f != "" {
			filled++
		}
	}
	return int(math.Round(float64(filled) / float64(len(fields)) * 100))
}

func meanCompleteness(n int, at func(int) int) int {
	if n == 0 {
		return 0
	}
	sum := 0
	for i := 0; i < n; i++ {
		sum += at(i)
	}
	return int(math.Round(float64(sum) / float64(n)))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// SanitizeText trims, strips angle brackets and caps the value at 1000
// bytes. The cap never splits a rune and the result is re-trimmed, so the
// function is idempotent.
func SanitizeText(text string) string {
	s := strings.TrimSpace(text)
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	if len(s) > maxTextLen {
		cut := maxTextLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = strings.TrimSpace(s[:cut])
	}
	return s
}

// SanitizeEmail keeps the value only when it matches a basic
// local@domain.tld shape; anything else canonicalizes to "".
func SanitizeEmail(email string) string {
	s := SanitizeText(email)
	if s == "" || !emailRe.MatchString(s) {
		return ""
	}
	return s
}

// SanitizePhone strips everything but digits and '+', capped at 15 characters.
func SanitizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if len(s) > maxPhoneLen {
		s = s[:maxPhoneLen]
	}
	return s
}

// SanitizeURL prefixes non-empty values with https:// unless they already
// carry an http scheme.
func SanitizeURL(url string) string {
	s := SanitizeText(url)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "http") {
		return s
	}
	return "https://" + s
}

// SanitizeYear keeps four-digit years within [1900, 2100]; anything else
// canonicalizes to "".
func SanitizeYear(year string) string {
	s := strings.TrimSpace(year)
	if s == "" {
		return ""
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1900 || n > 2100 {
		return ""
	}
	return strconv.Itoa(n)
}
