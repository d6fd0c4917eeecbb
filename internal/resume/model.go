package resume

// RawSnapshot mirrors the resume payload sent by the builder UI. Every field
// is optional on the wire; Normalize canonicalizes it into a Snapshot.
type RawSnapshot struct {
	Profile      *RawProfile      `json:"profile"`
	Education    []RawEducation   `json:"education"`
	Projects     []RawProject     `json:"projects"`
	Experience   []RawExperience  `json:"experience"`
	ExtraDetails *RawExtraDetails `json:"extraDetails"`
}

// RawProfile carries the contact block of the form.
type RawProfile struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Mobile     string `json:"mobile"`
	Address    string `json:"address"`
	LinkedIn   string `json:"linkedIn"`
	GitHub     string `json:"github"`
	CodeChef   string `json:"codechef"`
	LeetCode   string `json:"leetcode"`
	CodeForces string `json:"codeforces"`
}

// RawEducation is one education entry. Board1/Percentage are the college-level
// fields, Board2/Percentage2 the school-level duplicates the form emits.
type RawEducation struct {
	College     string `json:"college"`
	Year        string `json:"year"`
	Field       string `json:"field"`
	Branch      string `json:"branch"`
	StartYear   string `json:"startYear"`
	EndYear     string `json:"endYear"`
	City        string `json:"city"`
	Grades      string `json:"grades"`
	Board1      string `json:"board1"`
	Board2      string `json:"board2"`
	Percentage  string `json:"percentage"`
	Percentage2 string `json:"percentage2"`
}

// RawProject is one project entry.
type RawProject struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TechStack   string `json:"techStack"`
	Link        string `json:"link"`
}

// RawExperience is one experience entry, using the form's snake_case keys.
type RawExperience struct {
	Role        string `json:"role"`
	Institute   string `json:"institute"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"desc"`
}

// RawExtraDetails groups skills, achievements and extracurricular activities.
type RawExtraDetails struct {
	Skills            map[string][]string `json:"skills"`
	Achievements      []string            `json:"achievements"`
	ExtraCoCurricular []string            `json:"extraCoCurricular"`
}

// Snapshot is the canonical, sanitized form of a resume. No list field is
// ever nil after Normalize and every text field is already sanitized.
type Snapshot struct {
	Profile         Profile           `json:"profile"`
	Education       EducationSection  `json:"education"`
	Projects        ProjectSection    `json:"projects"`
	Experience      ExperienceSection `json:"experience"`
	Skills          SkillsSection     `json:"skills"`
	Achievements    TextSection       `json:"achievements"`
	Extracurricular TextSection       `json:"extracurricular"`
}

// Profile is the sanitized contact block plus its completeness verdict.
type Profile struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
	Address      string `json:"address"`
	LinkedIn     string `json:"linkedIn"`
	GitHub       string `json:"github"`
	CodeChef     string `json:"codechef"`
	LeetCode     string `json:"leetcode"`
	CodeForces   string `json:"codeforces"`
	Completeness int    `json:"completeness"`
	IsValid      bool   `json:"isValid"`
}

// EducationEntry is one sanitized education record.
type EducationEntry struct {
	College      string `json:"college"`
	Year         string `json:"year"`
	Field        string `json:"field"`
	Branch       string `json:"branch"`
	StartYear    string `json:"startYear"`
	EndYear      string `json:"endYear"`
	City         string `json:"city"`
	Grades       string `json:"grades"`
	Board        string `json:"board"`
	Percentage   string `json:"percentage"`
	Completeness int    `json:"completeness"`
}

// EducationSection groups education entries with the section verdict.
type EducationSection struct {
	Entries      []EducationEntry `json:"entries"`
	IsValid      bool             `json:"isValid"`
	Completeness int              `json:"completeness"`
	Count        int              `json:"count"`
}

// ProjectEntry is one sanitized project record with derived signals used by
// the scorer (description length, tech stack and link presence).
type ProjectEntry struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	TechStack         string `json:"techStack"`
	Link              string `json:"link"`
	Completeness      int    `json:"completeness"`
	DescriptionLength int    `json:"descriptionLength"`
	HasTechStack      bool   `json:"hasTechStack"`
	HasLink           bool   `json:"hasLink"`
}

// ProjectSection groups project entries with the section verdict.
type ProjectSection struct {
	Entries      []ProjectEntry `json:"entries"`
	IsValid      bool           `json:"isValid"`
	Completeness int            `json:"completeness"`
	Count        int            `json:"count"`
}

// ExperienceEntry is one sanitized experience record.
type ExperienceEntry struct {
	Role              string `json:"role"`
	Institute         string `json:"institute"`
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	Description       string `json:"description"`
	Completeness      int    `json:"completeness"`
	DescriptionLength int    `json:"descriptionLength"`
	HasDates          bool   `json:"hasDates"`
}

// ExperienceSection groups experience entries with the section verdict.
type ExperienceSection struct {
	Entries      []ExperienceEntry `json:"entries"`
	IsValid      bool              `json:"isValid"`
	Completeness int               `json:"completeness"`
	Count        int               `json:"count"`
}

// SkillsSection holds sanitized skills keyed by open-ended category names.
type SkillsSection struct {
	Categories    map[string][]string `json:"categories"`
	IsValid       bool                `json:"isValid"`
	TotalSkills   int                 `json:"totalSkills"`
	CategoryCount int                 `json:"categoryCount"`
}

// TextSection is a sanitized list of free-text lines (achievements,
// extracurricular activities).
type TextSection struct {
	Entries []string `json:"entries"`
	Count   int      `json:"count"`
	IsValid bool     `json:"isValid"`
}
