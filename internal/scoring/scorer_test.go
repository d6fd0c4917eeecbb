package scoring

import (
	"reflect"
	"testing"

	"resume-studio/internal/contract"
	"resume-studio/internal/resume"
)

func snapshot(t *testing.T, raw resume.RawSnapshot) resume.Snapshot {
	t.Helper()
	snap, err := resume.Normalize(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return snap
}

func exampleRaw() resume.RawSnapshot {
	return resume.RawSnapshot{
		Profile: &resume.RawProfile{
			FirstName: "A", LastName: "B", Email: "a@b.com", Mobile: "9999999999",
		},
		Education: []resume.RawEducation{
			{College: "X", Field: "CS", StartYear: "2020", EndYear: "2024"},
		},
		ExtraDetails: &resume.RawExtraDetails{
			Skills: map[string][]string{"languages": {"Python", "Java"}},
		},
	}
}

func maximalRaw() resume.RawSnapshot {
	raw := exampleRaw()
	raw.Projects = []resume.RawProject{
		{Title: "One", Description: "d", TechStack: "Go"},
		{Title: "Two", Description: "d", TechStack: "Go"},
	}
	raw.Experience = []resume.RawExperience{
		{Role: "Dev", Institute: "A", StartDate: "2020", EndDate: "2021", Description: "d"},
		{Role: "Dev", Institute: "B", StartDate: "2021", EndDate: "2022", Description: "d"},
	}
	raw.ExtraDetails.Skills = map[string][]string{
		"languages": {"Go", "Python", "Java", "C"},
		"databases": {"Postgres", "Redis", "MySQL", "SQLite"},
	}
	return raw
}

func TestScoreWorkedExample(t *testing.T) {
	result := Score(snapshot(t, exampleRaw()))

	if result.SectionScores.Personal != 15 {
		t.Fatalf("personal = %d, want 15", result.SectionScores.Personal)
	}
	if result.SectionScores.Education != 20 {
		t.Fatalf("education = %d, want 20", result.SectionScores.Education)
	}
	if result.SectionScores.Projects != 0 || result.SectionScores.Experience != 0 {
		t.Fatalf("projects/experience = %d/%d, want 0/0", result.SectionScores.Projects, result.SectionScores.Experience)
	}
	if result.SectionScores.Skills != 0 {
		t.Fatalf("skills = %d, want 0 (only 2 skills)", result.SectionScores.Skills)
	}
	if result.OverallScore != 35 {
		t.Fatalf("overallScore = %d, want 35", result.OverallScore)
	}
	if result.ATSScore != 65 {
		t.Fatalf("atsScore = %d, want 65 (25 contact + 20 education + 20 skills)", result.ATSScore)
	}
	if !result.IsFallback {
		t.Fatalf("heuristic result must set isFallback")
	}
}

func TestScoreDeterministic(t *testing.T) {
	snap := snapshot(t, maximalRaw())
	first := Score(snap)
	second := Score(snap)

	if first.OverallScore != second.OverallScore ||
		first.ATSScore != second.ATSScore ||
		first.SectionScores != second.SectionScores {
		t.Fatalf("scores differ across calls: %+v vs %+v", first, second)
	}
	if !reflect.DeepEqual(first.Strengths, second.Strengths) ||
		!reflect.DeepEqual(first.Improvements, second.Improvements) {
		t.Fatalf("messages differ across calls")
	}
}

func TestScoreMaximalSnapshot(t *testing.T) {
	result := Score(snapshot(t, maximalRaw()))
	if result.OverallScore != 100 {
		t.Fatalf("overallScore = %d, want 100", result.OverallScore)
	}
	if result.ATSScore != 100 {
		t.Fatalf("atsScore = %d, want 100", result.ATSScore)
	}
}

func TestScoreEmptySnapshot(t *testing.T) {
	result := Score(resume.Snapshot{})

	if result.OverallScore != 0 || result.ATSScore != 0 {
		t.Fatalf("empty snapshot should score 0/0, got %d/%d", result.OverallScore, result.ATSScore)
	}
	if result.SectionScores != (contract.SectionScores{}) {
		t.Fatalf("expected zero section scores, got %+v", result.SectionScores)
	}
	want := []string{"Good foundation - continue building your experience and skills"}
	if !reflect.DeepEqual(result.Strengths, want) {
		t.Fatalf("strengths = %v, want generic encouragement", result.Strengths)
	}
	if len(result.Improvements) != 8 {
		t.Fatalf("expected full improvements list (8), got %d: %v", len(result.Improvements), result.Improvements)
	}
}

func TestScoreProjectMonotonicity(t *testing.T) {
	base := exampleRaw()
	before := Score(snapshot(t, base))

	base.Projects = []resume.RawProject{{Title: "One", Description: "d", TechStack: "Go"}}
	after := Score(snapshot(t, base))

	if after.SectionScores.Projects < before.SectionScores.Projects {
		t.Fatalf("projects score decreased: %d -> %d", before.SectionScores.Projects, after.SectionScores.Projects)
	}
	if after.OverallScore < before.OverallScore {
		t.Fatalf("overall score decreased: %d -> %d", before.OverallScore, after.OverallScore)
	}

	base.Projects = append(base.Projects, resume.RawProject{Title: "Two", Description: "d", TechStack: "Go"})
	two := Score(snapshot(t, base))
	if two.SectionScores.Projects < after.SectionScores.Projects {
		t.Fatalf("projects score decreased with second project")
	}
}

func TestScoreBounds(t *testing.T) {
	snapshots := []resume.Snapshot{
		{},
		snapshot(t, exampleRaw()),
		snapshot(t, maximalRaw()),
	}
	for i, snap := range snapshots {
		result := Score(snap)
		if result.OverallScore < 0 || result.OverallScore > 100 {
			t.Fatalf("snapshot %d: overall %d out of range", i, result.OverallScore)
		}
		if result.ATSScore < 0 || result.ATSScore > 100 {
			t.Fatalf("snapshot %d: ats %d out of range", i, result.ATSScore)
		}
	}
}

func TestSingleEntryPartialCredit(t *testing.T) {
	raw := exampleRaw()
	raw.Experience = []resume.RawExperience{
		{Role: "Dev", Institute: "A", StartDate: "2020", EndDate: "2021", Description: "d"},
	}
	result := Score(snapshot(t, raw))
	// 70% of the experience weight, rounded.
	if result.SectionScores.Experience != 18 {
		t.Fatalf("experience = %d, want 18 (0.7 * 25 rounded)", result.SectionScores.Experience)
	}
}
