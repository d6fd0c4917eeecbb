package analysis

import (
	"math"

	"resume-studio/internal/contract"
	"resume-studio/internal/resume"
	"resume-studio/internal/scoring"
)

// ResumeStats counts what the snapshot actually contains, independent of any
// scoring verdict.
type ResumeStats struct {
	Sections        int `json:"sections"`
	TotalProjects   int `json:"totalProjects"`
	TotalExperience int `json:"totalExperience"`
	TotalSkills     int `json:"totalSkills"`
}

// BasicMetrics are the deterministic quick metrics attached to every result,
// AI-backed or heuristic.
type BasicMetrics struct {
	CompletenessScore int `json:"completenessScore"`
	ATSScore          int `json:"atsScore"`
	SkillDiversity    int `json:"skillDiversity"`
	ProjectImpact     int `json:"projectImpact"`
}

// EnrichedResult is the analyze response body: the provider's result plus
// the orchestrator's stats and metrics.
type EnrichedResult struct {
	contract.AnalysisResult
	ResumeStats  ResumeStats  `json:"resumeStats"`
	BasicMetrics BasicMetrics `json:"basicMetrics"`
}

// Enrich merges the scoring result with snapshot-derived stats and metrics.
func Enrich(result contract.AnalysisResult, snap resume.Snapshot) EnrichedResult {
	return EnrichedResult{
		AnalysisResult: result,
		ResumeStats:    Stats(snap),
		BasicMetrics:   Metrics(snap),
	}
}

// Stats counts the filled sections and section entries of a snapshot.
func Stats(snap resume.Snapshot) ResumeStats {
	return ResumeStats{
		Sections:        sectionsPresent(snap),
		TotalProjects:   snap.Projects.Count,
		TotalExperience: snap.Experience.Count,
		TotalSkills:     snap.Skills.TotalSkills,
	}
}

// Metrics computes the quick deterministic metrics for a snapshot.
func Metrics(snap resume.Snapshot) BasicMetrics {
	return BasicMetrics{
		CompletenessScore: completenessScore(snap),
		ATSScore:          scoring.ATSScore(snap),
		SkillDiversity:    skillDiversity(snap),
		ProjectImpact:     projectImpact(snap),
	}
}

func sectionsPresent(snap resume.Snapshot) int {
	count := 0
	if profilePresent(snap.Profile) {
		count++
	}
	if snap.Education.Count > 0 {
		count++
	}
	if snap.Projects.Count > 0 {
		count++
	}
	if snap.Experience.Count > 0 {
		count++
	}
	if snap.Skills.TotalSkills > 0 {
		count++
	}
	if snap.Achievements.Count > 0 {
		count++
	}
	if snap.Extracurricular.Count > 0 {
		count++
	}
	return count
}

func profilePresent(p resume.Profile) bool {
	return p.FirstName != "" || p.LastName != "" || p.Email != "" || p.Mobile != ""
}

// completenessScore is the share of the four core sections with content.
// Experience counts toward resumeStats but not here, so students without
// work history can still reach 100.
func completenessScore(snap resume.Snapshot) int {
	filled := 0
	if profilePresent(snap.Profile) {
		filled++
	}
	if snap.Education.Count > 0 {
		filled++
	}
	if snap.Projects.Count > 0 {
		filled++
	}
	if snap.Skills.TotalSkills > 0 {
		filled++
	}
	return int(math.Round(float64(filled) / 4 * 100))
}

// skillDiversity rewards spreading skills across categories, saturating at
// five categories.
func skillDiversity(snap resume.Snapshot) int {
	diversity := float64(snap.Skills.CategoryCount) / 5 * 100
	if diversity > 100 {
		diversity = 100
	}
	return int(math.Round(diversity))
}

// projectImpact scores each project on description depth, tech stack and
// link presence, capped at 100 overall.
func projectImpact(snap resume.Snapshot) int {
	impact := 0
	for _, p := range snap.Projects.Entries {
		if p.DescriptionLength > 100 {
			impact += 20
		}
		if p.HasTechStack {
			impact += 15
		}
		if p.HasLink {
			impact += 10
		}
	}
	if impact > 100 {
		impact = 100
	}
	return impact
}
