package scoring

import "resume-studio/internal/resume"

// Each predicate contributes at most one fixed message and the check order
// is fixed, keeping heuristic output reproducible.

func identifyStrengths(snap resume.Snapshot) []string {
	strengths := make([]string, 0, 5)
	if snap.Projects.Count >= 2 {
		strengths = append(strengths, "Strong project portfolio demonstrating practical experience")
	}
	if snap.Experience.Count > 0 {
		strengths = append(strengths, "Relevant work experience in the field")
	}
	if snap.Skills.TotalSkills >= 5 {
		strengths = append(strengths, "Diverse technical skill set across multiple areas")
	}
	if snap.Profile.LinkedIn != "" || snap.Profile.GitHub != "" {
		strengths = append(strengths, "Professional online presence with portfolio links")
	}
	if snap.Profile.Email != "" && snap.Profile.Mobile != "" {
		strengths = append(strengths, "Complete contact information for employers")
	}
	if len(strengths) == 0 {
		strengths = append(strengths, "Good foundation - continue building your experience and skills")
	}
	return strengths
}

func suggestImprovements(snap resume.Snapshot) []string {
	improvements := make([]string, 0, 9)
	if snap.Profile.FirstName == "" {
		improvements = append(improvements, "Add your first name for personalization")
	}
	if snap.Profile.LastName == "" {
		improvements = append(improvements, "Include your last name for professional identification")
	}
	if snap.Profile.Email == "" {
		improvements = append(improvements, "Add email address for employer contact")
	}
	if snap.Profile.Mobile == "" {
		improvements = append(improvements, "Include mobile number for direct communication")
	}
	if snap.Education.Count == 0 {
		improvements = append(improvements, "Add educational background and qualifications")
	}
	if snap.Projects.Count == 0 {
		improvements = append(improvements, "Include at least one project to demonstrate practical skills")
	}
	if snap.Experience.Count == 0 {
		improvements = append(improvements, "Add work experience, internships, or relevant activities")
	}
	if snap.Skills.TotalSkills < 3 {
		improvements = append(improvements, "Expand your technical skills section with more relevant technologies")
	}
	if snap.Projects.Count > 0 && !hasDetailedProject(snap) {
		improvements = append(improvements, "Add detailed descriptions to your projects highlighting your contributions")
	}
	return improvements
}

func hasDetailedProject(snap resume.Snapshot) bool {
	for _, project := range snap.Projects.Entries {
		if project.DescriptionLength > 50 {
			return true
		}
	}
	return false
}

func longTermSuggestions() []string {
	return []string{
		"Add quantifiable achievements to your experience",
		"Include specific technologies and tools used",
		"Add links to your projects and GitHub profile",
		"Use action verbs to start each bullet point",
		"Tailor your resume with keywords from job descriptions",
	}
}
