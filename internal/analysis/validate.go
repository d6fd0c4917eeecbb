package analysis

import (
	"strings"

	"resume-studio/internal/resume"
)

// ValidateRaw runs the boundary check on the incoming payload. It is lighter
// than the normalizer: only the presence of the profile and education blocks
// and the core contact fields are checked, and every violation is collected
// so the caller can report them all at once.
func ValidateRaw(raw resume.RawSnapshot) []string {
	var details []string

	if raw.Profile == nil {
		details = append(details, "Profile information is required")
	} else {
		if strings.TrimSpace(raw.Profile.FirstName) == "" {
			details = append(details, "First name is required")
		}
		if strings.TrimSpace(raw.Profile.LastName) == "" {
			details = append(details, "Last name is required")
		}
		if strings.TrimSpace(raw.Profile.Email) == "" {
			details = append(details, "Email is required")
		}
	}

	if len(raw.Education) == 0 {
		details = append(details, "Education information is required")
	}

	return details
}
