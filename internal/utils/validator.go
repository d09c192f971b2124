package utils

import (
	"regexp"
	"strings"
)

func IsValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

func IsValidPassword(password string) bool {
	return len(password) >= 8
}

func IsValidRole(role string) bool {
	validRoles := []string{"user", "lessor", "admin"}
	for _, validRole := range validRoles {
		if role == validRole {
			return true
		}
	}
	return false
}

func SanitizeString(input string) string {
	return strings.TrimSpace(input)
}

func IsValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

var slugNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the name and collapses every non-alphanumeric run
// into a single dash.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugNonAlnum.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
