package enums

import "fmt"

// OrganizationCategory classifies a campus organization.
type OrganizationCategory string

const (
	OrganizationCategoryCollege    OrganizationCategory = "college"
	OrganizationCategoryDepartment OrganizationCategory = "department"
	OrganizationCategoryClub       OrganizationCategory = "club"
	OrganizationCategoryCouncil    OrganizationCategory = "council"
)

var validOrganizationCategories = []OrganizationCategory{
	OrganizationCategoryCollege,
	OrganizationCategoryDepartment,
	OrganizationCategoryClub,
	OrganizationCategoryCouncil,
}

// String implements fmt.Stringer.
func (c OrganizationCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known OrganizationCategory.
func (c OrganizationCategory) IsValid() bool {
	for _, candidate := range validOrganizationCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseOrganizationCategory converts raw input into an OrganizationCategory.
func ParseOrganizationCategory(value string) (OrganizationCategory, error) {
	for _, candidate := range validOrganizationCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid organization category %q", value)
}
