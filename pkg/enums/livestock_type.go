package enums

import (
	"fmt"
	"strings"
)

// LivestockType classifies catalog listings.
type LivestockType string

const (
	LivestockTypeGoat    LivestockType = "Goat"
	LivestockTypeSheep   LivestockType = "Sheep"
	LivestockTypeBuffalo LivestockType = "Buffalo"
	LivestockTypeCow     LivestockType = "Cow"
	LivestockTypeOther   LivestockType = "Other"
)

// DefaultLivestockType applies when a listing omits its type.
const DefaultLivestockType = LivestockTypeGoat

var validLivestockTypes = []LivestockType{
	LivestockTypeGoat,
	LivestockTypeSheep,
	LivestockTypeBuffalo,
	LivestockTypeCow,
	LivestockTypeOther,
}

// String implements fmt.Stringer.
func (l LivestockType) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LivestockType.
func (l LivestockType) IsValid() bool {
	for _, candidate := range validLivestockTypes {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLivestockType converts raw input into a LivestockType. Matching is
// case-insensitive so "goat" and "Goat" are the same listing type.
func ParseLivestockType(value string) (LivestockType, error) {
	trimmed := strings.TrimSpace(value)
	for _, candidate := range validLivestockTypes {
		if strings.EqualFold(string(candidate), trimmed) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid livestock type %q", value)
}
