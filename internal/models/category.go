package models

import (
	"fmt"
	"strings"
)

// Category is one of the three trainable muscle-group classes.
type Category string

const (
	CategoryPush Category = "push"
	CategoryPull Category = "pull"
	CategoryLegs Category = "legs"
)

// Categories lists all valid categories in display order.
var Categories = []Category{CategoryPush, CategoryPull, CategoryLegs}

// ParseCategory normalizes a user-supplied category name.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(s)) {
	case CategoryPush:
		return CategoryPush, nil
	case CategoryPull:
		return CategoryPull, nil
	case CategoryLegs:
		return CategoryLegs, nil
	}
	return "", fmt.Errorf("invalid category %q: must be push, pull, or legs", s)
}

// DayType is a day's assigned training category, or Rest.
type DayType string

const (
	DayPush DayType = "Push"
	DayPull DayType = "Pull"
	DayLegs DayType = "Legs"
	DayRest DayType = "Rest"
)

// WeekCycle maps weekday offsets from the anchor date to day types.
// Three on, three on pattern with the seventh day off.
var WeekCycle = [7]DayType{DayPush, DayPull, DayLegs, DayPush, DayPull, DayLegs, DayRest}

// Category returns the catalog category for a training day.
// The second return is false for rest days.
func (d DayType) Category() (Category, bool) {
	switch d {
	case DayPush:
		return CategoryPush, true
	case DayPull:
		return CategoryPull, true
	case DayLegs:
		return CategoryLegs, true
	}
	return "", false
}
