package markdown

import (
	"regexp"
	"strconv"
)

// setInputRe matches interactive set entry: "135 x 10", "135x10", "135 10".
var setInputRe = regexp.MustCompile(`^([\d.]+)\s*x?\s*(\d+)`)

// ParseSetInput parses a "weight x reps" line typed during interactive
// logging. Returns ok=false for anything that does not resolve to a
// strictly positive weight and rep count.
func ParseSetInput(s string) (weight float64, reps int, ok bool) {
	m := setInputRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	weight, err := strconv.ParseFloat(m[1], 64)
	if err != nil || weight <= 0 {
		return 0, 0, false
	}
	reps, err = strconv.Atoi(m[2])
	if err != nil || reps <= 0 {
		return 0, 0, false
	}
	return weight, reps, true
}
