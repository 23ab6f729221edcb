package timeutil

import "time"

// KickoffLayout is how game start times are shown in reports.
const KickoffLayout = "Mon Jan 2 3:04 PM MST"

// ParseCommence parses an upstream RFC3339 commence time.
func ParseCommence(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

// FormatKickoff renders an upstream commence time in loc. Unparseable values yield "".
func FormatKickoff(value string, loc *time.Location) string {
	t, err := ParseCommence(value)
	if err != nil {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(KickoffLayout)
}

// LoadLocation resolves an IANA zone name, falling back to UTC when it is empty or unknown.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.UTC
}
