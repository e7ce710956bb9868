package customer

// Level is a loyalty tier derived from a points balance.
type Level struct {
	Name string `json:"name"`
	// Next is the upper bound of the current tier; nil for the top tier.
	Next *int `json:"next,omitempty"`
	// Remaining is the number of points needed to reach Next.
	Remaining int `json:"remaining"`
}

var tiers = []struct {
	name  string
	limit int
}{
	{"Silver", 1000},
	{"Gold", 3000},
	{"Platinum", 5000},
}

// LevelFor maps a points balance to its tier. Bounds are inclusive:
// 1000 points is still Silver.
func LevelFor(points int) Level {
	for _, t := range tiers {
		if points <= t.limit {
			next := t.limit
			return Level{Name: t.name, Next: &next, Remaining: max(next-points, 0)}
		}
	}
	return Level{Name: "Diamond"}
}
