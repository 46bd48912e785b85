// Package schedule generates rotating push/pull/legs training weeks.
package schedule

import (
	"math/rand"
	"time"

	"github.com/claude/liftplan/internal/models"
)

// Generator produces 7-day schedules from a catalog. The random source and
// clock are injectable so tests can pin both.
type Generator struct {
	catalog *models.Catalog
	rng     *rand.Rand
	now     func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand replaces the shuffle source (deterministic tests).
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// WithNow replaces the clock used for default anchor computation.
func WithNow(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a Generator over the given catalog.
func New(catalog *models.Catalog, opts ...Option) *Generator {
	g := &Generator{
		catalog: catalog,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NextAnchor returns the next Monday strictly after today. A schedule
// anchored here can never be partially elapsed when handed to the caller.
func (g *Generator) NextAnchor() models.Date {
	today := models.DateOf(g.now())
	ahead := (8 - int(today.Weekday())) % 7
	if ahead == 0 {
		ahead = 7
	}
	return today.AddDays(ahead)
}

// Week generates the 7-day schedule starting at anchor. Training days take
// the catalog's list for their category, shuffled per day when randomize is
// set; rest days get an empty list. Always returns exactly 7 entries.
func (g *Generator) Week(anchor models.Date, randomize bool) models.Schedule {
	week := make(models.Schedule, 0, 7)
	for offset := 0; offset < 7; offset++ {
		date := anchor.AddDays(offset)
		dayType := models.WeekCycle[offset]

		var exercises []string
		if cat, ok := dayType.Category(); ok {
			exercises = append(exercises, g.catalog.Exercises(cat)...)
			if randomize {
				g.rng.Shuffle(len(exercises), func(i, j int) {
					exercises[i], exercises[j] = exercises[j], exercises[i]
				})
			}
		}

		week = append(week, models.ScheduleEntry{
			Date:      date,
			Type:      dayType,
			Exercises: exercises,
		})
	}
	return week
}

// WeekFromToday generates the upcoming week using the default anchor.
func (g *Generator) WeekFromToday(randomize bool) models.Schedule {
	return g.Week(g.NextAnchor(), randomize)
}
