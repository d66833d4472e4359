package workouts

import (
	"sort"
	"time"

	"github.com/2beens/fittrack/internal/users"

	log "github.com/sirupsen/logrus"
)

type DayCalories struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
}

type Stats struct {
	TotalCalories         float64 `json:"totalCalories"`
	TotalWorkouts         int     `json:"totalWorkouts"`
	AvgCaloriesPerWorkout float64 `json:"avgCaloriesPerWorkout"`
}

// CaloriesByDay sums burned calories per UTC calendar date, oldest day first.
// Workouts with an unreadable date are skipped.
func CaloriesByDay(workouts []users.Workout, loc *time.Location) []DayCalories {
	day2calories := make(map[string]float64)
	for _, w := range workouts {
		t, err := ParseDate(w.Date, loc)
		if err != nil {
			log.Debugf("calories by day: skipping workout [%s] with date [%s]", w.ID, w.Date)
			continue
		}
		day := t.UTC().Format(dateOnlyLayout)
		day2calories[day] += w.BurnedCalories()
	}

	days := make([]DayCalories, 0, len(day2calories))
	for day, calories := range day2calories {
		days = append(days, DayCalories{
			Date:     day,
			Calories: calories,
		})
	}
	// YYYY-MM-DD sorts lexically in chronological order
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})

	return days
}

// DashboardStats covers the workouts that fall on now's calendar day in loc.
func DashboardStats(workouts []users.Workout, now time.Time, loc *time.Location) Stats {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var stats Stats
	for _, w := range workouts {
		t, err := ParseDate(w.Date, loc)
		if err != nil {
			continue
		}
		if t.Before(dayStart) || !t.Before(dayEnd) {
			continue
		}
		stats.TotalCalories += w.BurnedCalories()
		stats.TotalWorkouts++
	}

	if stats.TotalWorkouts > 0 {
		stats.AvgCaloriesPerWorkout = stats.TotalCalories / float64(stats.TotalWorkouts)
	}

	return stats
}

// Analyzer binds the aggregation functions to a clock and a time zone.
type Analyzer struct {
	now func() time.Time
	loc *time.Location
}

func NewAnalyzer(now func() time.Time, loc *time.Location) *Analyzer {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Analyzer{
		now: now,
		loc: loc,
	}
}

func (a *Analyzer) CaloriesByDay(workouts []users.Workout) []DayCalories {
	return CaloriesByDay(workouts, a.loc)
}

func (a *Analyzer) DashboardStats(workouts []users.Workout) Stats {
	return DashboardStats(workouts, a.now(), a.loc)
}

func (a *Analyzer) ParseDate(value string) (time.Time, error) {
	return ParseDate(value, a.loc)
}
