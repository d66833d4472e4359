package users

import (
	"encoding/json"
	"math"

	"github.com/2beens/fittrack/pkg"
)

type Workout struct {
	ID           string  `json:"id"`
	ExerciseName string  `json:"exerciseName"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
	Date         string  `json:"date"`
	Intensity    string  `json:"intensity"`
	Duration     float64 `json:"duration"`
	// Calories is calories burned per minute.
	Calories float64 `json:"calories"`
}

// UnmarshalJSON accepts numbers written as strings, older records were saved
// straight from form input.
func (w *Workout) UnmarshalJSON(data []byte) error {
	type workoutAlias Workout
	aux := struct {
		*workoutAlias
		ID       pkg.FlexString `json:"id"`
		Sets     pkg.FlexFloat  `json:"sets"`
		Reps     pkg.FlexFloat  `json:"reps"`
		Duration pkg.FlexFloat  `json:"duration"`
		Calories pkg.FlexFloat  `json:"calories"`
	}{
		workoutAlias: (*workoutAlias)(w),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	w.ID = aux.ID.String()
	w.Sets = int(math.Trunc(float64(aux.Sets)))
	w.Reps = int(math.Trunc(float64(aux.Reps)))
	w.Duration = float64(aux.Duration)
	w.Calories = float64(aux.Calories)
	return nil
}

// BurnedCalories is calories per minute times duration in minutes.
func (w Workout) BurnedCalories() float64 {
	return w.Calories * w.Duration
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Workouts  []Workout `json:"workouts"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

// PublicUser is what clients get to see, no password hash.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Workouts  []Workout `json:"workouts"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

func (u *User) Public() PublicUser {
	workouts := u.Workouts
	if workouts == nil {
		workouts = []Workout{}
	}
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Workouts:  workouts,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (u *User) clone() User {
	c := *u
	if u.Workouts != nil {
		c.Workouts = make([]Workout, len(u.Workouts))
		copy(c.Workouts, u.Workouts)
	}
	return c
}

func cloneAll(users []User) []User {
	out := make([]User, len(users))
	for i := range users {
		out[i] = users[i].clone()
	}
	return out
}

// UserPatch holds the fields to overwrite in Repo.Update. Nil fields are left
// untouched; Workouts, when set, replaces the whole list.
type UserPatch struct {
	Name      *string
	Email     *string
	Password  *string
	Workouts  *[]Workout
	CreatedAt *string
	UpdatedAt *string
}

func (p UserPatch) apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Workouts != nil {
		u.Workouts = make([]Workout, len(*p.Workouts))
		copy(u.Workouts, *p.Workouts)
	}
	if p.CreatedAt != nil {
		u.CreatedAt = *p.CreatedAt
	}
	if p.UpdatedAt != nil {
		u.UpdatedAt = *p.UpdatedAt
	}
}
