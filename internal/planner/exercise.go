package planner

import "html/template"

var focusExercises = map[string][]string{
	"Full Body": {
		"Jumping Jacks: 3 sets of 1 minute",
		"Burpees: 3 sets of 10 reps",
		"Mountain Climbers: 3 sets of 20 reps",
		"Squat Jumps: 3 sets of 12 reps",
		"Push-ups: 3 sets of 10-15 reps",
	},
	"Abs": {
		"Crunches: 3 sets of 15 reps",
		"Plank: 3 sets of 30-60 seconds",
		"Russian Twists: 3 sets of 20 reps",
		"Leg Raises: 3 sets of 12 reps",
		"Mountain Climbers: 3 sets of 20 reps",
	},
	"Leg": {
		"Squats: 4 sets of 12 reps",
		"Lunges: 3 sets of 10 reps per leg",
		"Calf Raises: 3 sets of 15 reps",
		"Glute Bridges: 3 sets of 12 reps",
		"Wall Sit: 3 sets of 30-60 seconds",
	},
	// upper body
	"": {
		"Push-ups: 3 sets of 10-15 reps",
		"Dumbbell Curls: 3 sets of 12 reps",
		"Shoulder Press: 3 sets of 10 reps",
		"Tricep Dips: 3 sets of 12 reps",
		"Rows: 3 sets of 12 reps",
	},
}

var circuitInstructions = map[string]string{
	"Hard":   "Complete the following circuit 3 times with minimal rest between exercises:",
	"Medium": "Complete the following circuit 2 times with 30 seconds rest between exercises:",
	"":       "Complete the following exercises with 1-minute rest between sets:",
}

var exerciseTemplate = template.Must(template.New("exercise").Parse(
	`Based on your profile ({{.Req.Age}} years old, {{.Req.Gender}}, {{.Req.Height}}cm, {{.Req.Weight}}kg) ` +
		`and your preferences, here's a {{.Req.Difficulty}} intensity {{.Req.Training}} workout ` +
		`focusing on {{.Req.Focus}} using {{.Req.Equipment}} for {{.Req.Time}} minutes:` + "\n\n" +
		`<h3>{{.Req.Focus}} {{.Req.Training}} Workout - {{.Req.Difficulty}} Intensity</h3>` +
		`<ul><p>{{.Circuit}}</p>` +
		`{{range .Exercises}}<li>{{.}}</li>{{end}}` +
		`</ul>` +
		`<h3>Cool Down</h3>` +
		`<p>Finish with 5 minutes of light stretching focusing on the muscle groups you worked.</p>`,
))

type exerciseView struct {
	Req       ExerciseRequest
	Circuit   string
	Exercises []string
}

func exercisesFor(focus string) []string {
	switch focus {
	case "Full Body", "Cardio":
		return focusExercises["Full Body"]
	case "Abs", "Leg":
		return focusExercises[focus]
	default:
		return focusExercises[""]
	}
}

// ExercisePlan renders a five exercise workout for the requested focus area,
// with circuit instructions depending on difficulty and a cool down.
func ExercisePlan(req ExerciseRequest) (string, error) {
	circuit, ok := circuitInstructions[req.Difficulty.String()]
	if !ok {
		circuit = circuitInstructions[""]
	}

	return render(exerciseTemplate, exerciseView{
		Req:       req,
		Circuit:   circuit,
		Exercises: exercisesFor(req.Focus.String()),
	})
}
