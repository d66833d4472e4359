package planner

import (
	"html/template"
	"strings"
)

var dietMeals = map[string][]string{
	"Vegetarian": {
		"Oatmeal with fruits and nuts",
		"Vegetable salad with tofu",
		"Bean and vegetable soup",
		"Smoothie with plant protein",
		"Roasted vegetables with quinoa",
	},
	"Keto": {
		"Eggs and avocado",
		"Cheese and nuts",
		"Salmon with green vegetables",
		"Greek yogurt with berries",
		"Chicken with cauliflower rice",
	},
	"": {
		"Eggs with whole grain toast",
		"Grilled chicken salad",
		"Fish with steamed vegetables",
		"Protein shake with fruits",
		"Lean meat with sweet potatoes",
	},
}

var goalTips = map[string][]string{
	"Weight Loss": {
		"Maintain a calorie deficit of 500 calories per day",
		"Focus on protein-rich foods for satiety",
		"Include plenty of fiber-rich vegetables",
	},
	"Muscle Gain": {
		"Consume 1.6-2.2g of protein per kg of body weight",
		"Eat in a moderate calorie surplus",
		"Time protein intake around workouts",
	},
}

var dietTemplate = template.Must(template.New("diet").Funcs(templateFuncs).Parse(
	`<p>Based on your profile ({{.Req.Age}} years old, {{.Req.Gender}}, {{.Req.Height}}cm, {{.Req.Weight}}kg) ` +
		`and your goal to {{.Req.Goal}} to reach {{.Req.TargetWeight}}kg, ` +
		`here's a personalized {{.Req.DietType}} diet plan with {{.Req.MealTime}} meals per day:</p>` +
		`<p><strong>Sample Daily Meal Plan:</strong></p>` +
		`{{range $i, $meal := .Meals}}<p>Meal {{inc $i}}: {{$meal}}</p>{{end}}` +
		`{{if .Tips}}<p><strong>{{.Req.Goal}} Tips:</strong></p>` +
		`{{range $i, $tip := .Tips}}<p>{{inc $i}}. {{$tip}}</p>{{end}}{{end}}` +
		`{{if .HasQuestion}}<p><strong>Regarding your specific concern about {{.Req.Question}}:</strong></p>` +
		`<p>Avoid foods containing {{.Req.Question}} and replace them with suitable alternatives. ` +
		`Consult with a dietitian for personalized advice.</p>{{end}}`,
))

type dietView struct {
	Req         DietRequest
	Meals       []string
	Tips        []string
	HasQuestion bool
}

func mealsFor(dietType string) []string {
	switch dietType {
	case "Vegetarian", "Vegan":
		return dietMeals["Vegetarian"]
	case "Keto":
		return dietMeals["Keto"]
	default:
		return dietMeals[""]
	}
}

// DietPlan renders the meal plan, at most five meals, plus goal specific tips
// and a note about the user's allergy or concern if there is one.
func DietPlan(req DietRequest) (string, error) {
	mealCount := leadingInt(req.MealTime.String())
	if mealCount > maxMeals {
		mealCount = maxMeals
	}
	if mealCount < 0 {
		mealCount = 0
	}

	return render(dietTemplate, dietView{
		Req:         req,
		Meals:       mealsFor(req.DietType.String())[:mealCount],
		Tips:        goalTips[req.Goal.String()],
		HasQuestion: strings.TrimSpace(req.Question.String()) != "",
	})
}
