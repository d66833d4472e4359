// Package planner renders the canned diet and exercise recommendations.
// The output is HTML; every user supplied value is escaped.
package planner

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"unicode"

	"github.com/2beens/fittrack/pkg"
)

const maxMeals = 5

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

type DietRequest struct {
	Age          pkg.FlexString `json:"age"`
	Gender       pkg.FlexString `json:"gender"`
	Height       pkg.FlexString `json:"height"`
	Weight       pkg.FlexString `json:"weight"`
	TargetWeight pkg.FlexString `json:"targetWeight"`
	Goal         pkg.FlexString `json:"goal"`
	DietType     pkg.FlexString `json:"dietType"`
	MealTime     pkg.FlexString `json:"mealTime"`
	Question     pkg.FlexString `json:"question"`
}

type ExerciseRequest struct {
	Time       pkg.FlexString `json:"time"`
	Difficulty pkg.FlexString `json:"difficulty"`
	Focus      pkg.FlexString `json:"focus"`
	Training   pkg.FlexString `json:"training"`
	Equipment  pkg.FlexString `json:"equipment"`
	Age        pkg.FlexString `json:"age"`
	Gender     pkg.FlexString `json:"gender"`
	Height     pkg.FlexString `json:"height"`
	Weight     pkg.FlexString `json:"weight"`
}

// leadingInt reads the integer prefix of s, "3 meals" is 3. Anything without
// a numeric prefix is 0.
func leadingInt(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		if n > 1_000_000 {
			break
		}
	}
	if neg {
		return -n
	}
	return n
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute %s template: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
