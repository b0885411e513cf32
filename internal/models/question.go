package models

import "strings"

// OptionLabels are the four answer slots of every question, in display order.
var OptionLabels = []string{"A", "B", "C", "D"}

type Question struct {
	ID      string
	Prompt  string
	OptionA string
	OptionB string
	OptionC string
	OptionD string
	Correct string // one of OptionLabels
}

type Option struct {
	Label string
	Text  string
}

func (q Question) Options() []Option {
	return []Option{
		{Label: "A", Text: q.OptionA},
		{Label: "B", Text: q.OptionB},
		{Label: "C", Text: q.OptionC},
		{Label: "D", Text: q.OptionD},
	}
}

// ParseOptionLabel normalizes a submitted option label ("b" -> "B").
func ParseOptionLabel(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, l := range OptionLabels {
		if s == l {
			return s, true
		}
	}
	return "", false
}
