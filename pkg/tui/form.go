package tui

import (
	"strconv"
	"strings"

	"github.com/timebudget/timebudget/pkg/navigation"
)

// form collects one line of input per field, in order.
type form struct {
	title  string
	labels []string
	values []string
	field  int
	submit func(values []string) error
}

func (f *form) last() bool { return f.field == len(f.labels)-1 }

func (f *form) typeRunes(runes []rune) {
	f.values[f.field] += string(runes)
}

func (f *form) erase() {
	value := []rune(f.values[f.field])
	if len(value) > 0 {
		f.values[f.field] = string(value[:len(value)-1])
	}
}

// draftForm edits d field by field for an entry of kind.
func draftForm(title string, kind navigation.Kind, d navigation.Draft, save func(navigation.Draft) error) *form {
	fields := navigation.FieldsFor(kind)
	f := &form{title: title}
	for _, field := range fields {
		f.labels = append(f.labels, field.Label)
		f.values = append(f.values, d.Value(field.Key))
	}
	f.submit = func(values []string) error {
		draft := d
		for i, field := range fields {
			if err := draft.Set(field.Key, values[i]); err != nil {
				return err
			}
		}
		return save(draft)
	}
	return f
}

func loginForm(login func(userId int) error) *form {
	return &form{
		title:  "Log in",
		labels: []string{"User id"},
		values: []string{""},
		submit: func(values []string) error {
			userId, err := strconv.Atoi(strings.TrimSpace(values[0]))
			if err != nil {
				return err
			}
			return login(userId)
		},
	}
}
