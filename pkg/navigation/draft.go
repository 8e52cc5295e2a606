package navigation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type FieldKey int

const (
	FieldName FieldKey = iota
	FieldEmail
	FieldSeconds
	FieldGroup
)

type Field struct {
	Key   FieldKey
	Label string
}

// FieldsFor lists the form fields, in prompt order, for creating or editing an entry of kind.
func FieldsFor(kind Kind) []Field {
	switch kind {
	case KindUser:
		return []Field{{FieldName, "Username"}, {FieldEmail, "Email"}}
	case KindBudget:
		return []Field{{FieldName, "Budget name"}}
	case KindGroup:
		return []Field{{FieldName, "Group name"}}
	case KindCategory:
		return []Field{{FieldName, "Category name"}, {FieldSeconds, "Time allocated"}, {FieldGroup, "Group id (empty for none)"}}
	case KindTransaction:
		return []Field{{FieldName, "Transaction name"}, {FieldSeconds, "Period"}}
	}
	return nil
}

// Draft is the user-entered content of a create or edit form.
// Seconds is the allocation of a category or the period of a transaction.
type Draft struct {
	Name    string
	Email   string
	Seconds int64
	GroupId *int
}

// Set parses input into the field. Durations are whole seconds or Go
// duration strings such as 1h30m.
func (d *Draft) Set(key FieldKey, input string) error {
	input = strings.TrimSpace(input)
	switch key {
	case FieldName:
		d.Name = input
	case FieldEmail:
		d.Email = input
	case FieldSeconds:
		seconds, err := parseSeconds(input)
		if err != nil {
			return err
		}
		d.Seconds = seconds
	case FieldGroup:
		if input == "" {
			d.GroupId = nil
			return nil
		}
		id, err := strconv.Atoi(input)
		if err != nil || id <= 0 {
			return fmt.Errorf("%q is not a group id", input)
		}
		d.GroupId = &id
	}
	return nil
}

// Value renders the field as Set would accept it.
func (d Draft) Value(key FieldKey) string {
	switch key {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldSeconds:
		return strconv.FormatInt(d.Seconds, 10)
	case FieldGroup:
		if d.GroupId == nil {
			return ""
		}
		return strconv.Itoa(*d.GroupId)
	}
	return ""
}

func parseSeconds(input string) (int64, error) {
	if input == "" {
		return 0, fmt.Errorf("a duration is required")
	}
	seconds, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		d, durationErr := time.ParseDuration(input)
		if durationErr != nil {
			return 0, fmt.Errorf("%q is neither seconds nor a duration like 1h30m", input)
		}
		seconds = int64(d / time.Second)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("duration must not be negative")
	}
	return seconds, nil
}

func formatSeconds(seconds int64) string {
	return (time.Duration(seconds) * time.Second).String()
}
