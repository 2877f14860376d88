package validation

import (
	"sort"
	"strings"
)

// Errors collects field-level validation messages keyed by form field name.
// The zero value is ready to use after a call to Add.
type Errors map[string]string

// Add records msg for field, keeping the first message reported for a field
func (e *Errors) Add(field, msg string) {
	if *e == nil {
		*e = make(Errors)
	}
	if _, exists := (*e)[field]; exists {
		return
	}
	(*e)[field] = msg
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e Errors) Get(field string) string {
	return e[field]
}

func (e Errors) Empty() bool {
	return len(e) == 0
}

// Merge copies messages from other without overwriting existing ones
func (e *Errors) Merge(other Errors) {
	for field, msg := range other {
		e.Add(field, msg)
	}
}

// Err returns nil when there are no messages so callers can use the usual err != nil check
func (e Errors) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, field+": "+e[field])
	}
	return strings.Join(messages, "; ")
}
