package matcher

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/QuangTung97/eventstore/model"
)

// Operator of a predicate
type Operator string

const (
	// OpEquals ...
	OpEquals Operator = "="
	// OpNotEquals ...
	OpNotEquals Operator = "!="
	// OpGreaterThan ...
	OpGreaterThan Operator = ">"
	// OpGreaterThanEquals ...
	OpGreaterThanEquals Operator = ">="
	// OpLowerThan ...
	OpLowerThan Operator = "<"
	// OpLowerThanEquals ...
	OpLowerThanEquals Operator = "<="
	// OpIn value must be a slice
	OpIn Operator = "in"
	// OpNotIn value must be a slice
	OpNotIn Operator = "nin"
	// OpRegex value must be a string
	OpRegex Operator = "regex"
)

// FieldType tells whether a predicate looks at event metadata or at a column of the event row
type FieldType int

const (
	// FieldTypeMetadata ...
	FieldTypeMetadata FieldType = iota
	// FieldTypeMessageProperty ...
	FieldTypeMessageProperty
)

// Message properties that can be matched
const (
	PropertyEventID   = "event_id"
	PropertyEventName = "event_name"
	PropertyCreatedAt = "created_at"
	PropertyNo        = "no"
)

// ErrInvalidPredicate ...
var ErrInvalidPredicate = fmt.Errorf("%w: invalid matcher predicate", model.ErrUsage)

var fieldNameRegexp = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)

// Predicate ...
type Predicate struct {
	Field     string
	Operator  Operator
	Value     interface{}
	FieldType FieldType
}

// Matcher is a conjunction of predicates, the zero value matches every event
type Matcher struct {
	predicates []Predicate
}

// New ...
func New() Matcher {
	return Matcher{}
}

// With returns a new matcher with an extra metadata predicate
func (m Matcher) With(field string, op Operator, value interface{}) Matcher {
	return m.add(Predicate{Field: field, Operator: op, Value: value, FieldType: FieldTypeMetadata})
}

// WithProperty returns a new matcher with an extra message property predicate
func (m Matcher) WithProperty(field string, op Operator, value interface{}) Matcher {
	return m.add(Predicate{Field: field, Operator: op, Value: value, FieldType: FieldTypeMessageProperty})
}

func (m Matcher) add(p Predicate) Matcher {
	predicates := make([]Predicate, 0, len(m.predicates)+1)
	predicates = append(predicates, m.predicates...)
	predicates = append(predicates, p)
	return Matcher{predicates: predicates}
}

// Predicates ...
func (m Matcher) Predicates() []Predicate {
	return m.predicates
}

// IsEmpty ...
func (m Matcher) IsEmpty() bool {
	return len(m.predicates) == 0
}

// ParseOperator ...
func ParseOperator(s string) (Operator, error) {
	op := Operator(s)
	switch op {
	case OpEquals, OpNotEquals, OpGreaterThan, OpGreaterThanEquals,
		OpLowerThan, OpLowerThanEquals, OpIn, OpNotIn, OpRegex:
		return op, nil
	case "==":
		return OpEquals, nil
	case "<>":
		return OpNotEquals, nil
	default:
		return "", fmt.Errorf("%w: unknown operator %q", ErrInvalidPredicate, s)
	}
}

func isMessageProperty(field string) bool {
	switch field {
	case PropertyEventID, PropertyEventName, PropertyCreatedAt, PropertyNo:
		return true
	default:
		return false
	}
}

// Validate checks a predicate before it is translated
func Validate(p Predicate) error {
	if !fieldNameRegexp.MatchString(p.Field) {
		return fmt.Errorf("%w: field name %q", ErrInvalidPredicate, p.Field)
	}
	if p.FieldType == FieldTypeMessageProperty && !isMessageProperty(p.Field) {
		return fmt.Errorf("%w: unknown message property %q", ErrInvalidPredicate, p.Field)
	}

	if _, err := ParseOperator(string(p.Operator)); err != nil {
		return err
	}

	switch p.Operator {
	case OpIn, OpNotIn:
		if p.Value == nil {
			return fmt.Errorf("%w: operator %s requires a slice", ErrInvalidPredicate, p.Operator)
		}
		kind := reflect.TypeOf(p.Value).Kind()
		if kind != reflect.Slice && kind != reflect.Array {
			return fmt.Errorf("%w: operator %s requires a slice", ErrInvalidPredicate, p.Operator)
		}
	case OpRegex:
		if _, ok := p.Value.(string); !ok {
			return fmt.Errorf("%w: operator regex requires a string", ErrInvalidPredicate)
		}
	default:
		if p.Value == nil {
			return fmt.Errorf("%w: nil value for field %q", ErrInvalidPredicate, p.Field)
		}
	}
	return nil
}
