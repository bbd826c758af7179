package matcher

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/QuangTung97/eventstore/pkg/sqldialect"
)

// BuildWhere translates the matcher to a SQL condition with ? placeholders.
// Metadata keys found in indexed are compared on their own column instead of the JSON document.
// An empty matcher returns an empty condition.
func BuildWhere(
	d sqldialect.Dialect, indexed map[string]string, m Matcher,
) (string, []interface{}, error) {
	var conditions []string
	var args []interface{}

	for _, p := range m.predicates {
		if err := Validate(p); err != nil {
			return "", nil, err
		}

		cond, condArgs, err := buildPredicate(d, indexed, p)
		if err != nil {
			return "", nil, err
		}
		conditions = append(conditions, cond)
		args = append(args, condArgs...)
	}

	return strings.Join(conditions, " AND "), args, nil
}

func isNumber(v interface{}) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}

func fieldExpr(d sqldialect.Dialect, indexed map[string]string, p Predicate) (expr string, native bool) {
	if p.FieldType == FieldTypeMessageProperty {
		return d.Quote(p.Field), true
	}
	if column, ok := indexed[p.Field]; ok {
		return d.Quote(column), true
	}
	return d.JSONField(d.Quote("metadata"), p.Field), false
}

func normalizeValue(d sqldialect.Dialect, native bool, v interface{}) interface{} {
	switch x := v.(type) {
	case time.Time:
		return sqldialect.FormatTime(x)
	case bool:
		if native {
			return x
		}
		return d.BoolValue(x)
	default:
		return v
	}
}

func buildPredicate(
	d sqldialect.Dialect, indexed map[string]string, p Predicate,
) (string, []interface{}, error) {
	expr, native := fieldExpr(d, indexed, p)

	switch p.Operator {
	case OpIn, OpNotIn:
		rv := reflect.ValueOf(p.Value)
		if rv.Len() == 0 {
			if p.Operator == OpIn {
				return "1 = 0", nil, nil
			}
			return "1 = 1", nil, nil
		}

		args := make([]interface{}, 0, rv.Len())
		numeric := true
		for i := 0; i < rv.Len(); i++ {
			v := rv.Index(i).Interface()
			numeric = numeric && isNumber(v)
			args = append(args, normalizeValue(d, native, v))
		}
		if numeric && !native {
			expr = d.NumericField(expr)
		}

		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(args)), ", ")
		keyword := "IN"
		if p.Operator == OpNotIn {
			keyword = "NOT IN"
		}
		return fmt.Sprintf("%s %s (%s)", expr, keyword, placeholders), args, nil

	case OpRegex:
		op, err := d.RegexOperator()
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("%s %s ?", expr, op), []interface{}{p.Value}, nil

	default:
		if isNumber(p.Value) && !native {
			expr = d.NumericField(expr)
		}
		op := string(p.Operator)
		if p.Operator == OpNotEquals {
			op = "<>"
		}
		return fmt.Sprintf("%s %s ?", expr, op), []interface{}{normalizeValue(d, native, p.Value)}, nil
	}
}
