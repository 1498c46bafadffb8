package records

import (
	"fmt"
	"strings"
)

type Operator string

const (
	OpEqualTo    Operator = "EqualTo"
	OpExactMatch Operator = "ExactMatch"
	OpContains   Operator = "Contains"
)

type Logic string

const (
	LogicAnd Logic = "AND"
	LogicOr  Logic = "OR"
)

type SortType string

const (
	SortAsc  SortType = "ASC"
	SortDesc SortType = "DESC"
)

// Condition compares a field, in string form, against Values.
// Include is only honoured by ExactMatch; false turns it into "not one of".
type Condition struct {
	Field    string
	Operator Operator
	Values   []string
	Include  bool
}

func EqualTo(field string, values ...string) Condition {
	return Condition{Field: field, Operator: OpEqualTo, Values: values, Include: true}
}

func ExactMatch(field string, include bool, values ...string) Condition {
	return Condition{Field: field, Operator: OpExactMatch, Values: values, Include: include}
}

// Contains matches a case-insensitive substring.
func Contains(field, value string) Condition {
	return Condition{Field: field, Operator: OpContains, Values: []string{value}, Include: true}
}

type SubGroup struct {
	Operator   Logic
	Conditions []Condition
}

// WhereGroup combines sub-groups; each sub-group combines its conditions.
type WhereGroup struct {
	Operator  Logic
	SubGroups []SubGroup
}

type OrderBy struct {
	Field    string
	SortType SortType
}

// Paging with Limit 0 returns every matching row after Offset.
type Paging struct {
	Limit  int
	Offset int
}

// Query selects rows matching every Where condition and every WhereGroup.
type Query struct {
	Fields      []string
	Where       []Condition
	WhereGroups []WhereGroup
	OrderBy     []OrderBy
	Paging      Paging
}

func (q Query) Validate() error {
	for _, c := range q.Where {
		if err := c.validate(); err != nil {
			return err
		}
	}
	for _, g := range q.WhereGroups {
		if err := g.Operator.validate(); err != nil {
			return err
		}
		for _, sg := range g.SubGroups {
			if err := sg.Operator.validate(); err != nil {
				return err
			}
			for _, c := range sg.Conditions {
				if err := c.validate(); err != nil {
					return err
				}
			}
		}
	}
	for _, o := range q.OrderBy {
		if o.Field == "" {
			return fmt.Errorf("%w: order by requires a field", ErrInvalidQuery)
		}
		if o.SortType != SortAsc && o.SortType != SortDesc {
			return fmt.Errorf("%w: unknown sort type %q", ErrInvalidQuery, o.SortType)
		}
	}
	if q.Paging.Limit < 0 || q.Paging.Offset < 0 {
		return fmt.Errorf("%w: negative paging", ErrInvalidQuery)
	}
	return nil
}

func (c Condition) validate() error {
	if c.Field == "" {
		return fmt.Errorf("%w: condition requires a field", ErrInvalidQuery)
	}
	switch c.Operator {
	case OpEqualTo, OpExactMatch:
	case OpContains:
		if len(c.Values) != 1 {
			return fmt.Errorf("%w: Contains on %s takes one value", ErrInvalidQuery, c.Field)
		}
	default:
		return fmt.Errorf("%w: unknown operator %q", ErrInvalidQuery, c.Operator)
	}
	return nil
}

func (l Logic) validate() error {
	if l != LogicAnd && l != LogicOr {
		return fmt.Errorf("%w: unknown logic %q", ErrInvalidQuery, l)
	}
	return nil
}

// Matches evaluates the condition against r the way every backend does:
// absent and null fields compare as "".
func (c Condition) Matches(r Record) bool {
	value := r.String(c.Field)
	switch c.Operator {
	case OpContains:
		return strings.Contains(strings.ToLower(value), strings.ToLower(c.Values[0]))
	case OpExactMatch:
		return oneOf(value, c.Values) == c.Include
	default:
		return oneOf(value, c.Values)
	}
}

func (sg SubGroup) Matches(r Record) bool {
	return combine(sg.Operator, len(sg.Conditions), func(i int) bool {
		return sg.Conditions[i].Matches(r)
	})
}

func (g WhereGroup) Matches(r Record) bool {
	return combine(g.Operator, len(g.SubGroups), func(i int) bool {
		return g.SubGroups[i].Matches(r)
	})
}

func (q Query) Matches(r Record) bool {
	for _, c := range q.Where {
		if !c.Matches(r) {
			return false
		}
	}
	for _, g := range q.WhereGroups {
		if !g.Matches(r) {
			return false
		}
	}
	return true
}

// combine treats an empty group as matching.
func combine(op Logic, n int, match func(int) bool) bool {
	if n == 0 {
		return true
	}
	if op == LogicOr {
		for i := 0; i < n; i++ {
			if match(i) {
				return true
			}
		}
		return false
	}
	for i := 0; i < n; i++ {
		if !match(i) {
			return false
		}
	}
	return true
}

func oneOf(value string, values []string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// compareValues orders nulls first, numbers numerically, everything else by string form.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(toString(a), toString(b))
}

// Less reports whether a sorts before b under the query's ordering.
func (q Query) Less(a, b Record) bool {
	for _, o := range q.OrderBy {
		c := compareValues(a[o.Field], b[o.Field])
		if c == 0 {
			continue
		}
		if o.SortType == SortDesc {
			return c > 0
		}
		return c < 0
	}
	return false
}

// Page applies Paging to an already ordered slice.
func (p Paging) Page(rows []Record) []Record {
	if p.Offset >= len(rows) {
		return nil
	}
	rows = rows[p.Offset:]
	if p.Limit > 0 && p.Limit < len(rows) {
		rows = rows[:p.Limit]
	}
	return rows
}
