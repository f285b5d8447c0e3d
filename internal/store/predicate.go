package store

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
)

func normalizePredicates(ps []Predicate) []Predicate {
	out := make([]Predicate, len(ps))
	for i, p := range ps {
		out[i] = Predicate{Column: p.Column, Op: p.Op, Value: normalize(p.Value)}
	}
	return out
}

// matches reports whether r satisfies p. A missing field never equals
// anything, so Eq fails and Neq succeeds. Range operators only compare two
// numbers or two strings; any other pairing does not match.
func (p Predicate) matches(r Record) bool {
	v, ok := r[p.Column]
	switch p.Op {
	case OpEq:
		return ok && reflect.DeepEqual(v, p.Value)
	case OpNeq:
		return !ok || !reflect.DeepEqual(v, p.Value)
	}
	if !ok {
		return false
	}
	c, valid := compareScalars(v, p.Value)
	if !valid {
		return false
	}
	switch p.Op {
	case OpLt:
		return c < 0
	case OpLte:
		return c <= 0
	case OpGt:
		return c > 0
	case OpGte:
		return c >= 0
	}
	return false
}

func matchAll(r Record, ps []Predicate) bool {
	for _, p := range ps {
		if !p.matches(r) {
			return false
		}
	}
	return true
}

func compareScalars(a, b any) (int, bool) {
	switch av := a.(type) {
	case float64:
		if bv, ok := b.(float64); ok {
			return cmp.Compare(av, bv), true
		}
	case string:
		if bv, ok := b.(string); ok {
			return cmp.Compare(av, bv), true
		}
	}
	return 0, false
}

// sortRecords orders rs in place by column. Missing and null values sort
// as the empty string; ties keep their stored order in both directions.
func sortRecords(rs []Record, o Ordering) {
	slices.SortStableFunc(rs, func(a, b Record) int {
		c := compareOrderKeys(orderKey(a, o.Column), orderKey(b, o.Column))
		if !o.Ascending {
			c = -c
		}
		return c
	})
}

func orderKey(r Record, column string) any {
	v, ok := r[column]
	if !ok || v == nil {
		return ""
	}
	return v
}

func compareOrderKeys(a, b any) int {
	if c, ok := compareScalars(a, b); ok {
		return c
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// project keeps only the listed columns of r. Listed columns r lacks are
// left out rather than set to null.
func project(r Record, columns []string) Record {
	if len(columns) == 0 {
		return r
	}
	out := make(Record, len(columns))
	for _, c := range columns {
		if v, ok := r[c]; ok {
			out[c] = v
		}
	}
	return out
}
