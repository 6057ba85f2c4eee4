package loadout

import (
	"fmt"
	"strings"
)

// QuantityCondition selects how an observed quantity is compared against a
// requirement's expected quantity.
type QuantityCondition int

const (
	QuantityExact QuantityCondition = iota
	QuantityAtLeast
	QuantityAtMost
	QuantityBetween
	QuantityAny
)

var quantityConditionNames = map[QuantityCondition]string{
	QuantityExact:   "EXACT",
	QuantityAtLeast: "AT_LEAST",
	QuantityAtMost:  "AT_MOST",
	QuantityBetween: "BETWEEN",
	QuantityAny:     "ANY",
}

// Satisfied evaluates the condition. Unknown conditions are never satisfied.
func (qc QuantityCondition) Satisfied(actual, expected, max int) bool {
	switch qc {
	case QuantityExact:
		return exactQuantity(actual, expected)
	case QuantityAtLeast:
		return atLeastQuantity(actual, expected)
	case QuantityAtMost:
		return atMostQuantity(actual, expected)
	case QuantityBetween:
		return betweenQuantity(actual, expected, max)
	case QuantityAny:
		return anyQuantity(actual)
	default:
		return false
	}
}

func exactQuantity(actual, expected int) bool   { return actual == expected }
func atLeastQuantity(actual, expected int) bool { return actual >= expected }
func atMostQuantity(actual, expected int) bool  { return actual <= expected }
func anyQuantity(actual int) bool               { return actual > 0 }

func betweenQuantity(actual, min, max int) bool {
	return min <= actual && actual <= max
}

// Valid reports whether qc is one of the known conditions.
func (qc QuantityCondition) Valid() bool {
	_, ok := quantityConditionNames[qc]
	return ok
}

func (qc QuantityCondition) String() string {
	if s, ok := quantityConditionNames[qc]; ok {
		return s
	}
	return fmt.Sprintf("QuantityCondition(%d)", int(qc))
}

func (qc QuantityCondition) MarshalText() ([]byte, error) {
	if !qc.Valid() {
		return nil, fmt.Errorf("unknown quantity condition: %d", int(qc))
	}
	return []byte(qc.String()), nil
}

func (qc *QuantityCondition) UnmarshalText(text []byte) error {
	parsed, err := ParseQuantityCondition(string(text))
	if err != nil {
		return err
	}
	*qc = parsed
	return nil
}

// ParseQuantityCondition parses a condition name, ignoring case.
func ParseQuantityCondition(s string) (QuantityCondition, error) {
	for qc, name := range quantityConditionNames {
		if strings.EqualFold(name, s) {
			return qc, nil
		}
	}
	return 0, fmt.Errorf("unknown quantity condition: %s", s)
}
