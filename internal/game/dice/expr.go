package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`^(?:(\d*)d(\d+))?([+-]?\d+)?$`)

// Expression is a parsed dice expression such as "1d30", "2d6+3" or "12".
type Expression struct {
	Raw      string
	Count    int
	Sides    int
	Modifier int
}

// Parse parses a dice expression. A bare integer is a constant expression.
//
// Postcondition: Returns an Expression with Count == 0 (constant) or
// Count >= 1 and Sides >= 2, or a descriptive error.
func Parse(expr string) (Expression, error) {
	s := strings.ToLower(strings.ReplaceAll(expr, " ", ""))
	m := exprPattern.FindStringSubmatch(s)
	if s == "" || m == nil {
		return Expression{}, fmt.Errorf("dice: invalid expression %q", expr)
	}
	e := Expression{Raw: expr}
	if m[2] != "" {
		e.Count = 1
		if m[1] != "" {
			e.Count, _ = strconv.Atoi(m[1])
		}
		e.Sides, _ = strconv.Atoi(m[2])
		if e.Count < 1 {
			return Expression{}, fmt.Errorf("dice: die count must be >= 1 in %q", expr)
		}
		if e.Sides < 2 {
			return Expression{}, fmt.Errorf("dice: die sides must be >= 2 in %q", expr)
		}
	}
	if m[3] != "" {
		e.Modifier, _ = strconv.Atoi(m[3])
	}
	return e, nil
}

// MustParse parses expr and panics on error. Useful for package-level constants.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic(err.Error())
	}
	return e
}

// Roll evaluates e with src.
//
// Postcondition: result is in [Min(), Max()].
func (e Expression) Roll(src Source) int {
	total := e.Modifier
	for i := 0; i < e.Count; i++ {
		total += src.Intn(e.Sides) + 1
	}
	return total
}

// Min returns the smallest value Roll can produce.
func (e Expression) Min() int { return e.Count + e.Modifier }

// Max returns the largest value Roll can produce.
func (e Expression) Max() int { return e.Count*e.Sides + e.Modifier }

// String returns the original expression text.
func (e Expression) String() string { return e.Raw }
