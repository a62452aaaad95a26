package loader

import (
	"strconv"
	"strings"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/math"
)

// attrReader coerces raw attribute text for one element and reports
// values that cannot be read.
type attrReader struct {
	p     *parser
	tag   string
	state State
}

func (p *parser) attrs(tag string, state State) attrReader {
	return attrReader{p: p, tag: tag, state: state}
}

func (a attrReader) unknown(name string) {
	a.p.report(LevelError, a.tag, a.state, core.ErrInvalidAttribute, "unknown %s attribute name %s", a.tag, name)
}

func (a attrReader) invalid(name, value, kind string) {
	a.p.report(LevelWarn, a.tag, a.state, core.ErrInvalidAttribute, "attribute %s=%q is not a valid %s, using 0", name, value, kind)
}

// Float reads a decimal number. Unreadable text yields 0.
func (a attrReader) Float(name, value string) float32 {
	f, ok := parseFloat(value)
	if !ok {
		a.invalid(name, value, "number")
	}
	return f
}

// Int reads an integer. A fractional value is truncated.
func (a attrReader) Int(name, value string) int32 {
	s := strings.TrimSpace(value)
	if i, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int32(i)
	}
	if f, ok := parseFloat(s); ok {
		return int32(f)
	}
	a.invalid(name, value, "integer")
	return 0
}

// Floats reads up to n comma separated numbers. Missing components stay 0
// and extra components are ignored.
func (a attrReader) Floats(name, value string, n int) []float32 {
	out := make([]float32, n)
	parts := strings.Split(value, ",")
	for i := 0; i < n && i < len(parts); i++ {
		if strings.TrimSpace(parts[i]) == "" {
			continue
		}
		f, ok := parseFloat(parts[i])
		if !ok {
			a.invalid(name, value, "vector")
		}
		out[i] = f
	}
	return out
}

func (a attrReader) Vec2(name, value string) math.Vec2 {
	return math.Vec2FromSlice(a.Floats(name, value, 2))
}

func (a attrReader) Vec3(name, value string) math.Vec3 {
	return math.Vec3FromSlice(a.Floats(name, value, 3))
}

func (a attrReader) Vec4(name, value string) math.Vec4 {
	return math.Vec4FromSlice(a.Floats(name, value, 4))
}

// parseFloat accepts what strconv does plus a trailing junk suffix, so
// "1.5f" reads as 1.5.
func parseFloat(s string) (float32, bool) {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 32); err == nil {
		return float32(f), true
	}
	end := numericPrefix(s)
	if end == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(s[:end], 32)
	if err != nil {
		return 0, false
	}
	return float32(f), true
}

func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}
