package functions

import (
	"regexp"
	"strconv"
	"time"

	"github.com/perbu/celeval/pkg/cel"
)

func (s *Standard) registerGlobals() {
	s.globals["size"] = fnSize
	s.globals["int"] = fnInt
	s.globals["uint"] = fnUint
	s.globals["double"] = fnDouble
	s.globals["string"] = fnString
	s.globals["bool"] = fnBool
	s.globals["type"] = fnType
	s.globals["has"] = fnHas
	s.globals["matches"] = fnMatches
	s.globals["timestamp"] = fnTimestamp
	s.globals["duration"] = fnDuration
	s.globals["getDate"] = dateField(func(t time.Time) int64 { return int64(t.Day()) })
	s.globals["getMonth"] = dateField(func(t time.Time) int64 { return int64(t.Month()) - 1 })
	s.globals["getFullYear"] = dateField(func(t time.Time) int64 { return int64(t.Year()) })
	s.globals["getHours"] = dateField(func(t time.Time) int64 { return int64(t.Hour()) })
	s.globals["getMinutes"] = dateField(func(t time.Time) int64 { return int64(t.Minute()) })
	s.globals["getSeconds"] = dateField(func(t time.Time) int64 { return int64(t.Second()) })
	s.globals["max"] = fnMax
	s.globals["min"] = fnMin
}

func fnSize(args []cel.Value) (cel.Value, error) {
	if err := requireArity(args, 1, "size"); err != nil {
		return cel.Value{}, err
	}
	v := args[0]
	switch v.Kind() {
	case cel.KindNull:
		return cel.Int(0), nil
	case cel.KindString:
		str, _ := v.AsString()
		return cel.Int(int64(len([]rune(str)))), nil
	case cel.KindBytes:
		b, _ := v.AsBytes()
		return cel.Int(int64(len(b))), nil
	case cel.KindList:
		l, _ := v.AsList()
		return cel.Int(int64(len(l))), nil
	case cel.KindMap:
		m, _ := v.AsMap()
		return cel.Int(int64(m.Len())), nil
	default:
		return cel.Value{}, &DispatchError{Message: "size: unsupported type " + v.TypeName()}
	}
}

// toInt64 backs both int() and uint(): every numeric/bool/string coercion
// funnels through here, and uint() simply rejects a negative result.
func toInt64(v cel.Value, caller string) (int64, error) {
	switch v.Kind() {
	case cel.KindInt:
		i, _ := v.AsInt()
		return i, nil
	case cel.KindUint:
		u, _ := v.AsUint()
		return int64(u), nil
	case cel.KindDouble:
		d, _ := v.AsDouble()
		return int64(d), nil
	case cel.KindBool:
		b, _ := v.AsBool()
		if b {
			return 1, nil
		}
		return 0, nil
	case cel.KindString:
		str, _ := v.AsString()
		n, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return 0, &DispatchError{Message: caller + ": cannot parse " + strconv.Quote(str) + " as an integer"}
		}
		return n, nil
	default:
		return 0, &DispatchError{Message: caller + ": cannot convert " + v.TypeName() + " to an integer"}
	}
}

func fnInt(args []cel.Value) (cel.Value, error) {
	if err := requireArity(args, 1, "int"); err != nil {
		return cel.Value{}, err
	}
	n, err := toInt64(args[0], "int")
	if err != nil {
		return cel.Value{}, err
	}
	return cel.Int(n), nil
}

func fnUint(args []cel.Value) (cel.Value, error) {
	if err := requireArity(args, 1, "uint"); err != nil {
		return cel.Value{}, err
	}
	n, err := toInt64(args[0], "uint")
	if err != nil {
		return cel.Value{}, err
	}
	if n < 0 {
		return cel.Value{}, &DispatchError{Message: "uint: cannot represent negative value"}
	}
	return cel.Uint(uint64(n)), nil
}

func fnDouble(args []cel.Value) (cel.Value, error) {
	if err := requireArity(args, 1, "double"); err != nil {
		return cel.Value{}, err
	}
	v := args[0]
	switch v.Kind() {
	case cel.KindDouble:
		return v, nil
	case cel.KindInt:
		i, _ := v.AsInt()
		return cel.Double(float64(i)), nil
	case cel.KindUint:
		u, _ := v.AsUint()
		return cel.Double(float64(u)), nil
	case cel.KindString:
		str, _ := v.AsString()
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return cel.Value{}, &DispatchError{Message: "double: cannot parse " + strconv.Quote(str) + " as a double"}
		}
		return cel.Double(f), nil
	default:
		return cel.Value{}, &DispatchError{Message: "double: cannot convert " + v.TypeName()}
	}
}

func fnString(args []cel.Value) (cel.Value, error) {
	if err := requireArity(args, 1, "string"); err != nil {
		return cel.Value{}, err
	}
	return cel.String(args[0].CanonicalString()), nil
}

func fnBool(args []cel.Value) (cel.Value, error) {
	if err := requireArity(args, 1, "bool"); err != nil {
		return cel.Value{}, err
	}
	return cel.Bool(args[0].Truthy()), nil
}

func fnType(args []cel.Value) (cel.Value, error) {
	if err := requireArity(args, 1, "type"); err != nil {
		return cel.Value{}, err
	}
	return cel.String(args[0].TypeName()), nil
}

// fnHas is the two-argument global form, has(mapping, key); the more
// common single-argument has(x.field) presence test is intercepted by the
// interpreter before it ever reaches the registry. A non-map receiver
// yields false rather than erroring, matching the "whether mapping has
// the named key" wording.
func fnHas(args []cel.Value) (cel.Value, error) {
	if err := requireArity(args, 2, "has"); err != nil {
		return cel.Value{}, err
	}
	m, ok := args[0].AsMap()
	if !ok {
		return cel.Bool(false), nil
	}
	_, present := m.Get(args[1])
	return cel.Bool(present), nil
}

// fnMatches implements find-semantics: whether the pattern matches
// anywhere in the string, not whether the whole string matches.
func fnMatches(args []cel.Value) (cel.Value, error) {
	if err := requireArity(args, 2, "matches"); err != nil {
		return cel.Value{}, err
	}
	str, ok := args[0].AsString()
	if !ok {
		return cel.Value{}, &DispatchError{Message: "matches: first argument must be a string"}
	}
	pattern, ok := args[1].AsString()
	if !ok {
		return cel.Value{}, &DispatchError{Message: "matches: second argument must be a string"}
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return cel.Value{}, &DispatchError{Message: "matches: invalid pattern: " + err.Error()}
	}
	return cel.Bool(re.MatchString(str)), nil
}

// fnTimestamp parses an RFC 3339 string, or converts a Unix millisecond
// count, into an instant. Called with no arguments it returns the current
// time.
func fnTimestamp(args []cel.Value) (cel.Value, error) {
	if len(args) == 0 {
		return cel.Instant(time.Now()), nil
	}
	if err := requireArity(args, 1, "timestamp"); err != nil {
		return cel.Value{}, err
	}
	v := args[0]
	if str, ok := v.AsString(); ok {
		t, err := time.Parse(time.RFC3339, str)
		if err != nil {
			return cel.Value{}, &DispatchError{Message: "timestamp: cannot parse " + strconv.Quote(str) + ": " + err.Error()}
		}
		return cel.Instant(t), nil
	}
	if i, ok := v.AsInt(); ok {
		return cel.Instant(time.UnixMilli(i)), nil
	}
	if u, ok := v.AsUint(); ok {
		return cel.Instant(time.UnixMilli(int64(u))), nil
	}
	return cel.Value{}, &DispatchError{Message: "timestamp: unsupported argument type " + v.TypeName()}
}

var durationPattern = regexp.MustCompile(`^(-?\d+)(h|m|s|ms|us|ns)$`)

// fnDuration parses a signed integer followed by a unit suffix
// (h, m, s, ms, us, ns).
func fnDuration(args []cel.Value) (cel.Value, error) {
	if err := requireArity(args, 1, "duration"); err != nil {
		return cel.Value{}, err
	}
	str, ok := args[0].AsString()
	if !ok {
		return cel.Value{}, &DispatchError{Message: "duration: argument must be a string"}
	}
	match := durationPattern.FindStringSubmatch(str)
	if match == nil {
		return cel.Value{}, &DispatchError{Message: "duration: invalid format " + strconv.Quote(str)}
	}
	n, _ := strconv.ParseInt(match[1], 10, 64)
	var unit time.Duration
	switch match[2] {
	case "h":
		unit = time.Hour
	case "m":
		unit = time.Minute
	case "s":
		unit = time.Second
	case "ms":
		unit = time.Millisecond
	case "us":
		unit = time.Microsecond
	case "ns":
		unit = time.Nanosecond
	}
	return cel.Dur(time.Duration(n) * unit), nil
}

// dateField builds a getDate/getMonth/... global from a time.Time
// extractor, evaluated against the instant's local time zone. getMonth
// reports a 0-based month, unlike time.Month.
func dateField(extract func(time.Time) int64) GlobalFunc {
	return func(args []cel.Value) (cel.Value, error) {
		if err := requireArity(args, 1, "date field accessor"); err != nil {
			return cel.Value{}, err
		}
		t, ok := args[0].AsInstant()
		if !ok {
			return cel.Value{}, &DispatchError{Message: "date field accessor requires a timestamp argument"}
		}
		return cel.Int(extract(t.Local())), nil
	}
}

func fnMax(args []cel.Value) (cel.Value, error) { return extremum(args, true) }
func fnMin(args []cel.Value) (cel.Value, error) { return extremum(args, false) }

func extremum(args []cel.Value, wantMax bool) (cel.Value, error) {
	name := "min"
	if wantMax {
		name = "max"
	}
	if len(args) == 0 {
		return cel.Value{}, &DispatchError{Message: name + ": requires at least one argument"}
	}
	best := args[0]
	for _, v := range args[1:] {
		c, err := cel.Compare(v, best)
		if err != nil {
			return cel.Value{}, err
		}
		if (wantMax && c > 0) || (!wantMax && c < 0) {
			best = v
		}
	}
	return best, nil
}
