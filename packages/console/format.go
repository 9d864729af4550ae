package console

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Format joins args into a single display string. When the first argument
// is a string and more arguments follow, it is treated as a format string
// with these placeholders:
//
//	%s  string form
//	%d  number
//	%i  integer
//	%f  floating point
//	%j  JSON
//	%o  inspected, hidden detail included
//	%O  inspected
//	%c  consumed, prints nothing
//	%%  literal percent
//
// Arguments left over are appended separated by spaces; strings are written
// as-is and other values are inspected.
func Format(args ...any) string {
	if len(args) == 0 {
		return ""
	}

	first, isString := args[0].(string)
	if !isString {
		return joinArgs(args)
	}
	if len(args) == 1 {
		return first
	}

	var b strings.Builder
	rest := args[1:]
	for i := 0; i < len(first); i++ {
		ch := first[i]
		if ch != '%' || i+1 >= len(first) {
			b.WriteByte(ch)
			continue
		}

		verb := first[i+1]
		if verb == '%' {
			b.WriteByte('%')
			i++
			continue
		}
		if len(rest) == 0 || !isVerb(verb) {
			b.WriteByte(ch)
			continue
		}

		arg := rest[0]
		rest = rest[1:]
		i++

		switch verb {
		case 's':
			b.WriteString(stringArg(arg))
		case 'd':
			b.WriteString(numberArg(arg))
		case 'i':
			b.WriteString(integerArg(arg))
		case 'f':
			b.WriteString(floatArg(arg))
		case 'j':
			b.WriteString(jsonArg(arg))
		case 'o':
			b.WriteString(Inspect(arg, InspectOptions{ShowHidden: true, Depth: 4, Compact: true}))
		case 'O':
			b.WriteString(Inspect(arg, InspectOptions{Compact: true}))
		case 'c':
		}
	}

	if len(rest) > 0 {
		b.WriteByte(' ')
		b.WriteString(joinArgs(rest))
	}
	return b.String()
}

func isVerb(ch byte) bool {
	switch ch {
	case 's', 'd', 'i', 'f', 'j', 'o', 'O', 'c':
		return true
	}
	return false
}

func joinArgs(args []any) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		if s, ok := arg.(string); ok {
			parts[i] = s
			continue
		}
		parts[i] = Inspect(arg, InspectOptions{Compact: true})
	}
	return strings.Join(parts, " ")
}

func stringArg(arg any) string {
	switch v := arg.(type) {
	case string:
		return v
	case error:
		return v.Error()
	case interface{ String() string }:
		return v.String()
	}
	if n, ok := exactNumber(arg); ok {
		return n
	}
	return Inspect(arg, InspectOptions{Compact: true, Depth: 1})
}

func numberArg(arg any) string {
	if s, ok := arg.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return "NaN"
		}
		return formatNumber(f)
	}
	if n, ok := exactNumber(arg); ok {
		return n
	}
	f, ok := toFloat(arg)
	if !ok {
		return "NaN"
	}
	return formatNumber(f)
}

func integerArg(arg any) string {
	if s, ok := arg.(string); ok {
		return leadingInt(strings.TrimSpace(s))
	}
	switch v := reflect.ValueOf(arg); v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	}
	f, ok := toFloat(arg)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return "NaN"
	}
	return strconv.FormatInt(int64(math.Trunc(f)), 10)
}

func floatArg(arg any) string {
	if s, ok := arg.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return "NaN"
		}
		return formatNumber(f)
	}
	if n, ok := exactNumber(arg); ok {
		return n
	}
	f, ok := toFloat(arg)
	if !ok {
		return "NaN"
	}
	return formatNumber(f)
}

func jsonArg(arg any) string {
	data, err := json.Marshal(arg)
	if err != nil {
		return "[Circular]"
	}
	return string(data)
}

// leadingInt parses the leading integer of s, ignoring anything after it.
func leadingInt(s string) string {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return "NaN"
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return "NaN"
	}
	return strconv.FormatInt(n, 10)
}

// exactNumber formats a numeric value without a float64 round trip, so
// 64-bit integers keep every digit.
func exactNumber(arg any) (string, bool) {
	if arg == nil {
		return "", false
	}
	v := reflect.ValueOf(arg)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return formatNumber(v.Float()), true
	}
	return "", false
}

func toFloat(arg any) (float64, bool) {
	if b, ok := arg.(bool); ok {
		if b {
			return 1, true
		}
		return 0, true
	}
	if arg == nil {
		return 0, false
	}
	v := reflect.ValueOf(arg)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.Abs(f) >= 1e21:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
