package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/born-ml/born-host/host"
)

// refPattern matches $N result references outside of JSON strings well
// enough for a REPL; "$1" inside a string literal is also rewritten.
var refPattern = regexp.MustCompile(`\$(\d+)`)

var errEmptyLine = errors.New("empty line")

// session evaluates "op arg, arg, ..." lines against a runtime. Arguments
// are JSON values; $N refers to the result of line N.
type session struct {
	rt      *host.Runtime
	results []any
	timeout time.Duration
}

func newSession(rt *host.Runtime) *session {
	return &session{rt: rt, timeout: 30 * time.Second}
}

type reference struct{ index int }

// parseLine splits a line into the function name and its host arguments.
func parseLine(line string) (string, []any, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", nil, errEmptyLine
	}
	name, rest, _ := strings.Cut(line, " ")
	rest = refPattern.ReplaceAllString(rest, `{"$$ref":$1}`)

	var raw []any
	if err := json.Unmarshal([]byte("["+rest+"]"), &raw); err != nil {
		return "", nil, fmt.Errorf("parse arguments: %w", err)
	}
	for i, v := range raw {
		raw[i] = resolveRefs(v)
	}
	return name, raw, nil
}

// resolveRefs replaces {"$ref": N} objects with reference markers.
func resolveRefs(v any) any {
	switch x := v.(type) {
	case map[string]any:
		if n, ok := x["$ref"].(float64); ok && len(x) == 1 {
			return reference{index: int(n)}
		}
	case []any:
		for i := range x {
			x[i] = resolveRefs(x[i])
		}
	}
	return v
}

// eval runs one line and returns its result index and rendering.
func (s *session) eval(line string) (int, string, error) {
	name, args, err := parseLine(line)
	if err != nil {
		return 0, "", err
	}
	for i, a := range args {
		if args[i], err = s.bind(a); err != nil {
			return 0, "", err
		}
	}

	result, err := s.rt.Call(name, args...)
	if err != nil {
		return 0, "", err
	}
	if f, ok := result.(*host.Future); ok {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if result, err = s.rt.Await(ctx, f); err != nil {
			return 0, "", fmt.Errorf("%s: rejected: %w", name, err)
		}
	}

	s.results = append(s.results, result)
	return len(s.results), render(result), nil
}

func (s *session) bind(v any) (any, error) {
	switch x := v.(type) {
	case reference:
		if x.index < 1 || x.index > len(s.results) {
			return nil, fmt.Errorf("no result $%d", x.index)
		}
		return s.results[x.index-1], nil
	case []any:
		for i := range x {
			b, err := s.bind(x[i])
			if err != nil {
				return nil, err
			}
			x[i] = b
		}
	}
	return v, nil
}

// render formats a host value for display.
func render(v any) string {
	switch x := v.(type) {
	case nil:
		return "undefined"
	case string:
		return strconv.Quote(x)
	case fmt.Stringer:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = render(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(data)
	default:
		return fmt.Sprint(x)
	}
}
