package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// op is one line of a trace file: a request against the allocator under a
// caller-chosen id, so later lines can refer back to earlier allocations.
//
//	a <id> <size>          malloc(size), remember result as id
//	f <id>                 free(id)
//	r <id> <size>          realloc(id, size), remember result as id
//	c <id> <nmemb> <size>  calloc(nmemb, size), remember result as id
type op struct {
	kind  byte
	id    string
	a, b  int32
}

func loadTrace(path string) ([]op, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()

	var ops []op
	sc := bufio.NewScanner(f)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		o, err := parseOp(fields)
		if err != nil {
			return nil, fmt.Errorf("trace line %d: %w", lineNo, err)
		}
		ops = append(ops, o)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return ops, nil
}

func parseOp(fields []string) (op, error) {
	if len(fields) == 0 {
		return op{}, fmt.Errorf("empty line")
	}

	switch fields[0] {
	case "a", "r", "c":
		if len(fields) < 3 {
			return op{}, fmt.Errorf("%q needs at least 2 arguments", fields[0])
		}
		id := fields[1]
		n1, err := strconv.ParseInt(fields[2], 10, 32)
		if err != nil {
			return op{}, fmt.Errorf("bad size %q: %w", fields[2], err)
		}
		o := op{kind: fields[0][0], id: id, a: int32(n1)}
		if fields[0] == "c" {
			if len(fields) < 4 {
				return op{}, fmt.Errorf("%q needs nmemb and size", fields[0])
			}
			n2, err := strconv.ParseInt(fields[3], 10, 32)
			if err != nil {
				return op{}, fmt.Errorf("bad size %q: %w", fields[3], err)
			}
			o.a, o.b = int32(n1), int32(n2)
		}
		return o, nil
	case "f":
		if len(fields) < 2 {
			return op{}, fmt.Errorf("%q needs an id", fields[0])
		}
		return op{kind: 'f', id: fields[1]}, nil
	default:
		return op{}, fmt.Errorf("unknown op %q", fields[0])
	}
}
