package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID identifies an execution. The server may send it as a JSON string or a
// number; the zero value means no execution is selected.
type ID string

func ParseID(s string) ID {
	return ID(strings.TrimSpace(s))
}

func IDFromInt(n int64) ID {
	return ID(strconv.FormatInt(n, 10))
}

func (id ID) IsZero() bool { return id == "" }

func (id ID) String() string { return string(id) }

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ParseID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("execution id: %w", err)
		}
		*id = ID(n.String())
		return nil
	}
}

// Execution is the long form of one execution log entry.
type Execution struct {
	ID        ID     `json:"id"`
	StartTime string `json:"startTime"`
	User      string `json:"user"`
	Script    string `json:"script"`
	Status    string `json:"status"`
	ExitCode  *int   `json:"exitCode"`
	Command   string `json:"command"`
	Log       string `json:"log"`
}

func (e *Execution) UnmarshalJSON(b []byte) error {
	type plain Execution
	var raw struct {
		plain
		StartTime *string         `json:"startTime"`
		ExitCode  json.RawMessage `json:"exitCode"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*e = Execution(raw.plain)
	e.StartTime = ""
	if raw.StartTime != nil {
		e.StartTime = *raw.StartTime
	}
	code, err := parseExitCode(raw.ExitCode)
	if err != nil {
		return err
	}
	e.ExitCode = code
	return nil
}

// parseExitCode accepts numbers and numeric strings; older servers send
// the exit code as text.
func parseExitCode(raw json.RawMessage) (*int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, nil
		}
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return nil, fmt.Errorf("exit code %s: %w", raw, err)
	}
	return &n, nil
}
