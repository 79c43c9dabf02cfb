package types

import (
	"encoding/json"
	"strings"
)

// FlexLines is a newline-joined block of text that can be unmarshaled from
// either a JSON string or a JSON array of strings. Generation models return
// care instructions in both shapes; the array form is normalized by joining
// with "\n".
type FlexLines string

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexLines) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	// If it starts with '[', treat it as an array of lines
	if data[0] == '[' {
		var lines []string
		if err := json.Unmarshal(data, &lines); err != nil {
			return err
		}
		*f = FlexLines(strings.Join(lines, "\n"))
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = FlexLines(s)
	return nil
}

// String converts FlexLines back to a plain string.
func (f FlexLines) String() string {
	return string(f)
}

// Lines returns the non-blank lines of the block.
func (f FlexLines) Lines() []string {
	var out []string
	for _, line := range strings.Split(string(f), "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
