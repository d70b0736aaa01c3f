package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Toggle is a form boolean. Besides JSON booleans it accepts the values
// HTML checkboxes and toggles submit: "1", "0", "on", "off", "true", "false" and 1/0.
type Toggle bool

func (t Toggle) Bool() bool {
	return bool(t)
}

func (t *Toggle) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = false
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*t = Toggle(b)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		return t.UnmarshalText([]byte(n.String()))
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("toggle: unsupported value %s", data)
	}
	return t.UnmarshalText([]byte(s))
}

func (t *Toggle) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "1", "true", "on", "yes":
		*t = true
	case "0", "false", "off", "no", "":
		*t = false
	default:
		return fmt.Errorf("toggle: unsupported value %q", text)
	}
	return nil
}

// UnmarshalParam lets echo's form binder fill a Toggle.
func (t *Toggle) UnmarshalParam(param string) error {
	return t.UnmarshalText([]byte(param))
}

func (t Toggle) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(t))
}
