package form

import (
	"encoding/json"
	"strings"
)

// NoneSentinel is what pick-lists show for "no selection".
const NoneSentinel = "none"

// Choice is a pick-list value with an explicit absent state. The sentinel
// never lives in a draft: it is parsed away on input and only produced again
// by UIValue.
type Choice struct {
	value string
	set   bool
}

// Some returns a present choice.
func Some(v string) Choice {
	return Choice{value: v, set: true}
}

// None returns the absent choice.
func None() Choice {
	return Choice{}
}

// ParseChoice maps "", "none" (any case, surrounding spaces) to absent.
func ParseChoice(s string) Choice {
	t := strings.TrimSpace(s)
	if t == "" || strings.EqualFold(t, NoneSentinel) {
		return None()
	}
	return Some(s)
}

// ChoiceFrom converts a nullable record field.
func ChoiceFrom(p *string) Choice {
	if p == nil {
		return None()
	}
	return ParseChoice(*p)
}

func (c Choice) Value() (string, bool) {
	return c.value, c.set
}

func (c Choice) IsSet() bool {
	return c.set
}

// UIValue renders the choice for a pick-list.
func (c Choice) UIValue() string {
	if !c.set {
		return NoneSentinel
	}
	return c.value
}

// Ptr is the submission form: nil when absent.
func (c Choice) Ptr() *string {
	if !c.set {
		return nil
	}
	v := c.value
	return &v
}

func (c Choice) MarshalJSON() ([]byte, error) {
	if !c.set {
		return []byte("null"), nil
	}
	return json.Marshal(c.value)
}

func (c *Choice) UnmarshalJSON(b []byte) error {
	var p *string
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*c = ChoiceFrom(p)
	return nil
}
