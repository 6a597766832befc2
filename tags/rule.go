package tags

import (
	"fmt"
	"reflect"
	"strings"
)

// TagName defines mapping rule tag
const TagName = "mapper"

// Rule represents declarative field mapping rule, i.e. `mapper:"alias={user_id,uid},exclude"`
type Rule struct {
	Aliases []string
	Exclude bool
}

// IsEmpty returns true if rule declares nothing
func (r *Rule) IsEmpty() bool {
	return r == nil || (len(r.Aliases) == 0 && !r.Exclude)
}

func (r *Rule) update(key string, value string) error {
	switch strings.ToLower(key) {
	case "alias", "aliases", "key":
		r.Aliases = append(r.Aliases, Values(value).Elements()...)
	case "exclude", "ignore", "-":
		r.Exclude = true
	default:
		return fmt.Errorf("unsupported %v tag key: %v", TagName, key)
	}
	return nil
}

// ParseRule parses rule tag value
func ParseRule(encoded string) (*Rule, error) {
	ret := &Rule{}
	if strings.TrimSpace(encoded) == "" {
		return ret, nil
	}
	err := Values(encoded).MatchPairs(ret.update)
	return ret, err
}

// Parse parses rule from struct tag, nil rule is returned when tag is absent
func Parse(tag reflect.StructTag) (*Rule, error) {
	encoded, ok := tag.Lookup(TagName)
	if !ok {
		return nil, nil
	}
	return ParseRule(encoded)
}
