package mapology

import (
	"sort"
	"strings"
)

// dictionary wraps raw dictionary with lazily built lower case key index
type dictionary struct {
	values          map[string]interface{}
	lowered         map[string]interface{}
	caseInsensitive bool
}

// newDictionary snapshots the process wide case insensitive flag for one mapping call
func newDictionary(values map[string]interface{}) *dictionary {
	return &dictionary{values: values, caseInsensitive: CaseInsensitive()}
}

// lower returns dictionary with lower case keys, when keys collide the lexically smallest key wins
func (d *dictionary) lower() map[string]interface{} {
	if d.lowered != nil {
		return d.lowered
	}
	keys := make([]string, 0, len(d.values))
	for k := range d.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	d.lowered = make(map[string]interface{}, len(keys))
	for _, k := range keys {
		lowerKey := strings.ToLower(k)
		if _, ok := d.lowered[lowerKey]; ok {
			continue
		}
		d.lowered[lowerKey] = d.values[k]
	}
	return d.lowered
}

// match returns raw value for a field: declared aliases are exclusive, then case insensitive match if enabled, then exact key
func (d *dictionary) match(field *Field, rule *Rule) (interface{}, bool) {
	if rule != nil && len(rule.Aliases) > 0 {
		for _, alias := range rule.Aliases {
			if value, ok := d.values[alias]; ok {
				return value, true
			}
		}
		return nil, false
	}
	if d.caseInsensitive {
		value, ok := d.lower()[strings.ToLower(field.Key)]
		return value, ok
	}
	value, ok := d.values[field.Key]
	return value, ok
}
