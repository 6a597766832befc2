package tags

import (
	"strings"

	"github.com/viant/parsly"
)

// Values represents tag values
type Values string

// MatchPairs match paris separated by ,
func (v Values) MatchPairs(onMatch func(key, value string) error) error {
	cursor := parsly.NewCursor("", []byte(v), 0)
	for cursor.Pos < len(cursor.Input) {
		key, value := matchPair(cursor)
		if key == "" {
			continue
		}
		if err := onMatch(strings.TrimSpace(key), value); err != nil {
			return err
		}
	}
	return nil
}

// Elements returns coma separated elements, enclosing {} or '' are removed
func (v Values) Elements() []string {
	text := strings.TrimSpace(string(v))
	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		text = text[1 : len(text)-1]
	}
	var result []string
	cursor := parsly.NewCursor("", []byte(text), 0)
	for cursor.Pos < len(cursor.Input) {
		element := strings.TrimSpace(unquote(matchElement(cursor)))
		if element == "" {
			continue
		}
		result = append(result, element)
	}
	return result
}

func unquote(text string) string {
	if len(text) >= 2 && text[0] == '\'' && text[len(text)-1] == '\'' {
		return text[1 : len(text)-1]
	}
	return text
}
