package content

import (
	"encoding/json"
	"fmt"
)

// Catalog maps a category name ("happy", "sad", ...) to its kaomoji glyphs.
type Catalog map[string][]string

// Placeholder is the substitution token every template carries exactly once.
const Placeholder = "{kaomoji}"

// Templates holds the message template document: template groups keyed by
// name, reply templates keyed by response type, and the general hashtag
// pool.
type Templates struct {
	Groups    map[string][]string
	Responses map[string][]string
	Hashtags  []string
}

// templatesDocument is the on-disk shape: group names are top-level keys
// alongside the reserved "responses" and "hashtags" keys.
const (
	responsesKey = "responses"
	hashtagsKey  = "hashtags"
)

// UnmarshalJSON decodes the flat document shape into the Templates struct.
func (t *Templates) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.Groups = make(map[string][]string)
	for key, value := range raw {
		switch key {
		case responsesKey:
			if err := json.Unmarshal(value, &t.Responses); err != nil {
				return fmt.Errorf("invalid responses section: %w", err)
			}
		case hashtagsKey:
			if err := json.Unmarshal(value, &t.Hashtags); err != nil {
				return fmt.Errorf("invalid hashtags section: %w", err)
			}
		default:
			var list []string
			if err := json.Unmarshal(value, &list); err != nil {
				return fmt.Errorf("invalid template group %q: %w", key, err)
			}
			t.Groups[key] = list
		}
	}
	return nil
}

// MarshalJSON writes the flat document shape back out.
func (t Templates) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(t.Groups)+2)
	for name, list := range t.Groups {
		doc[name] = list
	}
	doc[responsesKey] = t.Responses
	doc[hashtagsKey] = t.Hashtags
	return json.Marshal(doc)
}
