package gemini

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Models frequently wrap their answer in markdown fences or surround it
// with prose despite the prompt. These helpers cut the payload down to the
// outermost JSON value before decoding.

func decodeObject(text string, out any) error {
	payload, err := extractDelimited(text, '{', '}')
	if err != nil {
		return err
	}

	return errors.Wrap(json.Unmarshal([]byte(payload), out), "decode JSON object")
}

func decodeArray(text string, out any) error {
	payload, err := extractDelimited(text, '[', ']')
	if err != nil {
		return err
	}

	return errors.Wrap(json.Unmarshal([]byte(payload), out), "decode JSON array")
}

// extractDelimited strips ```json fences and returns the substring from
// the first open delimiter to the last close delimiter.
func extractDelimited(text string, open, close byte) (string, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	first := strings.IndexByte(cleaned, open)
	last := strings.LastIndexByte(cleaned, close)
	if first == -1 || last == -1 || last < first {
		return "", errors.Errorf("no %c...%c payload found in response", open, close)
	}

	return cleaned[first : last+1], nil
}
