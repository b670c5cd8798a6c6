package session

import "encoding/json"

// csrfDataKey is the reserved payload key holding the anti-forgery secret.
// Keeping it inside the data blob matches the single-column persistence model.
const csrfDataKey = "_csrf"

// encodePayload serializes session data to the text blob stored in the
// backend. Marshal failures collapse to an empty object so a session with an
// unserializable value is stored without data rather than lost.
func encodePayload(data map[string]any) string {
	if len(data) == 0 {
		return "{}"
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// decodePayload deserializes the stored text blob. A corrupt or empty blob
// yields a usable empty map, never an error: a broken payload must not make
// the session itself unusable.
func decodePayload(raw string) map[string]any {
	data := make(map[string]any)
	if raw == "" {
		return data
	}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return make(map[string]any)
	}
	return data
}
