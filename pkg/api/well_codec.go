package api

import (
	"encoding/json"

	"wellconnect/entities"
)

// The server evolves independently of this client: well payloads may carry
// fields this build does not know. decodeWell captures them in Extra as raw
// JSON text and encodeWell re-emits them at the top level, so a read-modify-
// write never drops server-side data.

func knownWellKeys() map[string]bool {
	b, _ := json.Marshal(entities.Well{})
	var m map[string]json.RawMessage
	_ = json.Unmarshal(b, &m)
	keys := make(map[string]bool, len(m)+1)
	for k := range m {
		keys[k] = true
	}
	keys["extra"] = true
	return keys
}

func decodeWell(raw json.RawMessage) (entities.Well, error) {
	var w entities.Well
	if err := json.Unmarshal(raw, &w); err != nil {
		return entities.Well{}, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return entities.Well{}, err
	}
	known := knownWellKeys()
	for k, v := range m {
		if known[k] {
			continue
		}
		if w.Extra == nil {
			w.Extra = map[string]string{}
		}
		// raw JSON text, quotes included: a write-back must emit the
		// exact encoding the server sent, string or not
		w.Extra[k] = string(v)
	}
	return w, nil
}

func encodeWell(w entities.Well) map[string]any {
	extra := w.Extra
	w.Extra = nil
	b, _ := json.Marshal(w)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	for k, v := range extra {
		if _, taken := m[k]; taken {
			continue
		}
		if json.Valid([]byte(v)) {
			m[k] = json.RawMessage(v)
		} else {
			// locally entered plain text, never seen on the wire
			m[k] = v
		}
	}
	return m
}
