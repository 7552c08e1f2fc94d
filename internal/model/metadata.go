package model

import "encoding/json"

// Reserved keys inside the order metadata map that carry app-local state.
const (
	metadataNoteKey   = "visit_note"
	metadataPhotosKey = "_visit_photos"
)

// AppMetadata is the app-owned slice of the order metadata: the delivery
// note and the list of photo ids the backend has confirmed.
type AppMetadata struct {
	Note     string
	PhotoIDs []string
}

// Metadata is the opaque order metadata map. The app sub-object lives
// under reserved keys; every other key is carried through untouched so a
// full-replace push never loses fields written by other systems.
type Metadata struct {
	App   AppMetadata
	Other map[string]json.RawMessage
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(m.Other)+2)
	for k, v := range m.Other {
		out[k] = v
	}
	if m.App.Note != "" {
		raw, err := json.Marshal(m.App.Note)
		if err != nil {
			return nil, err
		}
		out[metadataNoteKey] = raw
	}
	if len(m.App.PhotoIDs) > 0 {
		raw, err := json.Marshal(m.App.PhotoIDs)
		if err != nil {
			return nil, err
		}
		out[metadataPhotosKey] = raw
	}
	return json.Marshal(out)
}

func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Metadata{}
	for k, v := range raw {
		switch k {
		case metadataNoteKey:
			// A malformed note is dropped rather than failing the
			// whole trip list decode.
			_ = json.Unmarshal(v, &m.App.Note)
		case metadataPhotosKey:
			_ = json.Unmarshal(v, &m.App.PhotoIDs)
		default:
			if m.Other == nil {
				m.Other = make(map[string]json.RawMessage)
			}
			m.Other[k] = v
		}
	}
	return nil
}

// StringValues extracts the plain string entries of the metadata map,
// used for trip-level metadata display.
func (m Metadata) StringValues() map[string]string {
	res := make(map[string]string, len(m.Other))
	for k, v := range m.Other {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			res[k] = s
		}
	}
	return res
}
