package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataUnmarshalSplitsReservedKeys(t *testing.T) {
	raw := `{
		"visit_note": "leave at the door",
		"_visit_photos": ["p1", "p2"],
		"warehouse": "north",
		"priority": 3
	}`

	var md Metadata
	require.NoError(t, json.Unmarshal([]byte(raw), &md))

	assert.Equal(t, "leave at the door", md.App.Note)
	assert.Equal(t, []string{"p1", "p2"}, md.App.PhotoIDs)
	assert.Contains(t, md.Other, "warehouse")
	assert.Contains(t, md.Other, "priority")
	assert.NotContains(t, md.Other, "visit_note")
	assert.NotContains(t, md.Other, "_visit_photos")
}

func TestMetadataMarshalKeepsForeignKeys(t *testing.T) {
	raw := `{"visit_note":"hi","_visit_photos":["a"],"warehouse":"north","extra":{"nested":true}}`

	var md Metadata
	require.NoError(t, json.Unmarshal([]byte(raw), &md))

	out, err := json.Marshal(md)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestMetadataMarshalOmitsEmptyAppFields(t *testing.T) {
	md := Metadata{Other: map[string]json.RawMessage{"warehouse": json.RawMessage(`"north"`)}}

	out, err := json.Marshal(md)
	require.NoError(t, err)
	assert.JSONEq(t, `{"warehouse":"north"}`, string(out))
}

func TestMetadataUnmarshalToleratesMalformedNote(t *testing.T) {
	var md Metadata
	require.NoError(t, json.Unmarshal([]byte(`{"visit_note":42,"warehouse":"north"}`), &md))

	assert.Empty(t, md.App.Note)
	assert.Contains(t, md.Other, "warehouse")
}

func TestMetadataStringValues(t *testing.T) {
	var md Metadata
	require.NoError(t, json.Unmarshal([]byte(`{"route":"r-7","stops":5,"visit_note":"n"}`), &md))

	assert.Equal(t, map[string]string{"route": "r-7"}, md.StringValues())
}
