package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListUnmarshalSingle(t *testing.T) {
	var s StringList
	require.NoError(t, json.Unmarshal([]byte(`"local"`), &s))
	assert.Equal(t, StringList{"local"}, s)
}

func TestStringListUnmarshalArray(t *testing.T) {
	var s StringList
	require.NoError(t, json.Unmarshal([]byte(`["local","registry"]`), &s))
	assert.Equal(t, StringList{"local", "registry"}, s)
}

func TestStringListUnmarshalRejectsOthers(t *testing.T) {
	var s StringList
	assert.Error(t, json.Unmarshal([]byte(`42`), &s))
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &s))
}

func TestStringListInParams(t *testing.T) {
	var params GetParams
	require.NoError(t, json.Unmarshal([]byte(`{"zettel_id":"001-a","destination":"project"}`), &params))
	assert.Equal(t, StringList{"project"}, params.Destination)

	var params2 ManageParams
	require.NoError(t, json.Unmarshal([]byte(`{"action":"delete","zettel_id":"001-a","location":["project","user"]}`), &params2))
	assert.Equal(t, StringList{"project", "user"}, params2.Location)
}

func TestStringListContains(t *testing.T) {
	s := StringList{"local", "registry"}
	assert.True(t, s.Contains("local"))
	assert.False(t, s.Contains("user"))
}
