package types_test

import (
	"encoding/json"
	"testing"

	"github.com/enverbisevac/restmodel/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggest/jsonschema-go"
)

func TestOptional_SetAndGet(t *testing.T) {
	var n types.Optional[int]
	assert.False(t, n.IsSet())
	assert.False(t, n.IsNull())
	assert.Nil(t, n.Ptr())

	n.Set(42)
	val, ok := n.Value()
	assert.True(t, n.IsSet())
	assert.False(t, n.IsNull())
	assert.True(t, ok)
	assert.Equal(t, 42, val)
	assert.Equal(t, 42, *n.Ptr())
}

func TestOptional_SetNull(t *testing.T) {
	n := types.New("x")
	n.SetNull()

	assert.True(t, n.IsSet())
	assert.True(t, n.IsNull())

	val, ok := n.Value()
	assert.False(t, ok)
	assert.Equal(t, "", val)
	assert.Equal(t, "default", n.ValueOrDefault("default"))
}

func TestOptional_Unset(t *testing.T) {
	n := types.New(3.14)
	n.Unset()

	assert.False(t, n.IsSet())
	assert.True(t, n.IsZero())
	assert.Equal(t, 0.0, n.ValueOrDefault(0))
}

func TestOptional_UnmarshalAbsentNullValue(t *testing.T) {
	var body struct {
		Absent types.Optional[string] `json:"absent"`
		Null   types.Optional[string] `json:"null"`
		Value  types.Optional[string] `json:"value"`
	}

	err := json.Unmarshal([]byte(`{"null":null,"value":"Janet"}`), &body)
	require.NoError(t, err)

	assert.False(t, body.Absent.IsSet())
	assert.True(t, body.Null.IsNull())
	v, ok := body.Value.Value()
	assert.True(t, ok)
	assert.Equal(t, "Janet", v)
}

func TestOptional_UnmarshalWrongType(t *testing.T) {
	var n types.Optional[int]
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &n))
	assert.False(t, n.IsSet())
}

func TestOptional_Marshal(t *testing.T) {
	data, err := json.Marshal(types.New(100))
	require.NoError(t, err)
	assert.JSONEq(t, "100", string(data))

	data, err = json.Marshal(types.Null[string]())
	require.NoError(t, err)
	assert.JSONEq(t, "null", string(data))
}

func TestOptional_JSONSchema(t *testing.T) {
	s, err := types.Optional[string]{}.JSONSchema()
	require.NoError(t, err)
	require.NotNil(t, s.Type)
	assert.ElementsMatch(t,
		[]jsonschema.SimpleType{jsonschema.String, jsonschema.Null},
		s.Type.SliceOfSimpleTypeValues,
	)

	type nested struct {
		ID int `json:"id" required:"true"`
	}
	s, err = types.Optional[nested]{}.JSONSchema()
	require.NoError(t, err)
	assert.Contains(t, s.Required, "id")
	assert.ElementsMatch(t,
		[]jsonschema.SimpleType{jsonschema.Object, jsonschema.Null},
		s.Type.SliceOfSimpleTypeValues,
	)
}
