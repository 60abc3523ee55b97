package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFields_FormStrings(t *testing.T) {
	f, err := ParseFields(map[string]any{
		"name":        "Test",
		"category":    "X",
		"description": "d",
		"price":       "100",
		"stock":       "2",
		"rating":      "abc",
	})
	require.NoError(t, err)

	assert.Equal(t, "Test", f.Name)
	assert.Equal(t, "X", f.Category)
	assert.Equal(t, "d", f.Description)
	assert.Equal(t, 100.0, f.Price)
	assert.Equal(t, int64(2), f.Stock)
	assert.Nil(t, f.Rating)
}

func TestParseFields_JSONNumbers(t *testing.T) {
	f, err := ParseFields(map[string]any{
		"name":   "Pad",
		"price":  49990.5,
		"stock":  float64(9),
		"rating": float64(3),
	})
	require.NoError(t, err)

	assert.Equal(t, 49990.5, f.Price)
	assert.Equal(t, int64(9), f.Stock)
	require.NotNil(t, f.Rating)
	assert.Equal(t, 3, *f.Rating)
}

func TestParseFields_MissingValues(t *testing.T) {
	f, err := ParseFields(map[string]any{})
	require.NoError(t, err)

	assert.Empty(t, f.Name)
	assert.Zero(t, f.Price)
	assert.Zero(t, f.Stock)
	assert.Nil(t, f.Rating)
}

func TestParseFields_Rating(t *testing.T) {
	cases := []struct {
		in   any
		want *int
	}{
		{"5", intp(5)},
		{" 1 ", intp(1)},
		{float64(4), intp(4)},
		{"abc", nil},
		{"", nil},
		{nil, nil},
		{"0", nil},
		{float64(7), nil},
		{"3.5", nil},
		{"1e300", nil},
		{"-6", nil},
		{true, intp(1)},
		{[]any{1}, nil},
	}

	for _, tc := range cases {
		f, err := ParseFields(map[string]any{"rating": tc.in})
		require.NoError(t, err)
		assert.Equal(t, tc.want, f.Rating, "rating %#v", tc.in)
	}
}

func TestParseFields_InvalidNumbers(t *testing.T) {
	cases := []struct {
		field string
		value any
	}{
		{"price", "abc"},
		{"price", "NaN"},
		{"price", map[string]any{}},
		{"stock", "two"},
		{"stock", "2.5"},
		{"stock", 1.5},
	}

	for _, tc := range cases {
		_, err := ParseFields(map[string]any{tc.field: tc.value})
		require.Error(t, err, "%s=%#v", tc.field, tc.value)

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, tc.field, fe.Field)
	}
}
