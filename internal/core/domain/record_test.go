package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Field_Formats(t *testing.T) {
	rec := Record{
		"name":    "Acme Deli",
		"count":   float64(42),
		"ratio":   1.25,
		"active":  true,
		"blank":   "",
		"spaces":  "   ",
		"nothing": nil,
	}

	assert.Equal(t, "Acme Deli", rec.Field("name"))
	assert.Equal(t, "42", rec.Field("count"))
	assert.Equal(t, "1.25", rec.Field("ratio"))
	assert.Equal(t, "true", rec.Field("active"))
	assert.Equal(t, MissingFieldValue, rec.Field("blank"))
	assert.Equal(t, MissingFieldValue, rec.Field("spaces"))
	assert.Equal(t, MissingFieldValue, rec.Field("nothing"))
	assert.Equal(t, MissingFieldValue, rec.Field("absent"))
}

func TestRecord_Int(t *testing.T) {
	rec := Record{
		"count":  float64(7),
		"text":   "12",
		"padded": " 3 ",
		"word":   "many",
	}

	assert.Equal(t, 7, rec.Int("count"))
	assert.Equal(t, 12, rec.Int("text"))
	assert.Equal(t, 3, rec.Int("padded"))
	assert.Equal(t, 0, rec.Int("word"))
	assert.Equal(t, 0, rec.Int("absent"))
}

func TestColumns_SortedUnion(t *testing.T) {
	records := []Record{
		{"zipcode": "10001", "name": "A"},
		{"zipcode": "10002", "industry": "Food"},
	}

	assert.Equal(t, []string{"industry", "name", "zipcode"}, Columns(records))
}

func TestColumns_Empty(t *testing.T) {
	assert.Empty(t, Columns(nil))
}
