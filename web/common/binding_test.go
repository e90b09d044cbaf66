package common

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnlyUnmarshal(t *testing.T) {
	var d DateOnly

	require.NoError(t, json.Unmarshal([]byte(`"2026-08-31"`), &d))
	assert.True(t, d.Time.Equal(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)))

	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())

	err := json.Unmarshal([]byte(`"31/08/2026"`), &d)
	assert.ErrorContains(t, err, "invalid date format")
}

func TestDateOnlyMarshal(t *testing.T) {
	b, err := json.Marshal(DateOnly{Time: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, `"2026-08-31"`, string(b))

	b, err = json.Marshal(DateOnly{})
	require.NoError(t, err)
	assert.Equal(t, `""`, string(b))
}

func TestFormatBindingError(t *testing.T) {
	assert.Equal(t, "", FormatBindingError(nil))
	assert.Equal(t, "Request body is empty", FormatBindingError(io.EOF))

	type payload struct {
		Body  string    `json:"body" binding:"required"`
		Hours []float64 `json:"hours" binding:"len=7"`
	}
	err := binding.Validator.ValidateStruct(&payload{Hours: []float64{8}})
	require.Error(t, err)

	msg := FormatBindingError(err)
	assert.Contains(t, msg, "Field 'body' is required")
	assert.Contains(t, msg, "Field 'hours' must have length 7")
}
