package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-01-02 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "2024/01/02", "2024-13-01", "01-02-2024", "2024-02-30"} {
		_, err = ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestValidateDTO(t *testing.T) {
	type sample struct {
		Name  string `validate:"required,max=5"`
		Count int    `validate:"gte=0"`
	}

	assert.NoError(t, ValidateDTO(&sample{Name: "abc"}))

	err := ValidateDTO(&sample{Name: "abcdefg"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name")
	assert.Contains(t, err.Error(), "max")

	assert.Error(t, ValidateDTO(&sample{Name: "a", Count: -1}))
}

func TestPtrString(t *testing.T) {
	assert.Nil(t, PtrString(""))
	assert.Equal(t, "x", DerefString(PtrString("x")))
	assert.Equal(t, "", DerefString(nil))
}
