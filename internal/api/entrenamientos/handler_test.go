package entrenamientos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMondayIndexed(t *testing.T) {
	cases := []struct {
		weekday time.Weekday
		want    int
	}{
		{time.Monday, 0},
		{time.Tuesday, 1},
		{time.Saturday, 5},
		{time.Sunday, 6},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, mondayIndexed(tc.weekday), tc.weekday.String())
	}
}

func TestValidHora(t *testing.T) {
	assert.True(t, validHora("18:00"))
	assert.True(t, validHora("09:30"))
	assert.False(t, validHora("25:00"))
	assert.False(t, validHora("1800"))
	assert.False(t, validHora(""))
}
