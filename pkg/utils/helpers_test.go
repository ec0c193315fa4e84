package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 30*time.Second, ParseDuration("30s"))
	assert.Equal(t, 2*time.Hour, ParseDuration("2h"))
	// Empty and garbage fall back to the default.
	assert.Equal(t, 5*time.Minute, ParseDuration(""))
	assert.Equal(t, 5*time.Minute, ParseDuration("soon"))
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitAndTrim("a, b ,c"))
	assert.Equal(t, []string{"one"}, SplitAndTrim("one"))
	assert.Nil(t, SplitAndTrim(""))
	assert.Nil(t, SplitAndTrim(" , , "))
}
