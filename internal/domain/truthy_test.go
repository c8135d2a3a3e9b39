package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTruthy(t *testing.T) {
	truthy := []interface{}{true, 1, int64(2), 1.0, "true", "TRUE", "yes", "Y", "t", "1", " yes "}
	for _, v := range truthy {
		got := ParseTruthy(v)
		if assert.NotNil(t, got, "%#v", v) {
			assert.True(t, *got, "%#v", v)
		}
	}

	falsy := []interface{}{false, 0, int64(0), 0.0, "false", "NO", "n", "f", "0"}
	for _, v := range falsy {
		got := ParseTruthy(v)
		if assert.NotNil(t, got, "%#v", v) {
			assert.False(t, *got, "%#v", v)
		}
	}

	// Unrecognized values carry no signal either way.
	assert.Nil(t, ParseTruthy(nil))
	assert.Nil(t, ParseTruthy("maybe"))
	assert.Nil(t, ParseTruthy(""))
	assert.Nil(t, ParseTruthy([]string{"true"}))
}
