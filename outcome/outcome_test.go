package outcome

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsValue(t *testing.T) {
	v, err := OK("value").Get()
	require.NoError(t, err)
	assert.Equal(t, "value", v)
}

func TestGetRaisesHeldError(t *testing.T) {
	boom := errors.New("boom")
	v, err := Fail[string](boom).Get()
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, v)
}

func TestOf(t *testing.T) {
	assert.False(t, Of(1, nil).Failed())
	assert.True(t, Of(0, errors.New("boom")).Failed())
}

func TestOnceDropsSecondDelivery(t *testing.T) {
	var got []int
	h := Once(func(o Outcome[int]) {
		v, _ := o.Get()
		got = append(got, v)
	})
	h(OK(1))
	h(OK(2))
	assert.Equal(t, []int{1}, got)
}
