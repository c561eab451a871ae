package slice_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/enverbisevac/restmodel/slice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))
	assert.Empty(t, slice.Map([]int(nil), strconv.Itoa))
}

func TestMapErr(t *testing.T) {
	out, err := slice.MapErr([]string{"1", "2"}, strconv.Atoi)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, out)

	_, err = slice.MapErr([]string{"1", "x"}, strconv.Atoi)
	var nerr *strconv.NumError
	assert.True(t, errors.As(err, &nerr))
}
