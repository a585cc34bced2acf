package internal

import (
	"iter"
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := slices.All([]string{"a", "b"})
	b := slices.All([]string{"c"})

	var keys []int
	var vals []string
	for k, v := range IterSeq2Concat(a, b) {
		keys = append(keys, k)
		vals = append(vals, v)
	}

	assert.Equal([]int{0, 1, 0}, keys)
	assert.Equal([]string{"a", "b", "c"}, vals)
}

func TestIterSeq2Concat_Stop(t *testing.T) {
	assert := assert.New(t)

	seq := IterSeq2Concat(slices.All([]int{1, 2, 3}), slices.All([]int{4}))

	var got []int
	for _, v := range seq {
		got = append(got, v)
		if v == 2 {
			break
		}
	}

	assert.Equal([]int{1, 2}, got)
}

func TestIterSeq2Concat_Empty(t *testing.T) {
	assert := assert.New(t)

	var seqs []iter.Seq2[string, int]
	assert.Empty(maps.Collect(IterSeq2Concat(seqs...)))
}
