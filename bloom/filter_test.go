package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/pagewatch/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Add_then_Test(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://s.kz/p|f1"))
	f.Add("https://s.kz/p|f1")
	assert.True(t, f.Test("https://s.kz/p|f1"))
}

func TestFilter_no_false_negatives(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	for i := 0; i < 500; i++ {
		f.Add(fmt.Sprintf("https://s.kz/detail/%d", i))
	}
	for i := 0; i < 500; i++ {
		assert.True(t, f.Test(fmt.Sprintf("https://s.kz/detail/%d", i)))
	}
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	for i := 0; i < 100; i++ {
		f.Add(fmt.Sprintf("key-%d", i))
	}

	count := f.EstimatedCount()
	assert.InDelta(t, 100, float64(count), 10)
}
