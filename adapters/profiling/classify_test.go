package profiling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyColumnNumericMajority(t *testing.T) {
	assert.Equal(t, "numeric", string(classifyColumn(10, 6)))
}

func TestClassifyColumnCategoricalMinority(t *testing.T) {
	assert.Equal(t, "categorical", string(classifyColumn(10, 5)))
}

func TestClassifyColumnAllNullIsCategorical(t *testing.T) {
	assert.Equal(t, "categorical", string(classifyColumn(0, 0)))
}
