package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValuesArithmetic(t *testing.T) {
	a := Values{Calories: 100, Protein: 10, Fat: 5, Carbs: 20}
	b := Values{Calories: 50, Protein: 2, Fat: 1, Carbs: 8}

	sum := a.Add(b)
	assert.Equal(t, Values{Calories: 150, Protein: 12, Fat: 6, Carbs: 28}, sum)

	scaled := a.Scale(2.5)
	assert.Equal(t, Values{Calories: 250, Protein: 25, Fat: 12.5, Carbs: 50}, scaled)
}

func TestValuesRound(t *testing.T) {
	v := Values{Calories: 123.456, Protein: 0.005, Fat: 1.994, Carbs: 10}
	rounded := v.Round()

	assert.Equal(t, 123.46, rounded.Calories)
	assert.Equal(t, 0.01, rounded.Protein)
	assert.Equal(t, 1.99, rounded.Fat)
	assert.Equal(t, 10.0, rounded.Carbs)
	// rounding twice changes nothing
	assert.Equal(t, rounded, rounded.Round())
}

func TestValuesValidate(t *testing.T) {
	assert.NoError(t, Values{Calories: 1}.Validate())
	assert.Error(t, Values{Protein: -0.1}.Validate())
}

func TestValuesIsZero(t *testing.T) {
	assert.True(t, Values{}.IsZero())
	assert.False(t, Values{Carbs: 0.1}.IsZero())
}
