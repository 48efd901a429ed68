package stats

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	assert.Nil(t, Mean(nil))
	assert.Nil(t, Mean([]float64{}))

	got := Mean([]float64{60, 70, 80, 90})
	require.NotNil(t, got)
	assert.InDelta(t, 75.0, *got, 1e-9)
}

func TestMedian(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "odd", values: []float64{90, 60, 70}, want: 70},
		{name: "even", values: []float64{60, 70, 80, 90}, want: 75},
		{name: "single", values: []float64{42}, want: 42},
		{name: "unsorted even", values: []float64{10, 1, 4, 3}, want: 3.5},
		{name: "negative", values: []float64{-5, -1, -3}, want: -3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Median(tc.values)
			require.NotNil(t, got)
			assert.InDelta(t, tc.want, *got, 1e-9)
		})
	}
	assert.Nil(t, Median(nil))
}

func TestMedianLeavesInputUntouched(t *testing.T) {
	values := []float64{3, 1, 2}
	Median(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestMedianBoundsAndMembership(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		n := rng.Intn(25) + 1
		values := make([]float64, n)
		for j := range values {
			values[j] = float64(rng.Intn(101))
		}

		median := Median(values)
		require.NotNil(t, median)
		assert.GreaterOrEqual(t, *median, *Min(values))
		assert.LessOrEqual(t, *median, *Max(values))

		if n%2 == 1 {
			assert.Contains(t, values, *median)
		}
	}
}

func TestMedianEvenMayBeAbsent(t *testing.T) {
	values := []float64{60, 70, 80, 90}
	median := Median(values)
	require.NotNil(t, median)
	assert.NotContains(t, values, *median)
}

func TestMinMax(t *testing.T) {
	assert.Nil(t, Min(nil))
	assert.Nil(t, Max(nil))
	assert.Equal(t, 60.0, *Min([]float64{80, 60, 90, 70}))
	assert.Equal(t, 90.0, *Max([]float64{80, 60, 90, 70}))
}

func TestPercentage(t *testing.T) {
	for _, x := range []float64{0, 1, 17, -3, 1e9} {
		assert.Equal(t, 0.0, Percentage(x, 0))
	}
	assert.InDelta(t, 66.6666, Percentage(2, 3), 1e-3)
	assert.Equal(t, 100.0, Percentage(4, 4))
}

func TestRound(t *testing.T) {
	cases := []struct {
		value     float64
		precision int32
		want      float64
	}{
		{66.66666666666667, 2, 66.67},
		{66.66666666666667, 0, 67},
		{2.5, 0, 3},
		{-2.5, 0, -3},
		{2.675, 2, 2.68},
		{1.005, 2, 1.01},
		{75, 2, 75},
		{0.5, 0, 1},
		{-0.125, 2, -0.13},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Round(tc.value, tc.precision), "round(%v, %d)", tc.value, tc.precision)
	}
}

func TestRoundPtr(t *testing.T) {
	assert.Nil(t, RoundPtr(nil, 2))
	assert.Equal(t, 33.33, *RoundPtr(Float(100.0/3), 2))
}
