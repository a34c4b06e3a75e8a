package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	{ // DataP aliases the dense backing store, row-major
		A := NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
		assert.Equal(t, 3., A.At(0, 2))
		assert.Equal(t, 4., A.At(1, 0))
		A.DataP[4] = 50.
		assert.Equal(t, 50., A.At(1, 1))
		A.Set(0, 0, -1.)
		assert.Equal(t, -1., A.DataP[0])
		assert.Equal(t, []float64{50., 6.}, A.Row(1)[1:])
	}
	{ // Copy is deep, CopyFrom preserves the alias
		A := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		B := A.Copy()
		B.DataP[0] = 100.
		assert.Equal(t, 1., A.DataP[0])
		alias := A.DataP
		A.CopyFrom(B)
		assert.Equal(t, 100., A.DataP[0])
		assert.Equal(t, 100., alias[0])
		assert.Panics(t, func() { A.CopyFrom(NewMatrix(3, 3)) })
	}
	{
		A := NewMatrix(2, 2, []float64{1, -2, 3, -4})
		assert.Equal(t, 3., A.Max())
		assert.Equal(t, -4., A.Min())
		A.Scale(2.)
		assert.Equal(t, []float64{2, -4, 6, -8}, A.DataP)
		A.Subtract(NewMatrix(2, 2, []float64{1, 1, 1, 1}))
		assert.Equal(t, []float64{1, -5, 5, -9}, A.DataP)
	}
	{
		assert.Panics(t, func() { NewMatrix(2, 2, []float64{1}) })
	}
}
