package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortRegionName(t *testing.T) {
	assert.Equal(t, "HALUT", shortRegionName("Halmahera Utara"))
	assert.Equal(t, "MOROTAI", shortRegionName(" pulau morotai "))
	assert.Equal(t, "Tobelo", shortRegionName("Tobelo"))
	assert.Equal(t, "Kabupaten ", shortRegionName("Kabupaten Kepulauan X"))
}

func TestOptionsDefaults(t *testing.T) {
	got := Options{TopN: 2}.withDefaults()
	def := DefaultOptions()

	assert.Equal(t, 2, got.TopN)
	assert.Equal(t, def.Width, got.Width)
	assert.Equal(t, def.Height, got.Height)
}

func TestGrowthLabel(t *testing.T) {
	assert.Equal(t, "+5.2%", growthLabel(5.18))
	assert.Equal(t, "-15.8%", growthLabel(-15.77))
	assert.Equal(t, "0.0%", growthLabel(0))
}
