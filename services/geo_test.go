package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	assert.Equal(t, 0.0, HaversineKm(13.7563, 100.5018, 13.7563, 100.5018))

	// One degree of latitude is roughly 111 km.
	assert.InDelta(t, 111.2, HaversineKm(0, 0, 1, 0), 0.5)

	// Bangkok to Chiang Mai is roughly 580 km.
	assert.InDelta(t, 580, HaversineKm(13.7563, 100.5018, 18.7883, 98.9853), 15)
}

func TestHaversineKmIsSymmetric(t *testing.T) {
	there := HaversineKm(13.7563, 100.5018, 18.7883, 98.9853)
	back := HaversineKm(18.7883, 98.9853, 13.7563, 100.5018)
	assert.InDelta(t, there, back, 1e-9)
}
