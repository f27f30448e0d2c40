package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBannerVisibleAt(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name    string
		banner  Banner
		visible bool
	}{
		{"inactive", Banner{Active: false}, false},
		{"active without window", Banner{Active: true}, true},
		{"inside window", Banner{Active: true, StartsAt: &past, EndsAt: &future}, true},
		{"not started yet", Banner{Active: true, StartsAt: &future}, false},
		{"already ended", Banner{Active: true, EndsAt: &past}, false},
		{"open-ended start", Banner{Active: true, StartsAt: &past}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.visible, tc.banner.VisibleAt(now))
		})
	}
}
