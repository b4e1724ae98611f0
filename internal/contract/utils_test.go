package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name    string
		avgRate float64
		want    string
	}{
		{"spinning", 90, SpinningValue},
		{"spinning boundary", 45, SpinningValue},
		{"turning", 30, TurningValue},
		{"turning boundary", 15, TurningValue},
		{"drifting", 5, DriftingValue},
		{"drifting boundary", 3, DriftingValue},
		{"steady", 1, SteadyValue},
		{"zero", 0, SteadyValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetPlainLabel(tt.avgRate))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	// The colored variant must always contain the plain label text
	for _, rate := range []float64{0, 5, 30, 90} {
		assert.Contains(t, GetColorLabel(rate), GetPlainLabel(rate))
	}
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "short.mp4", TruncatePath("short.mp4", 20))
	assert.Equal(t, "...ideos/clip.mp4", TruncatePath("/home/user/videos/clip.mp4", 17))
	// Width too small to truncate meaningfully leaves the path alone
	assert.Equal(t, "/home/user/videos/clip.mp4", TruncatePath("/home/user/videos/clip.mp4", 3))
}
