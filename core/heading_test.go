package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veerlabs/veer/schema"
)

func TestHeadingTrackStartsAtZero(t *testing.T) {
	readings := []schema.SensorReading{
		{Timestamp: 0, GyroZ: 1.0},
		{Timestamp: 1, GyroZ: 1.0},
		{Timestamp: 2, GyroZ: -2.0},
	}

	samples := HeadingTrack(readings)

	assert.Len(t, samples, 3)
	assert.InDelta(t, 0.0, samples[0].Heading, 1e-9)
	for _, s := range samples {
		assert.GreaterOrEqual(t, s.Heading, 0.0)
		assert.Less(t, s.Heading, 360.0)
	}
}

func TestHeadingTrackIntegration(t *testing.T) {
	// One second at pi/2 rad/s is a quarter turn; zero rate holds heading.
	readings := []schema.SensorReading{
		{Timestamp: 0, GyroZ: 0},
		{Timestamp: 1, GyroZ: math.Pi / 2},
		{Timestamp: 2, GyroZ: 0},
	}

	samples := HeadingTrack(readings)

	assert.Len(t, samples, 3)
	assert.InDelta(t, 0.0, samples[0].Heading, 1e-9)
	assert.InDelta(t, 90.0, samples[1].Heading, 1e-9)
	assert.InDelta(t, 90.0, samples[2].Heading, 1e-9)
}

func TestHeadingTrackFallbackDt(t *testing.T) {
	// Duplicate timestamps substitute a 1ms delta instead of aborting
	readings := []schema.SensorReading{
		{Timestamp: 5, GyroZ: 0},
		{Timestamp: 5, GyroZ: math.Pi},
	}

	samples := HeadingTrack(readings)

	assert.Len(t, samples, 2)
	assert.InDelta(t, 180.0*0.001, samples[1].Heading, 1e-9)
}

func TestHeadingTrackNormalizesNegative(t *testing.T) {
	readings := []schema.SensorReading{
		{Timestamp: 0, GyroZ: 0},
		{Timestamp: 1, GyroZ: -math.Pi / 2},
	}

	samples := HeadingTrack(readings)

	assert.InDelta(t, 270.0, samples[1].Heading, 1e-9)
}

func TestHeadingTrackEmpty(t *testing.T) {
	assert.Nil(t, HeadingTrack(nil))
}

func TestSummarizeDirectionWrapCorrection(t *testing.T) {
	// Crossing from 350° to 10° is a +20° turn, not -340°
	samples := []schema.HeadingSample{
		{Timestamp: 0, Heading: 350},
		{Timestamp: 1, Heading: 10},
	}

	summary := SummarizeDirection(samples)

	assert.InDelta(t, 20.0, summary.TotalRotation, 1e-9)
	assert.Equal(t, 1, summary.DirectionChanges)
	assert.InDelta(t, 20.0, summary.AverageRate, 1e-9)
	assert.InDelta(t, 350.0, summary.InitialHeading, 1e-9)
	assert.InDelta(t, 10.0, summary.FinalHeading, 1e-9)
}

func TestSummarizeDirectionThreshold(t *testing.T) {
	// 10° exactly does not count; anything above does
	samples := []schema.HeadingSample{
		{Timestamp: 0, Heading: 0},
		{Timestamp: 1, Heading: 10},
		{Timestamp: 2, Heading: 25},
	}

	summary := SummarizeDirection(samples)

	assert.Equal(t, 1, summary.DirectionChanges)
	assert.InDelta(t, 25.0, summary.TotalRotation, 1e-9)
}

func TestSummarizeDirectionShortSequences(t *testing.T) {
	// Zero and one sample must not divide by zero
	empty := SummarizeDirection(nil)
	assert.Equal(t, 0, empty.Samples)
	assert.InDelta(t, 0.0, empty.AverageRate, 1e-9)

	single := SummarizeDirection([]schema.HeadingSample{{Timestamp: 3, Heading: 42}})
	assert.Equal(t, 1, single.Samples)
	assert.InDelta(t, 0.0, single.AverageRate, 1e-9)
	assert.InDelta(t, 42.0, single.InitialHeading, 1e-9)
	assert.InDelta(t, 42.0, single.FinalHeading, 1e-9)
}

func TestApplyGravityCompensation(t *testing.T) {
	readings := make([]schema.SensorReading, 12)
	for i := range readings {
		readings[i] = schema.SensorReading{AccelX: 0.0, AccelY: 0.0, AccelZ: 1.0}
	}
	readings[11].AccelZ = 1.5

	ApplyGravityCompensation(readings)

	// Bias is the mean of the first ten readings, so resting samples zero out
	assert.InDelta(t, 0.0, readings[0].AccelZ, 1e-9)
	assert.InDelta(t, 0.5*9.8, readings[11].AccelZ, 1e-9)
}

func TestApplyGravityCompensationTooFewReadings(t *testing.T) {
	readings := []schema.SensorReading{
		{AccelX: 1, AccelY: 2, AccelZ: 3},
	}

	ApplyGravityCompensation(readings)

	// Untouched below the bias sample count
	assert.InDelta(t, 1.0, readings[0].AccelX, 1e-9)
	assert.InDelta(t, 3.0, readings[0].AccelZ, 1e-9)
}
