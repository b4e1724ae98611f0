package core

import (
	"math"

	"github.com/veerlabs/veer/schema"
)

// Integration and summary constants.
const (
	// fallbackDt substitutes for non-positive timestamp deltas so an
	// out-of-order or duplicate timestamp never aborts the integration.
	fallbackDt = 1.0 / 1000.0

	// directionChangeThreshold is the minimum heading delta in degrees
	// counted as a significant direction change.
	directionChangeThreshold = 10.0

	// gravityMS2 converts g-force to m/s² after bias removal.
	gravityMS2 = 9.8

	// biasSampleCount is how many leading readings are averaged to
	// estimate the gravity vector, assuming the camera starts at rest.
	biasSampleCount = 10
)

// HeadingTrack integrates the yaw-axis gyroscope rate into a cumulative
// heading estimate. The first sample is fixed at 0°; every subsequent
// sample adds gyroZ×dt converted to degrees and normalized to [0, 360).
// This is a pure forward integration with no drift correction, so
// accumulated numerical error grows without bound over long sequences.
// The result is a pure function of the input slice and is recomputed on
// every call.
func HeadingTrack(readings []schema.SensorReading) []schema.HeadingSample {
	if len(readings) == 0 {
		return nil
	}

	samples := make([]schema.HeadingSample, 0, len(readings))
	heading := 0.0
	samples = append(samples, schema.HeadingSample{Timestamp: readings[0].Timestamp, Heading: heading})

	for i := 1; i < len(readings); i++ {
		dt := readings[i].Timestamp - readings[i-1].Timestamp
		if dt <= 0 {
			dt = fallbackDt
		}

		heading += readings[i].GyroZ * dt * 180.0 / math.Pi
		heading = math.Mod(heading, 360.0)
		if heading < 0 {
			heading += 360.0
		}

		samples = append(samples, schema.HeadingSample{Timestamp: readings[i].Timestamp, Heading: heading})
	}
	return samples
}

// SummarizeDirection walks the heading track pairwise and aggregates
// rotation behavior. Sequences shorter than two samples report a zero
// average rate.
func SummarizeDirection(samples []schema.HeadingSample) schema.DirectionSummary {
	summary := schema.DirectionSummary{Samples: len(samples)}
	if len(samples) == 0 {
		return summary
	}

	summary.InitialHeading = samples[0].Heading
	summary.FinalHeading = samples[len(samples)-1].Heading

	prev := samples[0].Heading
	for _, s := range samples[1:] {
		delta := signedDelta(prev, s.Heading)
		summary.TotalRotation += math.Abs(delta)
		if math.Abs(delta) > directionChangeThreshold {
			summary.DirectionChanges++
		}
		prev = s.Heading
	}

	if len(samples) > 1 {
		span := samples[len(samples)-1].Timestamp - samples[0].Timestamp
		if span > 0 {
			summary.AverageRate = summary.TotalRotation / span
		}
	}
	return summary
}

// signedDelta returns the shortest angular distance from one heading to
// another, wrap-corrected so 350°→10° yields +20 rather than -340.
func signedDelta(from, to float64) float64 {
	diff := to - from
	if diff > 180 {
		diff -= 360
	} else if diff < -180 {
		diff += 360
	}
	return diff
}

// ApplyGravityCompensation estimates the gravity vector from the leading
// readings and rewrites every reading's accelerometer values in place,
// converting g-force to m/s². This is the only mutation readings undergo
// after creation. Sequences too short for a bias estimate are left
// untouched.
func ApplyGravityCompensation(readings []schema.SensorReading) {
	if len(readings) < biasSampleCount {
		return
	}

	var bx, by, bz float64
	for _, r := range readings[:biasSampleCount] {
		bx += r.AccelX
		by += r.AccelY
		bz += r.AccelZ
	}
	bx /= biasSampleCount
	by /= biasSampleCount
	bz /= biasSampleCount

	for i := range readings {
		readings[i].AccelX = (readings[i].AccelX - bx) * gravityMS2
		readings[i].AccelY = (readings[i].AccelY - by) * gravityMS2
		readings[i].AccelZ = (readings[i].AccelZ - bz) * gravityMS2
	}
}
