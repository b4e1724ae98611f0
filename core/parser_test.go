package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRawSensorStream(t *testing.T) {
	raw := []byte(`
Time Code                       : 1000
Accelerometer                   : 0.01 0.02 0.98
Angular Velocity                : 0.1 0.2 0.3
Time Code                       : 1010
Accelerometer                   : 0.02 0.03 0.99
Angular Velocity                : 0.4 0.5 0.6
`)

	readings := ParseRawSensorStream(raw)

	assert.Len(t, readings, 2)
	assert.InDelta(t, 1.0, readings[0].Timestamp, 1e-9)
	assert.InDelta(t, 0.98, readings[0].AccelZ, 1e-9)
	assert.InDelta(t, 0.3, readings[0].GyroZ, 1e-9)
	assert.InDelta(t, 1.01, readings[1].Timestamp, 1e-9)
	assert.InDelta(t, 0.6, readings[1].GyroZ, 1e-9)
}

func TestParseRawSensorStreamEmitsOnlyCompleteTriples(t *testing.T) {
	// First group is missing the Angular Velocity line, so only the
	// second group should produce a reading.
	raw := []byte(`
Time Code                       : 500
Accelerometer                   : 0.1 0.2 0.3
Time Code                       : 600
Accelerometer                   : 0.4 0.5 0.6
Angular Velocity                : 0.7 0.8 0.9
`)

	readings := ParseRawSensorStream(raw)

	assert.Len(t, readings, 1)
	assert.InDelta(t, 0.6, readings[0].Timestamp, 1e-9)
	assert.InDelta(t, 0.4, readings[0].AccelX, 1e-9)
}

func TestParseRawSensorStreamIgnoresMalformedValues(t *testing.T) {
	raw := []byte(`
Time Code                       : not-a-number
Accelerometer                   : 0.1 0.2
Angular Velocity                : 0.7 0.8 0.9
`)

	readings := ParseRawSensorStream(raw)

	assert.Empty(t, readings)
}

func TestParseRawSensorStreamEmpty(t *testing.T) {
	assert.Empty(t, ParseRawSensorStream(nil))
	assert.Empty(t, ParseRawSensorStream([]byte("Camera Model : test")))
}

func TestParseMetadataDocumentKnownField(t *testing.T) {
	doc := []byte(`[{
		"SensorData": [
			{"AccelX": 0.1, "AccelY": 0.2, "AccelZ": 0.3, "GyroZ": 0.5},
			{"AccelX": 0.4, "AccelY": 0.5, "AccelZ": 0.6}
		]
	}]`)

	readings, err := ParseMetadataDocument(doc)

	assert.NoError(t, err)
	assert.Len(t, readings, 2)
	// No timestamp field, so samples are spaced at the assumed interval
	assert.InDelta(t, 0.0, readings[0].Timestamp, 1e-9)
	assert.InDelta(t, 0.01, readings[1].Timestamp, 1e-9)
	assert.InDelta(t, 0.5, readings[0].GyroZ, 1e-9)
	// Missing gyro axes default to zero
	assert.InDelta(t, 0.0, readings[1].GyroZ, 1e-9)
}

func TestParseMetadataDocumentDocEntries(t *testing.T) {
	doc := []byte(`[{
		"Doc2": {"TimeCode": "2000", "Accelerometer": "0.4 0.5 0.6", "AngularVelocity": "0.4 0.5 0.6"},
		"Doc1": {"TimeCode": "1000", "Accelerometer": "0.1 0.2 0.3", "AngularVelocity": "0.1 0.2 0.3"},
		"Doc10": {"TimeCode": "10000", "Accelerometer": "0.7 0.8 0.9", "AngularVelocity": "0.7 0.8 0.9"}
	}]`)

	readings, err := ParseMetadataDocument(doc)

	assert.NoError(t, err)
	assert.Len(t, readings, 3)
	// Doc keys are ordered numerically, not lexically (Doc10 after Doc2)
	assert.InDelta(t, 1.0, readings[0].Timestamp, 1e-9)
	assert.InDelta(t, 2.0, readings[1].Timestamp, 1e-9)
	assert.InDelta(t, 10.0, readings[2].Timestamp, 1e-9)
}

func TestParseMetadataDocumentDocEntrySkipsBadTriples(t *testing.T) {
	doc := []byte(`[{
		"Doc1": {"TimeCode": "1000", "Accelerometer": "bad triple", "AngularVelocity": "0.1 0.2 0.3"},
		"Doc2": {"TimeCode": "2000", "Accelerometer": "0.4 0.5 0.6", "AngularVelocity": "0.4 0.5 0.6"}
	}]`)

	readings, err := ParseMetadataDocument(doc)

	assert.NoError(t, err)
	assert.Len(t, readings, 1)
	assert.InDelta(t, 2.0, readings[0].Timestamp, 1e-9)
}

func TestParseMetadataDocumentAliasScan(t *testing.T) {
	doc := []byte(`[{
		"SomeVendorAccelStream": [
			{"accel_x": 0.1, "accel_y": 0.2, "accel_z": 0.3, "gyro_z": 1.5, "timestamp": 4.5}
		]
	}]`)

	readings, err := ParseMetadataDocument(doc)

	assert.NoError(t, err)
	assert.Len(t, readings, 1)
	// Explicit timestamp wins over assumed spacing
	assert.InDelta(t, 4.5, readings[0].Timestamp, 1e-9)
	assert.InDelta(t, 1.5, readings[0].GyroZ, 1e-9)
}

func TestParseMetadataDocumentPassesAccumulate(t *testing.T) {
	// The known-field pass and the substring scan both match
	// AccelerometerData, so its readings appear twice. This mirrors the
	// vendor tooling this parser was reverse-engineered from.
	doc := []byte(`[{
		"AccelerometerData": [
			{"AccelX": 0.1, "AccelY": 0.2, "AccelZ": 0.3}
		]
	}]`)

	readings, err := ParseMetadataDocument(doc)

	assert.NoError(t, err)
	assert.Len(t, readings, 2)
	assert.Equal(t, readings[0], readings[1])
}

func TestParseMetadataDocumentInvalidJSON(t *testing.T) {
	_, err := ParseMetadataDocument([]byte("{not json"))
	assert.Error(t, err)
}

func TestParseMetadataDocumentEmptyList(t *testing.T) {
	readings, err := ParseMetadataDocument([]byte("[]"))
	assert.NoError(t, err)
	assert.Empty(t, readings)
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
		ok    bool
	}{
		{"float64", 1.5, 1.5, true},
		{"string", "2.5", 2.5, true},
		{"padded string", " 3.5 ", 3.5, true},
		{"bad string", "zoom", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toFloat(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
