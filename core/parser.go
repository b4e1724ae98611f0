package core

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/veerlabs/veer/schema"
)

// Known top-level metadata fields that may hold IMU data, checked in order.
// First match wins.
var knownSensorFields = []string{
	"AccelerometerData", "GyroscopeData", "SensorData",
	"CameraMotionMetadata", "MotionData", "IMUData",
}

// Alias spellings per axis accepted by the field-alias fallback.
var (
	accelXAliases = []string{"AccelX", "accel_x", "ax", "AccelerationX"}
	accelYAliases = []string{"AccelY", "accel_y", "ay", "AccelerationY"}
	accelZAliases = []string{"AccelZ", "accel_z", "az", "AccelerationZ"}
	gyroXAliases  = []string{"GyroX", "gyro_x", "gx", "AngularVelocityX"}
	gyroYAliases  = []string{"GyroY", "gyro_y", "gy", "AngularVelocityY"}
	gyroZAliases  = []string{"GyroZ", "gyro_z", "gz", "AngularVelocityZ"}
	timeAliases   = []string{"timestamp", "time", "Timestamp", "Time"}
)

// assumedSampleInterval is used by the alias-scan fallback when a reading
// list carries no timestamp field. The 100 Hz rate is a guess inherited
// from the camera vendor's tooling and has never been validated against
// real sensor rates.
const assumedSampleInterval = 0.01

// docKeyPrefix marks vendor document entries in grouped JSON output.
const docKeyPrefix = "Doc"

// pendingReading accumulates the three fields of one sensor record as
// they stream past in plain-text output. Each slot stays unset until its
// line parses cleanly; a reading is emitted only when all three slots are
// simultaneously populated, then every slot resets. Keeping the slots in
// one holder prevents a stale value from a previous incomplete group
// leaking into the next record.
type pendingReading struct {
	timecode *float64
	accel    *[3]float64
	gyro     *[3]float64
}

// complete reports whether all three slots are populated.
func (p *pendingReading) complete() bool {
	return p.timecode != nil && p.accel != nil && p.gyro != nil
}

// emit materializes the reading and resets all slots.
func (p *pendingReading) emit() schema.SensorReading {
	r := schema.SensorReading{
		Timestamp: *p.timecode,
		AccelX:    p.accel[0],
		AccelY:    p.accel[1],
		AccelZ:    p.accel[2],
		GyroX:     p.gyro[0],
		GyroY:     p.gyro[1],
		GyroZ:     p.gyro[2],
	}
	p.timecode = nil
	p.accel = nil
	p.gyro = nil
	return r
}

// ParseRawSensorStream parses IMU readings out of the plain-text metadata
// stream produced for proprietary raw containers. Time codes arrive in
// milliseconds and are converted to seconds. Malformed numeric fields
// leave the corresponding slot unset rather than aborting the parse.
func ParseRawSensorStream(raw []byte) []schema.SensorReading {
	var readings []schema.SensorReading
	var pending pendingReading

	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "Time Code"):
			if value, ok := lineValue(line); ok {
				if tc, err := strconv.ParseFloat(value, 64); err == nil {
					t := tc / 1000.0
					pending.timecode = &t
				}
			}
		case strings.HasPrefix(line, "Accelerometer"):
			if value, ok := lineValue(line); ok {
				if triple, ok := parseTriple(value); ok {
					pending.accel = &triple
				}
			}
		case strings.HasPrefix(line, "Angular Velocity"):
			if value, ok := lineValue(line); ok {
				if triple, ok := parseTriple(value); ok {
					pending.gyro = &triple
				}
			}
		}

		if pending.complete() {
			readings = append(readings, pending.emit())
		}
	}
	return readings
}

// lineValue splits a "Tag Name : value" metadata line and returns the
// trimmed value part.
func lineValue(line string) (string, bool) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) < 2 {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// parseTriple parses a space-separated "x y z" float triple.
func parseTriple(s string) ([3]float64, bool) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return [3]float64{}, false
	}
	var triple [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return [3]float64{}, false
		}
		triple[i] = v
	}
	return triple, true
}

// ParseMetadataDocument decodes the grouped JSON document emitted by the
// metadata tool and extracts whatever IMU readings it can find. The tool
// wraps results in a list with one element per input file.
func ParseMetadataDocument(data []byte) ([]schema.SensorReading, error) {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode metadata JSON: %w", err)
	}
	if list, ok := decoded.([]any); ok {
		if len(list) == 0 {
			return nil, nil
		}
		decoded = list[0]
	}
	meta, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected metadata document shape %T", decoded)
	}
	return parseMetadataObject(meta), nil
}

// parseMetadataObject searches a metadata object for IMU data using the
// three lookup passes described for grouped output: known field names,
// vendor document entries, then a case-insensitive alias scan.
func parseMetadataObject(meta map[string]any) []schema.SensorReading {
	var readings []schema.SensorReading

	for _, field := range knownSensorFields {
		if value, ok := meta[field]; ok {
			readings = append(readings, extractReadings(value)...)
			break
		}
	}

	// Vendor document entries (Doc1, Doc2, ...) each hold one reading as
	// "x y z" string triples plus a millisecond time code.
	for _, key := range sortedDocKeys(meta) {
		entry, ok := meta[key].(map[string]any)
		if !ok {
			continue
		}
		if _, hasAccel := entry["Accelerometer"]; !hasAccel {
			continue
		}
		if _, hasGyro := entry["AngularVelocity"]; !hasGyro {
			continue
		}
		if r, ok := parseDocEntry(entry); ok {
			readings = append(readings, r)
		}
	}

	for _, key := range sortedKeys(meta) {
		lower := strings.ToLower(key)
		if !strings.Contains(lower, "accel") && !strings.Contains(lower, "gyro") && !strings.Contains(lower, "imu") {
			continue
		}
		switch meta[key].(type) {
		case []any, map[string]any:
			readings = append(readings, extractReadings(meta[key])...)
		}
	}

	return readings
}

// parseDocEntry extracts one reading from a vendor document entry.
// Either triple failing to parse drops the whole entry.
func parseDocEntry(entry map[string]any) (schema.SensorReading, bool) {
	timecode, _ := toFloat(entry["TimeCode"])

	accelStr, _ := entry["Accelerometer"].(string)
	accel, ok := parseTriple(accelStr)
	if !ok {
		return schema.SensorReading{}, false
	}
	gyroStr, _ := entry["AngularVelocity"].(string)
	gyro, ok := parseTriple(gyroStr)
	if !ok {
		return schema.SensorReading{}, false
	}

	return schema.SensorReading{
		Timestamp: timecode / 1000.0,
		AccelX:    accel[0],
		AccelY:    accel[1],
		AccelZ:    accel[2],
		GyroX:     gyro[0],
		GyroY:     gyro[1],
		GyroZ:     gyro[2],
	}, true
}

// extractReadings walks a list or single object of per-sample fields.
// List elements without an explicit timestamp are spaced at the assumed
// fixed sampling rate; a lone object lands at t=0.
func extractReadings(value any) []schema.SensorReading {
	var readings []schema.SensorReading
	switch v := value.(type) {
	case []any:
		for i, item := range v {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if r, ok := parseAliasedReading(entry, float64(i)*assumedSampleInterval); ok {
				readings = append(readings, r)
			}
		}
	case map[string]any:
		if r, ok := parseAliasedReading(v, 0.0); ok {
			readings = append(readings, r)
		}
	}
	return readings
}

// parseAliasedReading extracts one reading from a per-sample object,
// accepting multiple alias spellings per axis. All three accelerometer
// axes must be present; gyroscope axes default to zero.
func parseAliasedReading(entry map[string]any, fallbackTS float64) (schema.SensorReading, bool) {
	ax, okX := findFloat(entry, accelXAliases)
	ay, okY := findFloat(entry, accelYAliases)
	az, okZ := findFloat(entry, accelZAliases)
	if !okX || !okY || !okZ {
		return schema.SensorReading{}, false
	}

	gx, _ := findFloat(entry, gyroXAliases)
	gy, _ := findFloat(entry, gyroYAliases)
	gz, _ := findFloat(entry, gyroZAliases)

	ts := fallbackTS
	if explicit, ok := findFloat(entry, timeAliases); ok {
		ts = explicit
	}

	return schema.SensorReading{
		Timestamp: ts,
		AccelX:    ax,
		AccelY:    ay,
		AccelZ:    az,
		GyroX:     gx,
		GyroY:     gy,
		GyroZ:     gz,
	}, true
}

// findFloat looks up a numeric value under any of the given key names.
func findFloat(entry map[string]any, keys []string) (float64, bool) {
	for _, key := range keys {
		if value, ok := entry[key]; ok {
			return toFloat(value)
		}
	}
	return 0, false
}

// toFloat coerces JSON scalar shapes to float64. The metadata tool emits
// numbers as strings for some tag groups.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// sortedDocKeys returns vendor document keys in numeric order. Go map
// iteration is randomized, so without this the reading order would change
// from run to run.
func sortedDocKeys(meta map[string]any) []string {
	var keys []string
	for key := range meta {
		if strings.HasPrefix(key, docKeyPrefix) {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, iOK := docKeyNumber(keys[i])
		nj, jOK := docKeyNumber(keys[j])
		if iOK && jOK && ni != nj {
			return ni < nj
		}
		return keys[i] < keys[j]
	})
	return keys
}

// docKeyNumber parses the numeric suffix of a document key like "Doc12".
func docKeyNumber(key string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(key, docKeyPrefix))
	if err != nil {
		return 0, false
	}
	return n, true
}

// sortedKeys returns all keys of the metadata object in stable order.
func sortedKeys(meta map[string]any) []string {
	keys := make([]string, 0, len(meta))
	for key := range meta {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
