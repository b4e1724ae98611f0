package core

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"fmt"
	"os"
	"time"

	"github.com/veerlabs/veer/internal/contract"
	"github.com/veerlabs/veer/schema"
)

// readingsCacheVersion invalidates cached blobs when the encoding or the
// reading shape changes.
const readingsCacheVersion = 1

// cachedExtraction is the gob payload stored per video.
type cachedExtraction struct {
	Readings []schema.SensorReading
	Strategy schema.ExtractionStrategy
}

// readingsCacheKey derives a stable cache key from the sensor file's
// identity. Size and mtime are part of the key so a re-recorded or
// re-transferred file never hits a stale entry.
func readingsCacheKey(sensorPath string) (string, error) {
	info, err := os.Stat(sensorPath)
	if err != nil {
		return "", fmt.Errorf("cannot stat %q for cache key: %w", sensorPath, err)
	}
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%d|%d", sensorPath, info.Size(), info.ModTime().UnixNano()))
	return fmt.Sprintf("readings:%x", sum), nil
}

// encodeReadings serializes an extraction result for cache storage.
func encodeReadings(out schema.ExtractionOutput) ([]byte, error) {
	var buf bytes.Buffer
	payload := cachedExtraction{Readings: out.Readings, Strategy: out.Strategy}
	if err := gob.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("failed to encode readings for cache: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeReadings deserializes a cached extraction result.
func decodeReadings(blob []byte) (schema.ExtractionOutput, error) {
	var payload cachedExtraction
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&payload); err != nil {
		return schema.ExtractionOutput{}, fmt.Errorf("failed to decode cached readings: %w", err)
	}
	return schema.ExtractionOutput{Readings: payload.Readings, Strategy: payload.Strategy}, nil
}

// loadCachedReadings returns a previously cached extraction for the
// sensor file, if one exists. Cache trouble is never fatal; the caller
// falls back to a fresh extraction.
func loadCachedReadings(mgr contract.CacheManager, sensorPath string) (schema.ExtractionOutput, bool) {
	if mgr == nil {
		return schema.ExtractionOutput{}, false
	}
	store := mgr.GetReadingsStore()
	if store == nil {
		return schema.ExtractionOutput{}, false
	}

	key, err := readingsCacheKey(sensorPath)
	if err != nil {
		return schema.ExtractionOutput{}, false
	}
	blob, version, _, err := store.Get(key)
	if err != nil || blob == nil {
		return schema.ExtractionOutput{}, false
	}
	if version != readingsCacheVersion {
		return schema.ExtractionOutput{}, false
	}
	out, err := decodeReadings(blob)
	if err != nil {
		contract.LogWarn("Ignoring corrupt cache entry", err)
		return schema.ExtractionOutput{}, false
	}
	return out, len(out.Readings) > 0
}

// storeCachedReadings persists an extraction result for later runs.
func storeCachedReadings(mgr contract.CacheManager, sensorPath string, out schema.ExtractionOutput) {
	if mgr == nil {
		return
	}
	store := mgr.GetReadingsStore()
	if store == nil {
		return
	}

	key, err := readingsCacheKey(sensorPath)
	if err != nil {
		return
	}
	blob, err := encodeReadings(out)
	if err != nil {
		contract.LogWarn("Could not encode readings for cache", err)
		return
	}
	if err := store.Set(key, blob, readingsCacheVersion, time.Now().Unix()); err != nil {
		contract.LogWarn("Could not store readings in cache", err)
	}
}
