package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/veerlabs/veer/schema"
)

func TestEncodeDecodeReadings(t *testing.T) {
	out := schema.ExtractionOutput{
		Readings: []schema.SensorReading{
			{Timestamp: 1.5, AccelX: 0.1, AccelY: 0.2, AccelZ: 0.3, GyroX: 0.4, GyroY: 0.5, GyroZ: 0.6},
			{Timestamp: 2.5, AccelX: 1.1, AccelY: 1.2, AccelZ: 1.3},
		},
		Strategy: schema.RawStrategy,
	}

	blob, err := encodeReadings(out)
	assert.NoError(t, err)
	assert.NotEmpty(t, blob)

	decoded, err := decodeReadings(blob)
	assert.NoError(t, err)
	assert.Equal(t, out, decoded)
}

func TestDecodeReadingsCorruptBlob(t *testing.T) {
	_, err := decodeReadings([]byte("this is not gob"))
	assert.Error(t, err)
}

func TestReadingsCacheKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.insv")
	assert.NoError(t, os.WriteFile(path, []byte("payload"), 0o644))

	key1, err := readingsCacheKey(path)
	assert.NoError(t, err)
	assert.Contains(t, key1, "readings:")

	// Same file identity yields the same key
	key2, err := readingsCacheKey(path)
	assert.NoError(t, err)
	assert.Equal(t, key1, key2)

	// Changing content size changes the key
	assert.NoError(t, os.WriteFile(path, []byte("different payload"), 0o644))
	future := time.Now().Add(time.Second)
	assert.NoError(t, os.Chtimes(path, future, future))
	key3, err := readingsCacheKey(path)
	assert.NoError(t, err)
	assert.NotEqual(t, key1, key3)
}

func TestReadingsCacheKeyMissingFile(t *testing.T) {
	_, err := readingsCacheKey(filepath.Join(t.TempDir(), "nope.insv"))
	assert.Error(t, err)
}
