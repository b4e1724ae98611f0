package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veerlabs/veer/internal/contract"
	"github.com/veerlabs/veer/schema"
)

var rawStream = []byte(`
Time Code                       : 1000
Accelerometer                   : 0.1 0.2 0.3
Angular Velocity                : 0.4 0.5 0.6
`)

var groupedDoc = []byte(`[{
	"Doc1": {"TimeCode": "1000", "Accelerometer": "0.1 0.2 0.3", "AngularVelocity": "0.4 0.5 0.6"}
}]`)

func TestExtractRawContainerUsesComprehensive(t *testing.T) {
	ctx := context.Background()

	mockClient := &contract.MockMetadataClient{}
	mockClient.On("ExtractRaw", ctx, "clip.insv").Return(rawStream, nil)

	extractor := NewExtractor(mockClient, "clip.insv")

	assert.True(t, extractor.Extract(ctx))
	assert.Equal(t, schema.RawStrategy, extractor.Strategy())
	assert.Len(t, extractor.Readings(), 1)
	mockClient.AssertExpectations(t)
	mockClient.AssertNotCalled(t, "ExtractJSON", ctx, "clip.insv")
}

func TestExtractRawContainerFallsBackToGrouped(t *testing.T) {
	ctx := context.Background()

	// Raw parse yields nothing, so the grouped JSON strategy runs next
	mockClient := &contract.MockMetadataClient{}
	mockClient.On("ExtractRaw", ctx, "clip.insv").Return([]byte("Camera Model : test"), nil)
	mockClient.On("ExtractJSON", ctx, "clip.insv").Return(groupedDoc, nil)

	extractor := NewExtractor(mockClient, "clip.insv")

	assert.True(t, extractor.Extract(ctx))
	assert.Equal(t, schema.GroupedStrategy, extractor.Strategy())
	assert.Len(t, extractor.Readings(), 1)
	mockClient.AssertExpectations(t)
}

func TestExtractStandardContainerSkipsRaw(t *testing.T) {
	ctx := context.Background()

	mockClient := &contract.MockMetadataClient{}
	mockClient.On("ExtractJSON", ctx, "clip.mp4").Return(groupedDoc, nil)

	extractor := NewExtractor(mockClient, "clip.mp4")

	assert.True(t, extractor.Extract(ctx))
	assert.Equal(t, schema.GroupedStrategy, extractor.Strategy())
	mockClient.AssertExpectations(t)
	mockClient.AssertNotCalled(t, "ExtractRaw", ctx, "clip.mp4")
}

func TestExtractToolFailureReturnsFalse(t *testing.T) {
	ctx := context.Background()

	mockClient := &contract.MockMetadataClient{}
	mockClient.On("ExtractJSON", ctx, "clip.mp4").Return([]byte(nil), errors.New("exiftool: file not found"))

	extractor := NewExtractor(mockClient, "clip.mp4")

	assert.False(t, extractor.Extract(ctx))
	assert.Empty(t, extractor.Readings())
}

func TestExtractBadJSONReturnsFalse(t *testing.T) {
	ctx := context.Background()

	mockClient := &contract.MockMetadataClient{}
	mockClient.On("ExtractJSON", ctx, "clip.mp4").Return([]byte("{broken"), nil)

	extractor := NewExtractor(mockClient, "clip.mp4")

	assert.False(t, extractor.Extract(ctx))
}

func TestExtractNoIMUDataReturnsFalse(t *testing.T) {
	ctx := context.Background()

	mockClient := &contract.MockMetadataClient{}
	mockClient.On("ExtractJSON", ctx, "clip.mp4").Return([]byte(`[{"CameraModel": "X4"}]`), nil)

	extractor := NewExtractor(mockClient, "clip.mp4")

	assert.False(t, extractor.Extract(ctx))
}
