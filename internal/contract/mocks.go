package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockMetadataClient is a mock type for the MetadataClient type.
type MockMetadataClient struct {
	mock.Mock
}

var _ MetadataClient = &MockMetadataClient{} // Compile-time check

// Run implements the MetadataClient interface.
func (m *MockMetadataClient) Run(ctx context.Context, args ...string) ([]byte, error) {
	var mockArgs []interface{}
	mockArgs = append(mockArgs, ctx)
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// ExtractRaw implements the MetadataClient interface.
func (m *MockMetadataClient) ExtractRaw(ctx context.Context, videoPath string) ([]byte, error) {
	ret := m.Called(ctx, videoPath)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// ExtractJSON implements the MetadataClient interface.
func (m *MockMetadataClient) ExtractJSON(ctx context.Context, videoPath string) ([]byte, error) {
	ret := m.Called(ctx, videoPath)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// MockMediaProber is a mock type for the MediaProber type.
type MockMediaProber struct {
	mock.Mock
}

var _ MediaProber = &MockMediaProber{} // Compile-time check

// Duration implements the MediaProber interface.
func (m *MockMediaProber) Duration(ctx context.Context, videoPath string) (float64, error) {
	ret := m.Called(ctx, videoPath)
	d, _ := ret.Get(0).(float64)
	return d, ret.Error(1)
}
