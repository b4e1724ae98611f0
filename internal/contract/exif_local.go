package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// LocalExifClient implements the MetadataClient interface by executing
// the local 'exiftool' binary installed on the machine.
type LocalExifClient struct{}

var _ MetadataClient = &LocalExifClient{} // Compile-time check

// NewLocalExifClient creates a new instance of the local exiftool client.
func NewLocalExifClient() *LocalExifClient {
	return &LocalExifClient{}
}

// Run executes an exiftool command and returns its stdout output.
func (c *LocalExifClient) Run(_ context.Context, args ...string) ([]byte, error) {
	cmd := exec.Command("exiftool", args...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("exiftool failed: %s", stderr)
	} else if err != nil {
		return nil, fmt.Errorf("exiftool failed: %w. Ensure exiftool is installed and available on your PATH", err)
	}
	return out, nil
}

// ExtractRaw implements the MetadataClient interface. The flag set asks
// for embedded streams, duplicate tags and unknown tags, grouped by
// family 1 so sensor records surface as repeated plain-text lines.
func (c *LocalExifClient) ExtractRaw(ctx context.Context, videoPath string) ([]byte, error) {
	args := []string{
		"-ee",
		"-api", "largefilesupport=1",
		"-api", "RequestAll=3",
		"-a",
		"-u",
		"-g1",
		videoPath,
	}
	return c.Run(ctx, args...)
}

// ExtractJSON implements the MetadataClient interface. MaxDataLen=0
// removes the tool's data length limit so large sensor blobs are not
// silently truncated mid-record.
func (c *LocalExifClient) ExtractJSON(ctx context.Context, videoPath string) ([]byte, error) {
	args := []string{
		"-ee3",
		"-api", "largefilesupport=1",
		"-api", "RequestAll=3",
		"-api", "MaxDataLen=0",
		"-a",
		"-u",
		"-g3",
		"-j",
		videoPath,
	}
	return c.Run(ctx, args...)
}

// LocalFFProbeClient implements the MediaProber interface by executing
// the local 'ffprobe' binary installed on the machine.
type LocalFFProbeClient struct{}

var _ MediaProber = &LocalFFProbeClient{} // Compile-time check

// NewLocalFFProbeClient creates a new instance of the local ffprobe client.
func NewLocalFFProbeClient() *LocalFFProbeClient {
	return &LocalFFProbeClient{}
}

// Duration implements the MediaProber interface.
func (c *LocalFFProbeClient) Duration(_ context.Context, videoPath string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoPath,
	}
	cmd := exec.Command("ffprobe", args...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return 0, fmt.Errorf("ffprobe failed for %q: %s", videoPath, stderr)
	} else if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w. Ensure ffprobe is installed and available on your PATH", err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe returned a non-numeric duration %q: %w", strings.TrimSpace(string(out)), err)
	}
	return duration, nil
}
