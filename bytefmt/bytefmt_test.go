package bytefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0B", FormatBytes(0))
	assert.Equal(t, "512B", FormatBytes(512))
	assert.Equal(t, "1KiB", FormatBytes(KiB))
	assert.Equal(t, "1.5KiB", FormatBytes(KiB+512))
	assert.Equal(t, "1MiB", FormatBytes(MiB))
	assert.Equal(t, "2.25GiB", FormatBytes(2*GiB+256*MiB))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "1MiB/s", FormatRate(MiB, time.Second))
	assert.Equal(t, "512KiB/s", FormatRate(MiB, 2*time.Second))
	assert.Equal(t, "0B/s", FormatRate(MiB, 0))
}
