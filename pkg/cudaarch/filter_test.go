package cudaarch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterMinArch(t *testing.T) {
	supported := []string{"70", "75", "80", "86", "90", "90a"}

	tests := []struct {
		name     string
		minArch  int
		expected []string
	}{
		{name: "disabled with zero", minArch: 0, expected: supported},
		{name: "disabled with negative", minArch: -10, expected: supported},
		{name: "inclusive threshold", minArch: 80, expected: []string{"80", "86", "90", "90a"}},
		{name: "suffix follows numeric version", minArch: 90, expected: []string{"90", "90a"}},
		{name: "everything filtered", minArch: 100, expected: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FilterMinArch(supported, tt.minArch))
		})
	}
}

func TestFilterMinArchIdempotent(t *testing.T) {
	archs := []string{"50", "60", "61", "70", "72", "75", "80", "86", "87", "89", "90", "90a", "100", "100a"}
	for _, minArch := range []int{0, 1, 61, 75, 90, 200} {
		once := FilterMinArch(archs, minArch)
		assert.Equal(t, once, FilterMinArch(once, minArch), "min arch %d", minArch)
	}
}

func TestFilterMinArchDoesNotAlias(t *testing.T) {
	archs := []string{"75", "80"}
	out := FilterMinArch(archs, 0)
	out[0] = "changed"
	assert.Equal(t, "75", archs[0])
}

func TestIsDesktopPlatform(t *testing.T) {
	assert.True(t, IsDesktopPlatform("x86_64"))
	assert.True(t, IsDesktopPlatform("AMD64"))
	assert.False(t, IsDesktopPlatform("aarch64"))
	assert.False(t, IsDesktopPlatform("arm64"))
	assert.False(t, IsDesktopPlatform(""))
}

func TestFilterForPlatform(t *testing.T) {
	archs := []string{"70", "72", "75", "80", "86", "87", "90", "100", "101", "101a", "120"}

	t.Run("x86_64 removes iGPUs", func(t *testing.T) {
		assert.Equal(t,
			[]string{"70", "75", "80", "86", "90", "100", "120"},
			FilterForPlatform(archs, "x86_64"),
		)
	})

	t.Run("amd64 removes iGPUs", func(t *testing.T) {
		assert.Equal(t,
			[]string{"70", "75", "80", "86", "90", "100", "120"},
			FilterForPlatform(archs, "amd64"),
		)
	})

	for _, platform := range []string{"aarch64", "arm64", "ppc64le", ""} {
		t.Run(platform+" is identity", func(t *testing.T) {
			assert.Equal(t, archs, FilterForPlatform(archs, platform))
		})
	}
}

func TestFilterMajor(t *testing.T) {
	out := FilterMajor([]string{"70", "75", "80", "86", "90", "90a", "100", "100a", "101", "120", "a0"})
	assert.Equal(t, []string{"70", "80", "90", "100", "120"}, out)
	for _, a := range out {
		assert.True(t, IsMajorArch(a), a)
	}
	assert.Equal(t, []string{}, FilterMajor(nil))
}
