package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCliParams(t *testing.T) {
	got := NewCliParams()
	want := &Run{
		MinLogLevel: 0,
		Input:       InputSettings{AssetName: "asset"},
		ExitOnError: true,
	}
	assert.Equal(t, want, got)
}

func TestVersionInformationDefaults(t *testing.T) {
	assert.Equal(t, "unknown", VersionInformation.Commit)
	assert.NotEmpty(t, VersionInformation.BuildVersion)
}
