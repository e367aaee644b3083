package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prateek-arvo/sonar/pkg/audio"
	"github.com/prateek-arvo/sonar/pkg/fingerprint"
)

func captureSweepFingerprint(t *testing.T) *fingerprint.Fingerprint {
	t.Helper()

	gen, err := fingerprint.NewGenerator(fingerprint.DefaultConfig())
	require.NoError(t, err)

	fp, err := gen.Generate(audio.LinearChirp(2000, 12000, time.Second, 48000))
	require.NoError(t, err)
	return fp
}

func TestBaselineFileRoundTrip(t *testing.T) {
	fp := captureSweepFingerprint(t)
	path := filepath.Join(t.TempDir(), "baselines", "baseline.yaml")

	require.NoError(t, SaveBaselineFile(path, fp))

	loaded, found, err := LoadBaselineFile(path)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, fp.ID, loaded.FingerprintID)
	assert.Equal(t, fp.SampleRate, loaded.SampleRate)
	assert.Equal(t, fp.SegmentCount, loaded.SegmentCount)
	assert.Equal(t, fp.BandCount, loaded.BandCount)
	assert.Equal(t, string(fp.FeatureFamily), loaded.FeatureFamily)
	require.Len(t, loaded.Features, len(fp.Features))
	for i := range fp.Features {
		assert.InDelta(t, fp.Features[i], loaded.Features[i], 1e-9, "feature %d", i)
	}
}

func TestBaselineFileOverwrite(t *testing.T) {
	fp := captureSweepFingerprint(t)
	path := filepath.Join(t.TempDir(), "baseline.yaml")

	require.NoError(t, SaveBaselineFile(path, fp))

	gen, err := fingerprint.NewGenerator(fingerprint.DefaultConfig())
	require.NoError(t, err)
	other, err := gen.Generate(audio.Tone(5000, time.Second, 48000))
	require.NoError(t, err)

	require.NoError(t, SaveBaselineFile(path, other))

	loaded, found, err := LoadBaselineFile(path)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, other.ID, loaded.FingerprintID)
}

func TestLoadBaselineFileMissingIsNotAnError(t *testing.T) {
	loaded, found, err := LoadBaselineFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, loaded)
}

func TestLoadBaselineFileRejectsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("::: not yaml :::"), 0644))

	_, _, err := LoadBaselineFile(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("features: []\n"), 0644))
	_, _, err = LoadBaselineFile(path)
	assert.Error(t, err)
}

func TestDefaultBaselinePath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "baseline.yaml"), DefaultBaselinePath("data"))
}
