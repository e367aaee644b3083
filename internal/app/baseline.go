package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/prateek-arvo/sonar/pkg/fingerprint"
)

// BaselineFile is the on-disk form of a stored baseline. Persistence
// lives here in the application layer; the pipeline itself only ever
// sees the in-memory store.
type BaselineFile struct {
	SavedAt          time.Time `yaml:"saved_at"`
	FingerprintID    string    `yaml:"fingerprint_id"`
	SampleRate       int       `yaml:"sample_rate"`
	SegmentCount     int       `yaml:"segment_count"`
	BandCount        int       `yaml:"band_count"`
	FeatureFamily    string    `yaml:"feature_family"`
	EnvelopeFeatures bool      `yaml:"envelope_features"`
	Features         []float64 `yaml:"features"`
}

// SaveBaselineFile writes a fingerprint to the baseline file, replacing
// any previous baseline
func SaveBaselineFile(path string, fp *fingerprint.Fingerprint) error {
	file := &BaselineFile{
		SavedAt:          time.Now(),
		FingerprintID:    fp.ID,
		SampleRate:       fp.SampleRate,
		SegmentCount:     fp.SegmentCount,
		BandCount:        fp.BandCount,
		FeatureFamily:    string(fp.FeatureFamily),
		EnvelopeFeatures: len(fp.Features) == (fp.SegmentCount-1)*fp.BandCount+3,
		Features:         fp.Features,
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal baseline: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create baseline directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write baseline file: %w", err)
	}

	return nil
}

// LoadBaselineFile reads a persisted baseline. A missing file is the
// normal no-baseline case, not an error.
func LoadBaselineFile(path string) (*BaselineFile, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read baseline file: %w", err)
	}

	file := &BaselineFile{}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, false, fmt.Errorf("failed to parse baseline file: %w", err)
	}

	if len(file.Features) == 0 {
		return nil, false, fmt.Errorf("baseline file %s holds no feature vector", path)
	}

	return file, true, nil
}

// DefaultBaselinePath returns the baseline location inside the data dir
func DefaultBaselinePath(dataDir string) string {
	return filepath.Join(dataDir, "baseline.yaml")
}
