package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prateek-arvo/sonar/pkg/audio"
	"github.com/prateek-arvo/sonar/pkg/fingerprint"
)

func testSweep() *audio.SampleBuffer {
	return audio.LinearChirp(2000, 12000, time.Second, 48000)
}

func TestSessionCaptureLifecycle(t *testing.T) {
	sess, err := NewSession(fingerprint.DefaultConfig(), audio.StaticCapturer(testSweep()), nil)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, sess.State())

	fp, err := sess.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateCaptured, sess.State())
	assert.NotNil(t, fp)
	assert.Same(t, fp, sess.Fingerprint())
}

func TestSessionCompareWithoutBaseline(t *testing.T) {
	sess, err := NewSession(fingerprint.DefaultConfig(), audio.StaticCapturer(testSweep()), nil)
	require.NoError(t, err)

	_, err = sess.Capture(context.Background())
	require.NoError(t, err)

	// NoBaseline is a normal outcome, not an error
	result, err := sess.Compare()
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoBaseline, result.Outcome)
	assert.Nil(t, result.Result)
}

func TestSessionSaveAndMatch(t *testing.T) {
	sess, err := NewSession(fingerprint.DefaultConfig(), audio.StaticCapturer(testSweep()), nil)
	require.NoError(t, err)

	_, err = sess.Capture(context.Background())
	require.NoError(t, err)
	require.NoError(t, sess.SaveBaseline())
	assert.Equal(t, StateBaselineSaved, sess.State())

	// Re-capture the identical buffer and compare against the baseline
	_, err = sess.Capture(context.Background())
	require.NoError(t, err)

	result, err := sess.Compare()
	require.NoError(t, err)
	assert.Equal(t, OutcomeMatch, result.Outcome)
	require.NotNil(t, result.Result)
	assert.InDelta(t, 1.0, result.Result.Similarity, 1e-9)
}

func TestSessionNoMatchOnDifferentResponse(t *testing.T) {
	cfg := fingerprint.DefaultConfig()
	store := NewBaselineStore()

	first, err := NewSession(cfg, audio.StaticCapturer(testSweep()), store)
	require.NoError(t, err)
	_, err = first.Capture(context.Background())
	require.NoError(t, err)
	require.NoError(t, first.SaveBaseline())

	// A pure tone responds nothing like the swept label surface
	second, err := NewSession(cfg, audio.StaticCapturer(audio.Tone(3000, time.Second, 48000)), store)
	require.NoError(t, err)
	_, err = second.Capture(context.Background())
	require.NoError(t, err)

	result, err := second.Compare()
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoMatch, result.Outcome)
	require.NotNil(t, result.Result)
	assert.Less(t, result.Result.Similarity, cfg.MatchThreshold)
}

func TestSessionCaptureFailure(t *testing.T) {
	failing := audio.CaptureFunc(func(ctx context.Context) (*audio.SampleBuffer, error) {
		return nil, errors.New("microphone unavailable")
	})

	sess, err := NewSession(fingerprint.DefaultConfig(), failing, nil)
	require.NoError(t, err)

	_, err = sess.Capture(context.Background())
	require.Error(t, err)
	assert.True(t, fingerprint.IsCaptureFailure(err))
	assert.Equal(t, StateCaptureFailed, sess.State())
	assert.Nil(t, sess.Fingerprint())

	// Compare after a failed capture has nothing to score
	_, err = sess.Compare()
	assert.Error(t, err)
}

func TestSessionEmptyCaptureIsFailure(t *testing.T) {
	sess, err := NewSession(fingerprint.DefaultConfig(),
		audio.StaticCapturer(&audio.SampleBuffer{SampleRate: 48000}), nil)
	require.NoError(t, err)

	_, err = sess.Capture(context.Background())
	require.Error(t, err)
	assert.True(t, fingerprint.IsCaptureFailure(err))
}

func TestSessionRecoversAfterFailure(t *testing.T) {
	calls := 0
	flaky := audio.CaptureFunc(func(ctx context.Context) (*audio.SampleBuffer, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("excitation playback failed")
		}
		return testSweep(), nil
	})

	sess, err := NewSession(fingerprint.DefaultConfig(), flaky, nil)
	require.NoError(t, err)

	_, err = sess.Capture(context.Background())
	require.Error(t, err)

	fp, err := sess.Capture(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, fp)
	assert.Equal(t, StateCaptured, sess.State())
}

func TestSessionSaveWithoutCapture(t *testing.T) {
	sess, err := NewSession(fingerprint.DefaultConfig(), audio.StaticCapturer(testSweep()), nil)
	require.NoError(t, err)

	assert.Error(t, sess.SaveBaseline())
}

func TestBaselineStoreOverwriteAndClear(t *testing.T) {
	store := NewBaselineStore()

	_, ok := store.Load()
	assert.False(t, ok)

	store.Save([]float64{1, 2, 3})
	v, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2, 3}, v)

	// Save always overwrites the single slot
	store.Save([]float64{9})
	v, ok = store.Load()
	require.True(t, ok)
	assert.Equal(t, []float64{9}, v)

	store.Clear()
	_, ok = store.Load()
	assert.False(t, ok)
}

func TestBaselineStoreCopiesInput(t *testing.T) {
	store := NewBaselineStore()
	features := []float64{1, 2, 3}
	store.Save(features)

	features[0] = 99
	v, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, 1.0, v[0])
}

func TestSessionConfigMismatchPropagates(t *testing.T) {
	store := NewBaselineStore()
	// A baseline captured under a different configuration has a
	// different feature length
	store.Save(make([]float64, 53))

	sess, err := NewSession(fingerprint.DefaultConfig(), audio.StaticCapturer(testSweep()), store)
	require.NoError(t, err)

	_, err = sess.Capture(context.Background())
	require.NoError(t, err)

	_, err = sess.Compare()
	require.Error(t, err)
	assert.True(t, fingerprint.IsConfigMismatch(err))
}
