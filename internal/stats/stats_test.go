package stats

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeWAV writes a minimal PCM WAV file with the given duration in seconds.
func writeWAV(t *testing.T, path string, seconds float64) {
	t.Helper()
	const sampleRate = 8000
	numSamples := int(seconds * sampleRate)
	dataSize := uint32(numSamples * 2)

	h := wavHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   1,
		SampleRate:    sampleRate,
		ByteRate:      sampleRate * 2,
		BlockAlign:    2,
		BitsPerSample: 16,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, h))
	buf.Write(make([]byte, dataSize))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func writeDataDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestWavDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wav")
	writeWAV(t, path, 2.5)

	dur, err := wavDuration(path)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, dur, 1e-3)
}

func TestWavDuration_NotWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wav")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a wav file, padded to 44+ bytes....."), 0o644))
	_, err := wavDuration(path)
	assert.Error(t, err)
}

func TestLoad_Reco2DurWins(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		"wav.scp":  "m1 /nonexistent/m1.wav\n",
		"reco2dur": "m1 120.5\n",
		"spk2utt":  "spkA u1 u2\n",
	})

	ds, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, ds.Recordings, 1)
	assert.Len(t, ds.Speakers, 1)
	assert.Len(t, ds.Utterances, 2)
	assert.InDelta(t, 120.5, ds.Durations["m1"], 1e-9)
}

func TestLoad_WavHeaderFallback(t *testing.T) {
	dir := t.TempDir()
	wavPath := filepath.Join(dir, "m1.wav")
	writeWAV(t, wavPath, 3.0)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wav.scp"), []byte("m1 "+wavPath+"\n"), 0o644))

	ds, err := Load(dir)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, ds.Durations["m1"], 1e-3)
}

func TestLoad_SegmentsFallback(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		// Pipeline entry: header probe impossible, max segment end wins.
		"wav.scp":  "m1 sox /corpus/m1.sph -t wav - |\n",
		"segments": "u1 m1 0.0 10.0\nu2 m1 5.0 42.5\n",
	})

	ds, err := Load(dir)
	require.NoError(t, err)
	assert.InDelta(t, 42.5, ds.Durations["m1"], 1e-9)
}

func TestLoad_MissingTablesTolerated(t *testing.T) {
	ds, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, ds.Recordings)
	assert.Zero(t, ds.TotalSeconds())
}

func TestLoad_MissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	train := &Dataset{
		Recordings: map[string]struct{}{"m1": {}, "m2": {}},
		Speakers:   map[string]struct{}{"a": {}, "b": {}},
		Utterances: map[string]struct{}{"u1": {}},
		Durations:  map[string]float64{"m1": 3600, "m2": 1800},
	}
	eval := &Dataset{
		Recordings: map[string]struct{}{"m2": {}, "m3": {}},
		Speakers:   map[string]struct{}{"c": {}},
		Utterances: map[string]struct{}{"u2": {}},
		Durations:  map[string]float64{"m3": 900},
	}

	c := Compare(train, eval)
	assert.Equal(t, 2, c.TrainRecordings)
	assert.Equal(t, []string{"m2"}, c.SharedRecordings)
	assert.Empty(t, c.SharedSpeakers)
	assert.False(t, c.SpeakerLeakage())
	assert.InDelta(t, 5400.0, c.TrainSeconds, 1e-9)
	assert.InDelta(t, 900.0, c.EvalSeconds, 1e-9)
}

func TestCompare_SpeakerLeakage(t *testing.T) {
	train := &Dataset{Speakers: map[string]struct{}{"a": {}, "b": {}}}
	eval := &Dataset{Speakers: map[string]struct{}{"b": {}}}

	c := Compare(train, eval)
	assert.True(t, c.SpeakerLeakage())
	assert.Equal(t, []string{"b"}, c.SharedSpeakers)
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "1.50 h", FormatHours(5400))
	assert.Equal(t, "0.00 h", FormatHours(0))
}
