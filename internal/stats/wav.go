package stats

import (
	"encoding/binary"
	"fmt"
	"os"
)

// wavHeader is the canonical 44-byte RIFF/WAVE header layout.
type wavHeader struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32
}

// wavDuration reads a WAV file's header and returns its play time in
// seconds. Only plain PCM files with the canonical header layout are
// supported; anything else is an error and the caller falls back to other
// duration sources.
func wavDuration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	var h wavHeader
	if err := binary.Read(f, binary.LittleEndian, &h); err != nil {
		return 0, fmt.Errorf("read wav header: %w", err)
	}
	if string(h.ChunkID[:]) != "RIFF" || string(h.Format[:]) != "WAVE" {
		return 0, fmt.Errorf("%s: not a RIFF/WAVE file", path)
	}
	if string(h.Subchunk1ID[:]) != "fmt " || string(h.Subchunk2ID[:]) != "data" {
		return 0, fmt.Errorf("%s: non-canonical chunk layout", path)
	}
	if h.ByteRate == 0 {
		return 0, fmt.Errorf("%s: zero byte rate", path)
	}
	return float64(h.Subchunk2Size) / float64(h.ByteRate), nil
}
