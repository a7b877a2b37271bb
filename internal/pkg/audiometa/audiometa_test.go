package audiometa

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	pkgerrors "github.com/voclab/voclab-backend/internal/pkg/errors"
)

// wavBytes builds a minimal 16-bit mono PCM file with the given number of
// sample frames.
func wavBytes(t *testing.T, sampleRate uint32, frames int) []byte {
	t.Helper()

	dataSize := uint32(frames * 2)
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, sampleRate)
	binary.Write(&buf, binary.LittleEndian, sampleRate*2) // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(2))    // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16))   // bit depth
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataSize)
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}

func TestDetectValidWav(t *testing.T) {
	if !Detect(wavBytes(t, 44100, 44100)) {
		t.Fatal("Detect: valid wav reported as non-audio")
	}
}

func TestDetectNonAudio(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		[]byte("plain text, definitely not audio"),
		{0x00, 0x01, 0x02, 0x03},
	}
	for _, in := range inputs {
		if Detect(in) {
			t.Fatalf("Detect: %q reported as audio", in)
		}
	}
}

func TestProbeDurationOneSecond(t *testing.T) {
	info, err := Probe(wavBytes(t, 44100, 44100))
	if err != nil {
		t.Fatalf("Probe: err=%v", err)
	}
	if info.DurationSeconds != 1 {
		t.Fatalf("Probe duration: want 1 got %d", info.DurationSeconds)
	}
	if info.Format != FormatWAV {
		t.Fatalf("Probe format: want %s got %s", FormatWAV, info.Format)
	}
	if info.SampleRate != 44100 {
		t.Fatalf("Probe sample rate: want 44100 got %d", info.SampleRate)
	}
	if info.Channels != 1 {
		t.Fatalf("Probe channels: want 1 got %d", info.Channels)
	}
}

func TestProbeFloorsDuration(t *testing.T) {
	// One and a half seconds floors to 1.
	info, err := Probe(wavBytes(t, 44100, 66150))
	if err != nil {
		t.Fatalf("Probe: err=%v", err)
	}
	if info.DurationSeconds != 1 {
		t.Fatalf("Probe duration: want 1 got %d", info.DurationSeconds)
	}
}

func TestProbeNonAudio(t *testing.T) {
	_, err := Probe([]byte("still not audio"))
	if !errors.Is(err, pkgerrors.ErrUnreadableAudio) {
		t.Fatalf("Probe: want ErrUnreadableAudio got %v", err)
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"song.WAV", "WAV", false},
		{"song.wav", "WAV", false},
		{"dir.name/song.mp3", "MP3", false},
		{"noext", "", true},
		{"", "", true},
		{"trailingdot.", "", true},
	}
	for _, tt := range tests {
		got, err := Extension(tt.name)
		if tt.wantErr {
			if !errors.Is(err, pkgerrors.ErrInvalidInput) {
				t.Fatalf("Extension(%q): want ErrInvalidInput got %v", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Extension(%q): err=%v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("Extension(%q): want %q got %q", tt.name, tt.want, got)
		}
	}
}
