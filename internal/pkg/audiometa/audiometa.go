// Package audiometa sniffs uploaded byte streams for decodable audio and
// extracts the container metadata the asset records carry.
package audiometa

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"

	pkgerrors "github.com/voclab/voclab-backend/internal/pkg/errors"
)

type Format string

const (
	FormatWAV Format = "WAV"
	FormatMP3 Format = "MP3"
)

// Info describes a successfully probed audio stream. DurationSeconds is
// floor(frames / frame rate).
type Info struct {
	Format          Format `json:"format"`
	DurationSeconds int64  `json:"duration_seconds"`
	SampleRate      int    `json:"sample_rate"`
	Channels        int    `json:"channels"`
}

// Detect reports whether the bytes open as a decodable audio container.
// Detection failure is a normal outcome, never an error.
func Detect(b []byte) bool {
	_, err := Probe(b)
	return err == nil
}

// Probe opens the bytes as an audio container and reads its metadata.
func Probe(b []byte) (Info, error) {
	if info, err := probeWAV(b); err == nil {
		return info, nil
	}
	if info, err := probeMP3(b); err == nil {
		return info, nil
	}
	return Info{}, fmt.Errorf("%w: stream is not a decodable audio container", pkgerrors.ErrUnreadableAudio)
}

func probeWAV(b []byte) (Info, error) {
	d := wav.NewDecoder(bytes.NewReader(b))
	d.ReadInfo()
	if !d.IsValidFile() || d.SampleRate == 0 {
		return Info{}, fmt.Errorf("not a wav stream")
	}
	dur, err := d.Duration()
	if err != nil {
		return Info{}, fmt.Errorf("read wav duration: %w", err)
	}
	return Info{
		Format:          FormatWAV,
		DurationSeconds: int64(dur.Seconds()),
		SampleRate:      int(d.SampleRate),
		Channels:        int(d.NumChans),
	}, nil
}

func probeMP3(b []byte) (Info, error) {
	d, err := mp3.NewDecoder(bytes.NewReader(b))
	if err != nil {
		return Info{}, err
	}
	sampleRate := d.SampleRate()
	if sampleRate <= 0 {
		return Info{}, fmt.Errorf("invalid mp3 sample rate")
	}
	// Decoded output is 16-bit stereo PCM, 4 bytes per frame.
	frames := d.Length() / 4
	return Info{
		Format:          FormatMP3,
		DurationSeconds: frames / int64(sampleRate),
		SampleRate:      sampleRate,
		Channels:        2,
	}, nil
}

// Extension returns the upper-cased suffix after the last dot of fileName.
func Extension(fileName string) (string, error) {
	idx := strings.LastIndex(fileName, ".")
	if fileName == "" || idx == -1 || idx == len(fileName)-1 {
		return "", fmt.Errorf("%w: file name %q has no extension", pkgerrors.ErrInvalidInput, fileName)
	}
	return strings.ToUpper(fileName[idx+1:]), nil
}
