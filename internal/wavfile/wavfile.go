// Package wavfile wraps raw 16-bit PCM in a canonical 44-byte WAV/RIFF
// header. It is an adapter concern only: the core engine in pkg/voice never
// touches a file or a container format, per its documented Non-goals.
package wavfile

import (
	"encoding/binary"
	"io"
)

const (
	bitsPerSample  = 16
	bytesPerSample = bitsPerSample / 8
	pcmFormat      = 1
)

// Write encodes samples as mono or multi-channel little-endian PCM wrapped
// in a WAV container and writes it to w. sampleRate and channels describe
// the layout of samples (interleaved if channels > 1).
func Write(w io.Writer, samples []int16, sampleRate, channels int) error {
	dataLen := len(samples) * bytesPerSample
	fileLen := 36 + dataLen

	byteRate := sampleRate * channels * bytesPerSample
	blockAlign := channels * bytesPerSample

	if _, err := io.WriteString(w, "RIFF"); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(fileLen)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "WAVE"); err != nil {
		return err
	}

	if _, err := io.WriteString(w, "fmt "); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(16)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(pcmFormat)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(channels)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(sampleRate)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(byteRate)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(blockAlign)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(bitsPerSample)); err != nil {
		return err
	}

	if _, err := io.WriteString(w, "data"); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(dataLen)); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, samples)
}
