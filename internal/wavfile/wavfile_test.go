package wavfile

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestWrite_HeaderFields(t *testing.T) {
	samples := []int16{1, -1, 100, -100}
	var buf bytes.Buffer
	if err := Write(&buf, samples, 22050, 1); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data := buf.Bytes()
	wantLen := 44 + len(samples)*2
	if len(data) != wantLen {
		t.Fatalf("output length = %d, want %d", len(data), wantLen)
	}

	if string(data[0:4]) != "RIFF" {
		t.Errorf("chunk ID = %q, want RIFF", data[0:4])
	}
	if string(data[8:12]) != "WAVE" {
		t.Errorf("format = %q, want WAVE", data[8:12])
	}
	if string(data[12:16]) != "fmt " {
		t.Errorf("subchunk1 ID = %q, want %q", data[12:16], "fmt ")
	}
	if string(data[36:40]) != "data" {
		t.Errorf("subchunk2 ID = %q, want data", data[36:40])
	}

	channels := binary.LittleEndian.Uint16(data[22:24])
	if channels != 1 {
		t.Errorf("channels = %d, want 1", channels)
	}
	sampleRate := binary.LittleEndian.Uint32(data[24:28])
	if sampleRate != 22050 {
		t.Errorf("sample rate = %d, want 22050", sampleRate)
	}
	bitsPerSample := binary.LittleEndian.Uint16(data[34:36])
	if bitsPerSample != 16 {
		t.Errorf("bits per sample = %d, want 16", bitsPerSample)
	}
	dataLen := binary.LittleEndian.Uint32(data[40:44])
	if int(dataLen) != len(samples)*2 {
		t.Errorf("data subchunk length = %d, want %d", dataLen, len(samples)*2)
	}

	// Round-trip the PCM payload.
	payload := data[44:]
	for i, want := range samples {
		got := int16(binary.LittleEndian.Uint16(payload[i*2 : i*2+2]))
		if got != want {
			t.Errorf("sample[%d] = %d, want %d", i, got, want)
		}
	}
}

func TestWrite_EmptySamples(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, 22050, 1); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.Len() != 44 {
		t.Errorf("output length = %d, want 44 (header only)", buf.Len())
	}
}

func TestWrite_StereoBlockAlign(t *testing.T) {
	samples := []int16{1, 2, 3, 4}
	var buf bytes.Buffer
	if err := Write(&buf, samples, 48000, 2); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data := buf.Bytes()
	blockAlign := binary.LittleEndian.Uint16(data[32:34])
	if blockAlign != 4 {
		t.Errorf("block align = %d, want 4", blockAlign)
	}
	byteRate := binary.LittleEndian.Uint32(data[28:32])
	if byteRate != 48000*4 {
		t.Errorf("byte rate = %d, want %d", byteRate, 48000*4)
	}
}
