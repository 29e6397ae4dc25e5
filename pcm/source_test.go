// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"io"
	"testing"

	"github.com/ik5/pcmwav/audio"
	"github.com/ik5/pcmwav/internal/audiotest"
)

func newStereoBuffer(t *testing.T, frames int) *SampleBuffer {
	t.Helper()

	buf, err := ToSamples(audiotest.RampPCM16(0, frames*2), 24000, 2)
	if err != nil {
		t.Fatalf("ToSamples() error = %v", err)
	}

	return buf
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newStereoBuffer(t, 4).Source()

	if src.SampleRate() != 24000 {
		t.Errorf("SampleRate() = %d, want 24000", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.BufSize() <= 0 {
		t.Errorf("BufSize() = %d, want > 0", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSource_ReadsInterleaved(t *testing.T) {
	t.Parallel()

	buf := newStereoBuffer(t, 5)
	src := buf.Source()

	var got []float32
	dst := make([]float32, 4)

	for {
		n, err := src.ReadSamples(dst)
		got = append(got, dst[:n]...)

		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	want := buf.Interleaved()
	if len(got) != len(want) {
		t.Fatalf("read %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSource_ExactFitEndsWithSeparateEOF(t *testing.T) {
	t.Parallel()

	src := newStereoBuffer(t, 3).Source()
	dst := make([]float32, 6)

	var reads []int
	for {
		n, err := src.ReadSamples(dst)
		if err == io.EOF {
			if n != 0 {
				t.Errorf("EOF read returned n = %d, want 0", n)
			}
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
		reads = append(reads, n)
	}

	if len(reads) != 1 || reads[0] != 6 {
		t.Errorf("data reads = %v, want [6]", reads)
	}
}

func TestSource_EOFAfterLastFrame(t *testing.T) {
	t.Parallel()

	src := newStereoBuffer(t, 2).Source()
	dst := make([]float32, 8)

	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Errorf("ReadSamples() error = %v, want nil with the final block", err)
	}
	if n != 4 {
		t.Errorf("ReadSamples() n = %d, want 4", n)
	}

	n, err = src.ReadSamples(dst)
	if err != io.EOF || n != 0 {
		t.Errorf("second ReadSamples() = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestSource_InvalidDstSize(t *testing.T) {
	t.Parallel()

	src := newStereoBuffer(t, 2).Source()

	_, err := src.ReadSamples(make([]float32, 3))
	if !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestSource_Independent(t *testing.T) {
	t.Parallel()

	buf := newStereoBuffer(t, 3)
	first := buf.Source()
	second := buf.Source()

	dst := make([]float32, 6)
	if _, err := first.ReadSamples(dst); err != nil {
		t.Fatalf("first ReadSamples() error = %v", err)
	}
	if n, err := first.ReadSamples(dst); n != 0 || err != io.EOF {
		t.Fatalf("first ReadSamples() after end = (%d, %v), want (0, io.EOF)", n, err)
	}

	n, _ := second.ReadSamples(dst)
	if n != 6 {
		t.Errorf("second source read %d samples, want 6", n)
	}
}

func TestSource_EmptyBuffer(t *testing.T) {
	t.Parallel()

	buf, err := ToSamples(nil, 24000, 1)
	if err != nil {
		t.Fatalf("ToSamples() error = %v", err)
	}

	n, err := buf.Source().ReadSamples(make([]float32, 16))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	buf, err := ToSamples(audiotest.SinePCM16(24000, 2, 24000, 440), 24000, 2)
	if err != nil {
		b.Fatal(err)
	}

	dst := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src := buf.Source()
		for {
			if _, err := src.ReadSamples(dst); err == io.EOF {
				break
			}
		}
	}
}
