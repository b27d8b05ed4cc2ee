package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.Start()
	m.AddHDU(2880)
	m.AddHDU(5760)
	m.AddBytes(100)
	m.AddCards(36)
	m.AddRows(10)
	m.SetTotalBytes(17280)
	m.Stop()

	s := m.Snapshot()
	if s.Bytes != 8740 {
		t.Errorf("Bytes = %d, want 8740", s.Bytes)
	}
	if s.HDUs != 2 {
		t.Errorf("HDUs = %d, want 2", s.HDUs)
	}
	if s.Cards != 36 || s.Rows != 10 {
		t.Errorf("Cards/Rows = %d/%d", s.Cards, s.Rows)
	}
	if s.Duration <= 0 {
		t.Errorf("Duration = %v, want > 0", s.Duration)
	}

	// Negative and zero increments are ignored.
	m.AddBytes(-5)
	m.AddHDU(-1)
	m.AddCards(0)
	if got := m.Snapshot().Bytes; got != 8740 {
		t.Errorf("Bytes after bad increments = %d", got)
	}
}

func TestMetricsStopFreezesDuration(t *testing.T) {
	m := NewMetrics()
	m.Start()
	m.Stop()
	d1 := m.Snapshot().Duration
	time.Sleep(5 * time.Millisecond)
	if d2 := m.Snapshot().Duration; d2 != d1 {
		t.Errorf("duration moved after Stop: %v != %v", d2, d1)
	}
}

func TestSnapshotThroughputAndCompletion(t *testing.T) {
	s := MetricsSnapshot{Duration: 2 * time.Second, Bytes: 2048, TotalBytes: 4096}
	if got := s.ThroughputBytesPerSecond(); got != 1024 {
		t.Errorf("throughput = %v, want 1024", got)
	}
	if got := s.Completion(); got != 0.5 {
		t.Errorf("completion = %v, want 0.5", got)
	}

	if (MetricsSnapshot{}).ThroughputBytesPerSecond() != 0 {
		t.Error("zero snapshot throughput not 0")
	}
	over := MetricsSnapshot{Bytes: 100, TotalBytes: 10}
	if over.Completion() != 1 {
		t.Error("completion not clamped to 1")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{in: 512, want: "512 B"},
		{in: 2048, want: "2.00 KiB"},
		{in: 2880, want: "2.81 KiB"},
		{in: 5 * 1024 * 1024, want: "5.00 MiB"},
		{in: 3 * 1024 * 1024 * 1024, want: "3.00 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatProgressLine(t *testing.T) {
	s := MetricsSnapshot{Duration: time.Second, Bytes: 1440, TotalBytes: 2880}
	line := formatProgressLine(s)
	if !strings.Contains(line, "50.00%") {
		t.Errorf("line %q missing percentage", line)
	}
	noTotal := formatProgressLine(MetricsSnapshot{Duration: time.Second, Bytes: 2048})
	if !strings.HasPrefix(noTotal, "Processed:") {
		t.Errorf("line %q missing Processed prefix", noTotal)
	}
}

func TestStartProgressPrinter(t *testing.T) {
	m := NewMetrics()
	m.Start()
	m.AddBytes(2880)

	var buf strings.Builder
	stop := StartProgressPrinter(&buf, m, 2*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	stop()

	if !strings.Contains(buf.String(), "Processed:") {
		t.Errorf("printer wrote %q", buf.String())
	}
	// Nil arguments return a no-op stopper.
	StartProgressPrinter(nil, m, time.Millisecond)()
	StartProgressPrinter(&buf, nil, time.Millisecond)()
}

func TestSha256OfFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.bin")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}
	sum, size, err := Sha256OfFile(path)
	if err != nil {
		t.Fatalf("Sha256OfFile: %v", err)
	}
	if size != 3 {
		t.Errorf("size = %d, want 3", size)
	}
	const abcSHA = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if sum != abcSHA {
		t.Errorf("sum = %q, want %q", sum, abcSHA)
	}

	h := NewHasher()
	h.Write([]byte("ab"))
	h.Write([]byte("c"))
	if h.Sum() != abcSHA {
		t.Errorf("Hasher sum = %q", h.Sum())
	}

	if _, _, err := Sha256OfFile(filepath.Join(dir, "missing")); err == nil {
		t.Error("missing file accepted")
	}
}
