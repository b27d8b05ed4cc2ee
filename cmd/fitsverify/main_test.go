package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeMinimalFITS(t *testing.T, dir string) string {
	t.Helper()
	cards := []string{
		"SIMPLE  =                    T",
		"BITPIX  =                    8",
		"NAXIS   =                    0",
		"END",
	}
	buf := bytes.Repeat([]byte{' '}, 2880)
	for i, card := range cards {
		copy(buf[i*80:], card)
	}
	path := filepath.Join(dir, "minimal.fits")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestExpandArgsFileList(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "list.txt")
	content := "a.fits\n\n# comment\nb.fits\n"
	if err := os.WriteFile(listPath, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	files, err := expandArgs([]string{"@" + listPath, "c.fits"})
	if err != nil {
		t.Fatalf("expandArgs: %v", err)
	}
	want := []string{"a.fits", "b.fits", "c.fits"}
	if len(files) != len(want) {
		t.Fatalf("expected %d files, got %d: %v", len(want), len(files), files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("file %d: want %s got %s", i, want[i], files[i])
		}
	}
}

func TestExpandArgsMissingList(t *testing.T) {
	if _, err := expandArgs([]string{"@/no/such/list"}); err == nil {
		t.Fatal("expected error for missing file list")
	}
}

func TestRunCleanFileExitsZero(t *testing.T) {
	path := writeMinimalFITS(t, t.TempDir())
	if code := run([]string{"-q", path}); code != 0 {
		t.Errorf("expected exit 0 for clean file, got %d", code)
	}
}

func TestRunMissingFileExitsNonZero(t *testing.T) {
	if code := run([]string{"-q", filepath.Join(t.TempDir(), "absent.fits")}); code == 0 {
		t.Error("expected non-zero exit for missing file")
	}
}

func TestRunJSONMode(t *testing.T) {
	dir := t.TempDir()
	path := writeMinimalFITS(t, dir)

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	code := run([]string{"-json", path})
	w.Close()
	os.Stdout = old

	var out bytes.Buffer
	if _, err := out.ReadFrom(r); err != nil {
		t.Fatal(err)
	}
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	var doc struct {
		Tool    string `json:"tool"`
		Summary struct {
			Files int  `json:"files"`
			Pass  bool `json:"pass"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if doc.Tool != "fitsverify" || doc.Summary.Files != 1 || !doc.Summary.Pass {
		t.Errorf("unexpected document: %+v", doc)
	}
}

func TestRunConfigProfile(t *testing.T) {
	dir := t.TempDir()
	path := writeMinimalFITS(t, dir)
	cfgPath := filepath.Join(dir, "profile.yaml")
	cfg := "testChecksum: false\ntestData: false\nerrReport: 1\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	if code := run([]string{"-q", "-config", cfgPath, path}); code != 0 {
		t.Errorf("expected exit 0 with profile, got %d", code)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("errReport: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if code := run([]string{"-q", "-config", bad, path}); code != 1 {
		t.Errorf("expected exit 1 for bad profile, got %d", code)
	}
}

func TestRunWritesReports(t *testing.T) {
	dir := t.TempDir()
	path := writeMinimalFITS(t, dir)
	jsonOut := filepath.Join(dir, "acceptance.json")
	ndjsonOut := filepath.Join(dir, "findings.ndjson")
	pdfOut := filepath.Join(dir, "acceptance.pdf")
	code := run([]string{"-q",
		"-report", jsonOut,
		"-ndjson", ndjsonOut,
		"-pdf", pdfOut,
		path,
	})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	for _, out := range []string{jsonOut, ndjsonOut, pdfOut} {
		info, err := os.Stat(out)
		if err != nil {
			t.Errorf("missing output %s: %v", out, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("output %s is empty", out)
		}
	}
}
