package server

import (
	"strings"
	"testing"

	"example.com/fitsgate/internal/report"
	"example.com/fitsgate/internal/verify"
)

func TestNormalizeDefaults(t *testing.T) {
	opts, lang, store, err := Options{}.normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if opts.Concurrency < 1 {
		t.Errorf("expected positive concurrency, got %d", opts.Concurrency)
	}
	if opts.MaxUploadMB != 512 {
		t.Errorf("expected default upload limit 512, got %d", opts.MaxUploadMB)
	}
	if lang != report.LangEnglish {
		t.Errorf("expected default language en, got %s", lang)
	}
	if store == nil || store.IsEmpty() {
		t.Error("expected built-in advice store")
	}
}

func TestNormalizeRejectsUnknownLanguage(t *testing.T) {
	_, _, _, err := Options{Lang: "de"}.normalize()
	if err == nil {
		t.Fatal("expected error for unsupported language")
	}
}

func TestVerifyOptionsApplyDefaults(t *testing.T) {
	got, err := VerifyOptions{}.apply()
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := verify.DefaultOptions()
	if got != want {
		t.Errorf("expected defaults, got %+v", got)
	}
}

func TestVerifyOptionsApplyOverrides(t *testing.T) {
	f := false
	level := 1
	got, err := VerifyOptions{
		TestData:     &f,
		TestChecksum: &f,
		ErrReport:    &level,
	}.apply()
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.TestData {
		t.Error("TestData should be disabled")
	}
	if got.TestChecksum {
		t.Error("TestChecksum should be disabled")
	}
	if got.ErrReport != verify.ReportErrors {
		t.Errorf("expected ErrReport %d, got %d", verify.ReportErrors, got.ErrReport)
	}
}

func TestVerifyOptionsApplyRejectsBadErrReport(t *testing.T) {
	level := 7
	_, err := VerifyOptions{ErrReport: &level}.apply()
	if err == nil || !strings.Contains(err.Error(), "errReport") {
		t.Fatalf("expected errReport range error, got %v", err)
	}
}
