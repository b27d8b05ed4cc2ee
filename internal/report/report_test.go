package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"example.com/fitsgate/internal/verify"
)

func sampleAcceptance() Acceptance {
	files := []FileResult{
		{Result: verify.Result{File: "clean.fits", HDUs: 1}},
		{Result: verify.Result{File: "broken.fits", HDUs: 2, Warnings: 3, Errors: 2}, Sha256: "ab12cd34"},
	}
	findings := []verify.Message{
		{Severity: verify.SeverityError, Code: verify.CodeKeywordValue, HDU: 1, Text: "BITPIX has an illegal value"},
		{Severity: verify.SeverityWarning, Code: verify.WarnDuplicateKeyword, HDU: 1, Text: "duplicate OBJECT"},
	}
	return BuildAcceptance(files, findings)
}

func TestBuildAcceptanceSummary(t *testing.T) {
	rep := sampleAcceptance()

	if rep.Tool != "fitsverify" || rep.Version != verify.Version {
		t.Errorf("tool/version = %q/%q", rep.Tool, rep.Version)
	}
	if rep.Summary.Files != 2 || rep.Summary.HDUs != 3 {
		t.Errorf("files/hdus = %d/%d, want 2/3", rep.Summary.Files, rep.Summary.HDUs)
	}
	if rep.Summary.Errors != 2 || rep.Summary.Warnings != 3 {
		t.Errorf("errors/warnings = %d/%d, want 2/3", rep.Summary.Errors, rep.Summary.Warnings)
	}
	if rep.Summary.Pass {
		t.Error("run with errors marked as passing")
	}
	if rep.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	clean := BuildAcceptance([]FileResult{{Result: verify.Result{File: "a.fits", HDUs: 1, Warnings: 1}}}, nil)
	if !clean.Summary.Pass {
		t.Error("warnings alone must not fail the run")
	}
}

func TestAcceptanceJSONRoundTrip(t *testing.T) {
	rep := sampleAcceptance()
	path := filepath.Join(t.TempDir(), "acceptance.json")

	if err := SaveAcceptanceJSON(rep, path); err != nil {
		t.Fatalf("SaveAcceptanceJSON: %v", err)
	}
	got, err := LoadAcceptanceJSON(path)
	if err != nil {
		t.Fatalf("LoadAcceptanceJSON: %v", err)
	}
	if got.Summary != rep.Summary {
		t.Errorf("summary changed across round trip: %+v != %+v", got.Summary, rep.Summary)
	}
	if len(got.Files) != 2 || got.Files[1].Sha256 != "ab12cd34" {
		t.Errorf("files changed across round trip: %+v", got.Files)
	}
	if len(got.Findings) != 2 || got.Findings[0].Code != verify.CodeKeywordValue {
		t.Errorf("findings changed across round trip: %+v", got.Findings)
	}
}

func TestLoadAcceptanceJSONMissingFile(t *testing.T) {
	if _, err := LoadAcceptanceJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestWriteFindingsNDJSON(t *testing.T) {
	rep := sampleAcceptance()
	path := filepath.Join(t.TempDir(), "findings.ndjson")

	if err := WriteFindingsNDJSON(path, rep.Findings); err != nil {
		t.Fatalf("WriteFindingsNDJSON: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var lines int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m verify.Message
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", lines+1, err)
		}
		lines++
	}
	if lines != len(rep.Findings) {
		t.Errorf("wrote %d lines, want %d", lines, len(rep.Findings))
	}
}

func TestParseLanguage(t *testing.T) {
	for _, in := range []string{"", "en", "EN-US", "english"} {
		lang, err := ParseLanguage(in)
		if err != nil || lang != LangEnglish {
			t.Errorf("ParseLanguage(%q) = %v, %v", in, lang, err)
		}
	}
	for _, in := range []string{"tr", "TR-tr", "turkish"} {
		lang, err := ParseLanguage(in)
		if err != nil || lang != LangTurkish {
			t.Errorf("ParseLanguage(%q) = %v, %v", in, lang, err)
		}
	}
	if _, err := ParseLanguage("de"); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("ParseLanguage(de) err = %v", err)
	}
}

func TestTranslatorFallsBackToEnglish(t *testing.T) {
	en := NewTranslator(LangEnglish)
	tr := NewTranslator(LangTurkish)

	if en.T("report.title") == "report.title" {
		t.Error("English locale missing report.title")
	}
	if tr.T("report.title") == "report.title" {
		t.Error("Turkish locale missing report.title")
	}
	if en.T("report.title") == tr.T("report.title") {
		t.Error("locales share the same title text")
	}
	// Unknown keys come back verbatim so the report stays renderable.
	if got := tr.T("no.such.key"); got != "no.such.key" {
		t.Errorf("unknown key = %q", got)
	}
	// Unknown languages degrade to English.
	if NewTranslator(Language("de")).Lang() != LangEnglish {
		t.Error("unknown language did not fall back to English")
	}
}

func TestChecksumQR(t *testing.T) {
	png, err := ChecksumQR("deadbeef0123", 128)
	if err != nil {
		t.Fatalf("ChecksumQR: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
	if _, err := ChecksumQR("   ", 128); err == nil {
		t.Error("empty hash accepted")
	}
	// Non-hex characters are dropped before encoding.
	if _, err := ChecksumQR("zz-deadbeef", 0); err != nil {
		t.Errorf("mixed hash rejected: %v", err)
	}
}

func TestSaveAcceptancePDF(t *testing.T) {
	rep := sampleAcceptance()
	path := filepath.Join(t.TempDir(), "acceptance.pdf")

	if err := SaveAcceptancePDF(rep, path, PDFOptions{Lang: LangTurkish, MaxFindings: 1}); err != nil {
		t.Fatalf("SaveAcceptancePDF: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("PDF file is empty")
	}
}
