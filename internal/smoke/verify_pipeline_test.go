package smoke

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"example.com/fitsgate/internal/common"
	"example.com/fitsgate/internal/fits"
	"example.com/fitsgate/internal/report"
	"example.com/fitsgate/internal/verify"
)

func card(s string) string {
	for len(s) < fits.CardLen {
		s += " "
	}
	return s[:fits.CardLen]
}

func headerBlock(cards ...string) []byte {
	var buf bytes.Buffer
	for _, c := range cards {
		buf.WriteString(card(c))
	}
	for buf.Len()%fits.BlockSize != 0 {
		buf.WriteByte(' ')
	}
	return buf.Bytes()
}

func cleanFile() []byte {
	return headerBlock(
		fmt.Sprintf("%-8s= %20s", "SIMPLE", "T"),
		fmt.Sprintf("%-8s= %20d", "BITPIX", 8),
		fmt.Sprintf("%-8s= %20d", "NAXIS", 0),
		"END",
	)
}

func brokenFile() []byte {
	return headerBlock(
		fmt.Sprintf("%-8s= %20s", "SIMPLE", "T"),
		fmt.Sprintf("%-8s= %20d", "BITPIX", 15),
		fmt.Sprintf("%-8s= %20d", "NAXIS", 0),
		fmt.Sprintf("%-8s= '%s'", "OBJECT", "M31"),
		fmt.Sprintf("%-8s= '%s'", "OBJECT", "M32"),
		"END",
	)
}

// End-to-end pass over the whole pipeline: write files to disk, verify
// them, build an acceptance report and save every artifact format.
func TestVerifyPipeline(t *testing.T) {
	dir := t.TempDir()
	inputs := []struct {
		name string
		body []byte
	}{
		{name: "clean_a.fits", body: cleanFile()},
		{name: "clean_b.fits", body: cleanFile()},
		{name: "broken.fits", body: brokenFile()},
	}
	for _, in := range inputs {
		if err := os.WriteFile(filepath.Join(dir, in.name), in.body, 0o644); err != nil {
			t.Fatalf("write %s: %v", in.name, err)
		}
	}

	sink := &verify.CollectSink{}
	ctx := verify.NewContext(verify.DefaultOptions(), sink)

	var files []report.FileResult
	for _, in := range inputs {
		path := filepath.Join(dir, in.name)
		res := ctx.VerifyFile(path)
		fr := report.FileResult{Result: res}
		sum, _, err := common.Sha256OfFile(path)
		if err != nil {
			t.Fatalf("Sha256OfFile %s: %v", in.name, err)
		}
		fr.Sha256 = sum
		files = append(files, fr)
	}
	if files[0].Errors != 0 || files[1].Errors != 0 {
		t.Errorf("clean files reported %d and %d errors", files[0].Errors, files[1].Errors)
	}
	if files[2].Errors == 0 {
		t.Error("broken file reported no errors")
	}

	rep := report.BuildAcceptance(files, sink.Messages)
	if rep.Summary.Files != 3 {
		t.Errorf("expected 3 files in summary, got %d", rep.Summary.Files)
	}
	if rep.Summary.Pass {
		t.Error("summary should not pass with a broken file present")
	}

	jsonPath := filepath.Join(dir, "acceptance.json")
	if err := report.SaveAcceptanceJSON(rep, jsonPath); err != nil {
		t.Fatalf("SaveAcceptanceJSON: %v", err)
	}
	loaded, err := report.LoadAcceptanceJSON(jsonPath)
	if err != nil {
		t.Fatalf("LoadAcceptanceJSON: %v", err)
	}
	if loaded.Summary != rep.Summary {
		t.Errorf("summary changed through JSON round trip: %+v vs %+v", loaded.Summary, rep.Summary)
	}

	ndjsonPath := filepath.Join(dir, "findings.ndjson")
	if err := report.WriteFindingsNDJSON(ndjsonPath, sink.Messages); err != nil {
		t.Fatalf("WriteFindingsNDJSON: %v", err)
	}
	info, err := os.Stat(ndjsonPath)
	if err != nil {
		t.Fatalf("stat ndjson: %v", err)
	}
	if info.Size() == 0 {
		t.Error("findings NDJSON is empty")
	}

	pdfPath := filepath.Join(dir, "acceptance.pdf")
	opts := report.PDFOptions{Lang: report.LangEnglish, MaxFindings: 50}
	if err := report.SaveAcceptancePDF(rep, pdfPath, opts); err != nil {
		t.Fatalf("SaveAcceptancePDF: %v", err)
	}
	if info, err := os.Stat(pdfPath); err != nil || info.Size() == 0 {
		t.Errorf("acceptance PDF missing or empty: %v", err)
	}
}
