package report

import (
	"bufio"
	"encoding/json"
	"os"
	"time"

	"example.com/fitsgate/internal/verify"
)

// FileResult couples one verification result with the checksum of the
// verified file, used for the QR stamp on the PDF report.
type FileResult struct {
	verify.Result
	Sha256 string `json:"sha256,omitempty"`
}

// Acceptance is the machine-readable outcome of a verification run
// over one or more FITS files.
type Acceptance struct {
	Tool      string    `json:"tool"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	Summary   struct {
		Files    int  `json:"files"`
		HDUs     int  `json:"hdus"`
		Errors   int  `json:"errors"`
		Warnings int  `json:"warnings"`
		Pass     bool `json:"pass"`
	} `json:"summary"`
	Files    []FileResult     `json:"files"`
	Findings []verify.Message `json:"findings,omitempty"`
}

// BuildAcceptance assembles an acceptance report from per-file results
// and the collected diagnostic messages. A run passes when no file
// produced an error.
func BuildAcceptance(files []FileResult, findings []verify.Message) Acceptance {
	var rep Acceptance
	rep.Tool = "fitsverify"
	rep.Version = verify.Version
	rep.CreatedAt = time.Now().UTC()
	rep.Files = files
	rep.Findings = findings
	for _, f := range files {
		rep.Summary.HDUs += f.HDUs
		rep.Summary.Errors += f.Errors
		rep.Summary.Warnings += f.Warnings
	}
	rep.Summary.Files = len(files)
	rep.Summary.Pass = rep.Summary.Errors == 0
	return rep
}

func SaveAcceptanceJSON(rep Acceptance, out string) error {
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(out, b, 0644)
}

func LoadAcceptanceJSON(path string) (Acceptance, error) {
	var rep Acceptance
	b, err := os.ReadFile(path)
	if err != nil {
		return rep, err
	}
	err = json.Unmarshal(b, &rep)
	return rep, err
}

// WriteFindingsNDJSON writes one JSON object per diagnostic message.
func WriteFindingsNDJSON(path string, findings []verify.Message) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()
	for _, m := range findings {
		b, _ := json.Marshal(m)
		w.Write(b)
		w.WriteString("\n")
	}
	return nil
}
