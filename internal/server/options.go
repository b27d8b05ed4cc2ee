package server

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"example.com/fitsgate/internal/advice"
	"example.com/fitsgate/internal/report"
	"example.com/fitsgate/internal/verify"
)

// Options configures server creation.
type Options struct {
	StorageDir string
	// AdvicePath optionally points at a JSON file of repair-hint
	// overrides merged over the built-in advice.
	AdvicePath  string
	Concurrency int
	Lang        string
	// MaxUploadMB caps the multipart upload size. Zero uses the
	// default of 512 MiB.
	MaxUploadMB int
}

func (o Options) normalize() (Options, report.Language, *advice.Store, error) {
	if o.Concurrency <= 0 {
		o.Concurrency = runtime.NumCPU()
	}
	if o.MaxUploadMB <= 0 {
		o.MaxUploadMB = 512
	}
	lang, err := report.ParseLanguage(o.Lang)
	if err != nil {
		return o, lang, nil, fmt.Errorf("language: %w", err)
	}
	store := advice.Builtin()
	if strings.TrimSpace(o.AdvicePath) != "" {
		override, err := advice.EnsureLoaded(o.AdvicePath)
		if err != nil {
			return o, lang, nil, fmt.Errorf("advice: %w", err)
		}
		store.Merge(override)
	}
	return o, lang, store, nil
}

// VerifyOptions is the wire form of the verification switches a client
// may set per request. Pointers distinguish "absent" from "false".
type VerifyOptions struct {
	ErrReport     *int  `json:"errReport,omitempty"`
	TestData      *bool `json:"testData,omitempty"`
	TestChecksum  *bool `json:"testChecksum,omitempty"`
	TestFill      *bool `json:"testFill,omitempty"`
	HeasarcConv   *bool `json:"heasarcConventions,omitempty"`
	TestHierarch  *bool `json:"parseHierarch,omitempty"`
	PrintHeader   *bool `json:"printHeader,omitempty"`
	FixHints      *bool `json:"fixHints,omitempty"`
	Explanations  *bool `json:"explanations,omitempty"`
	OmitSummaries *bool `json:"omitSummaries,omitempty"`
}

func (vo VerifyOptions) apply() (verify.Options, error) {
	o := verify.DefaultOptions()
	if vo.ErrReport != nil {
		if *vo.ErrReport < 0 || *vo.ErrReport > 2 {
			return o, errors.New("errReport must be 0, 1, or 2")
		}
		o.ErrReport = *vo.ErrReport
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setBool(&o.TestData, vo.TestData)
	setBool(&o.TestChecksum, vo.TestChecksum)
	setBool(&o.TestFill, vo.TestFill)
	setBool(&o.HeasarcConv, vo.HeasarcConv)
	setBool(&o.TestHierarch, vo.TestHierarch)
	setBool(&o.PrintHeader, vo.PrintHeader)
	setBool(&o.FixHints, vo.FixHints)
	setBool(&o.Explain, vo.Explanations)
	if vo.OmitSummaries != nil {
		o.PrintStat = !*vo.OmitSummaries
	}
	return o, nil
}
