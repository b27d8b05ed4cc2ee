package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"example.com/fitsgate/internal/advice"
	"example.com/fitsgate/internal/common"
	"example.com/fitsgate/internal/report"
	"example.com/fitsgate/internal/verify"
)

var buildDate = "unknown"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("fitsverify", flag.ExitOnError)
	listHeader := fs.Bool("l", false, "list all header keywords while verifying")
	quiet := fs.Bool("q", false, "quiet: print one summary line per file")
	errOnly := fs.Bool("e", false, "report errors only, suppress warnings")
	severeOnly := fs.Bool("s", false, "report severe errors only")
	hierarchShort := fs.Bool("H", false, "parse ESO HIERARCH keywords (same as -hierarch)")
	hierarch := fs.Bool("hierarch", false, "parse ESO HIERARCH keywords")
	heasarc := fs.Bool("heasarc", false, "test HEASARC keyword conventions")
	noData := fs.Bool("nodata", false, "skip table data content checks")
	noChecksum := fs.Bool("nochecksum", false, "skip CHECKSUM/DATASUM verification")
	noFill := fs.Bool("nofill", false, "skip header and data fill area checks")
	noSummary := fs.Bool("nosummary", false, "omit the per-file HDU summary table")
	fixHints := fs.Bool("fix-hints", false, "append a fix suggestion to each finding")
	explain := fs.Bool("explain", false, "append an explanation to each finding")
	jsonMode := fs.Bool("json", false, "print the acceptance document as JSON instead of text")
	configPath := fs.String("config", "", "load an options profile from YAML `file`")
	reportPath := fs.String("report", "", "write acceptance report JSON to `file`")
	pdfPath := fs.String("pdf", "", "write acceptance report PDF to `file`")
	ndjsonPath := fs.String("ndjson", "", "write findings NDJSON to `file`")
	langFlag := fs.String("lang", "", "report language: en or tr (default en)")
	advicePath := fs.String("advice", "", "merge additional advice entries from JSON `file`")
	metricsFlag := fs.Bool("metrics", false, "print verification throughput metrics")
	progressFlag := fs.Bool("progress", false, "display verification progress updates")
	fs.Usage = func() { usage(fs) }
	fs.Parse(args)

	files, err := expandArgs(fs.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(files) == 0 {
		usage(fs)
		return 1
	}

	opts := verify.DefaultOptions()
	opts.HeasarcConv = false
	if *configPath != "" {
		if err := applyProfile(*configPath, &opts, langFlag, advicePath); err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			return 1
		}
	}
	// Explicit flags win over the profile.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "l":
			opts.PrintHeader = *listHeader
		case "nosummary":
			opts.PrintStat = !*noSummary
		case "nodata":
			opts.TestData = !*noData
		case "nochecksum":
			opts.TestChecksum = !*noChecksum
		case "nofill":
			opts.TestFill = !*noFill
		case "heasarc":
			opts.HeasarcConv = *heasarc
		case "H":
			opts.TestHierarch = *hierarchShort
		case "hierarch":
			opts.TestHierarch = *hierarch
		case "fix-hints":
			opts.FixHints = *fixHints
		case "explain":
			opts.Explain = *explain
		}
	})
	switch {
	case *severeOnly:
		opts.ErrReport = verify.ReportSevere
	case *errOnly:
		opts.ErrReport = verify.ReportErrors
	}

	store := advice.Builtin()
	if *advicePath != "" {
		extra, err := advice.Load(*advicePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load advice: %v\n", err)
			return 1
		}
		store.Merge(extra)
	}

	lang, err := report.ParseLanguage(*langFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	needCollect := *jsonMode || *reportPath != "" || *pdfPath != "" || *ndjsonPath != ""
	var collected []verify.Message
	var base verify.Sink
	if *quiet || *jsonMode {
		base = verify.NopSink{}
	} else {
		base = &verify.StreamSink{Out: os.Stdout, Err: os.Stdout}
	}
	sink := base
	if needCollect {
		sink = &verify.CallbackSink{Fn: func(m verify.Message) {
			collected = append(collected, m)
			base.Emit(m)
		}}
	}

	ctx := verify.NewContext(opts, sink)
	ctx.SetAdvice(store)

	var metrics *common.Metrics
	stopProgress := func() {}
	if *metricsFlag || *progressFlag {
		metrics = common.NewMetrics()
		var total int64
		for _, path := range files {
			if info, err := os.Stat(path); err == nil {
				total += info.Size()
			}
		}
		metrics.SetTotalBytes(total)
		ctx.SetMetrics(metrics)
		metrics.Start()
		if *progressFlag {
			stopProgress = common.StartProgressPrinter(os.Stderr, metrics, time.Second)
		}
	}

	if !*quiet && !*jsonMode {
		banner()
	}

	results := make([]report.FileResult, 0, len(files))
	for _, path := range files {
		res := ctx.VerifyFile(path)
		fr := report.FileResult{Result: res}
		if sum, _, err := common.Sha256OfFile(path); err == nil {
			fr.Sha256 = sum
		}
		results = append(results, fr)
		if *quiet {
			name := filepath.Base(path)
			if res.Errors == 0 && res.Warnings == 0 {
				fmt.Printf("verification OK: %-20s\n", name)
			} else {
				fmt.Printf("verification FAILED: %-20s, %d warnings and %d errors\n",
					name, res.Warnings, res.Errors)
			}
		}
	}

	if metrics != nil {
		metrics.Stop()
	}
	stopProgress()

	warnings, errors := ctx.Totals()
	if !*quiet && !*jsonMode && len(files) > 1 {
		fmt.Printf("%d file(s) checked: %d warning(s) and %d error(s) in total.\n\n",
			len(files), warnings, errors)
	}

	if *metricsFlag && metrics != nil {
		snap := metrics.Snapshot()
		fmt.Fprintf(os.Stderr, "verified %s in %s (%.2f MiB/s), %d HDUs, %d cards, %d rows\n",
			common.FormatBytes(snap.Bytes),
			snap.Duration.Round(time.Millisecond),
			snap.ThroughputBytesPerSecond()/(1024*1024),
			snap.HDUs, snap.Cards, snap.Rows)
	}

	if needCollect {
		rep := report.BuildAcceptance(results, collected)
		if *jsonMode {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(rep); err != nil {
				fmt.Fprintf(os.Stderr, "encode json: %v\n", err)
				return 1
			}
		}
		if *ndjsonPath != "" {
			if err := report.WriteFindingsNDJSON(*ndjsonPath, collected); err != nil {
				fmt.Fprintf(os.Stderr, "write ndjson: %v\n", err)
				return 1
			}
		}
		if *reportPath != "" {
			if err := report.SaveAcceptanceJSON(rep, *reportPath); err != nil {
				fmt.Fprintf(os.Stderr, "write report: %v\n", err)
				return 1
			}
		}
		if *pdfPath != "" {
			pdfOpts := report.PDFOptions{Lang: lang, MaxFindings: 200}
			if err := report.SaveAcceptancePDF(rep, *pdfPath, pdfOpts); err != nil {
				fmt.Fprintf(os.Stderr, "write pdf: %v\n", err)
				return 1
			}
		}
	}

	code := warnings + errors
	if code > 255 {
		code = 255
	}
	return code
}

func banner() {
	title := fmt.Sprintf("fitsverify %s (built %s)", verify.Version, buildDate)
	fmt.Println()
	fmt.Println(verify.Separator(' ', title))
	fmt.Println(verify.Separator(' ', strings.Repeat("-", len(title))))
	fmt.Println()
}

func usage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `fitsverify %s - verify FITS files against the FITS standard

Usage:
  fitsverify [options] <file.fits> [file2.fits ...]
  fitsverify [options] @<filelist>

A @filelist argument names a text file with one FITS file per line.
Lines that are empty or start with # are ignored.

Options:
`, verify.Version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
The exit status is the total number of warnings and errors found,
capped at 255.
`)
}

// profile is the YAML options file accepted by -config. Pointer fields
// distinguish "absent" from "false" so the profile only touches what it
// names.
type profile struct {
	ErrReport     *int    `yaml:"errReport"`
	ListHeader    *bool   `yaml:"listHeader"`
	Summaries     *bool   `yaml:"summaries"`
	TestData      *bool   `yaml:"testData"`
	TestChecksum  *bool   `yaml:"testChecksum"`
	TestFill      *bool   `yaml:"testFill"`
	Heasarc       *bool   `yaml:"heasarcConventions"`
	ParseHierarch *bool   `yaml:"parseHierarch"`
	FixHints      *bool   `yaml:"fixHints"`
	Explanations  *bool   `yaml:"explanations"`
	Lang          *string `yaml:"lang"`
	Advice        *string `yaml:"advice"`
}

func applyProfile(path string, opts *verify.Options, lang, advicePath *string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var p profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.ErrReport != nil {
		if *p.ErrReport < verify.ReportAll || *p.ErrReport > verify.ReportSevere {
			return fmt.Errorf("errReport must be 0, 1, or 2")
		}
		opts.ErrReport = *p.ErrReport
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setBool(&opts.PrintHeader, p.ListHeader)
	setBool(&opts.PrintStat, p.Summaries)
	setBool(&opts.TestData, p.TestData)
	setBool(&opts.TestChecksum, p.TestChecksum)
	setBool(&opts.TestFill, p.TestFill)
	setBool(&opts.HeasarcConv, p.Heasarc)
	setBool(&opts.TestHierarch, p.ParseHierarch)
	setBool(&opts.FixHints, p.FixHints)
	setBool(&opts.Explain, p.Explanations)
	if p.Lang != nil && *lang == "" {
		*lang = *p.Lang
	}
	if p.Advice != nil && *advicePath == "" {
		*advicePath = *p.Advice
	}
	return nil
}

// expandArgs resolves @filelist arguments into their member paths.
func expandArgs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		if !strings.HasPrefix(arg, "@") {
			files = append(files, arg)
			continue
		}
		listPath := strings.TrimPrefix(arg, "@")
		f, err := os.Open(listPath)
		if err != nil {
			return nil, fmt.Errorf("open file list %s: %w", listPath, err)
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			files = append(files, line)
		}
		err = scanner.Err()
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read file list %s: %w", listPath, err)
		}
	}
	return files, nil
}
