package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-howto/internal/config"
	"github.com/alnah/go-howto/internal/hints"
)

// ErrNotReady is returned by doctor when PDF export cannot work.
var ErrNotReady = errors.New("PDF export is not ready")

// Overall readiness reported by doctor.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// checkLevel grades a single readiness check.
type checkLevel string

const (
	levelOK   checkLevel = "ok"
	levelWarn checkLevel = "warn"
	levelFail checkLevel = "fail"
)

// Check names, in report order.
const (
	checkBrowser        = "browser"
	checkBrowserVersion = "browser version"
	checkSandbox        = "sandbox"
	checkTempDir        = "temp dir"
	checkPageSettings   = "page settings"
	checkStyle          = "style"
)

// ciVars are set by common CI runners.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

type check struct {
	Name   string     `json:"name"`
	Level  checkLevel `json:"level"`
	Detail string     `json:"detail"`
}

// doctorReport is what doctor prints, as text or JSON.
type doctorReport struct {
	Status    string  `json:"status"`
	Platform  string  `json:"platform"`
	Browser   string  `json:"browser,omitempty"`
	Container string  `json:"container,omitempty"` // signal that detected a container
	CI        bool    `json:"ci"`
	Checks    []check `json:"checks"`
}

func (r *doctorReport) add(name string, level checkLevel, format string, args ...any) {
	r.Checks = append(r.Checks, check{Name: name, Level: level, Detail: fmt.Sprintf(format, args...)})
}

// find returns the named check.
func (r *doctorReport) find(name string) (check, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return check{}, false
}

// runDoctor checks whether --pdf can work with the current machine and
// config. HTML output needs none of it.
func runDoctor(args []string, env *Environment) error {
	jsonOutput := false
	for _, arg := range args {
		switch arg {
		case "--json":
			jsonOutput = true
		case "-h", "--help":
			printDoctorUsage(env.Stdout)
			return nil
		default:
			return fmt.Errorf("%w: unknown doctor flag %q", ErrUsage, arg)
		}
	}

	cfg := env.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	report := diagnose(cfg)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	} else {
		printDoctorResult(env.Stdout, report)
	}

	if report.Status == statusErrors {
		return ErrNotReady
	}
	return nil
}

// diagnose runs every readiness check against the machine and cfg.
func diagnose(cfg *config.Config) *doctorReport {
	r := &doctorReport{Platform: runtime.GOOS + "/" + runtime.GOARCH}
	r.Container = containerSignal()
	r.CI = inCI()

	checkBrowserBinary(r)
	checkSandboxSetting(r)
	checkTempWritable(r)
	checkExportConfig(r, cfg)

	r.Status = statusReady
	for _, c := range r.Checks {
		switch c.Level {
		case levelFail:
			r.Status = statusErrors
		case levelWarn:
			if r.Status == statusReady {
				r.Status = statusWarnings
			}
		}
	}
	return r
}

// checkBrowserBinary finds the Chrome binary rod will launch and asks it
// for its version.
func checkBrowserBinary(r *doctorReport) {
	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin == "" {
		path, found := launcher.LookPath()
		if !found {
			r.add(checkBrowser, levelFail, "Chrome/Chromium not found; install it or set ROD_BROWSER_BIN")
			return
		}
		bin = path
	}
	if _, err := os.Stat(bin); err != nil {
		r.add(checkBrowser, levelFail, "no browser at %s", bin)
		return
	}
	r.Browser = bin
	r.add(checkBrowser, levelOK, "%s", bin)

	out, err := exec.Command(bin, "--version").Output() // #nosec G204 -- browser path from env or rod lookup
	if err != nil {
		r.add(checkBrowserVersion, levelWarn, "could not run %s --version: %v", filepath.Base(bin), err)
		return
	}
	r.add(checkBrowserVersion, levelOK, "%s", strings.TrimSpace(string(out)))
}

// checkSandboxSetting warns when Chrome's sandbox is likely to fail to start.
func checkSandboxSetting(r *doctorReport) {
	if os.Getenv("ROD_NO_SANDBOX") == "1" {
		r.add(checkSandbox, levelOK, "disabled (ROD_NO_SANDBOX=1)")
		return
	}
	switch {
	case r.Container != "":
		r.add(checkSandbox, levelWarn, "container detected (%s); set ROD_NO_SANDBOX=1", r.Container)
	case r.CI:
		r.add(checkSandbox, levelWarn, "CI detected; set ROD_NO_SANDBOX=1")
	default:
		r.add(checkSandbox, levelOK, "enabled")
	}
}

// checkTempWritable verifies pages can be staged for printing.
func checkTempWritable(r *doctorReport) {
	dir := os.TempDir()
	f, err := os.CreateTemp(dir, "howto-doctor-*.html")
	if err != nil {
		r.add(checkTempDir, levelFail, "cannot stage pages in %s: %v", dir, err)
		return
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	r.add(checkTempDir, levelOK, "%s is writable", dir)
}

// checkExportConfig validates the page settings and style that --pdf would use.
func checkExportConfig(r *doctorReport, cfg *config.Config) {
	if page, err := pageSettings(cfg); err != nil {
		r.add(checkPageSettings, levelFail, "%v", err)
	} else {
		r.add(checkPageSettings, levelOK, "%s, %s, %.2gin margins", page.Size, page.Orientation, page.Margin)
	}

	gen, err := newGenerator(cfg)
	if err != nil {
		r.add(checkStyle, levelFail, "%v", err)
		return
	}
	_ = gen.Close()
	r.add(checkStyle, levelOK, "%q loads", cfg.Render.Style)
}

// containerSignal names what revealed a container, or "" outside one.
// HOWTO_CONTAINER wins over every other signal.
func containerSignal() string {
	switch {
	case os.Getenv("HOWTO_CONTAINER") == "1":
		return "HOWTO_CONTAINER=1"
	case hints.IsInContainer():
		return "/.dockerenv"
	case os.Getenv("container") != "":
		return "container=" + os.Getenv("container")
	case os.Getenv("KUBERNETES_SERVICE_HOST") != "":
		return "KUBERNETES_SERVICE_HOST"
	}
	return ""
}

func inCI() bool {
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// levelTags are the fixed-width markers of the text report.
var levelTags = map[checkLevel]string{
	levelOK:   "[OK]  ",
	levelWarn: "[WARN]",
	levelFail: "[FAIL]",
}

// printDoctorResult writes the report as aligned text.
func printDoctorResult(w io.Writer, r *doctorReport) {
	fmt.Fprintln(w, "howto doctor: PDF export readiness")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Platform: %s", r.Platform)
	if r.Container != "" {
		fmt.Fprintf(w, ", container (%s)", r.Container)
	}
	if r.CI {
		fmt.Fprint(w, ", CI")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	for _, c := range r.Checks {
		fmt.Fprintf(w, "  %s %-16s %s\n", levelTags[c.Level], c.Name, c.Detail)
	}
	fmt.Fprintln(w)

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Result: --pdf is ready")
	case statusWarnings:
		fmt.Fprintln(w, "Result: --pdf should work, see warnings")
	case statusErrors:
		fmt.Fprintln(w, "Result: HTML only until the failed checks are fixed")
	}
}
