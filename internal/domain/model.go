package domain

import (
	"errors"
	"strings"
	"time"
)

// Severity classifies a failing check result.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// PassName identifies the validation pass that produced a result.
type PassName string

const (
	PassStructure      PassName = "structure"
	PassSize           PassName = "size"
	PassMetadata       PassName = "metadata"
	PassScriptSyntax   PassName = "script_syntax"
	PassScriptComments PassName = "script_comments"
	PassSecurity       PassName = "security"
	PassDocs           PassName = "documentation"
	PassChecksum       PassName = "checksum"
)

// Title renders the pass name for headings: "script_comments" becomes
// "Script comments".
func (p PassName) Title() string {
	s := strings.ReplaceAll(string(p), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// PassOrder is the order in which a validation run executes its passes.
var PassOrder = []PassName{
	PassStructure,
	PassSize,
	PassMetadata,
	PassScriptSyntax,
	PassScriptComments,
	PassSecurity,
	PassDocs,
	PassChecksum,
}

// ErrNotDirectory is returned when a path expected to be a directory is not.
var ErrNotDirectory = errors.New("not a directory")

// CheckResult is the outcome of a single check. It is a value type and is
// never modified after construction.
type CheckResult struct {
	Pass     PassName `json:"pass"`
	Passed   bool     `json:"passed"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Check builds an error-severity result.
func Check(pass PassName, passed bool, message string) CheckResult {
	return CheckResult{Pass: pass, Passed: passed, Message: message, Severity: SeverityError}
}

// Pass builds a passing error-severity result.
func Pass(pass PassName, message string) CheckResult {
	return Check(pass, true, message)
}

// Fail builds a failing error-severity result.
func Fail(pass PassName, message string) CheckResult {
	return Check(pass, false, message)
}

// Warn builds a warning-severity result. Warnings never fail a run.
func Warn(pass PassName, passed bool, message string) CheckResult {
	return CheckResult{Pass: pass, Passed: passed, Message: message, Severity: SeverityWarning}
}

// IsError reports whether the result counts toward the run's error total.
func (r CheckResult) IsError() bool { return !r.Passed && r.Severity == SeverityError }

// IsWarning reports whether the result counts toward the run's warning total.
func (r CheckResult) IsWarning() bool { return !r.Passed && r.Severity == SeverityWarning }

// Report is the ordered sequence of results from one validation run.
// Counters are derived from Results rather than tracked separately.
type Report struct {
	Plugin  string        `json:"plugin"`
	Dir     string        `json:"dir"`
	Results []CheckResult `json:"results"`
}

// Add appends results to the report.
func (r *Report) Add(results ...CheckResult) {
	r.Results = append(r.Results, results...)
}

// Errors counts failing error-severity results.
func (r *Report) Errors() int {
	return CountErrors(r.Results)
}

// Warnings counts failing warning-severity results.
func (r *Report) Warnings() int {
	return CountWarnings(r.Results)
}

// Passed reports whether the run recorded zero errors.
func (r *Report) Passed() bool { return r.Errors() == 0 }

// ByPass groups results by pass, keeping PassOrder. Passes that produced
// nothing are omitted.
func (r *Report) ByPass() []PassResults {
	grouped := make(map[PassName][]CheckResult)
	for _, res := range r.Results {
		grouped[res.Pass] = append(grouped[res.Pass], res)
	}
	var out []PassResults
	for _, p := range PassOrder {
		if rs, ok := grouped[p]; ok {
			out = append(out, PassResults{Pass: p, Results: rs})
		}
	}
	return out
}

// PassResults is the slice of a report produced by one pass.
type PassResults struct {
	Pass    PassName      `json:"pass"`
	Results []CheckResult `json:"results"`
}

// CountErrors folds over results counting failing errors.
func CountErrors(results []CheckResult) int {
	n := 0
	for _, r := range results {
		if r.IsError() {
			n++
		}
	}
	return n
}

// CountWarnings folds over results counting failing warnings.
func CountWarnings(results []CheckResult) int {
	n := 0
	for _, r := range results {
		if r.IsWarning() {
			n++
		}
	}
	return n
}

// ValidationRun wraps a report with run metadata.
type ValidationRun struct {
	RunID      string        `json:"run_id"`
	Report     *Report       `json:"report"`
	Passed     bool          `json:"passed"`
	Errors     int           `json:"errors"`
	Warnings   int           `json:"warnings"`
	CommitHash string        `json:"commit_hash,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration_ns"`
}

// ChecksumStatus is the outcome of comparing a sidecar digest to the script.
type ChecksumStatus string

const (
	ChecksumMatch    ChecksumStatus = "match"
	ChecksumMismatch ChecksumStatus = "mismatch"
	ChecksumMissing  ChecksumStatus = "missing"
)

// ChecksumVerification describes a sidecar verification.
type ChecksumVerification struct {
	Status   ChecksumStatus `json:"status"`
	Expected string         `json:"expected,omitempty"`
	Actual   string         `json:"actual,omitempty"`
}
