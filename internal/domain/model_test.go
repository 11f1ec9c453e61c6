package domain_test

import (
	"testing"

	"github.com/ff6editor/pluginvet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCheckResult_Constructors(t *testing.T) {
	assert.Equal(t, domain.CheckResult{Pass: domain.PassSize, Passed: true, Message: "ok", Severity: domain.SeverityError},
		domain.Pass(domain.PassSize, "ok"))
	assert.Equal(t, domain.CheckResult{Pass: domain.PassSize, Passed: false, Message: "bad", Severity: domain.SeverityError},
		domain.Fail(domain.PassSize, "bad"))
	assert.Equal(t, domain.SeverityWarning, domain.Warn(domain.PassDocs, false, "meh").Severity)
}

func TestCheckResult_Classification(t *testing.T) {
	tests := []struct {
		name    string
		result  domain.CheckResult
		isError bool
		isWarn  bool
	}{
		{"passing error check", domain.Pass(domain.PassMetadata, "x"), false, false},
		{"failing error check", domain.Fail(domain.PassMetadata, "x"), true, false},
		{"passing warning", domain.Warn(domain.PassDocs, true, "x"), false, false},
		{"failing warning", domain.Warn(domain.PassDocs, false, "x"), false, true},
		{"failing info", domain.CheckResult{Passed: false, Severity: domain.SeverityInfo}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isError, tt.result.IsError())
			assert.Equal(t, tt.isWarn, tt.result.IsWarning())
		})
	}
}

func TestReport_WarningsNeverFail(t *testing.T) {
	r := &domain.Report{}
	r.Add(
		domain.Pass(domain.PassStructure, "Plugin directory exists"),
		domain.Warn(domain.PassDocs, false, "README.md missing sections: Usage"),
		domain.Warn(domain.PassScriptComments, false, "Missing metadata comment: @id:"),
	)

	assert.Equal(t, 0, r.Errors())
	assert.Equal(t, 2, r.Warnings())
	assert.True(t, r.Passed())
}

func TestReport_ErrorFailsRun(t *testing.T) {
	r := &domain.Report{}
	r.Add(domain.Fail(domain.PassSecurity, "Forbidden pattern found"))

	assert.Equal(t, 1, r.Errors())
	assert.False(t, r.Passed())
}

func TestReport_ByPassKeepsPassOrder(t *testing.T) {
	r := &domain.Report{}
	r.Add(
		domain.Pass(domain.PassChecksum, "c"),
		domain.Pass(domain.PassStructure, "s1"),
		domain.Pass(domain.PassMetadata, "m"),
		domain.Pass(domain.PassStructure, "s2"),
	)

	groups := r.ByPass()

	require.Len(t, groups, 3)
	assert.Equal(t, domain.PassStructure, groups[0].Pass)
	assert.Len(t, groups[0].Results, 2)
	assert.Equal(t, domain.PassMetadata, groups[1].Pass)
	assert.Equal(t, domain.PassChecksum, groups[2].Pass)
}

func TestReport_CountersAreFolds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		results := rapid.SliceOf(rapid.Custom(func(t *rapid.T) domain.CheckResult {
			return domain.CheckResult{
				Pass:     rapid.SampledFrom(domain.PassOrder).Draw(t, "pass"),
				Passed:   rapid.Bool().Draw(t, "passed"),
				Severity: rapid.SampledFrom([]domain.Severity{domain.SeverityError, domain.SeverityWarning, domain.SeverityInfo}).Draw(t, "severity"),
			}
		})).Draw(t, "results")

		r := &domain.Report{}
		for _, res := range results {
			r.Add(res)
		}

		var errs, warns int
		for _, res := range results {
			if !res.Passed && res.Severity == domain.SeverityError {
				errs++
			}
			if !res.Passed && res.Severity == domain.SeverityWarning {
				warns++
			}
		}
		if r.Errors() != errs || r.Warnings() != warns {
			t.Fatalf("counters %d/%d, want %d/%d", r.Errors(), r.Warnings(), errs, warns)
		}
		if r.Passed() != (errs == 0) {
			t.Fatalf("Passed() = %v with %d errors", r.Passed(), errs)
		}

		total := 0
		for _, g := range r.ByPass() {
			total += len(g.Results)
		}
		if total != len(results) {
			t.Fatalf("ByPass dropped results: %d of %d", total, len(results))
		}
	})
}

func TestEntryFromRun(t *testing.T) {
	report := &domain.Report{Plugin: "stats-display", Dir: "/tmp/stats-display"}
	report.Add(domain.Pass(domain.PassStructure, "ok"), domain.Warn(domain.PassDocs, false, "w"))
	run := &domain.ValidationRun{
		RunID:    "run-1",
		Report:   report,
		Passed:   true,
		Warnings: 1,
	}

	e := domain.EntryFromRun(run)

	assert.Equal(t, "run-1", e.RunID)
	assert.Equal(t, "stats-display", e.Plugin)
	assert.Equal(t, 2, e.Checks)
	assert.Equal(t, 1, e.Warnings)
	assert.True(t, e.Passed)
}

func TestPassName_Title(t *testing.T) {
	assert.Equal(t, "Structure", domain.PassStructure.Title())
	assert.Equal(t, "Script comments", domain.PassScriptComments.Title())
	assert.Equal(t, "", domain.PassName("").Title())
}
