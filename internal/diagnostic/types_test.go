package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Error(t *testing.T) {
	var d Diagnostics
	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddWarning("fallback", "no typed overload", "TestEvent", "")
	assert.True(t, d.IsValid())

	d.AddError("missing_event_id", "event id is required", "TestEvent", "")
	d.AddError("unknown_transform", `transform "lenght" not found`, "TestEvent", "hi", "len")

	require.True(t, d.HasErrors())

	err := d.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[TestEvent]: [missing_event_id] event id is required")
	assert.Contains(t, err.Error(), `[TestEvent] hi: [unknown_transform] transform "lenght" not found (did you mean len?)`)
}

func TestDiagnostics_MergeAndAll(t *testing.T) {
	var a, b Diagnostics
	a.AddInfo("fallback", "variable-arity call", "E1", "")
	b.AddError("duplicate_event_id", "duplicate", "E2", "")
	b.AddWarning("parameter_overwritten", "last wins", "E2", "x")

	a.Merge(b)

	all := a.All()
	require.Len(t, all, 3)
	assert.Equal(t, SeverityError, all[0].Severity)
	assert.Equal(t, SeverityWarning, all[1].Severity)
	assert.Equal(t, SeverityInfo, all[2].Severity)
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(42).String())
}
