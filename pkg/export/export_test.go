package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() Report {
	return Report{
		Title: "School Performance",
		Sections: []Dataset{
			{
				Name:    "Attendance",
				Headers: []string{"month", "avgAttendancePct"},
				Rows:    []map[string]string{{"month": "2024-01", "avgAttendancePct": "66.67"}},
			},
			{
				Name:    "Fees",
				Headers: []string{"month", "totalCollected"},
			},
		},
	}
}

func TestCSVExporterRendersSections(t *testing.T) {
	payload, err := NewCSVExporter().Render(sampleReport())
	require.NoError(t, err)

	assert.Equal(t, "Attendance\nmonth,avgAttendancePct\n2024-01,66.67\n\nFees\nmonth,totalCollected\n", string(payload))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Report{})
	assert.Error(t, err)

	_, err = NewCSVExporter().Render(Report{Sections: []Dataset{{Name: "empty"}}})
	assert.Error(t, err)
}

func TestPDFExporterRendersDocument(t *testing.T) {
	payload, err := NewPDFExporter().Render(sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
}
