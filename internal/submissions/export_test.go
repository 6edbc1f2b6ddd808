package submissions

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	subs := []*Submission{
		{
			Form:           FormContact,
			Name:           "Jana Novak",
			Email:          "jana@example.com",
			Phone:          "+420775505805",
			EventType:      "wedding",
			Message:        "June wedding, \"80\" guests",
			SubmissionDate: time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			Form:      FormPopup,
			Name:      "Petr",
			Email:     "petr@example.com",
			Phone:     "+420602123456",
			Service:   "Premium Flair",
			EventDate: "2026-06-12",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, subs))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, "June wedding, \"80\" guests", records[1][6])
	assert.Equal(t, "2026-05-01T10:30:00Z", records[1][8])
	assert.Equal(t, "Premium Flair", records[2][3])
	assert.Equal(t, "", records[2][8])
}

func TestWriteCSV_EmptyHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "Name,Email,Phone,Service,Event Type,Event Date,Message,Form,Submission Date\n", buf.String())
}
