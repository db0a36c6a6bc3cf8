package models_test

import (
	"testing"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want models.Status
	}{
		{raw: "RECEIVED", want: models.StatusReceived},
		{raw: "received", want: models.StatusReceived},
		{raw: "NORMALIZED", want: models.StatusCategorizing},
		{raw: "categorizing", want: models.StatusCategorizing},
		{raw: "RECOMMENDED", want: models.StatusAssigned},
		{raw: "assigned", want: models.StatusAssigned},
		{raw: "IN_PROGRESS", want: models.StatusAnswered},
		{raw: "answered", want: models.StatusAnswered},
		{raw: "CLOSED", want: models.StatusClosed},
		{raw: "closed", want: models.StatusClosed},
		{raw: " Closed ", want: models.StatusClosed},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := models.ParseStatus(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStatusUnknown(t *testing.T) {
	got, err := models.ParseStatus("EXPLODED")
	require.ErrorIs(t, err, models.ErrUnknownStatus)
	// Unknown statuses degrade to the initial pipeline state.
	assert.Equal(t, models.StatusReceived, got)
}
