package services

import (
	"testing"
	"time"

	"sma-hostel-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestToStudentRow(t *testing.T) {
	serial := int64(12)
	student := &models.Student{
		ID:       "abc123def456",
		Serial:   &serial,
		Name:     "Rahul Kumar",
		Phone:    "9876543210",
		Room:     "A1",
		College:  "Delhi University",
		Section:  "B.Tech CSE",
		JoinDate: time.Date(2024, 3, 5, 18, 45, 0, 0, time.UTC),
		FeeDue:   1250.5,
	}

	row := ToStudentRow(student)

	assert.Equal(t, "SMA-00012", row.DisplayID)
	assert.Equal(t, "2024-03-05", row.JoinDate)
	assert.Equal(t, "₹1250.5", row.FeeDue)
	assert.Equal(t, NotesPlaceholder, row.Notes)
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "₹5000", FormatCurrency(5000))
	assert.Equal(t, "₹0", FormatCurrency(0))
	assert.Equal(t, "₹1250.5", FormatCurrency(1250.5))
}
