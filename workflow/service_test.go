package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tempora.com/tempora/utils"
)

func draftWith(rows ...DraftRow) DraftInput {
	return DraftInput{
		EmployeeID:  100,
		PeriodStart: utils.MustParseDate("2026-08-31"), // a Monday
		Rows:        rows,
	}
}

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name    string
		in      DraftInput
		wantErr string
	}{
		{
			name: "valid single row",
			in:   draftWith(DraftRow{ProjectID: 10, Task: "dev", Hours: [7]float64{8, 8, 8, 8, 8, 0, 0}}),
		},
		{
			name: "empty rows are allowed while drafting",
			in:   draftWith(),
		},
		{
			name: "period must start on a Monday",
			in: DraftInput{
				EmployeeID:  100,
				PeriodStart: utils.MustParseDate("2026-09-01"),
				Rows:        []DraftRow{{ProjectID: 10, Task: "dev"}},
			},
			wantErr: "period must start on a Monday",
		},
		{
			name:    "missing employee",
			in:      DraftInput{PeriodStart: utils.MustParseDate("2026-08-31")},
			wantErr: "employee id is required",
		},
		{
			name:    "missing project",
			in:      draftWith(DraftRow{Task: "dev"}),
			wantErr: "row project id is required",
		},
		{
			name:    "blank task",
			in:      draftWith(DraftRow{ProjectID: 10, Task: "   "}),
			wantErr: "row task is required",
		},
		{
			name: "duplicate project and task",
			in: draftWith(
				DraftRow{ProjectID: 10, Task: "dev"},
				DraftRow{ProjectID: 10, Task: "dev"},
			),
			wantErr: "duplicate row",
		},
		{
			name:    "negative hours",
			in:      draftWith(DraftRow{ProjectID: 10, Task: "dev", Hours: [7]float64{-1}}),
			wantErr: "day hours must be between",
		},
		{
			name:    "more than a day of hours in one bucket",
			in:      draftWith(DraftRow{ProjectID: 10, Task: "dev", Hours: [7]float64{25}}),
			wantErr: "day hours must be between",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDraft(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestRejectRequiresComment(t *testing.T) {
	svc := NewService(stubDirectory{}, nil)

	_, err := svc.Reject(nil, 1, 200, "   ")

	assert.True(t, IsValidation(err))
	assert.ErrorContains(t, err, "rejection comment is required")
}
