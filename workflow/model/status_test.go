package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusEditable(t *testing.T) {
	tests := []struct {
		status   Status
		editable bool
		terminal bool
	}{
		{StatusDraft, true, false},
		{StatusReopened, true, false},
		{StatusInReview, false, false},
		{StatusApproved, false, true},
		{StatusRejected, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.editable, tt.status.Editable())
			assert.Equal(t, tt.terminal, tt.status.Terminal())
		})
	}
}

func TestStageNext(t *testing.T) {
	next, ok := StagePM.Next()
	assert.True(t, ok)
	assert.Equal(t, StageDM, next)

	next, ok = StageDM.Next()
	assert.True(t, ok)
	assert.Equal(t, StageGM, next)

	_, ok = StageGM.Next()
	assert.False(t, ok)
}
