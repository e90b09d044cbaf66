package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempora.com/tempora/utils"
	"tempora.com/tempora/workflow/model"
)

func msg(id int32, parentID *int32) model.TimesheetChatMessage {
	return model.TimesheetChatMessage{ID: id, ParentID: parentID, Body: "m"}
}

func TestBuildThread(t *testing.T) {
	t.Run("nests replies under their parents", func(t *testing.T) {
		roots := buildThread([]model.TimesheetChatMessage{
			msg(1, nil),
			msg(2, utils.Ptr(int32(1))),
			msg(3, nil),
			msg(4, utils.Ptr(int32(2))),
		})

		require.Len(t, roots, 2)
		assert.Equal(t, int32(1), roots[0].ID)
		assert.Equal(t, int32(3), roots[1].ID)

		require.Len(t, roots[0].Replies, 1)
		assert.Equal(t, int32(2), roots[0].Replies[0].ID)
		require.Len(t, roots[0].Replies[0].Replies, 1)
		assert.Equal(t, int32(4), roots[0].Replies[0].Replies[0].ID)
	})

	t.Run("keeps posting order among siblings", func(t *testing.T) {
		roots := buildThread([]model.TimesheetChatMessage{
			msg(1, nil),
			msg(2, utils.Ptr(int32(1))),
			msg(3, utils.Ptr(int32(1))),
			msg(4, utils.Ptr(int32(1))),
		})

		require.Len(t, roots, 1)
		require.Len(t, roots[0].Replies, 3)
		assert.Equal(t, int32(2), roots[0].Replies[0].ID)
		assert.Equal(t, int32(3), roots[0].Replies[1].ID)
		assert.Equal(t, int32(4), roots[0].Replies[2].ID)
	})

	t.Run("reply with missing parent becomes a root", func(t *testing.T) {
		roots := buildThread([]model.TimesheetChatMessage{
			msg(1, nil),
			msg(2, utils.Ptr(int32(99))),
		})

		require.Len(t, roots, 2)
		assert.Equal(t, int32(2), roots[1].ID)
		assert.Empty(t, roots[1].Replies)
	})

	t.Run("empty thread", func(t *testing.T) {
		assert.Empty(t, buildThread(nil))
	})
}

func TestResolveRole(t *testing.T) {
	svc := NewService(stubDirectory{
		projectManagers:    map[int32][]int32{10: {200}},
		departments:        map[int32]*int32{100: utils.Ptr(int32(1))},
		departmentManagers: map[int32][]int32{1: {300}},
		generalManagers:    []int32{400},
	}, nil)
	ts := &model.Timesheet{
		ID:         1,
		EmployeeID: 100,
		Rows:       []model.TimesheetRow{{ProjectID: 10, Task: "dev"}},
	}

	tests := []struct {
		name     string
		personID int32
		wantRole model.ChatRole
		wantOK   bool
	}{
		{"owner", 100, model.RoleEmployee, true},
		{"project manager", 200, model.RolePM, true},
		{"department manager", 300, model.RoleDM, true},
		{"general manager", 400, model.RoleGM, true},
		{"unrelated employee", 999, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, ok, err := svc.ResolveRole(nil, tt.personID, ts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRole, role)
		})
	}
}

func TestRequireParticipantAdmitsOwner(t *testing.T) {
	svc := NewService(stubDirectory{}, nil)
	ts := &model.Timesheet{ID: 5, EmployeeID: 100}

	// the same predicate fronts the detail, history and message reads
	assert.NoError(t, svc.requireParticipant(nil, 100, ts))
}
