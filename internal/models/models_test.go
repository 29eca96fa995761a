package models

import (
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoiceSets(t *testing.T) {
	for _, n := range PositionNames() {
		assert.True(t, n.Valid(), n)
	}
	for _, n := range TaskTypeNames() {
		assert.True(t, n.Valid(), n)
	}
	for _, p := range Priorities() {
		assert.True(t, p.Valid(), p)
	}

	assert.Len(t, PositionNames(), 5)
	assert.Len(t, TaskTypeNames(), 4)
	assert.Len(t, Priorities(), 4)

	assert.False(t, PositionName("Project Manager").Valid())
	assert.False(t, PositionName("developer").Valid())
	assert.False(t, TaskTypeName("Feature").Valid())
	assert.False(t, Priority("High").Valid())
	assert.False(t, Priority("").Valid())
}

func TestPositionLabel(t *testing.T) {
	assert.Equal(t, "Project Manager", PositionProjectManager.Label())
	assert.Equal(t, "DevOps", PositionDevops.Label())
	assert.Equal(t, "QA", PositionQA.Label())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{name: "valid position", value: &Position{Name: PositionDesigner}},
		{name: "unknown position", value: &Position{Name: "CEO"}, wantErr: true},
		{name: "empty position", value: &Position{}, wantErr: true},
		{name: "valid task type", value: &TaskType{Name: TaskTypeRefactoring}},
		{name: "unknown task type", value: &TaskType{Name: "Chore"}, wantErr: true},
		{name: "valid task", value: &Task{Name: "Fix bug", Priority: PriorityCritical, AssigneeID: 1}},
		{name: "task without name", value: &Task{Priority: PriorityLow, AssigneeID: 1}, wantErr: true},
		{name: "task without priority", value: &Task{Name: "x", AssigneeID: 1}, wantErr: true},
		{name: "task with unknown priority", value: &Task{Name: "x", Priority: "Urgent", AssigneeID: 1}, wantErr: true},
		{name: "task without assignee", value: &Task{Name: "x", Priority: PriorityLow}, wantErr: true},
		{name: "worker", value: NewWorker("alice", "Alice", "Smith")},
		{name: "worker without username", value: NewWorker("", "Alice", "Smith"), wantErr: true},
		{name: "worker with bad email", value: &Worker{Username: "bob", Email: "nope"}, wantErr: true},
		{name: "profile", value: &Profile{WorkerID: 3, Phone: "+1 555"}},
		{name: "profile without worker", value: &Profile{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.value)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			var verrs validator.ValidationErrors
			assert.True(t, errors.As(err, &verrs))
		})
	}
}

func TestWorkerFormatting(t *testing.T) {
	w := NewWorker("jdoe", "John", "Doe")
	w.ID = 42

	assert.Equal(t, "John Doe", w.String())
	assert.Equal(t, "/workers/42/", w.URL())
	assert.True(t, w.IsActive)
}

func TestWorkerPassword(t *testing.T) {
	w := NewWorker("jdoe", "John", "Doe")
	assert.False(t, w.CheckPassword("secret"))

	require.NoError(t, w.SetPassword("secret"))
	assert.NotEqual(t, "secret", w.Password)
	assert.True(t, w.CheckPassword("secret"))
	assert.False(t, w.CheckPassword("other"))
}

func TestProfileString(t *testing.T) {
	p := Profile{}
	assert.Equal(t, "", p.String())

	p.Worker = NewWorker("jdoe", "John", "Doe")
	assert.Equal(t, "jdoe", p.String())
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 17, 45, 12, 99, time.FixedZone("X", 3*3600))
	d := DateOf(ts)

	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), d)
}
