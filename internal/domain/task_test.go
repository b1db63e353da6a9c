package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/remind-api/internal/domain"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    domain.Status
		wantErr bool
	}{
		{input: "ToDo", want: domain.StatusToDo},
		{input: "InProgress", want: domain.StatusInProgress},
		{input: "Done", want: domain.StatusDone},
		{input: "done", wantErr: true},
		{input: "", wantErr: true},
		{input: "Archived", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := domain.ParseStatus(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRecurrence(t *testing.T) {
	for _, valid := range []string{"None", "Daily", "Weekly", "Monthly"} {
		got, err := domain.ParseRecurrence(valid)
		require.NoError(t, err)
		assert.Equal(t, domain.Recurrence(valid), got)
	}

	for _, invalid := range []string{"", "daily", "Yearly", "Fortnightly"} {
		_, err := domain.ParseRecurrence(invalid)
		assert.ErrorIs(t, err, domain.ErrInvalidRecurrence)
	}
}

func TestParsePriority(t *testing.T) {
	for _, valid := range []string{"Low", "Medium", "High"} {
		got, err := domain.ParsePriority(valid)
		require.NoError(t, err)
		assert.Equal(t, domain.Priority(valid), got)
	}

	_, err := domain.ParsePriority("Urgent")
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)
}

func TestParseDueDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		d, err := domain.ParseDueDate("2025-03-01")
		require.NoError(t, err)
		assert.Equal(t, "2025-03-01", d.Format(domain.DueDateLayout))
	})

	for _, invalid := range []string{"", "03/01/2025", "2025-13-01", "2025-02-30", "tomorrow"} {
		t.Run("invalid "+invalid, func(t *testing.T) {
			_, err := domain.ParseDueDate(invalid)
			assert.ErrorIs(t, err, domain.ErrInvalidDueDate)
		})
	}
}

func TestNewTask(t *testing.T) {
	t.Run("valid task", func(t *testing.T) {
		task, err := domain.NewTask(
			"bob", "Pay rent",
			domain.StatusToDo, "2025-03-01",
			false, "bills", domain.PriorityHigh, domain.RecurrenceMonthly,
		)
		require.NoError(t, err)
		assert.NotEqual(t, task.ID.String(), "00000000-0000-0000-0000-000000000000")
		assert.Equal(t, "bob", task.Owner)
		assert.True(t, task.IsRecurring())
	})

	t.Run("empty title rejected", func(t *testing.T) {
		_, err := domain.NewTask(
			"bob", "   ",
			domain.StatusToDo, "2025-03-01",
			false, "", domain.PriorityLow, domain.RecurrenceNone,
		)
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	})

	t.Run("invalid due date rejected", func(t *testing.T) {
		_, err := domain.NewTask(
			"bob", "Pay rent",
			domain.StatusToDo, "soon",
			false, "", domain.PriorityLow, domain.RecurrenceNone,
		)
		assert.ErrorIs(t, err, domain.ErrInvalidDueDate)
	})

	t.Run("empty owner rejected", func(t *testing.T) {
		_, err := domain.NewTask(
			"", "Pay rent",
			domain.StatusToDo, "2025-03-01",
			false, "", domain.PriorityLow, domain.RecurrenceNone,
		)
		assert.ErrorIs(t, err, domain.ErrEmptyOwner)
	})

	t.Run("unknown enum values rejected", func(t *testing.T) {
		_, err := domain.NewTask(
			"bob", "Pay rent",
			domain.Status("Someday"), "2025-03-01",
			false, "", domain.PriorityLow, domain.RecurrenceNone,
		)
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})
}

func TestTaskIsRecurring(t *testing.T) {
	task := domain.Task{Recurrence: domain.RecurrenceNone}
	assert.False(t, task.IsRecurring())

	task.Recurrence = domain.RecurrenceDaily
	assert.True(t, task.IsRecurring())
}
