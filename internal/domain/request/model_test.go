package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperatorCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"pending to in_progress", StatusPending, StatusInProgress, true},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"pending to on_hold", StatusPending, StatusOnHold, false},
		{"in_progress to on_hold", StatusInProgress, StatusOnHold, true},
		{"in_progress to completed", StatusInProgress, StatusCompleted, true},
		{"in_progress to pending", StatusInProgress, StatusPending, false},
		{"on_hold to in_progress", StatusOnHold, StatusInProgress, true},
		{"on_hold to completed", StatusOnHold, StatusCompleted, false},
		{"completed is terminal", StatusCompleted, StatusInProgress, false},
		{"completed to pending", StatusCompleted, StatusPending, false},
		{"same status is idempotent", StatusOnHold, StatusOnHold, true},
		{"completed to completed", StatusCompleted, StatusCompleted, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, OperatorCanTransition(tc.from, tc.to))
		})
	}
}

func TestEditable(t *testing.T) {
	assert.True(t, (&Request{Status: StatusPending}).Editable())
	assert.False(t, (&Request{Status: StatusInProgress}).Editable())
	assert.False(t, (&Request{Status: StatusOnHold}).Editable())
	assert.False(t, (&Request{Status: StatusCompleted}).Editable())
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusOnHold))
	assert.False(t, ValidStatus(Status("archived")))
	assert.False(t, ValidStatus(Status("")))
}
