package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHistoryAppendPreservesOrder(t *testing.T) {
	h := History{}
	h = h.Append(HistoryEntry{ID: "1", Action: HistoryActionCreated})
	h = h.Append(HistoryEntry{ID: "2", Action: HistoryActionUpdated})
	h = h.Append(HistoryEntry{ID: "3", Action: HistoryActionDeleted})

	require.Len(t, h, 3)
	require.Equal(t, HistoryActionCreated, h[0].Action)
	require.Equal(t, HistoryActionUpdated, h[1].Action)
	require.Equal(t, HistoryActionDeleted, h[2].Action)
}

func TestHistoryAppendDoesNotMutateReceiver(t *testing.T) {
	base := History{
		{ID: "1", Action: HistoryActionCreated},
		{ID: "2", Action: HistoryActionDeleted},
	}

	first := base.Append(HistoryEntry{ID: "3", Action: HistoryActionUpdated})
	second := base.Append(HistoryEntry{ID: "4", Action: HistoryActionUpdated})

	require.Len(t, base, 2)
	require.Equal(t, "3", first[2].ID)
	require.Equal(t, "4", second[2].ID)
}

func TestHistoryLast(t *testing.T) {
	require.Nil(t, History{}.Last())

	h := History{
		{ID: "1", Action: HistoryActionCreated},
		{ID: "2", Action: HistoryActionDeleted, UpdatedAt: time.Now()},
	}
	last := h.Last()
	require.NotNil(t, last)
	require.Equal(t, "2", last.ID)
	require.Equal(t, HistoryActionDeleted, last.Action)
}

func TestUserDisplayName(t *testing.T) {
	u := User{FirstName: "Jane", LastName: "Cooper"}
	require.Equal(t, "Jane Cooper", u.DisplayName())
}
