// Package common holds messages and commands shared by several screens.
package common

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/academy/internal/store"
)

// CompletedMsg carries the completed lesson IDs loaded from the store.
type CompletedMsg struct {
	IDs []int
	Err error
}

// Set returns the completed IDs as a lookup set.
func (m CompletedMsg) Set() map[int]bool {
	set := make(map[int]bool, len(m.IDs))
	for _, id := range m.IDs {
		set[id] = true
	}
	return set
}

// LoadCompleted reads completed lessons. A nil repo yields an empty result.
func LoadCompleted(repo store.ProgressRepo) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return CompletedMsg{}
		}
		ids, err := repo.Completed(context.Background())
		return CompletedMsg{IDs: ids, Err: err}
	}
}
