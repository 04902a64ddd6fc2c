package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionManager_Transitions(t *testing.T) {
	m := NewSessionManager()

	assert.Equal(t, StateIdle, m.Get(1))

	m.Set(1, StateAwaitingPlaylistLink)
	assert.Equal(t, StateAwaitingPlaylistLink, m.Get(1))

	m.Set(1, StateAwaitingDeletionChoice)
	assert.Equal(t, StateAwaitingDeletionChoice, m.Get(1))

	// Универсальная отмена возвращает в Idle из любого состояния
	m.Reset(1)
	assert.Equal(t, StateIdle, m.Get(1))
}

func TestSessionManager_ChatsAreIndependent(t *testing.T) {
	m := NewSessionManager()

	m.Set(1, StateAwaitingPlaylistLink)
	m.Set(2, StateAwaitingDeletionChoice)

	assert.Equal(t, StateAwaitingPlaylistLink, m.Get(1))
	assert.Equal(t, StateAwaitingDeletionChoice, m.Get(2))

	m.Reset(1)
	assert.Equal(t, StateIdle, m.Get(1))
	assert.Equal(t, StateAwaitingDeletionChoice, m.Get(2))
}

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "awaiting_playlist_link", StateAwaitingPlaylistLink.String())
	assert.Equal(t, "awaiting_deletion_choice", StateAwaitingDeletionChoice.String())
}
