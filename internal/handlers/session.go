// Package handlers содержит состояние диалогов пользователей.
package handlers

import "sync"

// SessionState представляет состояние диалога с пользователем
type SessionState int

// Состояния диалога
const (
	// StateIdle — открытого диалога нет
	StateIdle SessionState = iota

	// StateAwaitingPlaylistLink — бот ждет ссылку на плейлист после /add
	StateAwaitingPlaylistLink

	// StateAwaitingDeletionChoice — бот ждет выбор плейлиста после /delete
	StateAwaitingDeletionChoice
)

// String возвращает имя состояния
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingPlaylistLink:
		return "awaiting_playlist_link"
	case StateAwaitingDeletionChoice:
		return "awaiting_deletion_choice"
	default:
		return "unknown"
	}
}

// SessionManager хранит состояния диалогов по чатам.
// Из любого состояния возможен переход в StateIdle через Reset.
type SessionManager struct {
	mu     sync.RWMutex
	states map[int64]SessionState
}

// NewSessionManager создает новый менеджер сессий
func NewSessionManager() *SessionManager {
	return &SessionManager{
		states: make(map[int64]SessionState),
	}
}

// Get возвращает состояние диалога для чата
func (m *SessionManager) Get(chatID int64) SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.states[chatID]
}

// Set устанавливает состояние диалога для чата
func (m *SessionManager) Set(chatID int64, state SessionState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state == StateIdle {
		delete(m.states, chatID)
		return
	}
	m.states[chatID] = state
}

// Reset закрывает диалог для чата
func (m *SessionManager) Reset(chatID int64) {
	m.Set(chatID, StateIdle)
}
