package turn

import (
	"log/slog"

	"github.com/mcoot/trampoline/internal/model"
)

// Player count bounds for a rotation
const (
	MinPlayers = 2
	MaxPlayers = 4
)

// NewState creates the rotation for n players, all unfinished, player 0 first
func NewState(n int) (model.TurnState, error) {
	if n < MinPlayers || n > MaxPlayers {
		return model.TurnState{}, model.ErrInvalidPlayerCount
	}
	return model.TurnState{
		Current:  0,
		Finished: make([]bool, n),
	}, nil
}

// Manager drives a persisted TurnState.
// Observers run synchronously, in subscription order, before the triggering call returns.
type Manager struct {
	state  *model.TurnState
	logger *slog.Logger

	turnChanged   []func(previous, current model.PlayerID)
	gameCompleted []func()
}

// NewManager wraps a turn state owned by the caller
func NewManager(state *model.TurnState, logger *slog.Logger) *Manager {
	return &Manager{
		state:  state,
		logger: logger.With(slog.String("component", "turn")),
	}
}

// OnTurnChanged subscribes to turn transitions
func (m *Manager) OnTurnChanged(fn func(previous, current model.PlayerID)) {
	m.turnChanged = append(m.turnChanged, fn)
}

// OnGameCompleted subscribes to the terminal transition
func (m *Manager) OnGameCompleted(fn func()) {
	m.gameCompleted = append(m.gameCompleted, fn)
}

// Start announces the opening turn. Calling it again is a no-op.
func (m *Manager) Start() {
	if m.state.Started {
		return
	}
	m.state.Started = true
	m.state.Current = 0
	m.notifyTurnChanged(model.NoPlayer, 0)
}

// Current returns the active player
func (m *Manager) Current() model.PlayerID {
	return m.state.Current
}

// PlayerCount returns the number of seats in the rotation
func (m *Manager) PlayerCount() int {
	return m.state.PlayerCount()
}

// IsComplete reports whether every player has finished
func (m *Manager) IsComplete() bool {
	return m.state.Complete
}

// IsFinished reports a player's finished flag; out-of-range ids read as false
func (m *Manager) IsFinished(id model.PlayerID) bool {
	if !m.valid(id) {
		m.logger.Warn("finished query for invalid player", slog.Int("player_id", int(id)))
		return false
	}
	return m.state.Finished[id]
}

// EndCurrentTurn passes play to the next unfinished player in rotation.
// When nobody is left the game completes, exactly once.
func (m *Manager) EndCurrentTurn() {
	if m.state.Complete {
		return
	}

	n := m.state.PlayerCount()
	previous := m.state.Current
	for i := 1; i <= n; i++ {
		candidate := model.PlayerID((int(previous) + i) % n)
		if !m.state.Finished[candidate] {
			m.state.Current = candidate
			m.notifyTurnChanged(previous, candidate)
			return
		}
	}

	m.state.Complete = true
	m.logger.Info("all players finished")
	for _, fn := range m.gameCompleted {
		fn()
	}
}

// SetPlayerFinished updates a player's finished flag.
// Finishing the active player ends their turn.
func (m *Manager) SetPlayerFinished(id model.PlayerID, finished bool) error {
	if !m.valid(id) {
		m.logger.Warn("finish for invalid player", slog.Int("player_id", int(id)))
		return model.ErrPlayerNotFound
	}

	wasFinished := m.state.Finished[id]
	m.state.Finished[id] = finished
	if finished && !wasFinished && id == m.state.Current {
		m.EndCurrentTurn()
	}
	return nil
}

// ForcePlayerTurn hands the turn directly to a player who has not finished.
// Forcing the current player announces the turn again.
func (m *Manager) ForcePlayerTurn(id model.PlayerID) error {
	if !m.valid(id) {
		m.logger.Warn("force turn for invalid player", slog.Int("player_id", int(id)))
		return model.ErrPlayerNotFound
	}
	if m.state.Finished[id] {
		m.logger.Warn("force turn for finished player", slog.Int("player_id", int(id)))
		return model.ErrPlayerFinished
	}
	if m.state.Complete {
		return model.ErrGameComplete
	}

	previous := m.state.Current
	m.state.Current = id
	m.notifyTurnChanged(previous, id)
	return nil
}

func (m *Manager) valid(id model.PlayerID) bool {
	return id >= 0 && int(id) < m.state.PlayerCount()
}

func (m *Manager) notifyTurnChanged(previous, current model.PlayerID) {
	m.logger.Debug("turn changed",
		slog.Int("previous_player", int(previous)),
		slog.Int("current_player", int(current)),
	)
	for _, fn := range m.turnChanged {
		fn(previous, current)
	}
}
