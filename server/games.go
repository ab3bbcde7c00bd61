package server

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"chessbot/record"
	"chessbot/rules"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameOver     = errors.New("game is over")
)

// Game is one board under play. mu serialises every use of Board: a search
// walks it with apply/undo and must be the only caller while it does.
type Game struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	board     *rules.Board
	record    *record.Game
	updatedAt time.Time
}

type Manager struct {
	mu    sync.RWMutex
	games map[string]*Game
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*Game)}
}

// NewGame starts a game at fen, or at the standard position when fen is empty.
func (m *Manager) NewGame(fen string) (*Game, error) {
	var board *rules.Board
	if fen == "" {
		board = rules.NewBoard()
	} else {
		var err error
		board, err = rules.ParseFEN(fen)
		if err != nil {
			return nil, err
		}
	}

	if fen != "" {
		fen = board.FEN()
	}
	rec, err := record.New(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rules.ErrInvalidFEN, err)
	}

	now := time.Now()
	g := &Game{
		ID:        uuid.NewString(),
		CreatedAt: now,
		board:     board,
		record:    rec,
		updatedAt: now,
	}

	m.mu.Lock()
	m.games[g.ID] = g
	m.mu.Unlock()
	return g, nil
}

func (m *Manager) Get(id string) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrGameNotFound
	}
	delete(m.games, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// With runs fn while holding the game's lock.
func (g *Game) With(fn func(board *rules.Board, rec *record.Game) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	err := fn(g.board, g.record)
	g.updatedAt = time.Now()
	return err
}

// play applies a move already known to be legal on board and mirrors it into
// the record, closing the record if the game just ended.
func play(board *rules.Board, rec *record.Game, uci string) (string, error) {
	if board.IsGameOver() {
		return "", ErrGameOver
	}
	m, err := board.ParseMove(uci)
	if err != nil {
		return "", err
	}
	san, err := rec.Push(m.String())
	if err != nil {
		return "", err
	}
	board.Apply(m)
	if board.IsGameOver() {
		if err := rec.Finish(board.Result()); err != nil {
			return san, err
		}
	}
	return san, nil
}
