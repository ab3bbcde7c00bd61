package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"chessbot/engine"
	"chessbot/record"
	"chessbot/rules"
)

type Server struct {
	games *Manager
	opts  engine.Options
	log   zerolog.Logger
}

func New(games *Manager, opts engine.Options, log zerolog.Logger) *Server {
	return &Server{games: games, opts: opts, log: log}
}

// newEngine gives every request its own searcher; searchers are not shared.
func (s *Server) newEngine(r *http.Request) *engine.Engine {
	return engine.New(s.opts, *s.requestLogger(r))
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "games": s.games.Len()})
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	g, err := s.games.NewGame(req.FEN)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var resp GameResponse
	_ = g.With(func(board *rules.Board, rec *record.Game) error {
		resp = newGameResponse(g.ID, board, rec)
		return nil
	})
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var resp GameResponse
	_ = g.With(func(board *rules.Board, rec *record.Game) error {
		resp = newGameResponse(g.ID, board, rec)
		return nil
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.games.Delete(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req MoveRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var resp GameResponse
	err = g.With(func(board *rules.Board, rec *record.Game) error {
		if _, err := play(board, rec, req.Move); err != nil {
			return err
		}
		resp = newGameResponse(g.ID, board, rec)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleThink(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req ThinkRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var resp ThinkResponse
	err = g.With(func(board *rules.Board, rec *record.Game) error {
		if board.IsGameOver() {
			return ErrGameOver
		}
		res, err := s.newEngine(r).Think(r.Context(), board, req.clock())
		if err != nil {
			return err
		}
		san, err := play(board, rec, res.Move.String())
		if err != nil {
			return err
		}
		resp = ThinkResponse{
			SearchResponse: newSearchResponse(res, san),
			Game:           newGameResponse(g.ID, board, rec),
		}
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePGN(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var pgn string
	_ = g.With(func(_ *rules.Board, rec *record.Game) error {
		pgn = rec.PGN()
		return nil
	})
	w.Header().Set("Content-Type", "application/x-chess-pgn")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, pgn)
}

// handleAnalyze searches a position without storing a game.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.FEN == "" {
		req.FEN = rules.Startpos
	}

	board, err := rules.ParseFEN(req.FEN)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if board.IsGameOver() {
		s.writeError(w, r, ErrGameOver)
		return
	}

	res, err := s.newEngine(r).Think(r.Context(), board, req.clock())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSearchResponse(res, ""))
}

var errBadRequest = errors.New("bad request")

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(errBadRequest, err)
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, rules.ErrInvalidFEN):
		return http.StatusBadRequest
	case errors.Is(err, ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrGameOver), errors.Is(err, engine.ErrNoLegalMoves):
		return http.StatusConflict
	case errors.Is(err, rules.ErrIllegalMove):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrSearchAborted):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.requestLogger(r).Error().Err(err).Msg("request-failed")
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
