package server

import (
	"time"

	"chessbot/engine"
	"chessbot/record"
	"chessbot/rules"
)

type NewGameRequest struct {
	FEN string `json:"fen"`
}

type MoveRequest struct {
	Move string `json:"move"`
}

// ThinkRequest carries the clocks the depth policy reads.
type ThinkRequest struct {
	RemainingMs         int64 `json:"remaining_ms"`
	OpponentRemainingMs int64 `json:"opponent_remaining_ms"`
}

func (r ThinkRequest) clock() engine.Clock {
	return engine.NewTurnClock(
		time.Duration(r.RemainingMs)*time.Millisecond,
		time.Duration(r.OpponentRemainingMs)*time.Millisecond,
	)
}

type AnalyzeRequest struct {
	FEN string `json:"fen"`
	ThinkRequest
}

type GameResponse struct {
	ID         string   `json:"id"`
	FEN        string   `json:"fen"`
	SideToMove string   `json:"side_to_move"`
	Status     string   `json:"status"` // playing, checkmate, draw
	Result     string   `json:"result"`
	InCheck    bool     `json:"in_check"`
	Moves      []string `json:"moves"`
	LegalMoves []string `json:"legal_moves"`
}

type SearchResponse struct {
	Move        string `json:"move"`
	SAN         string `json:"san,omitempty"`
	Score       int32  `json:"score"`
	ScoreText   string `json:"score_text"`
	Depth       int    `json:"depth"`
	Nodes       uint64 `json:"nodes"`
	Evaluations uint64 `json:"evaluations"`
}

type ThinkResponse struct {
	SearchResponse
	Game GameResponse `json:"game"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func gameStatus(board *rules.Board) string {
	switch {
	case board.IsCheckmate():
		return "checkmate"
	case board.IsDraw():
		return "draw"
	}
	return "playing"
}

func newGameResponse(id string, board *rules.Board, rec *record.Game) GameResponse {
	legal := board.LegalMoves()
	ucis := make([]string, len(legal))
	for i, m := range legal {
		ucis[i] = m.String()
	}
	return GameResponse{
		ID:         id,
		FEN:        board.FEN(),
		SideToMove: board.SideToMove().String(),
		Status:     gameStatus(board),
		Result:     board.Result(),
		InCheck:    board.IsCheck(),
		Moves:      rec.SANs(),
		LegalMoves: ucis,
	}
}

func newSearchResponse(res engine.SearchResult, san string) SearchResponse {
	return SearchResponse{
		Move:        res.Move.String(),
		SAN:         san,
		Score:       res.Score,
		ScoreText:   engine.FormatScore(res.Score),
		Depth:       res.Depth,
		Nodes:       res.Stats.Nodes,
		Evaluations: res.Stats.Evaluations,
	}
}
