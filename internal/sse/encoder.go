package sse

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/mcoot/trampoline/internal/model"
)

// eventData is the JSON body of one SSE message
type eventData struct {
	Type      model.EventType `json:"type"`
	GameID    model.GameID    `json:"game_id"`
	PlayerID  *int            `json:"player_id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   any             `json:"payload,omitempty"`
}

type playerScore struct {
	PlayerID      int  `json:"player_id"`
	Score         int  `json:"score"`
	Finished      bool `json:"finished"`
	CompleteWords int  `json:"complete_words"`
}

// EventName converts an event type to its SSE event name, e.g. "turn-changed"
func EventName(t model.EventType) string {
	return strings.ReplaceAll(string(t), "_", "-")
}

// EncodeEvent renders an event as an SSE event name and a single-line JSON body
func EncodeEvent(event model.Event) (string, string, error) {
	data := eventData{
		Type:      event.Type,
		GameID:    event.GameID,
		Timestamp: event.Timestamp,
		Payload:   encodePayload(event.Payload),
	}
	if event.PlayerID != model.NoPlayer {
		id := int(event.PlayerID)
		data.PlayerID = &id
	}

	body, err := json.Marshal(data)
	if err != nil {
		return "", "", err
	}
	return EventName(event.Type), string(body), nil
}

func encodePayload(payload any) any {
	switch p := payload.(type) {
	case model.TileMovedPayload:
		return map[string]any{
			"tile":   int(p.Tile),
			"row":    p.Position.Row,
			"col":    p.Position.Col,
			"letter": string(p.Letter),
		}
	case model.TileFlippedPayload:
		return map[string]any{
			"tile":        int(p.Tile),
			"side":        int(p.Side),
			"letter":      string(p.Letter),
			"highlighted": p.Highlighted,
		}
	case model.ScoresUpdatedPayload:
		return map[string]any{
			"total":  p.Total,
			"scores": encodeScores(p.Scores),
		}
	case model.TurnChangedPayload:
		return map[string]any{
			"previous_player": int(p.PreviousPlayer),
			"current_player":  int(p.CurrentPlayer),
		}
	case model.GameCompletedPayload:
		return map[string]any{
			"scores": encodeScores(p.Scores),
			"winner": int(p.Winner),
		}
	default:
		return payload
	}
}

func encodeScores(states []model.PlayerState) []playerScore {
	out := make([]playerScore, len(states))
	for i, ps := range states {
		out[i] = playerScore{
			PlayerID:      int(ps.ID),
			Score:         ps.Score,
			Finished:      ps.Finished,
			CompleteWords: ps.CompleteWords,
		}
	}
	return out
}
