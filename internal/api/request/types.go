package request

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	Mode    string   `json:"mode"`
	Players []string `json:"players,omitempty"`
}

// PlaceRequest is the request body for placing a tile
type PlaceRequest struct {
	Player int `json:"player"`
	Tile   int `json:"tile"`
	Row    int `json:"row"`
	Col    int `json:"col"`
}

// RemoveRequest is the request body for lifting a tile off the board
type RemoveRequest struct {
	Player int `json:"player"`
	Row    int `json:"row"`
	Col    int `json:"col"`
}

// FlipRequest is the request body for flipping a tile
type FlipRequest struct {
	Player int `json:"player"`
	Tile   int `json:"tile"`
}

// PlayerRequest is the request body for turn actions
type PlayerRequest struct {
	Player int `json:"player"`
}

// AutoPlayRequest is the request body for letting a bot play a turn
type AutoPlayRequest struct {
	Player   int    `json:"player"`
	Strategy string `json:"strategy,omitempty"`
	Moves    int    `json:"moves,omitempty"`
}
