package variant

// Definition is the on-disk form of a variant.
type Definition struct {
	Name             string        `toml:"name"`
	Description      string        `toml:"description"`
	Width            int           `toml:"width"`
	Height           int           `toml:"height"`
	StartingPosition string        `toml:"starting_position"`
	Promotions       []string      `toml:"promotions"` // Symbols; empty means every non-pawn, non-royal piece
	Pieces           []PieceDef    `toml:"pieces"`
	Castling         []CastlingDef `toml:"castling"`
}

// PieceDef describes one catalog piece. Capabilities combine freely.
type PieceDef struct {
	Symbol string   `toml:"symbol"`
	Name   string   `toml:"name"`
	Royal  bool     `toml:"royal"`
	Pawn   *PawnDef `toml:"pawn"`
	Leaper [][]int  `toml:"leaper"` // [file, rank] pairs
	Slider [][]int  `toml:"slider"` // [file, rank] directions
}

// PawnDef holds pawn geometry written from White's point of view.
type PawnDef struct {
	Forward        [][]int `toml:"forward"`
	Capture        [][]int `toml:"capture"`
	DoubleStepRank int     `toml:"double_step_rank"` // 1-based, counted from the mover's side; 0 disables
}

// CastlingDef describes one castling route. Squares use algebraic notation.
type CastlingDef struct {
	ID        string   `toml:"id"`
	Color     string   `toml:"color"` // "w" or "b"
	RoyalFrom string   `toml:"royal_from"`
	RoyalTo   string   `toml:"royal_to"`
	RookFrom  string   `toml:"rook_from"`
	RookTo    string   `toml:"rook_to"`
	Path      []string `toml:"path"`  // Squares the royal crosses, destination included
	Empty     []string `toml:"empty"` // Extra squares that must be empty but may be attacked
}

// Info is a summary for listings.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Source      string `json:"source"` // "builtin" or a file path
}
