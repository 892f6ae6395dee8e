// Package variant describes chess-like games: board size, piece catalog,
// starting position and castling routes. A Config is immutable once built
// and is shared read-only by every position derived from it.
package variant

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"chessvariant/internal/board"
)

var (
	ErrInvalidVariant  = errors.New("invalid variant")
	ErrVariantNotFound = errors.New("variant not found")
)

// Pawn moves forward without capturing and captures on separate offsets.
// Offsets are written from White's point of view. A pawn with a double step
// has exactly one forward offset, which also locates the pawn behind an en
// passant target; otherwise the first forward offset is used for that.
type Pawn struct {
	Forward        []board.Offset
	Capture        []board.Offset
	DoubleStepRank int
}

// Leaper jumps to a fixed set of offsets.
type Leaper struct {
	Offsets []board.Offset
}

// Slider moves repeatedly along each direction until blocked.
type Slider struct {
	Directions []board.Offset
}

// Piece is a catalog entry. A nil capability pointer means the piece lacks it.
type Piece struct {
	Symbol byte // Lowercase letter
	Name   string
	Royal  bool
	Pawn   *Pawn
	Leaper *Leaper
	Slider *Slider
}

// Letter returns the piece letter as written for color c.
func (p *Piece) Letter(c board.Color) byte {
	if c == board.White {
		return p.Symbol - 'a' + 'A'
	}
	return p.Symbol
}

// SlidesAlong reports whether the piece slides in direction d.
func (p *Piece) SlidesAlong(d board.Offset) bool {
	return p.Slider != nil && slices.Contains(p.Slider.Directions, d)
}

// LeapsBy reports whether the piece jumps by o.
func (p *Piece) LeapsBy(o board.Offset) bool {
	return p.Leaper != nil && slices.Contains(p.Leaper.Offsets, o)
}

// CapturesBy reports whether the piece has pawn capture offset o.
func (p *Piece) CapturesBy(o board.Offset) bool {
	return p.Pawn != nil && slices.Contains(p.Pawn.Capture, o)
}

// CastlingRoute relocates a royal piece and a rook for one color.
type CastlingRoute struct {
	ID        string
	Color     board.Color
	RoyalFrom board.Square
	RoyalTo   board.Square
	RookFrom  board.Square
	RookTo    board.Square
	Path      []board.Square // Must be empty and unattacked
	Empty     []board.Square // Must be empty only
}

// Config is an immutable game variant.
type Config struct {
	name        string
	description string
	dims        board.Dimensions
	start       string
	pieces      []*Piece
	bySymbol    map[byte]*Piece
	promotions  []*Piece
	routes      []CastlingRoute
	routeIndex  map[string]int

	// Geometry unions over the whole catalog, used for reverse attack lookups.
	sliderDirections []board.Offset
	leaperOffsets    []board.Offset
	captureOffsets   []board.Offset
}

// New validates def and builds a Config from it.
func New(def Definition) (*Config, error) {
	if def.Width < 1 || def.Width > board.MaxWidth {
		return nil, fmt.Errorf("%w: width %d outside 1..%d", ErrInvalidVariant, def.Width, board.MaxWidth)
	}
	if def.Height < 1 {
		return nil, fmt.Errorf("%w: height %d", ErrInvalidVariant, def.Height)
	}
	if len(def.Pieces) == 0 {
		return nil, fmt.Errorf("%w: no pieces", ErrInvalidVariant)
	}
	if strings.TrimSpace(def.StartingPosition) == "" {
		return nil, fmt.Errorf("%w: missing starting_position", ErrInvalidVariant)
	}

	cfg := &Config{
		name:        def.Name,
		description: def.Description,
		dims:        board.Dimensions{Width: def.Width, Height: def.Height},
		start:       def.StartingPosition,
		bySymbol:    make(map[byte]*Piece, len(def.Pieces)),
		routeIndex:  make(map[string]int, len(def.Castling)),
	}

	for _, pd := range def.Pieces {
		piece, err := buildPiece(pd, cfg.dims)
		if err != nil {
			return nil, err
		}
		if _, dup := cfg.bySymbol[piece.Symbol]; dup {
			return nil, fmt.Errorf("%w: duplicate piece symbol %q", ErrInvalidVariant, pd.Symbol)
		}
		cfg.bySymbol[piece.Symbol] = piece
		cfg.pieces = append(cfg.pieces, piece)
	}

	if err := cfg.buildPromotions(def.Promotions); err != nil {
		return nil, err
	}

	for _, cd := range def.Castling {
		route, err := buildRoute(cd, cfg.dims)
		if err != nil {
			return nil, err
		}
		if _, dup := cfg.routeIndex[route.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate castling route %q", ErrInvalidVariant, route.ID)
		}
		// Route ids are written back to back in a position string.
		for _, other := range cfg.routes {
			if strings.HasPrefix(other.ID, route.ID) || strings.HasPrefix(route.ID, other.ID) {
				return nil, fmt.Errorf("%w: castling routes %q and %q share a prefix", ErrInvalidVariant, other.ID, route.ID)
			}
		}
		cfg.routeIndex[route.ID] = len(cfg.routes)
		cfg.routes = append(cfg.routes, route)
	}

	for _, p := range cfg.pieces {
		if p.Slider != nil {
			cfg.sliderDirections = appendUnique(cfg.sliderDirections, p.Slider.Directions...)
		}
		if p.Leaper != nil {
			cfg.leaperOffsets = appendUnique(cfg.leaperOffsets, p.Leaper.Offsets...)
		}
		if p.Pawn != nil {
			cfg.captureOffsets = appendUnique(cfg.captureOffsets, p.Pawn.Capture...)
		}
	}

	return cfg, nil
}

func buildPiece(pd PieceDef, dims board.Dimensions) (*Piece, error) {
	if len(pd.Symbol) != 1 || !isLetter(pd.Symbol[0]) {
		return nil, fmt.Errorf("%w: piece symbol %q must be a single letter", ErrInvalidVariant, pd.Symbol)
	}
	piece := &Piece{
		Symbol: toLower(pd.Symbol[0]),
		Name:   pd.Name,
		Royal:  pd.Royal,
	}

	if pd.Pawn != nil {
		forward, err := parseOffsets(pd.Symbol, "pawn.forward", pd.Pawn.Forward)
		if err != nil {
			return nil, err
		}
		capture, err := parseOffsets(pd.Symbol, "pawn.capture", pd.Pawn.Capture)
		if err != nil {
			return nil, err
		}
		if len(forward) == 0 || len(capture) == 0 {
			return nil, fmt.Errorf("%w: pawn %q needs forward and capture offsets", ErrInvalidVariant, pd.Symbol)
		}
		if pd.Pawn.DoubleStepRank < 0 || pd.Pawn.DoubleStepRank > dims.Height {
			return nil, fmt.Errorf("%w: pawn %q double_step_rank %d", ErrInvalidVariant, pd.Symbol, pd.Pawn.DoubleStepRank)
		}
		if pd.Pawn.DoubleStepRank > 0 && len(forward) != 1 {
			return nil, fmt.Errorf("%w: pawn %q with a double step needs a single forward offset", ErrInvalidVariant, pd.Symbol)
		}
		piece.Pawn = &Pawn{Forward: forward, Capture: capture, DoubleStepRank: pd.Pawn.DoubleStepRank}
	}

	if len(pd.Leaper) > 0 {
		offsets, err := parseOffsets(pd.Symbol, "leaper", pd.Leaper)
		if err != nil {
			return nil, err
		}
		piece.Leaper = &Leaper{Offsets: offsets}
	}

	if len(pd.Slider) > 0 {
		dirs, err := parseOffsets(pd.Symbol, "slider", pd.Slider)
		if err != nil {
			return nil, err
		}
		piece.Slider = &Slider{Directions: dirs}
	}

	if piece.Pawn == nil && piece.Leaper == nil && piece.Slider == nil {
		return nil, fmt.Errorf("%w: piece %q cannot move", ErrInvalidVariant, pd.Symbol)
	}
	return piece, nil
}

func parseOffsets(symbol, field string, pairs [][]int) ([]board.Offset, error) {
	offsets := make([]board.Offset, 0, len(pairs))
	for _, pair := range pairs {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: piece %q %s entry %v is not a [file, rank] pair", ErrInvalidVariant, symbol, field, pair)
		}
		if pair[0] == 0 && pair[1] == 0 {
			return nil, fmt.Errorf("%w: piece %q %s has a zero offset", ErrInvalidVariant, symbol, field)
		}
		offsets = append(offsets, board.Offset{File: pair[0], Rank: pair[1]})
	}
	return offsets, nil
}

func (c *Config) buildPromotions(symbols []string) error {
	if len(symbols) == 0 {
		for _, p := range c.pieces {
			if p.Pawn == nil && !p.Royal {
				c.promotions = append(c.promotions, p)
			}
		}
		return nil
	}
	for _, s := range symbols {
		if len(s) != 1 {
			return fmt.Errorf("%w: promotion symbol %q", ErrInvalidVariant, s)
		}
		p := c.Piece(s[0])
		if p == nil || p.Pawn != nil {
			return fmt.Errorf("%w: promotion to %q is not a non-pawn catalog piece", ErrInvalidVariant, s)
		}
		c.promotions = append(c.promotions, p)
	}
	return nil
}

func buildRoute(cd CastlingDef, dims board.Dimensions) (CastlingRoute, error) {
	route := CastlingRoute{ID: cd.ID}
	if cd.ID == "" || cd.ID == "-" || strings.ContainsAny(cd.ID, " /") {
		return route, fmt.Errorf("%w: castling route id %q", ErrInvalidVariant, cd.ID)
	}

	switch cd.Color {
	case "w", "W":
		route.Color = board.White
	case "b", "B":
		route.Color = board.Black
	default:
		return route, fmt.Errorf("%w: castling route %q color %q", ErrInvalidVariant, cd.ID, cd.Color)
	}

	square := func(field, s string) (board.Square, error) {
		sq, err := dims.ParseSquare(s)
		if err != nil || sq == board.NoSquare {
			return board.NoSquare, fmt.Errorf("%w: castling route %q %s %q", ErrInvalidVariant, cd.ID, field, s)
		}
		return sq, nil
	}

	var err error
	if route.RoyalFrom, err = square("royal_from", cd.RoyalFrom); err != nil {
		return route, err
	}
	if route.RoyalTo, err = square("royal_to", cd.RoyalTo); err != nil {
		return route, err
	}
	if route.RookFrom, err = square("rook_from", cd.RookFrom); err != nil {
		return route, err
	}
	if route.RookTo, err = square("rook_to", cd.RookTo); err != nil {
		return route, err
	}

	reachesTarget := false
	for _, s := range cd.Path {
		sq, err := square("path", s)
		if err != nil {
			return route, err
		}
		reachesTarget = reachesTarget || sq == route.RoyalTo
		route.Path = append(route.Path, sq)
	}
	if !reachesTarget {
		return route, fmt.Errorf("%w: castling route %q path must include royal_to", ErrInvalidVariant, cd.ID)
	}
	for _, s := range cd.Empty {
		sq, err := square("empty", s)
		if err != nil {
			return route, err
		}
		route.Empty = append(route.Empty, sq)
	}
	return route, nil
}

// Name returns the variant name.
func (c *Config) Name() string { return c.name }

// Description returns the free-form description.
func (c *Config) Description() string { return c.description }

// Dimensions returns the board size.
func (c *Config) Dimensions() board.Dimensions { return c.dims }

// StartingPosition returns the position string a new game starts from.
func (c *Config) StartingPosition() string { return c.start }

// Pieces returns the catalog in declaration order.
func (c *Config) Pieces() []*Piece { return c.pieces }

// Promotions returns the pieces a pawn may promote to.
func (c *Config) Promotions() []*Piece { return c.promotions }

// Piece resolves a symbol case-insensitively. It returns nil if unknown.
func (c *Config) Piece(symbol byte) *Piece {
	return c.bySymbol[toLower(symbol)]
}

// Routes returns the castling route catalog in declaration order.
func (c *Config) Routes() []CastlingRoute { return c.routes }

// Route looks up a castling route by id.
func (c *Config) Route(id string) (*CastlingRoute, bool) {
	i, ok := c.routeIndex[id]
	if !ok {
		return nil, false
	}
	return &c.routes[i], true
}

// SliderDirections returns every slider direction declared in the catalog.
func (c *Config) SliderDirections() []board.Offset { return c.sliderDirections }

// LeaperOffsets returns every leaper offset declared in the catalog.
func (c *Config) LeaperOffsets() []board.Offset { return c.leaperOffsets }

// CaptureOffsets returns every pawn capture offset declared in the catalog.
func (c *Config) CaptureOffsets() []board.Offset { return c.captureOffsets }

// Info returns a listing summary.
func (c *Config) Info() Info {
	return Info{
		Name:        c.name,
		Description: c.description,
		Width:       c.dims.Width,
		Height:      c.dims.Height,
	}
}

func appendUnique(dst []board.Offset, src ...board.Offset) []board.Offset {
	for _, o := range src {
		if !slices.Contains(dst, o) {
			dst = append(dst, o)
		}
	}
	return dst
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
