package movegen

import "github.com/benbeisheim/chessboard-backend/internal/model"

// Func generates the destinations of one piece kind standing on from.
// opponent is the color whose pieces may be captured.
type Func func(from model.Position, opponent model.Color, b *model.Board) MoveSet

var generators = [...]Func{
	model.King:   King,
	model.Queen:  Queen,
	model.Rook:   Rook,
	model.Bishop: Bishop,
	model.Knight: Knight,
	model.Pawn:   Pawn,
}

// Generate dispatches to the generator for kind. Unknown kinds yield an
// empty set.
func Generate(kind model.PieceType, from model.Position, opponent model.Color, b *model.Board) MoveSet {
	if int(kind) >= len(generators) || generators[kind] == nil {
		return NewMoveSet()
	}
	return generators[kind](from, opponent, b)
}

// GenerateFor generates moves for whatever piece stands on from, treating
// the other color as the opponent. An empty or off-board square yields an
// empty set.
func GenerateFor(from model.Position, b *model.Board) MoveSet {
	piece := b.At(from)
	if piece.IsEmpty() {
		return NewMoveSet()
	}
	return Generate(piece.Type, from, piece.Color.Other(), b)
}

type direction struct {
	dRow, dCol int
}

// Scan order: left, right, down, up.
var rookDirs = []direction{{0, -1}, {0, 1}, {1, 0}, {-1, 0}}

// Scan order: up-right, up-left, down-right, down-left.
var bishopDirs = []direction{{-1, 1}, {-1, -1}, {1, 1}, {1, -1}}

func Rook(from model.Position, opponent model.Color, b *model.Board) MoveSet {
	return slide(from, opponent, b, rookDirs)
}

func Bishop(from model.Position, opponent model.Color, b *model.Board) MoveSet {
	return slide(from, opponent, b, bishopDirs)
}

// Queen is the rook set followed by the bishop set. The two are disjoint.
func Queen(from model.Position, opponent model.Color, b *model.Board) MoveSet {
	return Rook(from, opponent, b).merge(Bishop(from, opponent, b))
}

// slide walks each direction until the edge or the first occupied square,
// which is kept as a capture only when it holds an opponent piece.
func slide(from model.Position, opponent model.Color, b *model.Board, dirs []direction) MoveSet {
	ms := NewMoveSet()
	for _, dir := range dirs {
		target := from.Offset(dir.dRow, dir.dCol)
		for target.InBounds() {
			if !b.IsEmpty(target) {
				if b.ColorAt(target) == opponent {
					ms.Capture = append(ms.Capture, target)
				}
				break
			}
			ms.Quiet = append(ms.Quiet, target)
			target = target.Offset(dir.dRow, dir.dCol)
		}
	}
	return ms
}

func Knight(from model.Position, opponent model.Color, b *model.Board) MoveSet {
	return step(from, opponent, b, 2, func(dRow, dCol int) bool {
		return dRow == 2 && dCol == 1 || dRow == 1 && dCol == 2
	})
}

func King(from model.Position, opponent model.Color, b *model.Board) MoveSet {
	return step(from, opponent, b, 1, func(dRow, dCol int) bool {
		return true
	})
}

// step visits the box of the given reach around from in row-major order and
// keeps squares whose absolute offsets satisfy keep. Friendly squares are
// dropped.
func step(from model.Position, opponent model.Color, b *model.Board, reach int, keep func(dRow, dCol int) bool) MoveSet {
	ms := NewMoveSet()
	for row := from.Row - reach; row <= from.Row+reach; row++ {
		for col := from.Col - reach; col <= from.Col+reach; col++ {
			target := model.Position{Row: row, Col: col}
			if !target.InBounds() || target == from {
				continue
			}
			if !keep(abs(row-from.Row), abs(col-from.Col)) {
				continue
			}
			switch {
			case b.IsEmpty(target):
				ms.Quiet = append(ms.Quiet, target)
			case b.ColorAt(target) == opponent:
				ms.Capture = append(ms.Capture, target)
			}
		}
	}
	return ms
}

// Pawn advances toward the opponent's home rank: down the board when the
// opponent is white, up when it is black. The double step from the starting
// rank needs both squares ahead empty. Diagonal squares count only when an
// opponent piece stands there.
func Pawn(from model.Position, opponent model.Color, b *model.Board) MoveSet {
	ms := NewMoveSet()
	dir, startRow := -1, 6
	if opponent == model.White {
		dir, startRow = 1, 1
	}

	for _, dCol := range []int{dir, -dir} {
		target := from.Offset(dir, dCol)
		if target.InBounds() && !b.IsEmpty(target) && b.ColorAt(target) == opponent {
			ms.Capture = append(ms.Capture, target)
		}
	}

	next := from.Offset(dir, 0)
	if !next.InBounds() || !b.IsEmpty(next) {
		return ms
	}
	ms.Quiet = append(ms.Quiet, next)
	if from.Row == startRow {
		leap := from.Offset(2*dir, 0)
		if leap.InBounds() && b.IsEmpty(leap) {
			ms.Quiet = append(ms.Quiet, leap)
		}
	}
	return ms
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
