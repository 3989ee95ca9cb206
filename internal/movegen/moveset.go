// Package movegen enumerates the squares a piece may move to or capture
// on. Generation is purely geometric: it does not look at whose turn it
// is and does not filter moves that leave a king attacked.
package movegen

import "github.com/benbeisheim/chessboard-backend/internal/model"

// MoveSet holds the destinations found for one piece. Quiet squares are
// empty; capture squares hold an opponent piece. The two never overlap.
type MoveSet struct {
	Quiet   []model.Position `json:"quiet"`
	Capture []model.Position `json:"capture"`
}

func NewMoveSet() MoveSet {
	return MoveSet{
		Quiet:   make([]model.Position, 0),
		Capture: make([]model.Position, 0),
	}
}

func (ms MoveSet) Len() int {
	return len(ms.Quiet) + len(ms.Capture)
}

func (ms MoveSet) Empty() bool {
	return ms.Len() == 0
}

func (ms MoveSet) IsQuiet(p model.Position) bool {
	return contains(ms.Quiet, p)
}

func (ms MoveSet) IsCapture(p model.Position) bool {
	return contains(ms.Capture, p)
}

// Contains reports whether p is any destination in the set.
func (ms MoveSet) Contains(p model.Position) bool {
	return ms.IsQuiet(p) || ms.IsCapture(p)
}

// merge appends other's destinations after ms's, keeping each list's order.
func (ms MoveSet) merge(other MoveSet) MoveSet {
	return MoveSet{
		Quiet:   append(append(make([]model.Position, 0, len(ms.Quiet)+len(other.Quiet)), ms.Quiet...), other.Quiet...),
		Capture: append(append(make([]model.Position, 0, len(ms.Capture)+len(other.Capture)), ms.Capture...), other.Capture...),
	}
}

func contains(list []model.Position, p model.Position) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}
