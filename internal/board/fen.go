package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPlacement is wrapped by every placement parsing failure.
var ErrInvalidPlacement = errors.New("invalid placement")

// ParsePlacement parses the piece placement field of a FEN string.
func ParsePlacement(placement string) (Board, error) {
	var b Board

	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return b, fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidPlacement, len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if file > 7 {
				return b, fmt.Errorf("%w: too many squares in rank %d", ErrInvalidPlacement, rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			piece := PieceFromChar(c)
			if piece == NoPiece {
				return b, fmt.Errorf("%w: invalid piece character %q", ErrInvalidPlacement, c)
			}
			b.SetPiece(piece, NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return b, fmt.Errorf("%w: rank %d has %d squares", ErrInvalidPlacement, rank+1, file)
		}
	}

	return b, nil
}

// Placement returns the FEN piece placement field of the board.
func (b *Board) Placement() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := b.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}
