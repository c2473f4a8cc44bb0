package engine

import "fmt"

// CanMove reports whether the block can be moved in the given direction
func (s PuzzleState) CanMove(d Direction) bool {
	switch d {
	case Up:
		return s.canMoveUp()
	case Right:
		return s.canMoveRight()
	case Down:
		return s.canMoveDown()
	case Left:
		return s.canMoveLeft()
	}
	return false
}

func (s PuzzleState) canMoveUp() bool {
	block := s.Position(Block)
	return block.Row > 0 && s.isEmpty(block.Move(Up))
}

func (s PuzzleState) canMoveRight() bool {
	block := s.Position(Block)
	if block.Col == BoardSize-1 {
		return false
	}
	right := block.Move(Right)
	// The black shoe can be stepped on unless the block stands on the blue shoe
	return s.isEmpty(right) ||
		(s.Position(BlackShoe) == right && !s.samePosition(Block, BlueShoe))
}

func (s PuzzleState) canMoveDown() bool {
	block := s.Position(Block)
	if block.Row == BoardSize-1 {
		return false
	}
	down := block.Move(Down)
	if s.isEmpty(down) {
		return true
	}
	if s.samePosition(BlackShoe, Block) {
		return false
	}
	return s.Position(BlueShoe) == down ||
		(s.Position(RedShoe) == down && !s.samePosition(BlueShoe, Block))
}

func (s PuzzleState) canMoveLeft() bool {
	block := s.Position(Block)
	return block.Col > 0 && s.isEmpty(block.Move(Left))
}

// LegalMoves returns every direction the block can currently move in
func (s PuzzleState) LegalMoves() MoveSet {
	var moves MoveSet
	for _, d := range Directions() {
		if s.CanMove(d) {
			moves = moves.Add(d)
		}
	}
	return moves
}

// Move moves the block in the given direction together with the shoes it
// carries. It returns ErrIllegalMove and leaves the state untouched when
// CanMove(d) is false.
func (s *PuzzleState) Move(d Direction) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownDirection, int(d))
	}
	if !s.CanMove(d) {
		return fmt.Errorf("%w: %s from %s", ErrIllegalMove, d, s)
	}
	s.apply(d)
	return nil
}

// apply performs the move without checking legality
func (s *PuzzleState) apply(d Direction) {
	switch d {
	case Up:
		s.moveUp()
	case Right, Down:
		s.carry(d, RedShoe, BlueShoe, BlackShoe)
	case Left:
		s.carry(d, RedShoe, BlueShoe)
	}
}

// moveUp lifts the black shoe along with the block, and the red shoe only
// when it is stacked there too.
func (s *PuzzleState) moveUp() {
	if s.samePosition(BlackShoe, Block) {
		if s.samePosition(RedShoe, Block) {
			s.movePiece(RedShoe, Up)
		}
		s.movePiece(BlackShoe, Up)
	}
	s.movePiece(Block, Up)
}

// carry moves every listed shoe sharing the block's cell, then the block
func (s *PuzzleState) carry(d Direction, shoes ...Piece) {
	for _, shoe := range shoes {
		if s.samePosition(shoe, Block) {
			s.movePiece(shoe, d)
		}
	}
	s.movePiece(Block, d)
}

func (s *PuzzleState) movePiece(p Piece, d Direction) {
	s.positions[p] = s.positions[p].Move(d)
}
