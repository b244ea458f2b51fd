package entity

import (
	"errors"
	"fmt"
)

var ErrInvalidNotation = errors.New("no coordinate found")

type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String renders the move as a column letter and a row digit, e.g. (0,0) is "A1".
func (that Move) String() string {
	return fmt.Sprintf("%c%d", 'A'+rune(that.Col), that.Row+1)
}

func (that Move) IsCorner() bool {
	return (that.Row == 0 || that.Row == BoardSize-1) && (that.Col == 0 || that.Col == BoardSize-1)
}

func (that Move) IsEdge() bool {
	return that.Row == 0 || that.Row == BoardSize-1 || that.Col == 0 || that.Col == BoardSize-1
}

// ParseMove returns the first letter A-H immediately followed by a digit 1-8
// found anywhere in text, ignoring case.
func ParseMove(text string) (Move, error) {
	for i := 0; i+1 < len(text); i++ {
		letter := text[i] | 0x20 // lower-case ASCII letters
		digit := text[i+1]

		if letter < 'a' || letter > 'a'+BoardSize-1 {
			continue
		}

		if digit < '1' || digit > '0'+BoardSize {
			continue
		}

		return Move{Row: int(digit - '1'), Col: int(letter - 'a')}, nil
	}

	return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, text)
}

func ContainsMove(moves []Move, move Move) bool {
	for _, m := range moves {
		if m == move {
			return true
		}
	}

	return false
}
