// Package handeval ranks seven-card hold'em hands.
// The combinatorics are delegated to github.com/paulhankin/poker; this package
// only owns the conversion and the Evaluator contract the table engine consumes.
package handeval

import (
	"fmt"

	"github.com/paulhankin/poker"

	"holdemtable-server/pkg/deck"
)

// Result is the outcome of evaluating a seven-card hand.
// Score is a total order over hand strengths: a higher score always beats a
// lower one, and equal scores are an exact tie. Name is the human-readable
// description of the best five-card hand.
type Result struct {
	Score int16  `json:"score"`
	Name  string `json:"name"`
}

// Beats returns true if the result is strictly stronger than other
func (r Result) Beats(other Result) bool {
	return r.Score > other.Score
}

// Ties returns true if both hands have identical best-five strength
func (r Result) Ties(other Result) bool {
	return r.Score == other.Score
}

// Evaluator ranks a player's two hole cards plus the five community cards
type Evaluator interface {
	// EvaluateBestHand takes exactly seven cards and returns the strength of
	// the best five-card hand they contain
	EvaluateBestHand(cards []deck.Card) (Result, error)
}

// SevenCard is the production Evaluator
type SevenCard struct{}

// EvaluateBestHand implements Evaluator
func (SevenCard) EvaluateBestHand(cards []deck.Card) (Result, error) {
	if len(cards) != 7 {
		return Result{}, fmt.Errorf("expected 7 cards, got %d", len(cards))
	}

	var hand [7]poker.Card
	for i, card := range cards {
		converted, err := convertCard(card)
		if err != nil {
			return Result{}, err
		}

		hand[i] = converted
	}

	name, err := poker.Describe(hand[:])
	if err != nil {
		return Result{}, err
	}

	return Result{
		Score: poker.Eval7(&hand),
		Name:  name,
	}, nil
}

func convertCard(card deck.Card) (poker.Card, error) {
	var zero poker.Card

	var suit poker.Suit
	switch card.Suit {
	case deck.Clubs:
		suit = poker.Club
	case deck.Diamonds:
		suit = poker.Diamond
	case deck.Hearts:
		suit = poker.Heart
	case deck.Spades:
		suit = poker.Spade
	default:
		return zero, fmt.Errorf("unknown suit: %s", card.Suit)
	}

	// the solver ranks aces as 1
	rank := card.Rank
	if rank == deck.Ace {
		rank = 1
	}

	converted, err := poker.MakeCard(suit, poker.Rank(rank))
	if err != nil {
		return zero, fmt.Errorf("could not convert card %s: %w", card, err)
	}

	return converted, nil
}
