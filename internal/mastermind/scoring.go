package mastermind

import "fmt"

// Score compares guess against secret.
//
// Exact matches are counted first and consume their secret position. Every
// remaining guess color then consumes the first unconsumed secret position of
// the same color, so one secret peg never satisfies two guess pegs.
func Score(guess, secret Combination) (Feedback, error) {
	if len(guess) != len(secret) {
		return Feedback{}, fmt.Errorf("%w: guess has %d colors, secret has %d",
			ErrLengthMismatch, len(guess), len(secret))
	}
	return score(guess, secret), nil
}

// score assumes equal lengths.
func score(guess, secret Combination) Feedback {
	var fb Feedback

	var buf [MaxLength]bool
	used := buf[:0]
	if len(secret) <= MaxLength {
		used = buf[:len(secret)]
	} else {
		used = make([]bool, len(secret))
	}

	for i := range guess {
		if guess[i] == secret[i] {
			fb.Positions++
			used[i] = true
		}
	}

	for i := range guess {
		if guess[i] == secret[i] {
			continue
		}
		for j := range secret {
			if j != i && !used[j] && secret[j] == guess[i] {
				fb.Colors++
				used[j] = true
				break
			}
		}
	}
	return fb
}
