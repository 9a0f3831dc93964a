package voting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPollWithOptions(t *testing.T, optionTexts ...string) *Poll {
	t.Helper()

	poll, err := NewPoll("Favorite fruit?", "food", time.Now().Add(time.Hour))
	require.NoError(t, err)
	for _, text := range optionTexts {
		require.NoError(t, poll.AddOption(text, ""))
	}
	return poll
}

func votesFor(t *testing.T, poll *Poll, perOption map[int]int) []Vote {
	t.Helper()

	var votes []Vote
	for optionIdx, count := range perOption {
		for i := 0; i < count; i++ {
			identity, err := SessionIdentity(NewSessionToken())
			require.NoError(t, err)
			vote, err := NewVote(poll.ID, poll.Options[optionIdx].ID, identity)
			require.NoError(t, err)
			votes = append(votes, *vote)
		}
	}
	return votes
}

func TestAggregate(t *testing.T) {
	t.Run("computes counts and rounded percentages", func(t *testing.T) {
		poll := buildPollWithOptions(t, "Apple", "Banana")
		votes := votesFor(t, poll, map[int]int{0: 3, 1: 1})

		results := Aggregate(poll.Options, votes)
		require.Len(t, results, 2)

		assert.Equal(t, "Apple", results[0].Option.Text)
		assert.Equal(t, 3, results[0].Count)
		assert.Equal(t, 75, results[0].Percentage)

		assert.Equal(t, "Banana", results[1].Option.Text)
		assert.Equal(t, 1, results[1].Count)
		assert.Equal(t, 25, results[1].Percentage)
	})

	t.Run("rounds halves away from zero", func(t *testing.T) {
		poll := buildPollWithOptions(t, "Apple", "Banana", "Cherry")
		votes := votesFor(t, poll, map[int]int{0: 1, 1: 1})

		results := Aggregate(poll.Options, votes)
		assert.Equal(t, 50, results[0].Percentage)
		assert.Equal(t, 50, results[1].Percentage)
		assert.Equal(t, 0, results[2].Percentage)
	})

	t.Run("one third rounds to 33", func(t *testing.T) {
		poll := buildPollWithOptions(t, "Apple", "Banana", "Cherry")
		votes := votesFor(t, poll, map[int]int{0: 1, 1: 1, 2: 1})

		results := Aggregate(poll.Options, votes)
		for _, r := range results {
			assert.Equal(t, 33, r.Percentage)
		}
	})

	t.Run("zero votes yields zero rows for every option", func(t *testing.T) {
		poll := buildPollWithOptions(t, "Apple", "Banana")

		results := Aggregate(poll.Options, nil)
		require.Len(t, results, 2)
		for _, r := range results {
			assert.Equal(t, 0, r.Count)
			assert.Equal(t, 0, r.Percentage)
		}
	})

	t.Run("preserves position order regardless of input order", func(t *testing.T) {
		poll := buildPollWithOptions(t, "Apple", "Banana", "Cherry")

		shuffled := []PollOption{poll.Options[2], poll.Options[0], poll.Options[1]}
		results := Aggregate(shuffled, nil)

		require.Len(t, results, 3)
		assert.Equal(t, "Apple", results[0].Option.Text)
		assert.Equal(t, "Banana", results[1].Option.Text)
		assert.Equal(t, "Cherry", results[2].Option.Text)
	})

	t.Run("does not mutate the input slice", func(t *testing.T) {
		poll := buildPollWithOptions(t, "Apple", "Banana", "Cherry")

		shuffled := []PollOption{poll.Options[2], poll.Options[0], poll.Options[1]}
		Aggregate(shuffled, nil)

		assert.Equal(t, "Cherry", shuffled[0].Text)
	})

	t.Run("votes for removed options count toward the total", func(t *testing.T) {
		poll := buildPollWithOptions(t, "Apple", "Banana")
		votes := votesFor(t, poll, map[int]int{0: 1, 1: 1})

		results := Aggregate(poll.Options[:1], votes)
		require.Len(t, results, 1)
		assert.Equal(t, 1, results[0].Count)
		assert.Equal(t, 50, results[0].Percentage)
	})
}
