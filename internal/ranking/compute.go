package ranking

import (
	"fmt"
	"sort"
	"time"
)

// Compute builds the leaderboard for one contest from a snapshot read
// through store. It is pure apart from the store reads: calling it twice
// against an unchanged snapshot yields identical output.
//
// Returns ErrNotFound for a missing contest and ErrNotYetRunning when now is
// before the contest start; the latter applies to admin requesters as well.
func Compute(store Store, contestID string, now time.Time) ([]Entry, error) {
	contest, err := store.GetContest(contestID)
	if err != nil {
		return nil, err
	}
	if now.Before(contest.StartTime) {
		return nil, ErrNotYetRunning
	}

	problems, err := store.ListProblems(contestID)
	if err != nil {
		return nil, err
	}
	scores := make(map[string]int, len(problems))
	for _, p := range problems {
		scores[p.ID] = p.Score
	}

	participants, err := store.ListParticipants()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(participants))
	for _, p := range participants {
		names[p.ID] = p.Name
	}

	judgments, err := store.ListJudgments(contestID, contest.StartTime, contest.EndTime)
	if err != nil {
		return nil, err
	}

	// Group eligible judgments per user, keeping the order in which users
	// first appear so that ties beyond the sort key stay deterministic.
	// Judgments outside [start, end) are dropped entirely: no score, no
	// penalty, no pending flag.
	submitted := make(map[string][]Judgment)
	var userOrder []string
	for _, j := range judgments {
		if j.Created.Before(contest.StartTime) || !j.Created.Before(contest.EndTime) {
			continue
		}
		if _, ok := submitted[j.UserID]; !ok {
			userOrder = append(userOrder, j.UserID)
		}
		submitted[j.UserID] = append(submitted[j.UserID], j)
	}

	entries := make([]Entry, 0, len(userOrder))
	for _, uid := range userOrder {
		name, ok := names[uid]
		if !ok {
			return nil, &InvariantViolationError{
				Reason: fmt.Sprintf("judgment by unknown participant %q", uid),
			}
		}
		entry, err := buildEntry(contest, scores, uid, name, submitted[uid])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if *entries[i].Score != *entries[j].Score {
			return *entries[i].Score > *entries[j].Score
		}
		return *entries[i].AdjustedTime < *entries[j].AdjustedTime
	})

	// Rank assignment. Consecutive zero-scorers collapse into one shared
	// rank; participants tied on a positive score still get consecutive
	// ranks. That asymmetry is long-standing observable behavior, keep it.
	rank := 0
	for i := range entries {
		if i == 0 || *entries[i-1].Score != 0 {
			rank++
		}
		entries[i].Ranking = rank
	}

	// Non-admin participants without a single eligible judgment share the
	// rank one past the last assigned, in roster order. Admins who did
	// submit stay in the ranked set above; only the never-submitted path
	// filters them out.
	tailRank := rank + 1
	for _, p := range participants {
		if p.Admin {
			continue
		}
		if _, ok := submitted[p.ID]; ok {
			continue
		}
		entries = append(entries, Entry{
			Ranking:  tailRank,
			UserID:   p.ID,
			Problems: map[string]ProblemOutcome{},
		})
	}

	return entries, nil
}

// buildEntry reduces one user's eligible judgments into a leaderboard row.
func buildEntry(contest *Contest, scores map[string]int, uid, name string, js []Judgment) (Entry, error) {
	sort.SliceStable(js, func(i, j int) bool {
		if js[i].ProblemID != js[j].ProblemID {
			return js[i].ProblemID < js[j].ProblemID
		}
		return js[i].Created.Before(js[j].Created)
	})

	maxTime := contest.StartTime
	totalScore := 0
	totalPenalties := 0
	outcomes := make(map[string]ProblemOutcome)

	for start := 0; start < len(js); {
		end := start
		for end < len(js) && js[end].ProblemID == js[start].ProblemID {
			end++
		}
		pid := js[start].ProblemID
		score, ok := scores[pid]
		if !ok {
			return Entry{}, &InvariantViolationError{
				Reason: fmt.Sprintf("judgment for problem %q not in contest %q", pid, contest.ID),
			}
		}
		outcome, acceptedAt, err := reduceProblem(contest, score, js[start:end])
		if err != nil {
			return Entry{}, err
		}
		if outcome.Score != nil {
			totalScore += *outcome.Score
			totalPenalties += outcome.Penalties
			if acceptedAt.After(maxTime) {
				maxTime = acceptedAt
			}
		}
		outcomes[pid] = outcome
		start = end
	}

	totalTime := maxTime.Sub(contest.StartTime)
	adjusted := totalTime + time.Duration(totalPenalties)*contest.Penalty
	timeSec := totalTime.Seconds()
	adjustedSec := adjusted.Seconds()

	return Entry{
		UserID:       uid,
		UserName:     name,
		Score:        &totalScore,
		Time:         &timeSec,
		Penalties:    &totalPenalties,
		AdjustedTime: &adjustedSec,
		Problems:     outcomes,
	}, nil
}

// reduceProblem scans one problem's judgments in chronological order and
// stops at the first acceptance; anything submitted after that is never
// examined. Penalizing failures before the acceptance accumulate into the
// penalty count; pending judgments set the pending flag without stopping the
// scan or counting as an attempt.
func reduceProblem(contest *Contest, problemScore int, js []Judgment) (ProblemOutcome, time.Time, error) {
	var out ProblemOutcome
	var acceptedAt time.Time

	penalties := 0
	pending := false
	for _, j := range js {
		cat, err := Classify(j.Status)
		if err != nil {
			return out, acceptedAt, err
		}
		if cat == CategoryAccepted {
			score := problemScore
			elapsed := j.Created.Sub(contest.StartTime).Seconds()
			out.Score = &score
			out.Time = &elapsed
			acceptedAt = j.Created
			break
		}
		switch cat {
		case CategoryPending:
			pending = true
		case CategoryPenalizing:
			penalties++
		}
	}
	out.Penalties = penalties
	out.Pending = pending
	return out, acceptedAt, nil
}
