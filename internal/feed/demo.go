package feed

import (
	"cmp"
	"context"
	"encoding/binary"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/Iron-Ham/heistboard/internal/leaderboard"
	"github.com/google/uuid"
)

// Stages are the heist waypoints in track order. Each covers an equal
// fifth of the progress range.
var Stages = []string{"entrance", "signal_jammer", "vault", "getaway", "exit"}

// Demo defaults.
const (
	DefaultDemoTeams    = 6
	DefaultDemoInterval = time.Second
	// demoRestartTicks is how long a finished heist stays on screen.
	demoRestartTicks = 5
)

var crewNames = []string{
	"Night Owls", "Glass Cutters", "Velvet Gloves", "Crowbar Collective",
	"Silent Alarm", "Midnight Express", "The Inside Job", "Lockpick Society",
	"Ghost Protocol", "Safecrackers", "Blue Diamonds", "Getaway Drivers",
}

// StageFor maps progress to the stage tag shown under a team's name.
func StageFor(progress float64) string {
	i := int(progress / (100 / float64(len(Stages))))
	return Stages[min(max(i, 0), len(Stages)-1)]
}

// Heist is a deterministic heist simulation.
type Heist struct {
	rng      *rand.Rand
	teams    []leaderboard.Entry
	finished int
}

// NewHeist seeds n teams at the entrance.
func NewHeist(n int, seed uint64) *Heist {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	src := rand.NewChaCha8(key)

	h := &Heist{rng: rand.New(src)}
	for i := range n {
		id, err := uuid.NewRandomFromReader(src)
		if err != nil {
			id = uuid.New()
		}
		h.teams = append(h.teams, leaderboard.Entry{
			ID:          id.String(),
			Name:        crewNames[i%len(crewNames)],
			CurrentView: Stages[0],
			PlayerCount: 2 + h.rng.IntN(4),
		})
	}
	return h
}

// Done reports whether every team has escaped.
func (h *Heist) Done() bool {
	return h.finished == len(h.teams)
}

// Advance moves each running team forward by a random step. Teams crossing
// 100% finish in the order they cross; ties in one tick go to the team
// that got further.
func (h *Heist) Advance(now time.Time) {
	var crossed []int
	for i := range h.teams {
		t := &h.teams[i]
		if t.IsComplete {
			continue
		}
		t.ProgressPercent += 2 + h.rng.Float64()*10
		if h.rng.IntN(10) == 0 {
			// Stalled at a checkpoint.
			t.ProgressPercent -= 2
		}
		t.ProgressPercent = max(t.ProgressPercent, 0)
		if t.ProgressPercent >= 100 {
			crossed = append(crossed, i)
		}
		t.CurrentView = StageFor(min(t.ProgressPercent, 99.9))
		t.TasksCompleted = int(t.ProgressPercent / 10)
	}

	slices.SortStableFunc(crossed, func(a, b int) int {
		return cmp.Compare(h.teams[b].ProgressPercent, h.teams[a].ProgressPercent)
	})
	for _, i := range crossed {
		h.finished++
		pos := h.finished
		at := now.UnixMilli()
		t := &h.teams[i]
		t.ProgressPercent = 100
		t.CurrentView = Stages[len(Stages)-1]
		t.TasksCompleted = 10
		t.IsComplete = true
		t.FinishPosition = &pos
		t.CompletedAt = &at
	}
}

// Entries returns the current standings: finished teams by position, then
// running teams by progress, highest first.
func (h *Heist) Entries() []leaderboard.Entry {
	out := slices.Clone(h.teams)
	slices.SortStableFunc(out, func(a, b leaderboard.Entry) int {
		switch {
		case a.IsComplete && b.IsComplete:
			return cmp.Compare(a.Position(), b.Position())
		case a.IsComplete:
			return -1
		case b.IsComplete:
			return 1
		}
		return cmp.Compare(b.ProgressPercent, a.ProgressPercent)
	})
	return out
}

// Demo emits a simulated heist, restarting it a few ticks after every team
// has escaped.
type Demo struct {
	Teams    int
	Interval time.Duration
	Seed     uint64
}

// Name returns "demo".
func (d *Demo) Name() string { return "demo" }

// Run emits one snapshot per interval until ctx is done.
func (d *Demo) Run(ctx context.Context, emit Emit) error {
	teams := d.Teams
	if teams <= 0 {
		teams = DefaultDemoTeams
	}
	interval := d.Interval
	if interval <= 0 {
		interval = DefaultDemoInterval
	}
	seed := d.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	heist := NewHeist(teams, seed)
	emit(snapshot(d.Name(), heist.Entries()))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	idle := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if heist.Done() {
				idle++
				if idle < demoRestartTicks {
					continue
				}
				idle = 0
				seed++
				heist = NewHeist(teams, seed)
			} else {
				heist.Advance(now)
			}
			emit(snapshot(d.Name(), heist.Entries()))
		}
	}
}
