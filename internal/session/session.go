// Package session keeps the per-player aggregate that outlives a single game:
// the best score and how many games were played.
package session

import (
	"cmp"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
)

// Stats is the aggregate shown in the HUD.
type Stats struct {
	HighScore   int
	GamesPlayed int
}

// Record folds one finished game into the aggregate.
func (s Stats) Record(score int) Stats {
	s.GamesPlayed++
	s.HighScore = max(s.HighScore, score)
	return s
}

// Store holds Stats per player key. Implementations must be safe for
// concurrent use; the SSH server shares one across sessions.
type Store interface {
	Get(key string) Stats
	Record(key string, score int) Stats
}

// Entry is one row of the leaderboard.
type Entry struct {
	Key string
	Stats
}

// MemoryStore is a Store that lives as long as the process.
type MemoryStore struct {
	mu     sync.RWMutex
	stats  map[string]Stats
	logger *log.Logger
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store. A nil logger uses the default logger.
func NewMemoryStore(logger *log.Logger) *MemoryStore {
	if logger == nil {
		logger = log.Default()
	}
	return &MemoryStore{
		stats:  make(map[string]Stats),
		logger: logger,
	}
}

// Get returns the stats for key, zero if it has never finished a game.
func (m *MemoryStore) Get(key string) Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats[key]
}

// Record adds a finished game for key and returns the updated stats.
func (m *MemoryStore) Record(key string, score int) Stats {
	m.mu.Lock()
	prev := m.stats[key]
	next := prev.Record(score)
	m.stats[key] = next
	m.mu.Unlock()

	if next.HighScore > prev.HighScore {
		m.logger.Info("new high score", "player", key, "score", score)
	}
	m.logger.Debug("game recorded", "player", key, "score", score, "games", next.GamesPlayed)
	return next
}

// Top returns up to n players ordered by high score, ties broken by name.
func (m *MemoryStore) Top(n int) []Entry {
	m.mu.RLock()
	entries := make([]Entry, 0, len(m.stats))
	for k, s := range m.stats {
		entries = append(entries, Entry{Key: k, Stats: s})
	}
	m.mu.RUnlock()

	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.HighScore, a.HighScore); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
