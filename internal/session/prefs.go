package session

// Preferences persists the values that outlive a session.
type Preferences interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
	LoadMuted() (bool, error)
	SaveMuted(muted bool) error
}

// MemoryPreferences keeps preferences in memory. Useful for tests and for
// running without a database.
type MemoryPreferences struct {
	HighScore int
	Muted     bool
}

// NewMemoryPreferences returns empty in-memory preferences.
func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{}
}

func (m *MemoryPreferences) LoadHighScore() (int, error) { return m.HighScore, nil }

func (m *MemoryPreferences) SaveHighScore(score int) error {
	m.HighScore = score
	return nil
}

func (m *MemoryPreferences) LoadMuted() (bool, error) { return m.Muted, nil }

func (m *MemoryPreferences) SaveMuted(muted bool) error {
	m.Muted = muted
	return nil
}

var _ Preferences = (*MemoryPreferences)(nil)
