// Package history remembers prior publications so repeated runs update
// instead of duplicating. The store is one YAML file mapping slug to entry,
// loaded fully at construction and rewritten fully on every mutation.
package history

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Entry is one prior publication, keyed by slug. CreatedAt never changes
// once set; Versions increments by one on every recorded update.
type Entry struct {
	PostID     int        `yaml:"post_id"`
	Title      string     `yaml:"title"`
	CreatedAt  time.Time  `yaml:"created_at"`
	UpdatedAt  *time.Time `yaml:"updated_at"`
	Versions   int        `yaml:"versions"`
	SourceFile string     `yaml:"source_file"`
}

// Manager owns the store file. A missing or unparsable file means an empty
// store, never a fatal error; failed writes are logged and swallowed since
// the remote slug search can recover the mapping on the next run.
type Manager struct {
	path    string
	entries map[string]*Entry
	log     zerolog.Logger
	now     func() time.Time
}

func New(path string, log zerolog.Logger) *Manager {
	m := &Manager{
		path:    path,
		entries: map[string]*Entry{},
		log:     log,
		now:     time.Now,
	}
	m.load()
	return m
}

func (m *Manager) load() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return
	}
	var entries map[string]*Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		m.log.Warn().Err(err).Str("file", m.path).Msg("history file unparsable, starting empty")
		return
	}
	if entries != nil {
		m.entries = entries
	}
}

func (m *Manager) save() {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		m.log.Warn().Err(err).Msg("failed to save history")
		return
	}
	data, err := yaml.Marshal(m.entries)
	if err != nil {
		m.log.Warn().Err(err).Msg("failed to save history")
		return
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		m.log.Warn().Err(err).Msg("failed to save history")
	}
}

// FindBySlug returns the recorded post id for a slug.
func (m *Manager) FindBySlug(slug string) (int, bool) {
	entry, ok := m.entries[slug]
	if !ok {
		return 0, false
	}
	return entry.PostID, true
}

// GetEntry returns a copy of the full entry for a slug.
func (m *Manager) GetEntry(slug string) (Entry, bool) {
	entry, ok := m.entries[slug]
	if !ok {
		return Entry{}, false
	}
	return *entry, true
}

// SaveCreated records a fresh publication and flushes the store.
func (m *Manager) SaveCreated(slug string, postID int, title, sourceFile string) {
	m.entries[slug] = &Entry{
		PostID:     postID,
		Title:      title,
		CreatedAt:  m.now(),
		Versions:   1,
		SourceFile: sourceFile,
	}
	m.save()
}

// SaveUpdated bumps the version of a known slug and flushes the store. An
// unknown slug is a silent no-op: updates only apply to entries this store
// has seen created.
func (m *Manager) SaveUpdated(slug, title string) {
	entry, ok := m.entries[slug]
	if !ok {
		return
	}
	now := m.now()
	entry.UpdatedAt = &now
	entry.Versions++
	if title != "" {
		entry.Title = title
	}
	m.save()
}

// Record pairs a slug with its entry for listing.
type Record struct {
	Slug  string
	Entry Entry
}

// ListAll returns every entry in slug order.
func (m *Manager) ListAll() []Record {
	slugs := make([]string, 0, len(m.entries))
	for slug := range m.entries {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	out := make([]Record, 0, len(slugs))
	for _, slug := range slugs {
		out = append(out, Record{Slug: slug, Entry: *m.entries[slug]})
	}
	return out
}
