package database

// Database wires the connection manager, the fallback store and the
// per-entity stores together behind accessor methods.
type Database struct {
	conns        *ConnManager
	fallback     *FallbackStore
	projectStore *ProjectStore
	storyStore   *StoryStore
}

// New initializes a Database over a shared connection manager. The fallback
// store is file-backed when fallbackPath is non-empty.
func New(conns *ConnManager, fallbackPath string) Database {
	fallback := NewFallbackStore(fallbackPath)
	projects := NewProjectStore(NewProjectRepo(conns), fallback)
	stories := NewStoryStore(NewStoryRepo(conns), projects)
	return Database{
		conns:        conns,
		fallback:     fallback,
		projectStore: projects,
		storyStore:   stories,
	}
}

// Accessor methods for each store

func (d Database) Conns() *ConnManager {
	return d.conns
}

func (d Database) Fallback() *FallbackStore {
	return d.fallback
}

func (d Database) ProjectStore() *ProjectStore {
	return d.projectStore
}

func (d Database) StoryStore() *StoryStore {
	return d.storyStore
}
