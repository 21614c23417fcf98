package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/leengari/ply-scene/internal/domain/schema"
	"github.com/leengari/ply-scene/internal/domain/session"
	"github.com/leengari/ply-scene/internal/mesh"
	"github.com/leengari/ply-scene/internal/parser"
	"github.com/leengari/ply-scene/internal/storage"
	"github.com/leengari/ply-scene/internal/storage/manager"
)

// Document is one parsed input. Mesh is filled by Assemble.
type Document struct {
	Name      string
	SessionID string
	Table     *schema.Table
	LoadedAt  time.Time

	mu   sync.Mutex
	mesh *mesh.Mesh
}

// Mesh returns the assembled mesh, or nil before Assemble
func (d *Document) Mesh() *mesh.Mesh {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mesh
}

// Engine is the main entry point of the load pipeline
type Engine struct {
	opts      parser.Options
	registry  *manager.Registry[*Document]
	observers []Observer
}

// New creates a new Engine. Files opened through Open are cached in a
// registry rooted at basePath.
func New(basePath string, opts parser.Options) *Engine {
	e := &Engine{
		opts:      opts,
		observers: make([]Observer, 0),
	}
	e.registry = manager.NewRegistry[*Document](basePath, e.loadFile)
	return e
}

// Registry exposes the document cache
func (e *Engine) Registry() *manager.Registry[*Document] {
	return e.registry
}

// Parse reads the header and then the values of text
func (e *Engine) Parse(name, text string) (*Document, error) {
	sess := session.New(name)
	defer sess.Close()

	p := parser.New(text, e.opts)

	// 1. Header
	e.notify(Event{Type: EventHeaderStart, SessionID: sess.ID, Source: name})
	if err := p.ReadHeader(); err != nil {
		e.fail(sess.ID, name, err)
		return nil, fmt.Errorf("header error: %w", err)
	}
	table := p.Table()
	e.notify(Event{Type: EventHeaderEnd, SessionID: sess.ID, Source: name, Data: map[string]interface{}{
		"elements": len(table.Elements),
		"comments": len(table.Comments),
	}})

	// 2. Values
	e.notify(Event{Type: EventValuesStart, SessionID: sess.ID, Source: name})
	if err := p.ReadValues(); err != nil {
		e.fail(sess.ID, name, err)
		return nil, fmt.Errorf("value error: %w", err)
	}
	rows := 0
	for _, el := range table.Elements {
		rows += len(el.Rows)
	}
	e.notify(Event{Type: EventValuesEnd, SessionID: sess.ID, Source: name, Data: map[string]interface{}{
		"rows":     rows,
		"warnings": len(table.Warnings),
	}})
	slog.Debug("parse finished",
		slog.String("source", name),
		slog.Uint64("seq", sess.Seq),
		slog.Duration("elapsed", sess.Elapsed()),
	)

	return &Document{
		Name:      name,
		SessionID: sess.ID,
		Table:     table,
		LoadedAt:  time.Now(),
	}, nil
}

// Assemble builds the mesh of doc once and caches it on the document
func (e *Engine) Assemble(doc *Document) (*mesh.Mesh, error) {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	if doc.mesh != nil {
		return doc.mesh, nil
	}

	e.notify(Event{Type: EventAssembleStart, SessionID: doc.SessionID, Source: doc.Name})
	m, err := mesh.Assemble(doc.Table)
	if err != nil {
		e.fail(doc.SessionID, doc.Name, err)
		return nil, fmt.Errorf("assembly error: %w", err)
	}
	e.notify(Event{Type: EventAssembleEnd, SessionID: doc.SessionID, Source: doc.Name, Data: map[string]interface{}{
		"vertices": m.VertexCount(),
		"faces":    len(m.FaceSizes),
		"normals":  m.HasNormals(),
		"colors":   m.HasColors(),
	}})

	doc.mesh = m
	return m, nil
}

// Load parses text and assembles its mesh
func (e *Engine) Load(name, text string) (*Document, error) {
	doc, err := e.Parse(name, text)
	if err != nil {
		return nil, err
	}
	if _, err := e.Assemble(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Open returns the parsed document for a file, reading it on first use
func (e *Engine) Open(name string) (*Document, error) {
	return e.registry.Get(name)
}

// Reload discards the cached document for name and parses the file again
func (e *Engine) Reload(name string) (*Document, error) {
	return e.registry.Reload(name)
}

// ListDocuments returns the paths of all cached documents
func (e *Engine) ListDocuments() []string {
	return e.registry.Loaded()
}

func (e *Engine) loadFile(path string) (*Document, error) {
	text, err := storage.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := e.Parse(path, text)
	if err != nil {
		return nil, err
	}
	slog.Info("document loaded",
		slog.String("path", path),
		slog.String("session_id", doc.SessionID),
		slog.Int("elements", len(doc.Table.Elements)),
	)
	return doc, nil
}

// AddObserver registers an observer to receive lifecycle events
func (e *Engine) AddObserver(observer Observer) {
	e.observers = append(e.observers, observer)
}

// RemoveObserver unregisters an observer
func (e *Engine) RemoveObserver(observer Observer) {
	for i, o := range e.observers {
		if o == observer {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

func (e *Engine) fail(sessionID, source string, err error) {
	e.notify(Event{Type: EventFailed, SessionID: sessionID, Source: source, Data: err})
}

// notify sends an event to all registered observers
func (e *Engine) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range e.observers {
		observer.OnEvent(event)
	}
}
