package scene

import (
	"context"
	"errors"
	"fmt"
	"image"
	"slices"
	"sync"
	"time"

	"github.com/inamate/morph/internal/document"
	"github.com/inamate/morph/internal/engine"
	"github.com/inamate/morph/internal/morph"
	"github.com/inamate/morph/internal/raster"
	"github.com/inamate/morph/internal/typeid"
)

var (
	ErrNotFound    = errors.New("scene not found")
	ErrForbidden   = errors.New("forbidden")
	ErrInvalidSize = errors.New("invalid preview size")
)

// Service keeps uploaded scene documents in memory. Documents are treated
// as immutable once stored.
type Service struct {
	mu     sync.RWMutex
	scenes map[string]*entry
	seq    int

	base       []morph.Option
	previewMax int
}

type entry struct {
	seq   int
	scene Scene
	doc   *document.InDocument

	// mu serializes use of the engine, which is not safe for concurrent use.
	mu     sync.Mutex
	engine *engine.Engine
}

type Scene struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	OwnerID   string  `json:"ownerId,omitempty"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Duration  float64 `json:"duration"`
	Steps     int     `json:"steps"`
	CreatedAt string  `json:"createdAt"`
}

// NewService returns an empty registry. base options apply to every morph
// built for the stored scenes; previewMax caps preview dimensions.
func NewService(previewMax int, base ...morph.Option) *Service {
	return &Service{
		scenes:     make(map[string]*entry),
		base:       base,
		previewMax: previewMax,
	}
}

// Create validates doc by building its timeline and stores it under a new ID.
func (s *Service) Create(ctx context.Context, doc *document.InDocument, ownerID string) (*Scene, error) {
	e := engine.NewEngine(s.base...)
	doc.Scene.ID = typeid.NewSceneID()
	if err := e.Load(doc); err != nil {
		return nil, fmt.Errorf("create scene: %w", err)
	}

	sc := Scene{
		ID:        doc.Scene.ID,
		Name:      doc.Scene.Name,
		OwnerID:   ownerID,
		Width:     doc.Scene.Width,
		Height:    doc.Scene.Height,
		Duration:  e.Duration(),
		Steps:     len(doc.Steps),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	s.seq++
	s.scenes[sc.ID] = &entry{seq: s.seq, scene: sc, doc: doc, engine: e}
	s.mu.Unlock()

	return &sc, nil
}

func (s *Service) Get(ctx context.Context, sceneID string) (*Scene, error) {
	ent, err := s.lookup(sceneID)
	if err != nil {
		return nil, err
	}
	sc := ent.scene
	return &sc, nil
}

// List returns every scene, oldest first.
func (s *Service) List(ctx context.Context) ([]Scene, error) {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.scenes))
	for _, ent := range s.scenes {
		entries = append(entries, ent)
	}
	s.mu.RUnlock()

	slices.SortFunc(entries, func(a, b *entry) int { return a.seq - b.seq })

	scenes := make([]Scene, len(entries))
	for i, ent := range entries {
		scenes[i] = ent.scene
	}
	return scenes, nil
}

// Delete removes a scene. Scenes with an owner may only be deleted by that
// owner.
func (s *Service) Delete(ctx context.Context, sceneID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.scenes[sceneID]
	if !ok {
		return ErrNotFound
	}
	if ent.scene.OwnerID != "" && ent.scene.OwnerID != userID {
		return ErrForbidden
	}
	delete(s.scenes, sceneID)
	return nil
}

// Document returns the stored document. Callers must not modify it.
func (s *Service) Document(ctx context.Context, sceneID string) (*document.InDocument, error) {
	ent, err := s.lookup(sceneID)
	if err != nil {
		return nil, err
	}
	return ent.doc, nil
}

// Frame returns the draw commands of the scene at time t, fitted to the
// scene's own size.
func (s *Service) Frame(ctx context.Context, sceneID string, t float64) ([]engine.DrawCommand, error) {
	ent, err := s.lookup(sceneID)
	if err != nil {
		return nil, err
	}

	ent.mu.Lock()
	defer ent.mu.Unlock()

	ent.engine.SetCanvasSize(float64(ent.scene.Width), float64(ent.scene.Height))
	ent.engine.Seek(t)
	return ent.engine.Commands(), nil
}

// Preview rasterizes the scene at time t into a w×h image. Zero sizes
// default to the scene's size.
func (s *Service) Preview(ctx context.Context, sceneID string, t float64, w, h int) (*image.RGBA, error) {
	ent, err := s.lookup(sceneID)
	if err != nil {
		return nil, err
	}

	if w == 0 && h == 0 {
		w, h = ent.scene.Width, ent.scene.Height
	}
	if w <= 0 || h <= 0 || (s.previewMax > 0 && (w > s.previewMax || h > s.previewMax)) {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}

	bg, err := raster.ParseBackground(ent.doc.Scene.Background)
	if err != nil {
		return nil, fmt.Errorf("scene background: %w", err)
	}

	ent.mu.Lock()
	defer ent.mu.Unlock()

	ent.engine.SetCanvasSize(float64(w), float64(h))
	ent.engine.Seek(t)
	return raster.Render(ent.engine.SceneGraph().Nodes, w, h, bg), nil
}

func (s *Service) lookup(sceneID string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ent, ok := s.scenes[sceneID]
	if !ok {
		return nil, ErrNotFound
	}
	return ent, nil
}
