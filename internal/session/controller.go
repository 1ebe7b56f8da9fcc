package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mcm-tools/figuregen/internal/catalog"
	"github.com/mcm-tools/figuregen/internal/models"
	"github.com/mcm-tools/figuregen/internal/providers"
)

// Saver stores the resource at url under filename
type Saver interface {
	Save(ctx context.Context, url, filename string) error
}

// Controller owns the state of one generation session: the category filter,
// the custom prompt text, the busy marker, the last error and the gallery.
// At most one generation runs at a time; a second call while busy is rejected.
type Controller struct {
	generator providers.Generator
	model     string
	saver     Saver
	presets   []models.PresetPrompt
	now       func() time.Time
	newID     func() string

	mu           sync.Mutex
	filter       models.Category
	customPrompt string
	busy         string
	lastError    string
	images       []models.GeneratedImage
}

type Option func(*Controller)

// WithSaver sets the capability used by DownloadImage
func WithSaver(s Saver) Option {
	return func(c *Controller) { c.saver = s }
}

// WithClock overrides the time source for gallery timestamps
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDGenerator overrides how gallery ids are generated
func WithIDGenerator(newID func() string) Option {
	return func(c *Controller) { c.newID = newID }
}

// WithPresets replaces the preset list used by FilteredPresets
func WithPresets(presets []models.PresetPrompt) Option {
	return func(c *Controller) { c.presets = presets }
}

// New creates a controller that sends prompts to generator using model
func New(generator providers.Generator, model string, opts ...Option) *Controller {
	c := &Controller{
		generator: generator,
		model:     model,
		presets:   catalog.Presets(),
		now:       time.Now,
		newID:     uuid.NewString,
		filter:    models.CategoryAll,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate sends the request to the provider and, on success, puts the new
// image at the front of the gallery. Failures are recorded as the session
// error and returned. The busy marker is cleared whatever the outcome.
func (c *Controller) Generate(ctx context.Context, req Request) (models.GeneratedImage, error) {
	prompt, category, requestID, err := req.resolve()
	if err != nil {
		return models.GeneratedImage{}, err
	}

	c.mu.Lock()
	if c.busy != "" {
		busy := c.busy
		c.mu.Unlock()
		slog.Warn("Rejected generation while busy", "request_id", requestID, "busy", busy)
		return models.GeneratedImage{}, fmt.Errorf("%w: %s", ErrBusy, busy)
	}
	c.busy = requestID
	c.lastError = ""
	c.mu.Unlock()

	settled := false
	defer func() {
		// provider panicked
		if !settled {
			c.mu.Lock()
			c.busy = ""
			c.mu.Unlock()
		}
	}()

	slog.Info("Generating figure", "request_id", requestID, "kind", req.Kind, "model", c.model)
	start := time.Now()

	url, genErr := c.generator.GenerateImage(ctx, providers.Config{
		Model:  c.model,
		Prompt: prompt,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = ""
	settled = true

	if genErr != nil {
		c.lastError = errorMessage(genErr)
		slog.Error("Failed to generate figure", "request_id", requestID, "error", genErr)
		return models.GeneratedImage{}, &ProviderError{RequestID: requestID, Err: genErr}
	}

	if url == "" {
		c.lastError = MsgEmptyResult
		slog.Warn("Provider returned no image", "request_id", requestID)
		return models.GeneratedImage{}, ErrEmptyResult
	}

	image := models.GeneratedImage{
		ID:        c.newID(),
		URL:       url,
		Prompt:    prompt,
		Category:  category,
		Timestamp: c.now(),
	}
	c.images = append([]models.GeneratedImage{image}, c.images...)

	slog.Info("Figure generated", "request_id", requestID, "image_id", image.ID, "duration", time.Since(start))
	return image, nil
}

// SetCategoryFilter selects the category used by FilteredPresets
func (c *Controller) SetCategoryFilter(category models.Category) error {
	if !catalog.ValidFilter(category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = category
	return nil
}

// SetCustomPromptText stores the text shown in the prompt editor
func (c *Controller) SetCustomPromptText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customPrompt = text
}

// CustomPromptText returns the stored prompt editor text
func (c *Controller) CustomPromptText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.customPrompt
}

// FilteredPresets returns a copy of the presets matching the current filter
func (c *Controller) FilteredPresets() []models.PresetPrompt {
	c.mu.Lock()
	filter := c.filter
	c.mu.Unlock()
	return catalog.FilterByCategory(c.presets, filter)
}

// State returns a copy of the session state
func (c *Controller) State() models.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()

	images := make([]models.GeneratedImage, len(c.images))
	copy(images, c.images)

	return models.SessionState{
		Filter:       c.filter,
		CustomPrompt: c.customPrompt,
		Busy:         c.busy,
		Error:        c.lastError,
		Images:       images,
	}
}

// Image finds a gallery entry by id
func (c *Controller) Image(id string) (models.GeneratedImage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, img := range c.images {
		if img.ID == id {
			return img, true
		}
	}
	return models.GeneratedImage{}, false
}

// DownloadImage saves the resource at url under filename. It is best effort:
// failures are logged and otherwise ignored.
func (c *Controller) DownloadImage(ctx context.Context, url, filename string) {
	if c.saver == nil {
		slog.Warn("No saver configured, skipping download", "filename", filename)
		return
	}

	if err := c.saver.Save(ctx, url, filename); err != nil {
		slog.Warn("Failed to save image", "filename", filename, "error", err)
		return
	}
	slog.Debug("Image saved", "filename", filename)
}
