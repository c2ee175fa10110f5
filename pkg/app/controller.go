package app

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/nikogura/resume-versions/pkg/document"
	"github.com/nikogura/resume-versions/pkg/loader"
	"github.com/nikogura/resume-versions/pkg/merger"
	"github.com/nikogura/resume-versions/pkg/projector"
	"github.com/nikogura/resume-versions/pkg/validator"
	"github.com/pkg/errors"
)

// ErrNotLoaded is returned when the controller has no model yet.
var ErrNotLoaded = errors.New("documents not loaded")

// state is what readers see.  It is replaced whole, never modified.
type state struct {
	model      *merger.Model
	current    string
	validation validator.Result
	legacy     bool
}

// Controller owns the loaded model and the selected version.  Readers always
// observe a complete model.
type Controller struct {
	sources   loader.Sources
	preferred string
	logger    *log.Logger

	mu    sync.Mutex
	state atomic.Pointer[state]
}

// NewController creates a controller for the given sources.  preferred, when
// non-empty, is selected after the first load if the model carries it.
func NewController(sources loader.Sources, preferred string, logger *log.Logger) (c *Controller) {
	c = &Controller{
		sources:   sources,
		preferred: preferred,
		logger:    logger,
	}
	return c
}

// Load fetches the documents and builds a fresh model.
func (c *Controller) Load(ctx context.Context) (err error) {
	docs, err := loader.Load(ctx, c.sources)
	if err != nil {
		err = errors.Wrap(err, "failed to load documents")
		return err
	}

	if docs.Legacy {
		c.logger.Warn("Using legacy combined document", "reason", docs.FallbackReason)
	}

	err = c.Apply(docs)
	return err
}

// Reload discards the current model and loads a new one.  On failure the
// previous model stays in place.
func (c *Controller) Reload(ctx context.Context) (err error) {
	c.logger.Debug("Reloading documents")
	err = c.Load(ctx)
	return err
}

// Apply validates and merges already fetched documents, then swaps the new
// model in.  Validation findings are logged; only structural problems stop
// the merge.
func (c *Controller) Apply(docs loader.Documents) (err error) {
	combined := docs.Profile
	if !docs.Legacy {
		combined, err = document.Compose(docs.Profile, docs.Versions)
		if err != nil {
			err = errors.Wrap(err, "failed to combine documents for validation")
			return err
		}
	}

	result, err := validator.Validate(combined)
	if err != nil {
		err = errors.Wrap(err, "validation failed")
		return err
	}

	for _, msg := range result.Errors {
		c.logger.Error(msg)
	}
	for _, msg := range result.Warnings {
		c.logger.Warn(msg)
	}

	var model *merger.Model
	if docs.Legacy {
		model, err = merger.MergeLegacy(docs.Profile)
	} else {
		model, err = merger.Merge(docs.Profile, docs.Versions)
	}
	if err != nil {
		err = errors.Wrap(err, "failed to merge documents")
		return err
	}

	for _, msg := range model.Warnings() {
		c.logger.Warn(msg)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current := model.DefaultVersionKey()
	if prev := c.state.Load(); prev != nil && model.HasVersion(prev.current) {
		current = prev.current
	} else if c.preferred != "" {
		if model.HasVersion(c.preferred) {
			current = c.preferred
		} else {
			c.logger.Warn("Preferred version not found, using default", "version", c.preferred, "default", current)
		}
	}

	c.state.Store(&state{
		model:      model,
		current:    current,
		validation: result,
		legacy:     docs.Legacy,
	})

	c.logger.Debug("Model loaded", "versions", len(model.VersionKeys()), "current", current)
	return err
}

// Switch selects another version.  The model is untouched; an unknown key
// leaves the selection as it was.
func (c *Controller) Switch(key string) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state.Load()
	if s == nil {
		err = ErrNotLoaded
		return err
	}

	if !s.model.HasVersion(key) {
		err = errors.Wrapf(merger.ErrVersionNotFound, "version %q", key)
		return err
	}

	next := *s
	next.current = key
	c.state.Store(&next)

	c.logger.Debug("Switched version", "version", key)
	return err
}

// Model returns the current model.
func (c *Controller) Model() (model *merger.Model, err error) {
	s := c.state.Load()
	if s == nil {
		err = ErrNotLoaded
		return model, err
	}
	model = s.model
	return model, err
}

// Current returns the selected version key, or "" before the first load.
func (c *Controller) Current() (key string) {
	if s := c.state.Load(); s != nil {
		key = s.current
	}
	return key
}

// Validation returns the validation result of the last successful load.
func (c *Controller) Validation() (result validator.Result) {
	if s := c.state.Load(); s != nil {
		result = s.validation
	}
	return result
}

// Legacy reports whether the current model came from a legacy document.
func (c *Controller) Legacy() (ok bool) {
	if s := c.state.Load(); s != nil {
		ok = s.legacy
	}
	return ok
}

// Render projects the selected version.
func (c *Controller) Render() (rm projector.RenderModel, err error) {
	s := c.state.Load()
	if s == nil {
		err = ErrNotLoaded
		return rm, err
	}

	rm, err = projector.Project(s.model, s.current)
	return rm, err
}

// RenderVersion projects key, falling back to the default version when the
// key is unknown.
func (c *Controller) RenderVersion(key string) (rm projector.RenderModel, err error) {
	s := c.state.Load()
	if s == nil {
		err = ErrNotLoaded
		return rm, err
	}

	rm, fellBack, err := projector.ProjectOrDefault(s.model, key)
	if err != nil {
		return rm, err
	}

	if fellBack {
		c.logger.Warn("Version not found, rendering default", "version", key, "default", rm.VersionKey)
	}

	return rm, err
}
