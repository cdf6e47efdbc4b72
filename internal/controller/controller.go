package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/forkify/internal/event"
	"github.com/five82/forkify/internal/state"
)

// DefaultCloseDelay is how long the upload form stays open after a
// successful upload.
const DefaultCloseDelay = 2500 * time.Millisecond

// ErrAlreadyStarted is returned by a second call to Start.
var ErrAlreadyStarted = errors.New("controller already started")

func errMissingView(name string) error {
	return fmt.Errorf("controller requires a %s view", name)
}

// Location is the navigation state the controller reads and updates.
type Location interface {
	Hash() string
	Replace(id string)
	Reload(ctx context.Context)
}

// Subscriber registers event handlers; *event.Bus implements it.
type Subscriber interface {
	Subscribe(kind event.Kind, h event.Handler)
}

// Options configure a Controller.
type Options struct {
	CloseDelay time.Duration
	Logger     *zap.Logger
	// After schedules fn to run once d has elapsed. Defaults to time.AfterFunc.
	After func(d time.Duration, fn func())
}

// Controller turns user events into store operations and view updates.
type Controller struct {
	store      *state.Store
	views      Views
	loc        Location
	log        *zap.Logger
	closeDelay time.Duration
	after      func(time.Duration, func())

	mu      sync.Mutex
	started bool
}

// New builds a Controller. Every view must be set.
func New(store *state.Store, views Views, loc Location, opts Options) (*Controller, error) {
	if store == nil {
		return nil, fmt.Errorf("controller requires a store")
	}
	if loc == nil {
		return nil, fmt.Errorf("controller requires a location")
	}
	if err := views.validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	delay := opts.CloseDelay
	if delay <= 0 {
		delay = DefaultCloseDelay
	}
	after := opts.After
	if after == nil {
		after = func(d time.Duration, fn func()) { time.AfterFunc(d, fn) }
	}
	return &Controller{
		store:      store,
		views:      views,
		loc:        loc,
		log:        log.Named("controller"),
		closeDelay: delay,
		after:      after,
	}, nil
}

// Start renders the welcome message and persisted bookmarks, then registers
// one handler per event kind.
func (c *Controller) Start(bus Subscriber) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return ErrAlreadyStarted
	}
	c.started = true

	c.views.Recipe.RenderWelcome()
	c.views.Bookmarks.Render(c.store.Bookmarks())

	bus.Subscribe(event.HashChange, c.controlRecipe)
	bus.Subscribe(event.Search, c.controlSearch)
	bus.Subscribe(event.Paginate, c.controlPagination)
	bus.Subscribe(event.Servings, c.controlServings)
	bus.Subscribe(event.BookmarkToggle, c.controlBookmark)
	bus.Subscribe(event.Upload, c.controlUpload)
	bus.Subscribe(event.Reload, c.controlReload)
	return nil
}

func (c *Controller) controlRecipe(ctx context.Context, _ event.Event) {
	id := c.loc.Hash()
	if id == "" {
		return
	}
	c.views.Recipe.RenderSpinner()
	c.views.Results.Update(c.store.CurrentResultsPage())

	if err := c.store.LoadRecipe(ctx, id); err != nil {
		if errors.Is(err, state.ErrSuperseded) {
			c.log.Debug("recipe load superseded", zap.String("id", id))
			return
		}
		c.log.Error("load recipe failed", zap.String("id", id), zap.Error(err))
		c.views.Recipe.RenderError("")
		return
	}

	c.views.Bookmarks.Update(c.store.Bookmarks())
	if recipe, ok := c.store.Recipe(); ok {
		c.views.Recipe.Render(recipe)
	}
}

func (c *Controller) controlSearch(ctx context.Context, _ event.Event) {
	query := strings.TrimSpace(c.views.Search.Query())
	if query == "" {
		return
	}
	c.views.Results.RenderSpinner()

	if err := c.store.LoadSearchResults(ctx, query); err != nil {
		if errors.Is(err, state.ErrSuperseded) {
			c.log.Debug("search superseded", zap.String("query", query))
			return
		}
		c.log.Error("search failed", zap.String("query", query), zap.Error(err))
		c.views.Results.RenderError("")
		return
	}

	c.views.Results.Render(c.store.ResultsPage(1))
	c.views.Pagination.Render(c.store.Search())
}

func (c *Controller) controlPagination(_ context.Context, ev event.Event) {
	c.views.Results.Render(c.store.ResultsPage(ev.Page))
	c.views.Pagination.Render(c.store.Search())
}

func (c *Controller) controlServings(_ context.Context, ev event.Event) {
	if ev.Servings < 1 {
		return
	}
	c.store.UpdateServings(ev.Servings)
	if recipe, ok := c.store.Recipe(); ok {
		c.views.Recipe.Update(recipe)
	}
}

func (c *Controller) controlBookmark(_ context.Context, _ event.Event) {
	recipe, ok, err := c.store.ToggleBookmark()
	if !ok {
		return
	}
	if err != nil {
		c.log.Error("save bookmarks failed", zap.String("id", recipe.ID), zap.Error(err))
	}
	c.views.Recipe.Update(recipe)
	c.views.Bookmarks.Render(c.store.Bookmarks())
}

func (c *Controller) controlUpload(ctx context.Context, ev event.Event) {
	c.views.Upload.RenderSpinner()

	if err := c.store.UploadRecipe(ctx, ev.Fields); err != nil {
		if errors.Is(err, state.ErrSuperseded) {
			c.log.Debug("upload superseded")
			return
		}
		c.log.Error("upload failed", zap.Error(err))
		c.views.Upload.RenderError(err.Error())
		return
	}

	recipe, _ := c.store.Recipe()
	c.views.Recipe.Render(recipe)
	c.views.Upload.RenderMessage("")
	c.views.Bookmarks.Render(c.store.Bookmarks())
	c.loc.Replace(recipe.ID)

	c.after(c.closeDelay, func() {
		c.views.Upload.Close()
		c.loc.Reload(ctx)
	})
}

func (c *Controller) controlReload(ctx context.Context, ev event.Event) {
	if err := c.store.Restore(); err != nil {
		c.log.Warn("restore bookmarks failed", zap.Error(err))
	}
	c.views.Recipe.RenderWelcome()
	c.views.Bookmarks.Render(c.store.Bookmarks())
	c.controlRecipe(ctx, ev)
}
