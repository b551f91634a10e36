package browse

import (
	"context"
	"sync"

	"github.com/five82/showcase/internal/catalog"
)

// State is the observable navigation state.
type State struct {
	CurrentID int
	MaxID     int // zero until Init succeeds
	Loading   bool
	Current   *catalog.Product // nil while a product is being fetched
}

// HasProduct reports whether a product is ready to display.
func (s State) HasProduct() bool {
	return s.Current != nil
}

// Controller steps through the catalog one product at a time. Fetches are
// fenced by a request token: only the most recently issued fetch may set
// Current or clear Loading.
type Controller struct {
	fetcher catalog.Fetcher

	mu    sync.Mutex
	state State
	token uint64

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

// New returns a Controller positioned at initialID. Call Init before
// navigating so the catalog size is known.
func New(fetcher catalog.Fetcher, initialID int) *Controller {
	if initialID < 1 {
		initialID = 1
	}
	return &Controller{
		fetcher: fetcher,
		state:   State{CurrentID: initialID},
		subs:    make(map[int]func(State)),
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneState(c.state)
}

// Subscribe registers fn to receive the state after every observable change.
// fn runs on the goroutine that made the change and must not block. The
// returned func removes the subscription.
func (c *Controller) Subscribe(fn func(State)) (cancel func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

// Init fetches the catalog size and pulls CurrentID back to 1 when it falls
// outside [1, MaxID].
func (c *Controller) Init(ctx context.Context) error {
	n, err := c.fetcher.FetchProductsCount(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.state.MaxID = n
	if c.state.CurrentID < 1 || c.state.CurrentID > n {
		c.state.CurrentID = 1
	}
	c.mu.Unlock()

	c.notify()
	return nil
}

// Load fetches the product at CurrentID. A result that arrives after a newer
// fetch has been issued is dropped, and only the newest fetch resets Loading.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	token, id := c.begin()
	c.mu.Unlock()

	c.notify()
	return c.finish(ctx, token, id)
}

// Next moves to the following product, wrapping to 1 after MaxID. It does
// nothing while a fetch is in flight.
func (c *Controller) Next(ctx context.Context) error {
	return c.navigate(ctx, func(s *State) bool {
		s.CurrentID = NextID(s.CurrentID, s.MaxID)
		return true
	})
}

// Prev moves to the preceding product, wrapping to MaxID before 1. It does
// nothing while a fetch is in flight.
func (c *Controller) Prev(ctx context.Context) error {
	return c.navigate(ctx, func(s *State) bool {
		s.CurrentID = PrevID(s.CurrentID, s.MaxID)
		return true
	})
}

// GoTo jumps to id. It does nothing while a fetch is in flight or when id is
// outside [1, MaxID].
func (c *Controller) GoTo(ctx context.Context, id int) error {
	return c.navigate(ctx, func(s *State) bool {
		if id < 1 || id > s.MaxID {
			return false
		}
		s.CurrentID = id
		return true
	})
}

// NextID returns the id after id in a catalog of size maxID.
func NextID(id, maxID int) int {
	if id < maxID {
		return id + 1
	}
	return 1
}

// PrevID returns the id before id in a catalog of size maxID.
func PrevID(id, maxID int) int {
	if id > 1 {
		return id - 1
	}
	return max(1, maxID)
}

// navigate applies move and starts the fetch in one critical section so two
// rapid calls cannot both pass the Loading check.
func (c *Controller) navigate(ctx context.Context, move func(*State) bool) error {
	c.mu.Lock()
	if c.state.Loading || !move(&c.state) {
		c.mu.Unlock()
		return nil
	}
	c.state.Current = nil
	token, id := c.begin()
	c.mu.Unlock()

	c.notify()
	return c.finish(ctx, token, id)
}

// begin issues a new token. Callers must hold c.mu.
func (c *Controller) begin() (uint64, int) {
	c.token++
	c.state.Loading = true
	return c.token, c.state.CurrentID
}

func (c *Controller) finish(ctx context.Context, token uint64, id int) error {
	defer func() {
		c.mu.Lock()
		latest := token == c.token
		if latest {
			c.state.Loading = false
		}
		c.mu.Unlock()
		if latest {
			c.notify()
		}
	}()

	p, err := c.fetcher.FetchProduct(ctx, id)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if token == c.token {
		c.state.Current = p
	}
	c.mu.Unlock()
	return nil
}

func (c *Controller) notify() {
	c.subMu.Lock()
	fns := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	if len(fns) == 0 {
		return
	}
	snap := c.State()
	for _, fn := range fns {
		fn(snap)
	}
}

func cloneState(s State) State {
	if s.Current == nil {
		return s
	}
	p := *s.Current
	if p.Rating != nil {
		r := *p.Rating
		p.Rating = &r
	}
	s.Current = &p
	return s
}
