package advisory

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/Hxrshmxllow/HackPrincetonF25/internal/models"
)

// Kind identifies one advisory request type.
type Kind string

const (
	KindAnalysis  Kind = "analysis"
	KindInsurance Kind = "insuranceBreakdown"
	KindChat      Kind = "chat"
)

var (
	// ErrStale marks a response that arrived after the selection moved
	// on. It is a discard signal, not a failure; nothing was published.
	ErrStale = errors.New("advisory: stale result discarded")
	// ErrNoSelection is returned when an advisory request is made with
	// no vehicle selected.
	ErrNoSelection = errors.New("advisory: no vehicle selected")
)

const chatFallbackMessage = "Sorry, I'm having trouble connecting. Please try again later."

// call is one in-flight fetch. Joiners wait on done and read the outcome
// fields afterwards; the issuing goroutine is the only writer.
type call struct {
	done      chan struct{}
	analysis  *models.AIAnalysis
	breakdown *models.InsuranceBreakdown
	err       error
}

// Coordinator owns every outbound advisory request and guarantees that no
// published result belongs to a vehicle the caller has navigated away from.
//
// Each selection change bumps a generation counter and cancels the previous
// generation's context. A completion is published only if its captured
// generation still equals the current one; correctness depends on that check
// alone; the context cancel is a resource optimization.
type Coordinator struct {
	svc    Service
	logger *log.Logger

	mu         sync.Mutex
	generation uint64
	selected   *models.Vehicle
	genCtx     context.Context
	genCancel  context.CancelFunc

	// In-flight de-duplication slots, reset on every selection change.
	inflight map[Kind]*call

	// Published results for the current generation.
	analysis  *models.AIAnalysis
	breakdown *models.InsuranceBreakdown
	chat      []models.Message
}

// NewCoordinator creates a Coordinator backed by the given advisory service.
func NewCoordinator(svc Service, logger *log.Logger) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		svc:       svc,
		logger:    logger,
		genCtx:    ctx,
		genCancel: cancel,
		inflight:  make(map[Kind]*call),
	}
}

// Select records the new selection (nil clears it), bumps the generation,
// and cancels the previous generation's outstanding transports. In-flight
// requests are left to finish; their results fail the generation check.
func (c *Coordinator) Select(vehicle *models.Vehicle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-selecting the current vehicle is not a selection change: in-flight
	// work and published results stay valid.
	if vehicle == nil && c.selected == nil {
		return
	}
	if vehicle != nil && c.selected != nil && vehicle.ID == c.selected.ID {
		return
	}

	c.genCancel()
	c.generation++
	c.genCtx, c.genCancel = context.WithCancel(context.Background())

	c.selected = vehicle
	c.inflight = make(map[Kind]*call)
	c.analysis = nil
	c.breakdown = nil
	c.chat = nil

	fields := log.Fields{"generation": c.generation}
	if vehicle != nil {
		fields["vehicle_id"] = vehicle.ID
	}
	c.logger.WithFields(fields).Debug("selection changed")
}

// Generation returns the current generation counter.
func (c *Coordinator) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Selected returns the currently selected vehicle, or nil.
func (c *Coordinator) Selected() *models.Vehicle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Analysis returns the AI analysis for the current selection, fetching it if
// needed. Concurrent callers for the same generation share one in-flight
// request. A result arriving after the selection changed returns ErrStale.
func (c *Coordinator) Analysis(ctx context.Context) (*models.AIAnalysis, error) {
	c.mu.Lock()
	if c.selected == nil {
		c.mu.Unlock()
		return nil, ErrNoSelection
	}
	if c.analysis != nil {
		result := c.analysis
		c.mu.Unlock()
		return result, nil
	}
	if existing, ok := c.inflight[KindAnalysis]; ok {
		c.mu.Unlock()
		return joinAnalysis(ctx, existing)
	}

	gen := c.generation
	vehicle := *c.selected
	genCtx := c.genCtx
	cl := &call{done: make(chan struct{})}
	c.inflight[KindAnalysis] = cl
	c.mu.Unlock()

	analysis, err := c.svc.Analyze(genCtx, vehicle)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		cl.err = ErrStale
		close(cl.done)
		c.logger.WithFields(log.Fields{"kind": KindAnalysis, "generation": gen}).Debug("discarding stale result")
		return nil, ErrStale
	}
	delete(c.inflight, KindAnalysis)
	if err == nil {
		c.analysis = analysis
	}
	c.mu.Unlock()

	cl.analysis = analysis
	cl.err = err
	close(cl.done)

	if err != nil {
		c.logger.WithError(err).WithField("vehicle_id", vehicle.ID).Error("analysis request failed")
		return nil, err
	}
	return analysis, nil
}

// InsuranceBreakdown returns the raw insurance breakdown for the current
// selection with the same lifecycle rules as Analysis.
func (c *Coordinator) InsuranceBreakdown(ctx context.Context) (*models.InsuranceBreakdown, error) {
	c.mu.Lock()
	if c.selected == nil {
		c.mu.Unlock()
		return nil, ErrNoSelection
	}
	if c.breakdown != nil {
		result := c.breakdown
		c.mu.Unlock()
		return result, nil
	}
	if existing, ok := c.inflight[KindInsurance]; ok {
		c.mu.Unlock()
		return joinBreakdown(ctx, existing)
	}

	gen := c.generation
	vehicle := *c.selected
	genCtx := c.genCtx
	cl := &call{done: make(chan struct{})}
	c.inflight[KindInsurance] = cl
	c.mu.Unlock()

	breakdown, err := c.svc.InsuranceBreakdown(genCtx, vehicle)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		cl.err = ErrStale
		close(cl.done)
		c.logger.WithFields(log.Fields{"kind": KindInsurance, "generation": gen}).Debug("discarding stale result")
		return nil, ErrStale
	}
	delete(c.inflight, KindInsurance)
	if err == nil {
		c.breakdown = breakdown
	}
	c.mu.Unlock()

	cl.breakdown = breakdown
	cl.err = err
	close(cl.done)

	if err != nil {
		c.logger.WithError(err).WithField("vehicle_id", vehicle.ID).Error("insurance breakdown request failed")
		return nil, err
	}
	return breakdown, nil
}

// Chat sends one chat turn about the current selection and returns the
// transcript. The server's returned history is authoritative on success; on
// transport failure the user's message is kept and a single assistant
// fallback is appended so the conversation never blocks. Turns are never
// de-duplicated, every submit is a distinct turn.
func (c *Coordinator) Chat(ctx context.Context, message string) ([]models.Message, error) {
	c.mu.Lock()
	if c.selected == nil {
		c.mu.Unlock()
		return nil, ErrNoSelection
	}

	gen := c.generation
	vehicle := *c.selected
	genCtx := c.genCtx
	history := append(cloneMessages(c.chat), models.Message{Role: "user", Content: message})
	c.mu.Unlock()

	resp, err := c.svc.Chat(genCtx, models.ChatRequest{
		Car:            vehicle,
		MessageHistory: history,
		Message:        message,
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.WithFields(log.Fields{"kind": KindChat, "generation": gen}).Debug("discarding stale chat turn")
		return nil, ErrStale
	}

	if err != nil {
		c.logger.WithError(err).WithField("vehicle_id", vehicle.ID).Error("chat turn failed, appending fallback")
		c.chat = append(history, models.Message{Role: "assistant", Content: chatFallbackMessage})
		return cloneMessages(c.chat), nil
	}

	if len(resp.MessageHistory) == 0 {
		// A 2xx reply without a transcript may be masking a failure;
		// keep the optimistic local history but make it visible in logs.
		c.logger.WithField("vehicle_id", vehicle.ID).Warn("chat response carried no message history")
		c.chat = history
	} else {
		c.chat = resp.MessageHistory
	}
	return cloneMessages(c.chat), nil
}

// ChatHistory returns a copy of the current transcript.
func (c *Coordinator) ChatHistory() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneMessages(c.chat)
}

func joinAnalysis(ctx context.Context, cl *call) (*models.AIAnalysis, error) {
	select {
	case <-cl.done:
		return cl.analysis, cl.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func joinBreakdown(ctx context.Context, cl *call) (*models.InsuranceBreakdown, error) {
	select {
	case <-cl.done:
		return cl.breakdown, cl.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func cloneMessages(messages []models.Message) []models.Message {
	if messages == nil {
		return []models.Message{}
	}
	out := make([]models.Message, len(messages))
	copy(out, messages)
	return out
}
