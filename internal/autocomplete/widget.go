// Package autocomplete holds the state of a debounced type-ahead box. It
// knows nothing about bookings: options come from an injected fetch
// function and selections leave through a callback.
package autocomplete

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"campervan/internal/inflight"
)

const DefaultDelay = 300 * time.Millisecond

type Option struct {
	ID    string
	Label string
	Value string
}

type FetchFunc func(ctx context.Context, query string) ([]Option, error)

type Key string

const (
	KeyArrowDown Key = "ArrowDown"
	KeyArrowUp   Key = "ArrowUp"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
)

// Config wires a Widget. Delay defaults to DefaultDelay and AfterFunc to
// time.AfterFunc.
type Config struct {
	Fetch     FetchFunc
	OnSelect  func(*Option)
	Delay     time.Duration
	AfterFunc AfterFunc
	Log       logrus.FieldLogger
}

type Widget struct {
	mu          sync.Mutex
	fetch       FetchFunc
	onSelect    func(*Option)
	debounce    *Debouncer
	log         logrus.FieldLogger
	query       string
	options     []Option
	open        bool
	focused     bool
	loading     bool
	highlighted int
	pending     inflight.Counter
}

func New(cfg Config) *Widget {
	delay := cfg.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	onSelect := cfg.OnSelect
	if onSelect == nil {
		onSelect = func(*Option) {}
	}
	return &Widget{
		fetch:       cfg.Fetch,
		onSelect:    onSelect,
		debounce:    NewDebouncer(delay, cfg.AfterFunc),
		log:         log.WithField("component", "autocomplete"),
		highlighted: -1,
	}
}

// Type replaces the input text. A non-blank query opens the dropdown and
// schedules a fetch; a blank one clears the options.
func (w *Widget) Type(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.query = text
	w.focused = true
	if strings.TrimSpace(text) == "" {
		w.options = nil
		w.cancelPending()
		return
	}
	if !w.open {
		w.open = true
	}
	w.pending.Add()
	replaced := w.debounce.Trigger(func() {
		defer w.pending.Done()
		w.load(text)
	})
	if replaced {
		w.pending.Done()
	}
}

func (w *Widget) cancelPending() {
	if w.debounce.Cancel() {
		w.pending.Done()
	}
}

// Wait blocks until the scheduled search, if any, has fetched its
// options.
func (w *Widget) Wait() {
	w.pending.Wait()
}

func (w *Widget) load(query string) {
	w.mu.Lock()
	w.loading = true
	w.mu.Unlock()

	results, err := w.fetch(context.Background(), query)
	if err != nil {
		w.log.WithError(err).WithField("query", query).Error("Failed to fetch options")
		results = nil
	}

	w.mu.Lock()
	w.options = results
	w.loading = false
	w.mu.Unlock()
}

// Key handles keyboard navigation. Keys are ignored while the dropdown is
// closed.
func (w *Widget) Key(k Key) {
	w.mu.Lock()
	if !w.open {
		w.mu.Unlock()
		return
	}
	n := len(w.options)
	switch k {
	case KeyArrowDown:
		if w.highlighted < n-1 {
			w.highlighted++
		} else {
			w.highlighted = 0
		}
	case KeyArrowUp:
		if w.highlighted > 0 {
			w.highlighted--
		} else {
			w.highlighted = n - 1
		}
	case KeyEnter:
		if w.highlighted >= 0 && w.highlighted < n {
			opt := w.options[w.highlighted]
			w.mu.Unlock()
			w.Select(opt)
			return
		}
	case KeyEscape:
		w.open = false
		w.focused = false
	}
	w.mu.Unlock()
}

// Highlight moves the highlight to index i, as a pointer hover does.
func (w *Widget) Highlight(i int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i >= 0 && i < len(w.options) {
		w.highlighted = i
	}
}

// Select reports opt to the owner and shows its label.
func (w *Widget) Select(opt Option) {
	w.onSelect(&opt)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.cancelPending()
	w.query = opt.Label
	w.open = false
	w.highlighted = -1
}

// Clear reports an empty selection and resets the text and options.
func (w *Widget) Clear() {
	w.onSelect(nil)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.cancelPending()
	w.query = ""
	w.options = nil
	w.focused = true
}

// SyncSelected shows the label of an externally chosen value, or empties
// the text for nil. It neither calls OnSelect nor fetches.
func (w *Widget) SyncSelected(v *Option) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cancelPending()
	if v == nil {
		w.query = ""
		w.options = nil
		return
	}
	w.query = v.Label
}

// Focus reopens the dropdown when there is something typed.
func (w *Widget) Focus() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.focused = true
	if strings.TrimSpace(w.query) != "" {
		w.open = true
	}
}

// Close hides the dropdown, as a click outside does.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.open = false
}

func (w *Widget) Text() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.query
}

func (w *Widget) Options() []Option {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Option{}, w.options...)
}

func (w *Widget) Highlighted() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.highlighted
}

func (w *Widget) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

func (w *Widget) Focused() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.focused
}

func (w *Widget) Loading() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loading
}
