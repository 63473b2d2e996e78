package intake

import (
	"errors"
	"sort"
	"sync"
)

// Status is the tri-state submission status of a Draft.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusInFlight  Status = "in_flight"
	StatusSucceeded Status = "succeeded"
)

var (
	ErrUnknownField       = errors.New("intake: unknown field")
	ErrSubmissionInFlight = errors.New("intake: submission already in flight")
	ErrDraftLocked        = errors.New("intake: draft is not editable in its current status")
	ErrNotInFlight        = errors.New("intake: no submission in flight")
	ErrDraftDiscarded     = errors.New("intake: draft discarded")
	ErrDraftInvalid       = errors.New("intake: draft has field errors")
	ErrChallengeMissing   = errors.New("intake: challenge token missing")
)

// Event is delivered to listeners after every mutation or status transition.
// Field is empty for status transitions.
type Event struct {
	Field             string
	Status            Status
	Valid             bool
	SubmissionEnabled bool
}

type Listener func(Event)

// Draft holds the in-progress values of one intake session and re-validates on
// every change.
type Draft struct {
	mu        sync.Mutex
	id        string
	validator *Validator
	gate      *Gate

	values  map[string]any
	touched map[string]bool
	result  Result
	status  Status
	failure string

	discarded    bool
	listeners    map[int]Listener
	nextListener int
}

// NewDraft creates a Draft with every field at its empty default.
func NewDraft(id string, validator *Validator, gate *Gate) *Draft {
	d := &Draft{
		id:        id,
		validator: validator,
		gate:      gate,
		values:    make(map[string]any),
		touched:   make(map[string]bool),
		status:    StatusIdle,
		listeners: make(map[int]Listener),
	}
	for _, f := range validator.Catalog().fields {
		d.values[f.Key] = EmptyValue(f.Kind)
	}
	d.result = validator.Validate(d.values)
	return d
}

func (d *Draft) ID() string {
	return d.id
}

// SetField replaces one value, marks it touched and re-validates.
func (d *Draft) SetField(key string, value any) error {
	return d.SetFields(map[string]any{key: value})
}

// SetFields applies several values as one mutation. No value is applied when any
// key is unknown.
func (d *Draft) SetFields(values map[string]any) error {
	d.mu.Lock()
	if err := d.editableLocked(); err != nil {
		d.mu.Unlock()
		return err
	}

	catalog := d.validator.Catalog()
	normalized := make(map[string]any, len(values))
	for key, value := range values {
		field, ok := catalog.Field(key)
		if !ok {
			d.mu.Unlock()
			return ErrUnknownField
		}
		normalized[key] = NormalizeValue(field.Kind, value)
	}

	for key, value := range normalized {
		d.values[key] = value
		d.touched[key] = true
	}
	d.result = d.validator.Validate(d.values)

	keys := make([]string, 0, len(normalized))
	for key := range normalized {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	events := make([]Event, 0, len(keys))
	for _, key := range keys {
		events = append(events, d.eventLocked(key))
	}
	listeners := d.listenersLocked()
	d.mu.Unlock()

	for _, e := range events {
		notify(listeners, e)
	}
	return nil
}

func (d *Draft) editableLocked() error {
	if d.discarded {
		return ErrDraftDiscarded
	}
	switch d.status {
	case StatusInFlight:
		return ErrSubmissionInFlight
	case StatusSucceeded:
		return ErrDraftLocked
	}
	return nil
}

// Value returns a copy of the current value of key.
func (d *Draft) Value(key string) any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return copyValue(d.values[key])
}

// Values returns a copy of every field value.
func (d *Draft) Values() map[string]any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return copyValues(d.values)
}

// Result returns the full verdict, including errors on untouched fields.
func (d *Draft) Result() Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Result{Errors: copyErrors(d.result.Errors), Valid: d.result.Valid}
}

func (d *Draft) IsValid() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.result.Valid
}

func (d *Draft) Touched(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.touched[key]
}

// TouchAll marks every field touched, as a submit attempt does.
func (d *Draft) TouchAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key := range d.values {
		d.touched[key] = true
	}
}

// VisibleErrors is the Error Map restricted to touched fields.
func (d *Draft) VisibleErrors() ErrorMap {
	d.mu.Lock()
	defer d.mu.Unlock()
	visible := make(ErrorMap)
	for key, msg := range d.result.Errors {
		if d.touched[key] {
			visible[key] = msg
		}
	}
	return visible
}

// SubmissionEnabled is true iff the Draft is valid and the challenge requirement
// is met.
func (d *Draft) SubmissionEnabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.submissionEnabledLocked()
}

func (d *Draft) submissionEnabledLocked() bool {
	return d.result.Valid && d.gate.TokenSatisfied(d.values)
}

func (d *Draft) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// LastFailure is the reason recorded by the most recent SubmitFailed.
func (d *Draft) LastFailure() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.failure
}

// BeginSubmit moves idle to in-flight. A second call before the first submission
// resolves returns ErrSubmissionInFlight.
func (d *Draft) BeginSubmit() error {
	return d.transition(d.beginLocked)
}

// StartSubmission is BeginSubmit for a submit attempt: the Draft must also be valid and
// meet the challenge requirement. The returned values are the ones that were checked.
func (d *Draft) StartSubmission() (map[string]any, error) {
	var values map[string]any
	err := d.transition(func() error {
		if d.status == StatusIdle {
			if !d.result.Valid {
				return ErrDraftInvalid
			}
			if !d.gate.TokenSatisfied(d.values) {
				return ErrChallengeMissing
			}
		}
		if err := d.beginLocked(); err != nil {
			return err
		}
		values = copyValues(d.values)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (d *Draft) beginLocked() error {
	switch d.status {
	case StatusInFlight:
		return ErrSubmissionInFlight
	case StatusSucceeded:
		return ErrDraftLocked
	}
	d.status = StatusInFlight
	d.failure = ""
	return nil
}

func (d *Draft) SubmitSucceeded() error {
	return d.transition(func() error {
		if d.status != StatusInFlight {
			return ErrNotInFlight
		}
		d.status = StatusSucceeded
		return nil
	})
}

// SubmitFailed returns the Draft to idle with its values untouched.
func (d *Draft) SubmitFailed(reason string) error {
	return d.transition(func() error {
		if d.status != StatusInFlight {
			return ErrNotInFlight
		}
		d.status = StatusIdle
		d.failure = reason
		return nil
	})
}

func (d *Draft) transition(apply func() error) error {
	d.mu.Lock()
	if d.discarded {
		d.mu.Unlock()
		return ErrDraftDiscarded
	}
	if err := apply(); err != nil {
		d.mu.Unlock()
		return err
	}
	event := d.eventLocked("")
	listeners := d.listenersLocked()
	d.mu.Unlock()

	notify(listeners, event)
	return nil
}

// Discard ends the session. Later mutations and transitions return
// ErrDraftDiscarded, so a late network result never writes into it.
func (d *Draft) Discard() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.discarded = true
	d.listeners = make(map[int]Listener)
}

func (d *Draft) Discarded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.discarded
}

// Subscribe registers a listener and returns a function that removes it.
func (d *Draft) Subscribe(listener Listener) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextListener
	d.nextListener++
	d.listeners[id] = listener
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.listeners, id)
	}
}

func (d *Draft) eventLocked(field string) Event {
	return Event{
		Field:             field,
		Status:            d.status,
		Valid:             d.result.Valid,
		SubmissionEnabled: d.submissionEnabledLocked(),
	}
}

func (d *Draft) listenersLocked() []Listener {
	ids := make([]int, 0, len(d.listeners))
	for id := range d.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.listeners[id])
	}
	return out
}

func notify(listeners []Listener, event Event) {
	for _, l := range listeners {
		l(event)
	}
}

// Snapshot is the serializable state of a Draft.
type Snapshot struct {
	ID          string         `json:"id"`
	Values      map[string]any `json:"values"`
	Touched     []string       `json:"touched"`
	Status      Status         `json:"status"`
	LastFailure string         `json:"last_failure,omitempty"`
}

func (d *Draft) Snapshot() *Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	touched := make([]string, 0, len(d.touched))
	for key, ok := range d.touched {
		if ok {
			touched = append(touched, key)
		}
	}
	sort.Strings(touched)
	return &Snapshot{
		ID:          d.id,
		Values:      copyValues(d.values),
		Touched:     touched,
		Status:      d.status,
		LastFailure: d.failure,
	}
}

// RestoreDraft rebuilds a Draft from a snapshot. Keys no longer in the catalog are
// dropped.
func RestoreDraft(snapshot *Snapshot, validator *Validator, gate *Gate) *Draft {
	d := NewDraft(snapshot.ID, validator, gate)
	catalog := validator.Catalog()
	for key, value := range snapshot.Values {
		if field, ok := catalog.Field(key); ok {
			d.values[key] = NormalizeValue(field.Kind, value)
		}
	}
	for _, key := range snapshot.Touched {
		if _, ok := catalog.Field(key); ok {
			d.touched[key] = true
		}
	}
	if snapshot.Status != "" {
		d.status = snapshot.Status
	}
	d.failure = snapshot.LastFailure
	d.result = validator.Validate(d.values)
	return d
}

// NormalizeValue converts decoded JSON shapes into the Go type of a field kind.
// Values that cannot be converted are kept as-is and fail validation.
func NormalizeValue(kind FieldKind, value any) any {
	if value == nil {
		return EmptyValue(kind)
	}
	if kind != KindMultiSelect {
		return value
	}
	switch v := value.(type) {
	case []string:
		return append([]string{}, v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return value
			}
			out = append(out, s)
		}
		return out
	}
	return value
}

func copyValue(value any) any {
	if v, ok := value.([]string); ok {
		return append([]string{}, v...)
	}
	return value
}

func copyValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = copyValue(v)
	}
	return out
}

func copyErrors(errs ErrorMap) ErrorMap {
	out := make(ErrorMap, len(errs))
	for k, v := range errs {
		out[k] = v
	}
	return out
}
