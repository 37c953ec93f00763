// Package roster keeps a client-side view of the member list consistent
// with the server. Mutations are applied to the cache only after the
// server confirms them.
package roster

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/GymMembers/internal/models"
)

// ErrNotCached is returned when an operation names a member the cache does not hold
var ErrNotCached = errors.New("member is not in the current list")

// MemberStore is the remote record store the reconciler mirrors
type MemberStore interface {
	List(ctx context.Context) ([]models.Member, error)
	Create(ctx context.Context, m models.Member) (*models.Member, error)
	Update(ctx context.Context, id int64, patch models.MemberPatch) (*models.Member, error)
	Delete(ctx context.Context, id int64) (string, error)
}

// ConfirmFunc asks the operator to approve deleting m
type ConfirmFunc func(m models.Member) bool

// State is a point-in-time copy of everything a view renders
type State struct {
	Members []models.Member
	Loading bool
	Error   string
	Editing *models.Member
	Mode    Mode
	Form    FormFields
}

// Reconciler owns the cache, the form and the editing target
type Reconciler struct {
	mu      sync.Mutex
	store   MemberStore
	logger  *logrus.Logger
	cache   *Cache
	form    *Form
	loading bool
	errMsg  string
	editing *models.Member
}

// Option configures a Reconciler
type Option func(*reconcilerOptions)

type reconcilerOptions struct {
	now func() time.Time
}

// WithClock sets the source of "today" for the form's default join date
func WithClock(now func() time.Time) Option {
	return func(o *reconcilerOptions) {
		o.now = now
	}
}

// New creates a reconciler in add mode. It reports loading until the first
// Refresh completes.
func New(store MemberStore, logger *logrus.Logger, opts ...Option) *Reconciler {
	o := reconcilerOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Reconciler{
		store:   store,
		logger:  logger,
		cache:   NewCache(),
		form:    NewForm(o.now),
		loading: true,
	}
}

// State returns a snapshot of the view state
func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := State{
		Members: r.cache.All(),
		Loading: r.loading,
		Error:   r.errMsg,
		Mode:    r.form.Mode,
		Form:    r.form.Fields,
	}
	if r.editing != nil {
		editing := *r.editing
		st.Editing = &editing
	}
	return st
}

// SetForm applies fn to the form fields, as typing into the form would
func (r *Reconciler) SetForm(fn func(*FormFields)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.form.Fields)
}

// DismissError clears the error message
func (r *Reconciler) DismissError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errMsg = ""
}

// Refresh replaces the cache with the server's list. On failure the cache
// is left untouched and the error is surfaced.
func (r *Reconciler) Refresh(ctx context.Context) error {
	members, err := r.store.List(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false
	if err != nil {
		return r.failLocked("load members", err)
	}
	r.cache.ReplaceAll(members)
	r.errMsg = ""
	return nil
}

// Submit sends the form to the server, creating or updating depending on mode
func (r *Reconciler) Submit(ctx context.Context) error {
	r.mu.Lock()
	fields := r.form.Fields
	var editingID int64
	if r.form.Mode == ModeEdit && r.editing != nil {
		editingID = r.editing.ID
	}
	r.mu.Unlock()

	member, err := fields.Member()
	if err != nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.errMsg = err.Error()
		return err
	}

	if editingID != 0 {
		return r.submitEdit(ctx, editingID, member)
	}
	return r.submitAdd(ctx, member)
}

func (r *Reconciler) submitAdd(ctx context.Context, member models.Member) error {
	created, err := r.store.Create(ctx, member)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		return r.failLocked("add member", err)
	}
	r.cache.Insert(*created)
	r.form.Reset()
	r.errMsg = ""
	r.logger.Debugf("Added member %d to view", created.ID)
	return nil
}

// submitEdit sends every form field; the server keeps the id
func (r *Reconciler) submitEdit(ctx context.Context, id int64, member models.Member) error {
	updated, err := r.store.Update(ctx, id, models.PatchFromMember(member))

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		return r.failLocked("update member", err)
	}
	if !r.cache.Replace(*updated) {
		r.cache.Insert(*updated)
	}
	r.editing = nil
	r.form.Reset()
	r.errMsg = ""
	r.logger.Debugf("Replaced member %d in view", updated.ID)
	return nil
}

// BeginEdit makes the cached member with id the editing target and fills the form
func (r *Reconciler) BeginEdit(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.cache.Get(id)
	if !ok {
		return fmt.Errorf("edit member %d: %w", id, ErrNotCached)
	}
	r.editing = &m
	r.form.Load(m)
	return nil
}

// CancelEdit clears the editing target and resets the form
func (r *Reconciler) CancelEdit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.editing = nil
	r.form.Reset()
}

// Delete removes the cached member with id after confirm approves it. It
// reports whether the member was deleted.
func (r *Reconciler) Delete(ctx context.Context, id int64, confirm ConfirmFunc) (bool, error) {
	r.mu.Lock()
	m, ok := r.cache.Get(id)
	r.mu.Unlock()
	if !ok {
		return false, fmt.Errorf("delete member %d: %w", id, ErrNotCached)
	}
	if confirm == nil || !confirm(m) {
		return false, nil
	}

	_, err := r.store.Delete(ctx, id)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		return false, r.failLocked("delete member", err)
	}
	r.cache.Remove(id)
	if r.editing != nil && r.editing.ID == id {
		r.editing = nil
		r.form.Reset()
	}
	r.errMsg = ""
	return true, nil
}

func (r *Reconciler) failLocked(action string, err error) error {
	r.errMsg = err.Error()
	r.logger.WithError(err).Debugf("Failed to %s", action)
	return err
}
