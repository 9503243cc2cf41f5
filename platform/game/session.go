package game

import (
	"context"
	"errors"
	"sync"

	"github.com/DedS3t/flarepoly-backend/app/models"
	"github.com/sirupsen/logrus"
)

// Session owns one game. Every call is queued to a single goroutine, so
// actions on a session are applied strictly one at a time while separate
// sessions run in parallel.
type Session struct {
	id         string
	t          *table
	publishers []Publisher
	log        *logrus.Entry

	requests  chan request
	done      chan struct{}
	closeOnce sync.Once
}

// request runs fn on the session goroutine. fn reports whether it changed
// the game; only changes bump the version and reach the publishers.
type request struct {
	ctx   context.Context
	fn    func(ctx context.Context) (bool, error)
	reply chan response
}

type response struct {
	snap models.Snapshot
	err  error
}

func NewSession(id string, cfg Config, deps Deps) *Session {
	cfg.withDefaults()
	deps.withDefaults()
	s := &Session{
		id:         id,
		t:          newTable(id, cfg, deps),
		publishers: deps.Publishers,
		log:        deps.Log.WithField("game", id),
		requests:   make(chan request),
		done:       make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) run() {
	for {
		select {
		case <-s.done:
			return
		case req := <-s.requests:
			changed, err := req.fn(req.ctx)
			changed = changed && err == nil
			if changed {
				s.t.version++
			}
			snap := s.t.snapshot()
			if changed {
				s.publish(req.ctx, snap)
			}
			req.reply <- response{snap: snap, err: err}
		}
	}
}

func (s *Session) publish(ctx context.Context, snap models.Snapshot) {
	ctx = context.WithoutCancel(ctx)
	for _, p := range s.publishers {
		if err := p.Publish(ctx, snap); err != nil {
			s.log.WithError(err).WithField("version", snap.Version).Error("publishing snapshot")
		}
	}
}

func (s *Session) do(ctx context.Context, fn func(ctx context.Context) (bool, error)) (models.Snapshot, error) {
	req := request{ctx: ctx, fn: fn, reply: make(chan response, 1)}
	select {
	case s.requests <- req:
	case <-s.done:
		return models.Snapshot{}, ErrSessionClosed
	case <-ctx.Done():
		return models.Snapshot{}, ctx.Err()
	}

	// Once queued the action runs to completion, so wait for its result.
	select {
	case res := <-req.reply:
		return res.snap, res.err
	case <-s.done:
		return models.Snapshot{}, ErrSessionClosed
	}
}

// Apply authenticates and applies one signed action for the active player.
func (s *Session) Apply(ctx context.Context, proof models.SigProof, a Action) (models.Snapshot, error) {
	snap, err := s.do(ctx, func(ctx context.Context) (bool, error) {
		return true, s.t.apply(ctx, proof, a)
	})
	s.logResult(a, snap, err)
	return snap, err
}

func (s *Session) logResult(a Action, snap models.Snapshot, err error) {
	name := "unknown"
	if a != nil {
		name = a.Name()
	}
	l := s.log.WithField("action", name)
	switch {
	case err == nil:
		l.WithField("version", snap.Version).Info("action applied")
	case errors.Is(err, ErrVerification):
		l.WithError(err).Warn("settlement not verified")
	default:
		l.WithError(err).Debug("action rejected")
	}
}

func (s *Session) ConnectWallet(ctx context.Context, c ConnectWallet) (models.Snapshot, error) {
	snap, err := s.do(ctx, func(context.Context) (bool, error) {
		return s.t.connectWallet(c)
	})
	if err != nil {
		s.log.WithError(err).WithField("player", c.PlayerIndex).Debug("wallet connect rejected")
	}
	return snap, err
}

// Reset starts the game over. Proofs signed before the reset become invalid.
func (s *Session) Reset(ctx context.Context) (models.Snapshot, error) {
	snap, err := s.do(ctx, func(context.Context) (bool, error) {
		s.t.reset()
		return true, nil
	})
	if err == nil {
		s.log.WithField("epoch", snap.Epoch).Info("game reset")
	}
	return snap, err
}

// ActionMessage returns the message the player must sign for the given action
// and the nonce it carries.
func (s *Session) ActionMessage(ctx context.Context, playerIndex int, action, params string) (string, uint64, error) {
	var (
		msg   string
		nonce uint64
	)
	_, err := s.do(ctx, func(context.Context) (bool, error) {
		p, err := s.t.player(playerIndex)
		if err != nil {
			return false, err
		}
		msg = s.t.gate.ActionMessage(s.t.ref(), p, action, params)
		nonce = p.Nonce + 1
		return false, nil
	})
	return msg, nonce, err
}

// Ref is the game identifier players sign against in the current epoch.
func (s *Session) Ref(ctx context.Context) (string, error) {
	var ref string
	_, err := s.do(ctx, func(context.Context) (bool, error) {
		ref = s.t.ref()
		return false, nil
	})
	return ref, err
}

func (s *Session) Snapshot(ctx context.Context) (models.Snapshot, error) {
	return s.do(ctx, func(context.Context) (bool, error) { return false, nil })
}

// Close stops the session goroutine. Pending and later calls fail with
// ErrSessionClosed.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}
