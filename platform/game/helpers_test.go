package game

import (
	"context"
	"crypto/ecdsa"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/DedS3t/flarepoly-backend/app/models"
	"github.com/DedS3t/flarepoly-backend/platform/auth"
	"github.com/DedS3t/flarepoly-backend/platform/dice"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const (
	testChain    = 114
	testTreasury = "0x000000000000000000000000000000000000dEaD"
	hashA        = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	hashB        = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

var ctx = context.Background()

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func fixedClock() time.Time {
	return time.Date(2024, 11, 2, 12, 0, 0, 0, time.UTC)
}

type fakeVerifier struct {
	mu     sync.Mutex
	result models.TransferResult
	err    error
	calls  []models.TransferRequest
}

func (f *fakeVerifier) VerifyTransfer(_ context.Context, req models.TransferRequest) (models.TransferResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.result, f.err
}

func (f *fakeVerifier) set(res models.TransferResult, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.result, f.err = res, err
}

func (f *fakeVerifier) requests() []models.TransferRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.TransferRequest(nil), f.calls...)
}

type recorder struct {
	mu    sync.Mutex
	snaps []models.Snapshot
	err   error
}

func (r *recorder) Publish(_ context.Context, snap models.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, snap)
	return r.err
}

func (r *recorder) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *recorder) versions() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uint64, len(r.snaps))
	for i, s := range r.snaps {
		out[i] = s.Version
	}
	return out
}

// harness is a session with scripted dice, a fake verifier and one wallet
// per seat, all connected.
type harness struct {
	t        *testing.T
	s        *Session
	keys     []*ecdsa.PrivateKey
	dice     *dice.Scripted
	verifier *fakeVerifier
	pub      *recorder
}

func settledConfig(players int) Config {
	cfg := DefaultConfig()
	cfg.Players = players
	cfg.Treasury = testTreasury
	return cfg
}

func localConfig(players int) Config {
	cfg := DefaultConfig()
	cfg.Players = players
	cfg.RequireSettlement = false
	return cfg
}

func newHarness(t *testing.T, cfg Config, rolls ...[2]int) *harness {
	t.Helper()
	h := &harness{
		t:        t,
		dice:     &dice.Scripted{Rolls: rolls},
		verifier: &fakeVerifier{result: models.TransferResult{OK: true, Reason: "ok"}},
		pub:      &recorder{},
	}
	for i := 0; i < cfg.Players; i++ {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)
		h.keys = append(h.keys, key)
	}
	h.s = NewSession("test", cfg, Deps{
		Gate:       auth.NewGate(nil, testChain),
		Dice:       h.dice,
		Verifier:   h.verifier,
		Publishers: []Publisher{h.pub},
		Log:        quietLog(),
		Now:        fixedClock,
	})
	t.Cleanup(h.s.Close)
	for i := range h.keys {
		h.connect(i)
	}
	return h
}

func (h *harness) addr(i int) string {
	return auth.AddressOf(h.keys[i])
}

func (h *harness) sign(i int, msg string) models.SigProof {
	sig, err := auth.SignMessage(h.keys[i], msg)
	require.NoError(h.t, err)
	return models.SigProof{Address: h.addr(i), Message: msg, Signature: sig}
}

func (h *harness) challenge(i int) string {
	ref, err := h.s.Ref(ctx)
	require.NoError(h.t, err)
	return auth.BuildChallenge(ref, testChain, i, "challenge")
}

func (h *harness) connect(i int) {
	h.t.Helper()
	msg := h.challenge(i)
	_, err := h.s.ConnectWallet(ctx, ConnectWallet{PlayerIndex: i, Proof: h.sign(i, msg), ExpectedMessage: msg})
	require.NoError(h.t, err)
}

// proof signs the next action message for player i.
func (h *harness) proof(i int, a Action) models.SigProof {
	msg, _, err := h.s.ActionMessage(ctx, i, a.Name(), a.Params())
	require.NoError(h.t, err)
	return h.sign(i, msg)
}

func (h *harness) act(i int, a Action) (models.Snapshot, error) {
	return h.s.Apply(ctx, h.proof(i, a), a)
}

func (h *harness) must(i int, a Action) models.Snapshot {
	h.t.Helper()
	snap, err := h.act(i, a)
	require.NoError(h.t, err)
	return snap
}

func (h *harness) state() models.Snapshot {
	snap, err := h.s.Snapshot(ctx)
	require.NoError(h.t, err)
	return snap
}

// newTestTable builds bare game state for rule tests that skip signing.
func newTestTable(cfg Config, src dice.Source) *table {
	cfg.withDefaults()
	deps := Deps{Dice: src, Verifier: &fakeVerifier{result: models.TransferResult{OK: true}}, Log: quietLog(), Now: fixedClock}
	deps.withDefaults()
	return newTable("test", cfg, deps)
}

func lastEvent(snap models.Snapshot, kind models.EventKind) (models.Event, bool) {
	for i := len(snap.Events) - 1; i >= 0; i-- {
		if snap.Events[i].Kind == kind {
			return snap.Events[i], true
		}
	}
	return models.Event{}, false
}

func intp(v int) *int {
	return &v
}
