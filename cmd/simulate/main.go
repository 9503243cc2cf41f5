// Command simulate plays a local FlarePoly game between scripted wallets and
// prints the result. Useful for eyeballing board balance and the event log.
package main

import (
	"context"
	"crypto/ecdsa"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/DedS3t/flarepoly-backend/app/models"
	"github.com/DedS3t/flarepoly-backend/platform/auth"
	"github.com/DedS3t/flarepoly-backend/platform/dice"
	"github.com/DedS3t/flarepoly-backend/platform/game"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pterm/pterm"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

const chainID = 114

type seat struct {
	key  *ecdsa.PrivateKey
	addr string
}

func main() {
	players := flag.Int("players", 4, "number of seats")
	seed := flag.Int64("seed", 1, "dice seed, 0 for random")
	maxTurns := flag.Int("turns", 500, "stop after this many actions")
	tail := flag.Int("log", 20, "event log lines to print")
	flag.Parse()

	if err := run(*players, *seed, *maxTurns, *tail); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(players int, seed int64, maxTurns, tail int) error {
	ctx := context.Background()
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	cfg := game.DefaultConfig()
	cfg.Players = players
	cfg.RequireSettlement = false
	s := game.NewSession("sim", cfg, game.Deps{
		Gate: auth.NewGate(nil, chainID),
		Dice: dice.NewSeeded(seed),
		Log:  logrus.NewEntry(quiet),
	})
	defer s.Close()

	seats, err := connectAll(ctx, s, players)
	if err != nil {
		return err
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	actions := 0
	for ; actions < maxTurns && !snap.GameOver; actions++ {
		idx := snap.ActivePlayer
		a := choose(snap)
		if snap, err = apply(ctx, s, seats[idx], idx, a); err != nil {
			return fmt.Errorf("player %d %s: %w", idx, a.Name(), err)
		}
	}

	printResult(snap, actions, tail)
	return nil
}

func connectAll(ctx context.Context, s *game.Session, n int) ([]seat, error) {
	ref, err := s.Ref(ctx)
	if err != nil {
		return nil, err
	}
	seats := make([]seat, n)
	for i := range seats {
		key, err := crypto.GenerateKey()
		if err != nil {
			return nil, err
		}
		seats[i] = seat{key: key, addr: auth.AddressOf(key)}

		msg := auth.BuildChallenge(ref, chainID, i, uuid.NewV4().String())
		sig, err := auth.SignMessage(key, msg)
		if err != nil {
			return nil, err
		}
		if _, err := s.ConnectWallet(ctx, game.ConnectWallet{
			PlayerIndex:     i,
			Proof:           models.SigProof{Address: seats[i].addr, Message: msg, Signature: sig},
			ExpectedMessage: msg,
		}); err != nil {
			return nil, err
		}
	}
	return seats, nil
}

// choose buys whatever the active player can afford and rolls otherwise.
func choose(snap models.Snapshot) game.Action {
	p := snap.BuyPrompt
	if p == nil || p.PlayerIndex != snap.ActivePlayer {
		return game.Roll{}
	}
	if snap.Players[snap.ActivePlayer].Balance >= p.Price {
		return game.Buy{}
	}
	return game.SkipBuy{}
}

func apply(ctx context.Context, s *game.Session, st seat, idx int, a game.Action) (models.Snapshot, error) {
	msg, _, err := s.ActionMessage(ctx, idx, a.Name(), a.Params())
	if err != nil {
		return models.Snapshot{}, err
	}
	sig, err := auth.SignMessage(st.key, msg)
	if err != nil {
		return models.Snapshot{}, err
	}
	return s.Apply(ctx, models.SigProof{Address: st.addr, Message: msg, Signature: sig}, a)
}

func printResult(snap models.Snapshot, actions, tail int) {
	pterm.DefaultHeader.WithFullWidth().Println("FlarePoly simulation")

	owned := map[int]int{}
	for _, owner := range snap.Ownership {
		owned[owner]++
	}
	data := pterm.TableData{{"Player", "Balance", "Position", "Tiles", "Status"}}
	for _, p := range snap.Players {
		status := pterm.LightGreen("playing")
		if p.Eliminated {
			status = pterm.LightRed("bankrupt")
		}
		data = append(data, []string{
			strconv.Itoa(p.Index),
			strconv.Itoa(p.Balance),
			strconv.Itoa(p.Position),
			strconv.Itoa(owned[p.Index]),
			status,
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
	}

	if snap.Winner != nil {
		pterm.Success.Printfln("player %d won after %d actions", *snap.Winner, actions)
	} else {
		pterm.Info.Printfln("no winner after %d actions", actions)
	}

	msgs := snap.Messages
	if len(msgs) > tail {
		msgs = msgs[len(msgs)-tail:]
	}
	for _, m := range msgs {
		pterm.Println(pterm.Gray(m.User+": ") + m.Text)
	}
}
