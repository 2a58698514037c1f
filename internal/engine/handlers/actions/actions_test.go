package actions

import (
	"testing"

	"salvage-server/internal/domain"
	"salvage-server/internal/engine/handlers"
	"salvage-server/pkg/api"
)

// fakeGame записывает вызовы командного API
type fakeGame struct {
	calls  []string
	target domain.Position
	result domain.CommandResult
}

func (f *fakeGame) record(name string) domain.CommandResult {
	f.calls = append(f.calls, name)
	return f.result
}

func (f *fakeGame) RequestMove(p domain.Position) domain.CommandResult {
	f.target = p
	return f.record("move")
}
func (f *fakeGame) RequestCollect(string) domain.CommandResult { return f.record("collect") }
func (f *fakeGame) RequestCombat(string) domain.CommandResult  { return f.record("combat") }
func (f *fakeGame) DeployCrew(p domain.Position, _ string) domain.CommandResult {
	f.target = p
	return f.record("deploy")
}
func (f *fakeGame) RetrieveCrew(string) domain.CommandResult  { return f.record("retrieve") }
func (f *fakeGame) CancelCollection(bool) domain.CommandResult { return f.record("cancel") }
func (f *fakeGame) Purchase(string, string, domain.Position) domain.CommandResult {
	return f.record("purchase")
}
func (f *fakeGame) SellCargo(string, int) domain.CommandResult { return f.record("sell") }

func TestHandlersDelegate(t *testing.T) {
	game := &fakeGame{result: domain.Accepted("ok")}
	ctx := handlers.Context{Game: game}

	steps := []func() (handlers.Result, error){
		func() (handlers.Result, error) { return HandleMove(ctx, api.PositionPayload{X: 5, Y: 6}) },
		func() (handlers.Result, error) { return HandleCollect(ctx, api.EntityPayload{TargetID: "res_1"}) },
		func() (handlers.Result, error) { return HandleAttack(ctx, api.EntityPayload{TargetID: "enemy_1"}) },
		func() (handlers.Result, error) {
			return HandleDeployCrew(ctx, api.DeployPayload{X: 1, Y: 2, TargetID: "res_1"})
		},
		func() (handlers.Result, error) { return HandleRetrieveCrew(ctx, api.EntityPayload{TargetID: "crew_1"}) },
		func() (handlers.Result, error) { return HandleCancelCollection(ctx, api.ConfirmPayload{Confirm: true}) },
		func() (handlers.Result, error) {
			return HandlePurchase(ctx, api.PurchasePayload{Kind: "power_up", ItemID: "speed_boost"})
		},
		func() (handlers.Result, error) { return HandleSellCargo(ctx, api.SellPayload{Resource: "timber", Count: 1}) },
	}
	for _, step := range steps {
		res, err := step()
		if err != nil || !res.Outcome.OK {
			t.Fatalf("res=%+v err=%v", res, err)
		}
	}

	want := []string{"move", "collect", "combat", "deploy", "retrieve", "cancel", "purchase", "sell"}
	if len(game.calls) != len(want) {
		t.Fatalf("calls = %v", game.calls)
	}
	for i := range want {
		if game.calls[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, game.calls[i], want[i])
		}
	}
}

func TestHandleMove_NeedsConfirmIsNotAnError(t *testing.T) {
	game := &fakeGame{result: domain.CommandResult{Code: domain.CodeConfirmRequired, NeedsConfirm: true, Message: "Прервать сбор?"}}
	res, err := HandleMove(handlers.Context{Game: game}, api.PositionPayload{X: 1, Y: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.MsgType != domain.LogInfo || !res.Outcome.NeedsConfirm {
		t.Errorf("res = %+v", res)
	}
	if game.target != (domain.Position{X: 1, Y: 1}) {
		t.Errorf("target = %v", game.target)
	}
}

func TestHandleInit(t *testing.T) {
	res, err := HandleInit(handlers.Context{})
	if err != nil || !res.Outcome.OK || res.Msg == "" {
		t.Errorf("res=%+v err=%v", res, err)
	}
}
