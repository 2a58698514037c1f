package agent

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"salvage-server/internal/domain"
	"salvage-server/internal/network"
	"salvage-server/pkg/api"
)

type fakeSink struct {
	mu    sync.Mutex
	cmds  []api.ClientCommand
	reply domain.CommandResult
}

func (f *fakeSink) ProcessCommand(cmd api.ClientCommand) <-chan domain.CommandResult {
	f.mu.Lock()
	f.cmds = append(f.cmds, cmd)
	f.mu.Unlock()
	ch := make(chan domain.CommandResult, 1)
	ch <- f.reply
	return ch
}

func (f *fakeSink) sent() []api.ClientCommand {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.ClientCommand(nil), f.cmds...)
}

func baseState() api.ServerResponse {
	return api.ServerResponse{
		Type:     "UPDATE",
		Version:  1,
		Activity: "IDLE",
		Player:   &api.PlayerView{Pos: api.PosView{X: 5, Y: 5}, Cargo: map[string]int{}},
		Crew:     []api.CrewView{{ID: "crew_1", State: "IDLE"}},
		Collectibles: []api.CollectibleView{
			{ID: "res_far", Pos: api.PosView{X: 20, Y: 20}},
			{ID: "res_near", Pos: api.PosView{X: 6, Y: 5}},
			{ID: "res_mid", Pos: api.PosView{X: 9, Y: 5}},
		},
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*api.ServerResponse)
		action string
		target string
	}{
		{"deploy crew to second nearest", func(s *api.ServerResponse) {}, "DEPLOY_CREW", "res_mid"},
		{"collect nearest without idle crew", func(s *api.ServerResponse) {
			s.Crew[0].State = "COLLECTING"
		}, "COLLECT", "res_near"},
		{"retrieve awaiting crew first", func(s *api.ServerResponse) {
			s.Crew[0].State = "AWAITING_PICKUP"
			s.Activity = "IN_COMBAT"
		}, "RETRIEVE_CREW", "crew_1"},
		{"retrieve drifting crew", func(s *api.ServerResponse) {
			s.Crew[0].State = "DRIFTING"
		}, "RETRIEVE_CREW", "crew_1"},
		{"sell full hold", func(s *api.ServerResponse) {
			s.Player.Cargo = map[string]int{"timber": 2, "alloy": SellThreshold}
		}, "SELL_CARGO", ""},
		{"skip reserved", func(s *api.ServerResponse) {
			s.Crew = nil
			s.Collectibles[1].ReservedBy = "crew_2"
		}, "COLLECT", "res_mid"},
		{"busy traveling", func(s *api.ServerResponse) {
			s.Activity = "TRAVELING"
		}, "", ""},
		{"nothing to collect", func(s *api.ServerResponse) {
			s.Collectibles = nil
		}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := baseState()
			tt.mutate(&state)
			b := &Bot{blocked: map[string]bool{}}

			cmd, target := b.Decide(state)
			if tt.action == "" {
				if cmd != nil {
					t.Fatalf("expected no command, got %+v", cmd)
				}
				return
			}
			if cmd == nil || cmd.Action != tt.action || target != tt.target {
				t.Fatalf("got %+v target %q, want %s %q", cmd, target, tt.action, tt.target)
			}
		})
	}
}

func TestDecide_SellsBiggestStack(t *testing.T) {
	state := baseState()
	state.Player.Cargo = map[string]int{"timber": 7, "alloy": 9}
	cmd, _ := (&Bot{blocked: map[string]bool{}}).Decide(state)

	var p api.SellPayload
	if err := json.Unmarshal(cmd.Payload, &p); err != nil {
		t.Fatal(err)
	}
	if p.Resource != "alloy" || p.Count != 9 {
		t.Errorf("payload = %+v", p)
	}
}

func TestRun_BlocksRejectedTargets(t *testing.T) {
	hub := network.NewBroadcaster()
	sink := &fakeSink{reply: domain.Rejected(domain.CodeNoPath, "нет пути")}
	bot := NewBot("autopilot", hub, sink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bot.Run(ctx) }()

	state := baseState()
	state.Crew = nil
	hub.Broadcast(state)
	state.Version = 2
	hub.Broadcast(state)
	// Та же версия повторно не обрабатывается
	hub.Broadcast(state)

	deadline := time.Now().Add(2 * time.Second)
	for len(sink.sent()) < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("sent %d commands", len(sink.sent()))
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	sent := sink.sent()
	if len(sent) != 2 {
		t.Fatalf("sent = %+v", sent)
	}
	var first, second api.EntityPayload
	json.Unmarshal(sent[0].Payload, &first)
	json.Unmarshal(sent[1].Payload, &second)
	if first.TargetID != "res_near" || second.TargetID != "res_mid" {
		t.Errorf("targets %q then %q", first.TargetID, second.TargetID)
	}
	if sent[0].Token != "autopilot" {
		t.Errorf("token = %q", sent[0].Token)
	}
	if hub.HasSubscriber("autopilot") {
		t.Error("bot must unsubscribe on exit")
	}
}
