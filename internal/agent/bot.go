package agent

import (
	"context"
	"encoding/json"
	"sort"

	"salvage-server/internal/domain"
	"salvage-server/internal/network"
	"salvage-server/pkg/api"
	"salvage-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// CommandSink - куда бот отправляет команды. GameService реализует его.
type CommandSink interface {
	ProcessCommand(cmd api.ClientCommand) <-chan domain.CommandResult
}

// SellThreshold - сколько груза копить перед продажей
const SellThreshold = 6

// Bot - автопилот (Headless Agent).
// Он видит мир так же, как обычный клиент: только опубликованные снимки из хаба.
// Решения принимаются по каждому новому снимку, команды идут через ту же очередь, что и от WebSocket.
//
// Приоритеты:
//  1. Забрать матроса, который ждет или дрейфует.
//  2. Продать груз, если его накопилось много.
//  3. Отправить свободного матроса на ресурс.
//  4. Плыть собирать ближайший ресурс.
type Bot struct {
	SessionID string
	Sink      CommandSink
	Inbox     chan api.ServerResponse

	hub *network.Broadcaster
	// Цели, на которые уже пришел отказ (нет пути и т.п.)
	blocked map[string]bool
	// Последняя отправленная команда, чтобы не повторять ее на каждом снимке одной версии
	lastVersion uint64
}

func NewBot(sessionID string, hub *network.Broadcaster, sink CommandSink) *Bot {
	logger.Component("agent").WithField("session", sessionID).Info("Creating autopilot")
	return &Bot{
		SessionID: sessionID,
		Sink:      sink,
		// Бот регистрируется в хабе как обычный клиент и получает свой канал для обновлений.
		Inbox:   hub.Register(sessionID),
		hub:     hub,
		blocked: make(map[string]bool),
	}
}

func (b *Bot) log() *logrus.Entry {
	return logger.Component("agent").WithField("session", b.SessionID)
}

// Run - цикл жизни бота. Завершается вместе с ctx или при закрытии канала.
func (b *Bot) Run(ctx context.Context) error {
	defer b.hub.Unregister(b.SessionID, b.Inbox)

	for {
		select {
		case <-ctx.Done():
			b.log().Info("Autopilot shut down")
			return nil
		case state, ok := <-b.Inbox:
			if !ok {
				return nil
			}
			if state.Version != 0 && state.Version == b.lastVersion {
				continue
			}
			b.lastVersion = state.Version

			cmd, target := b.Decide(state)
			if cmd == nil {
				continue
			}
			if !b.send(ctx, *cmd, target) {
				return nil
			}
		}
	}
}

// send отправляет команду и ждет ответа симуляции
func (b *Bot) send(ctx context.Context, cmd api.ClientCommand, target string) bool {
	cmd.Token = b.SessionID
	select {
	case out := <-b.Sink.ProcessCommand(cmd):
		entry := b.log().WithFields(logrus.Fields{"action": cmd.Action, "target": target})
		if !out.OK {
			entry.WithField("code", out.Code).Debug("Autopilot command rejected")
			if target != "" && out.Code != domain.CodeBusy {
				b.blocked[target] = true
			}
			return true
		}
		entry.Debug("Autopilot command accepted")
		return true
	case <-ctx.Done():
		return false
	}
}

// Decide выбирает следующую команду по снимку. target - id цели для учета отказов.
func (b *Bot) Decide(state api.ServerResponse) (*api.ClientCommand, string) {
	if state.Player == nil {
		return nil, ""
	}

	// 1. Экипаж забираем в любой момент: подбор не требует подплыть
	for _, c := range state.Crew {
		if c.State == domain.CrewAwaitingPickup.String() || c.State == domain.CrewDrifting.String() {
			return command(domain.ActionRetrieveCrew, api.EntityPayload{TargetID: c.ID}), c.ID
		}
	}

	if state.Activity != domain.ActivityIdle.String() || state.Combat != nil {
		return nil, ""
	}

	// 2. Продажа
	if res, count := biggestCargo(state.Player.Cargo); count >= SellThreshold {
		return command(domain.ActionSellCargo, api.SellPayload{Resource: res, Count: count}), ""
	}

	free := b.freeCollectibles(state)
	if len(free) == 0 {
		return nil, ""
	}

	// 3. Матрос берет второй по близости ресурс, первый остается кораблю
	if len(free) > 1 && hasIdleCrew(state.Crew) {
		c := free[1]
		return command(domain.ActionDeployCrew, api.DeployPayload{X: c.Pos.X, Y: c.Pos.Y, TargetID: c.ID}), c.ID
	}

	// 4. Сбор
	return command(domain.ActionCollect, api.EntityPayload{TargetID: free[0].ID}), free[0].ID
}

// freeCollectibles - незарезервированные ресурсы по удаленности от корабля
func (b *Bot) freeCollectibles(state api.ServerResponse) []api.CollectibleView {
	from := state.Player.Pos
	var free []api.CollectibleView
	for _, c := range state.Collectibles {
		if c.ReservedBy == "" && !b.blocked[c.ID] {
			free = append(free, c)
		}
	}
	sort.Slice(free, func(i, j int) bool {
		di, dj := chebyshev(from, free[i].Pos), chebyshev(from, free[j].Pos)
		if di != dj {
			return di < dj
		}
		return free[i].ID < free[j].ID
	})
	return free
}

func hasIdleCrew(crew []api.CrewView) bool {
	for _, c := range crew {
		if c.State == domain.CrewIdle.String() {
			return true
		}
	}
	return false
}

// biggestCargo - ресурс, которого в трюме больше всего
func biggestCargo(cargo map[string]int) (string, int) {
	best, bestCount := "", 0
	for res, n := range cargo {
		if n > bestCount || (n == bestCount && res < best) {
			best, bestCount = res, n
		}
	}
	return best, bestCount
}

func chebyshev(a, b api.PosView) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return max(dx, dy)
}

func command(action domain.ActionType, payload interface{}) *api.ClientCommand {
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.Component("agent").WithError(err).Error("Error marshalling payload")
		return nil
	}
	return &api.ClientCommand{Action: action.String(), Payload: raw}
}
