package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"salvage-server/internal/config"
	"salvage-server/internal/domain"
	"salvage-server/internal/engine/handlers"
	"salvage-server/internal/engine/handlers/actions"
	"salvage-server/internal/engine/handlers/admin"
	"salvage-server/internal/infrastructure/storage"
	"salvage-server/internal/network"
	"salvage-server/pkg/api"
	"salvage-server/pkg/logger"
	"salvage-server/pkg/seamap"

	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// queuedCommand - команда в очереди симуляции и канал для ответа
type queuedCommand struct {
	cmd   domain.InternalCommand
	admin string // непустое - отладочная команда (GRANT, TELEPORT)
	reply chan domain.CommandResult
}

// GameService владеет миром и крутит симуляцию.
// Все изменения мира происходят в одной горутине (Run -> Tick). Снаружи доступен только снапшот.
type GameService struct {
	cfg   *config.Config
	seed  int64
	world *WorldState
	sched *Scheduler
	rng   *rand.Rand

	// journal - все выполненные команды, для проигрывания сессии заново
	journal *storage.Journal

	now   int64 // время последнего тика, мс
	clock func() int64

	CommandChan chan queuedCommand
	Hub         *network.Broadcaster

	handlers      map[domain.ActionType]handlers.HandlerFunc
	adminHandlers map[string]handlers.HandlerFunc

	// Опубликованное состояние. Пишет только горутина симуляции.
	mu        deadlock.RWMutex
	snapshot  api.ServerResponse
	queueDump []map[string]interface{}
	published uint64
}

// NewService генерирует море по seed и готовит симуляцию к запуску
func NewService(cfg *config.Config, seed int64) *GameService {
	sea := seamap.Generate(cfg, seed)
	return NewServiceWithSea(cfg, sea, seed, time.Now().UnixMilli())
}

// NewServiceWithSea собирает сервис поверх готового моря. start - время симуляции в момент создания.
func NewServiceWithSea(cfg *config.Config, sea *seamap.Sea, seed int64, start int64) *GameService {
	s := &GameService{
		cfg:           cfg,
		seed:          seed,
		sched:         NewScheduler(),
		rng:           rand.New(rand.NewSource(seed + 1)),
		now:           start,
		clock:         func() int64 { return time.Now().UnixMilli() },
		CommandChan:   make(chan queuedCommand, 100),
		Hub:           network.NewBroadcaster(),
		handlers:      make(map[domain.ActionType]handlers.HandlerFunc),
		adminHandlers: make(map[string]handlers.HandlerFunc),
		journal:       storage.NewJournal(seed, start, int32(cfg.Sim.TickMs)),
	}
	s.world = buildWorldState(cfg, sea, start)
	s.registerHandlers()

	logger.Log.WithFields(logrus.Fields{
		"component":    "game_service",
		"seed":         seed,
		"grid":         s.world.Grid.Size,
		"enemies":      len(s.world.Enemies),
		"collectibles": len(s.world.Collectibles),
		"crew":         len(s.world.Crew),
	}).Info("World generated")

	s.AddLog("Корабль у причала. Море ждет.", domain.LogInfo)
	s.publish()
	return s
}

func (s *GameService) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	s.handlers[domain.ActionCollect] = handlers.WithPayload(actions.HandleCollect)
	s.handlers[domain.ActionAttack] = handlers.WithPayload(actions.HandleAttack)
	s.handlers[domain.ActionDeployCrew] = handlers.WithPayload(actions.HandleDeployCrew)
	s.handlers[domain.ActionRetrieveCrew] = handlers.WithPayload(actions.HandleRetrieveCrew)
	s.handlers[domain.ActionCancelCollection] = handlers.WithPayload(actions.HandleCancelCollection)
	s.handlers[domain.ActionPurchase] = handlers.WithPayload(actions.HandlePurchase)
	s.handlers[domain.ActionSellCargo] = handlers.WithPayload(actions.HandleSellCargo)

	s.adminHandlers["GRANT"] = handlers.WithPayload(admin.HandleGrant)
	s.adminHandlers["TELEPORT"] = handlers.WithPayload(admin.HandleTeleport)
}

// Journal - журнал выполненных команд
func (s *GameService) Journal() *storage.Journal {
	return s.journal
}

// Config - таблицы, с которыми запущена симуляция (только чтение)
func (s *GameService) Config() *config.Config {
	return s.cfg
}

// Run крутит симуляцию с фиксированным шагом sim.tick_ms, пока жив ctx
func (s *GameService) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(s.cfg.Sim.TickMs) * time.Millisecond)
	defer ticker.Stop()

	logger.Log.WithFields(logrus.Fields{
		"component": "game_service",
		"tick_ms":   s.cfg.Sim.TickMs,
	}).Info("Simulation loop started")

	for {
		select {
		case <-ctx.Done():
			logger.Log.WithField("component", "game_service").Info("Simulation loop stopped")
			return nil
		case <-ticker.C:
			s.Tick(s.clock())
		}
	}
}

// Tick - один атомарный шаг симуляции на момент now (мс)
func (s *GameService) Tick(now int64) {
	dt := float64(now - s.now)
	if dt < 0 {
		dt = 0
		now = s.now
	}
	s.now = now

	s.drainCommands()

	s.updatePlayer(dt)
	s.updateEnemies(dt)
	s.updateCrew(dt)

	s.processDeadlines()
	s.checkCollection()
	s.checkAutoAttack()

	s.publishIfChanged()
}

// drainCommands выполняет все команды, пришедшие с прошлого тика
func (s *GameService) drainCommands() {
	for {
		select {
		case q := <-s.CommandChan:
			var out domain.CommandResult
			entry := storage.Entry{At: s.now, Token: q.cmd.Token, Payload: q.cmd.Payload}
			if q.admin != "" {
				out = s.executeAdmin(q.admin, q.cmd.Payload)
				entry.Admin, entry.Action = true, q.admin
			} else {
				out = s.Execute(q.cmd)
				entry.Action = q.cmd.Action.String()
			}
			s.journal.Record(entry)
			q.reply <- out
		default:
			return
		}
	}
}

// ProcessCommand принимает команду от внешнего мира (WebSocket, автопилот).
// Проверяет действие и payload, ставит в очередь. Ответ придет после ближайшего тика.
func (s *GameService) ProcessCommand(ext api.ClientCommand) <-chan domain.CommandResult {
	reply := make(chan domain.CommandResult, 1)

	action := domain.ParseAction(ext.Action)
	if action == domain.ActionUnknown {
		logger.Log.WithFields(logrus.Fields{
			"component": "game_service",
			"action":    ext.Action,
		}).Warn("Unknown action")
		reply <- domain.Rejected(domain.CodeUnknownAction, fmt.Sprintf("неизвестное действие %q", ext.Action))
		return reply
	}
	if err := api.ValidatePayload(action.String(), ext.Payload); err != nil {
		reply <- domain.Rejected(domain.CodeBadPayload, err.Error())
		return reply
	}

	s.enqueue(queuedCommand{
		cmd:   domain.InternalCommand{Action: action, Token: ext.Token, Payload: ext.Payload},
		reply: reply,
	})
	return reply
}

// ProcessAdmin ставит в очередь отладочную команду
func (s *GameService) ProcessAdmin(action string, payload json.RawMessage) <-chan domain.CommandResult {
	reply := make(chan domain.CommandResult, 1)
	if _, ok := s.adminHandlers[action]; !ok {
		reply <- domain.Rejected(domain.CodeUnknownAction, fmt.Sprintf("неизвестная команда %q", action))
		return reply
	}
	s.enqueue(queuedCommand{
		cmd:   domain.InternalCommand{Token: "admin", Payload: payload},
		admin: action,
		reply: reply,
	})
	return reply
}

func (s *GameService) enqueue(q queuedCommand) {
	select {
	case s.CommandChan <- q:
	default:
		q.reply <- domain.Rejected(domain.CodeBusy, "очередь команд переполнена")
	}
}

// Execute выполняет команду синхронно. Только из горутины симуляции (или из тестов без Run).
func (s *GameService) Execute(cmd domain.InternalCommand) domain.CommandResult {
	handler, ok := s.handlers[cmd.Action]
	if !ok {
		return domain.Rejected(domain.CodeUnknownAction, "нет обработчика для "+cmd.Action.String())
	}
	ctx := handlers.Context{Game: s, Token: cmd.Token, Now: s.now}
	return s.runHandler(handler, ctx, cmd.Action.String(), cmd.Payload)
}

func (s *GameService) executeAdmin(action string, payload json.RawMessage) domain.CommandResult {
	handler, ok := s.adminHandlers[action]
	if !ok {
		return domain.Rejected(domain.CodeUnknownAction, "нет обработчика для "+action)
	}
	ctx := handlers.Context{Game: s, Admin: s, Token: "admin", Now: s.now}
	return s.runHandler(handler, ctx, action, payload)
}

// runHandler выполняет хендлер и пишет результат в игровой лог
func (s *GameService) runHandler(handler handlers.HandlerFunc, ctx handlers.Context, action string, payload json.RawMessage) domain.CommandResult {
	result, err := handler(ctx, payload)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"component": "game_service",
			"action":    action,
			"token":     ctx.Token,
		}).WithError(err).Warn("Command payload rejected")
		s.AddLog(fmt.Sprintf("Команда %s отклонена.", action), domain.LogError)
		return domain.Rejected(domain.CodeBadPayload, err.Error())
	}

	if result.Msg != "" {
		s.AddLog(result.Msg, result.MsgType)
	}
	return result.Outcome
}

// --- ПУБЛИКАЦИЯ ---

func (s *GameService) publishIfChanged() {
	if s.world.Version == s.published {
		return
	}
	s.publish()
}

// publish снимает копию мира и рассылает ее подписчикам
func (s *GameService) publish() {
	snap := s.BuildSnapshot()
	dump := s.sched.DebugDump()

	s.mu.Lock()
	s.snapshot = snap
	s.queueDump = dump
	s.published = s.world.Version
	s.mu.Unlock()

	s.Hub.Broadcast(snap)
}

// Snapshot - последний опубликованный снимок мира. Безопасно из любой горутины.
// Слайсы и мапы снимка не меняются симуляцией, но и вызывающий их менять не должен.
func (s *GameService) Snapshot() api.ServerResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// QueueDump - очередь дедлайнов на момент последней публикации
func (s *GameService) QueueDump() []map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queueDump
}
