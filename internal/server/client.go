package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"salvage-server/internal/domain"
	"salvage-server/internal/engine"
	"salvage-server/pkg/api"
	"salvage-server/pkg/logger"
	"salvage-server/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	handshakeWait  = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService
type Client struct {
	Game      *engine.GameService
	Conn      *websocket.Conn
	SessionID string
	Codec     api.Codec

	// Updates - личный канал снимков из хаба
	Updates chan api.ServerResponse
	// Results - ответы на команды этого клиента
	Results chan api.ServerResponse
	done    chan struct{}
}

func NewClient(game *engine.GameService, conn *websocket.Conn) *Client {
	return &Client{
		Game:    game,
		Conn:    conn,
		Results: make(chan api.ServerResponse, 16),
		done:    make(chan struct{}),
	}
}

func (c *Client) log() *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"component": "ws",
		"session":   c.SessionID,
	})
}

// readPump читает команды от клиента. Владеет жизнью соединения.
func (c *Client) readPump() {
	defer func() {
		close(c.done)
		if c.Updates != nil {
			c.Game.Hub.Unregister(c.SessionID, c.Updates)
		}
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log().Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)

	// 1. HANDSHAKE (LOGIN)
	if err := c.Conn.SetReadDeadline(time.Now().Add(handshakeWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	login, err := c.readCommand()
	if err != nil || login.Action != "LOGIN" {
		logger.Log.WithError(err).Warn("Handshake failed")
		c.closeWith(websocket.ClosePolicyViolation, "LOGIN expected")
		return
	}

	c.SessionID = login.Token
	if c.SessionID == "" {
		c.SessionID = utils.GenerateID()
	}
	c.Codec, err = api.CodecByName(login.Codec)
	if err != nil {
		c.closeWith(websocket.ClosePolicyViolation, err.Error())
		return
	}

	// 2. ПОДПИСКА НА ОБНОВЛЕНИЯ
	c.Updates = c.Game.Hub.Register(c.SessionID)
	c.log().WithField("codec", c.Codec.Name()).Info("Client logged in")

	// Первый кадр - полный снимок с типом INIT
	initial := c.Game.Snapshot()
	initial.Type = "INIT"
	c.pushResult(initial)

	go c.writePump()

	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// 3. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		cmd, err := c.readCommand()
		if err != nil {
			var re *readError
			if errors.As(err, &re) {
				if websocket.IsUnexpectedCloseError(re.err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					c.log().WithError(re.err).Warn("WS error")
				}
				return
			}
			// Битая команда - отказ, соединение живет
			c.pushResult(resultResponse(cmd.Action, rejectionFor(err)))
			continue
		}
		if cmd.Action == "LOGIN" {
			c.pushResult(resultResponse(cmd.Action, domain.Rejected(domain.CodeWrongState, "уже в сессии")))
			continue
		}

		cmd.Token = c.SessionID
		go c.awaitResult(cmd.Action, c.Game.ProcessCommand(cmd))
	}
}

// readCommand читает кадр и проверяет его схемой. Бинарный кадр - msgpack.
func (c *Client) readCommand() (api.ClientCommand, error) {
	mt, data, err := c.Conn.ReadMessage()
	if err != nil {
		return api.ClientCommand{}, &readError{err}
	}
	raw, err := normalizeCommand(mt, data)
	if err != nil {
		return api.ClientCommand{}, err
	}
	return api.DecodeCommand(raw)
}

// normalizeCommand приводит кадр к JSON для валидатора
func normalizeCommand(messageType int, data []byte) ([]byte, error) {
	if messageType != websocket.BinaryMessage {
		return data, nil
	}
	codec, _ := api.CodecByName(api.CodecMsgpack)
	var doc map[string]interface{}
	if err := codec.Decode(data, &doc); err != nil {
		return nil, errors.Join(api.ErrInvalidCommand, err)
	}
	return json.Marshal(doc)
}

// awaitResult ждет ответ симуляции и отправляет его клиенту
func (c *Client) awaitResult(action string, reply <-chan domain.CommandResult) {
	select {
	case out := <-reply:
		c.pushResult(resultResponse(action, out))
	case <-c.done:
	}
}

func (c *Client) pushResult(msg api.ServerResponse) {
	msg.SessionID = c.SessionID
	select {
	case c.Results <- msg:
	case <-c.done:
	default:
		c.log().Warn("Result dropped: client too slow")
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Updates:
			if !ok {
				// Сессию перехватило другое соединение
				c.closeWith(websocket.CloseNormalClosure, "session replaced")
				return
			}
			message.SessionID = c.SessionID
			if err := c.write(message); err != nil {
				return
			}

		case message := <-c.Results:
			if err := c.write(message); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}

		case <-c.done:
			return
		}
	}
}

// write кодирует сообщение кодеком клиента: JSON - текстовый кадр, msgpack - бинарный
func (c *Client) write(msg api.ServerResponse) error {
	data, err := c.Codec.Encode(msg)
	if err != nil {
		c.log().WithError(err).Error("encode failed")
		return err
	}
	frame := websocket.TextMessage
	if c.Codec.Binary() {
		frame = websocket.BinaryMessage
	}
	if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set write deadline")
	}
	if err := c.Conn.WriteMessage(frame, data); err != nil {
		logger.Log.WithError(err).Debug("write message failed")
		return err
	}
	return nil
}

func (c *Client) closeWith(code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	if err := c.Conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
		logger.Log.WithError(err).Debug("write close message failed")
	}
}

// readError - соединение сломано, читать дальше нельзя
type readError struct{ err error }

func (e *readError) Error() string { return e.err.Error() }
func (e *readError) Unwrap() error { return e.err }

// rejectionFor переводит ошибку разбора в код отказа
func rejectionFor(err error) domain.CommandResult {
	if errors.Is(err, api.ErrUnknownAction) {
		return domain.Rejected(domain.CodeUnknownAction, err.Error())
	}
	return domain.Rejected(domain.CodeBadPayload, err.Error())
}

// resultResponse - ответ на команду в формате протокола
func resultResponse(action string, out domain.CommandResult) api.ServerResponse {
	return api.ServerResponse{
		Type: "RESULT",
		Result: &api.CommandResultView{
			Action:       action,
			OK:           out.OK,
			Code:         out.Code,
			Message:      out.Message,
			NeedsConfirm: out.NeedsConfirm,
		},
	}
}
