package server

import (
	"net/http"
	"time"

	"photocrop-server/internal/engine"
	"photocrop-server/pkg/api"
	"photocrop-server/pkg/logger"
	"photocrop-server/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService
type Client struct {
	Game  *engine.GameService
	Conn  *websocket.Conn
	Send  chan api.ServerResponse
	Token string

	done chan struct{} // закрывается при выходе writePump
}

func NewClient(game *engine.GameService, conn *websocket.Conn) *Client {
	return &Client{
		Game: game,
		Conn: conn,
		Send: make(chan api.ServerResponse, 256),
		done: make(chan struct{}),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	var updates chan api.ServerResponse
	defer func() {
		if updates != nil {
			c.Game.Hub.Unregister(c.Token, updates)
		} else {
			close(c.Send)
		}
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
		logger.Log.WithField("token", c.Token).Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE (LOGIN)
	var loginCmd api.ClientCommand
	if err := c.Conn.ReadJSON(&loginCmd); err != nil {
		logger.Log.WithError(err).Warn("Handshake failed")
		return
	}

	c.Token = loginCmd.Token
	if c.Token == "" {
		c.Token = utils.GenerateToken()
	}
	logger.Log.WithFields(logrus.Fields{
		"token":  c.Token,
		"remote": c.Conn.RemoteAddr().String(),
	}).Info("Client logged in")

	// 2. ПОДПИСКА НА ОБНОВЛЕНИЯ
	updates = c.Game.Hub.Register(c.Token)
	go c.forward(updates)

	// INIT - триггер первой отрисовки
	if err := c.Game.ProcessCommand(api.ClientCommand{Action: "INIT", Token: c.Token}); err != nil {
		logger.Log.WithError(err).Warn("INIT rejected")
	}

	// 3. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.WithError(err).Error("WS error")
			}
			break
		}
		cmd.Token = c.Token
		if err := c.Game.ProcessCommand(cmd); err != nil {
			c.Game.Hub.SendTo(c.Token, api.ServerResponse{
				Type: api.MsgError,
				Logs: []api.LogEntry{{Text: err.Error(), Type: "ERROR", Timestamp: time.Now().UnixMilli()}},
			})
		}
	}
}

// forward перекладывает рассылку хаба в Send, пока хаб не закроет канал.
// После выхода writePump сообщения отбрасываются.
func (c *Client) forward(ch chan api.ServerResponse) {
	defer close(c.Send)
	for msg := range ch {
		select {
		case c.Send <- msg:
		case <-c.done:
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		close(c.done)
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
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
		}
	}
}
