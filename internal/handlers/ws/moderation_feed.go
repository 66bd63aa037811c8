package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rafabene/gamehub-backend/internal/domain/access"
	"github.com/rafabene/gamehub-backend/internal/domain/entities"
	"github.com/rafabene/gamehub-backend/internal/domain/ports"
	"github.com/rafabene/gamehub-backend/internal/handlers/middleware"
)

// ModerationEvent é o evento publicado no feed quando o handler HTTP
// observa uma transição bem sucedida. O feed é um colaborador externo
// ao fluxo de moderação: o serviço em si não publica nada.
type ModerationEvent struct {
	SubmissionID string    `json:"submission_id"`
	Title        string    `json:"title"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	ActorID      string    `json:"actor_id"`
	Version      int       `json:"version"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// ModerationFeed distribui eventos de moderação para clientes websocket
// (dashboards administrativos). Clientes são somente-leitura.
type ModerationFeed struct {
	logger   ports.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]chan ModerationEvent
}

// NewModerationFeed cria um novo ModerationFeed
func NewModerationFeed(logger ports.Logger) *ModerationFeed {
	return &ModerationFeed{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origem é validada pelo middleware de CORS da aplicação
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]chan ModerationEvent),
	}
}

// Broadcast publica um evento para todos os clientes conectados.
// Clientes lentos perdem eventos ao invés de bloquear o publicador.
func (f *ModerationFeed) Broadcast(event ModerationEvent) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, ch := range f.clients {
		select {
		case ch <- event:
		default:
		}
	}
}

// Serve faz o upgrade da conexão e transmite eventos até o cliente
// desconectar. Apenas administradores com moderate_content.
func (f *ModerationFeed) Serve(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	if err := access.RequireRole(actor, entities.RoleAdmin); err != nil {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}
	if err := access.RequirePermission(actor, entities.PermissionModerateContent); err != nil {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	conn, err := f.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		f.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	events := make(chan ModerationEvent, 16)
	f.register(conn, events)
	defer f.unregister(conn)

	// Descartar mensagens do cliente; detecta fechamento
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				f.unregister(conn)
				return
			}
		}
	}()

	for event := range events {
		if err := conn.WriteJSON(event); err != nil {
			return
		}
	}
}

func (f *ModerationFeed) register(conn *websocket.Conn, ch chan ModerationEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients[conn] = ch
}

func (f *ModerationFeed) unregister(conn *websocket.Conn) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ch, ok := f.clients[conn]; ok {
		delete(f.clients, conn)
		close(ch)
		_ = conn.Close()
	}
}
