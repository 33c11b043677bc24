package proxy

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/voluntree-lab/backend/internal/domain/notification/event"
	"github.com/voluntree-lab/backend/internal/model"
	"github.com/voluntree-lab/backend/internal/repository"
	"github.com/voluntree-lab/backend/pkg/errorx"
	"github.com/voluntree-lab/backend/pkg/xcontext"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type ProxyServer struct {
	router           *Router
	notificationRepo repository.NotificationRepository
}

func NewProxyServer(router *Router, notificationRepo repository.NotificationRepository) *ProxyServer {
	return &ProxyServer{
		router:           router,
		notificationRepo: notificationRepo,
	}
}

// ServeNotification upgrades the request to a websocket, replays the
// recipient's recent notifications, then tails live events until the client
// disconnects.
func (server *ProxyServer) ServeNotification(ctx context.Context) error {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return errorx.New(errorx.Unauthenticated, "You need to sign in before subscribing")
	}

	latest, err := server.notificationRepo.GetLatest(
		ctx, userID, xcontext.Configs(ctx).Engagement.ColdStartNotifications)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load recent notifications: %v", err)
		return errorx.Unknown
	}

	unread, err := server.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unread notifications: %v", err)
		return errorx.Unknown
	}

	conn, err := upgrader.Upgrade(xcontext.HTTPWriter(ctx), xcontext.HTTPRequest(ctx), nil)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot upgrade connection: %v", err)
		return nil
	}
	defer conn.Close()

	session := NewUserSession(userID)
	session.Join(server.router.GetUserHub(userID))
	defer session.Leave()

	notifications := make([]model.Notification, 0, len(latest))
	for i := range latest {
		notifications = append(notifications, model.ConvertNotification(&latest[i]))
	}

	var seq int64
	ready := event.Format(event.New(
		&event.ReadyEvent{Notifications: notifications, UnreadCount: unread},
		event.Metadata{To: userID},
	), seq)
	seq++

	if err := writeEvent(conn, ready); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot send ready event: %v", err)
		return nil
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return nil

		case <-ctx.Done():
			return nil

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}

		case ev, ok := <-session.C:
			if !ok {
				return errorx.New(errorx.Unavailable, "Session is closed")
			}

			resp := event.Format(ev, seq)
			seq++

			if err := writeEvent(conn, resp); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot send event to client: %v", err)
				return nil
			}
		}
	}
}

func writeEvent(conn *websocket.Conn, resp *event.EventResponse) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, b)
}
