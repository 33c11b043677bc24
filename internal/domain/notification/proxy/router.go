package proxy

import (
	"context"
	"encoding/json"
	"time"

	"github.com/puzpuzpuz/xsync"
	"github.com/voluntree-lab/backend/internal/domain/notification/event"
	"github.com/voluntree-lab/backend/pkg/pubsub"
	"github.com/voluntree-lab/backend/pkg/xcontext"
)

const NotificationTopic = "notifications"

// Router owns one hub per connected recipient and routes events published by
// the api process to them. Its Subscribe method is wired as the kafka
// consumer handler.
type Router struct {
	userHubs *xsync.MapOf[string, *UserHub]
}

func NewRouter(ctx context.Context) *Router {
	router := &Router{
		userHubs: xsync.NewMapOf[*UserHub](),
	}

	go router.run(ctx)
	return router
}

func (r *Router) GetUserHub(userID string) *UserHub {
	hub, _ := r.userHubs.LoadOrStore(userID, NewUserHub(userID))
	return hub
}

func (r *Router) Subscribe(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var ev event.EventRequest
	if err := json.Unmarshal(pack.Msg, &ev); err != nil {
		xcontext.Logger(ctx).Errorf("Unable to unmarshal event: %v, %s", err, pack.Msg)
		return
	}

	hub, ok := r.userHubs.Load(ev.Metadata.To)
	if !ok {
		return
	}

	hub.Send(&ev)
}

func (r *Router) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
			r.cleanup()
		}
	}
}

func (r *Router) cleanup() {
	empty := []string{}
	r.userHubs.Range(func(userID string, hub *UserHub) bool {
		if hub.IsEmpty() {
			empty = append(empty, userID)
		}
		return true
	})

	for _, userID := range empty {
		r.userHubs.Delete(userID)
	}
}
