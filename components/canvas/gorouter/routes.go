package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	router "github.com/goliatone/go-router"

	"github.com/glintlab/go-canvas/components/canvas"
	"github.com/glintlab/go-canvas/components/canvas/commands"
	"github.com/glintlab/go-canvas/components/canvas/httpapi"
)

// Config wires go-router with the canvas controller, command API, and
// refresh broadcast.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *canvas.Controller
	API        httpapi.Executor
	Broadcast  *canvas.BroadcastHook
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for builder endpoints.
type RouteConfig struct {
	HTML       string
	Layout     string
	Widgets    string
	WidgetID   string
	Move       string
	Resize     string
	Bind       string
	Filter     string
	Save       string
	WidgetData string
	WebSocket  string
}

// Register mounts builder routes (HTML, JSON, REST, WebSocket) on a
// go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/builder"
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		payload, err := cfg.Controller.Payload(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, routes RouteConfig) {
	r.Post(routes.Widgets, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.AddWidgetInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Add(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Delete(routes.WidgetID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("widget id is required"))
		}
		if err := api.Remove(ctx.Context(), commands.RemoveWidgetInput{WidgetID: id}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))

	r.Post(routes.Move, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.MoveWidgetInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Move(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "moved"})
	}))

	r.Post(routes.Resize, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ResizeWidgetInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Resize(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "resized"})
	}))

	r.Post(routes.Bind, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.BindColumnInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Bind(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "bound"})
	}))

	r.Post(routes.Filter, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ToggleFilterInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.ToggleFilter(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "filtered"})
	}))

	r.Post(routes.Save, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SaveDashboardInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Save(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *canvas.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/canvas"
	}
	if routes.Layout == "" {
		routes.Layout = "/canvas/_layout"
	}
	if routes.Widgets == "" {
		routes.Widgets = "/canvas/widgets"
	}
	if routes.WidgetID == "" {
		routes.WidgetID = "/canvas/widgets/:id"
	}
	if routes.Move == "" {
		routes.Move = "/canvas/widgets/move"
	}
	if routes.Resize == "" {
		routes.Resize = "/canvas/widgets/resize"
	}
	if routes.Bind == "" {
		routes.Bind = "/canvas/widgets/bind"
	}
	if routes.Filter == "" {
		routes.Filter = "/canvas/widgets/filter"
	}
	if routes.Save == "" {
		routes.Save = "/canvas/save"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/canvas/ws"
	}
	return routes
}
