package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/glintlab/go-canvas/components/canvas/commands"
	gocommand "github.com/goliatone/go-command"
)

// Executor is the command surface transports dispatch against.
type Executor interface {
	Add(ctx context.Context, input commands.AddWidgetInput) error
	Remove(ctx context.Context, input commands.RemoveWidgetInput) error
	Move(ctx context.Context, input commands.MoveWidgetInput) error
	Resize(ctx context.Context, input commands.ResizeWidgetInput) error
	Bind(ctx context.Context, input commands.BindColumnInput) error
	ToggleFilter(ctx context.Context, input commands.ToggleFilterInput) error
	Save(ctx context.Context, input commands.SaveDashboardInput) error
}

// CommandExecutor dispatches to shared go-command commanders.
type CommandExecutor struct {
	AddCmd    gocommand.Commander[commands.AddWidgetInput]
	RemoveCmd gocommand.Commander[commands.RemoveWidgetInput]
	MoveCmd   gocommand.Commander[commands.MoveWidgetInput]
	ResizeCmd gocommand.Commander[commands.ResizeWidgetInput]
	BindCmd   gocommand.Commander[commands.BindColumnInput]
	FilterCmd gocommand.Commander[commands.ToggleFilterInput]
	SaveCmd   gocommand.Commander[commands.SaveDashboardInput]
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) Add(ctx context.Context, input commands.AddWidgetInput) error {
	return e.AddCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Remove(ctx context.Context, input commands.RemoveWidgetInput) error {
	return e.RemoveCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Move(ctx context.Context, input commands.MoveWidgetInput) error {
	return e.MoveCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Resize(ctx context.Context, input commands.ResizeWidgetInput) error {
	return e.ResizeCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Bind(ctx context.Context, input commands.BindColumnInput) error {
	return e.BindCmd.Execute(ctx, input)
}

func (e *CommandExecutor) ToggleFilter(ctx context.Context, input commands.ToggleFilterInput) error {
	return e.FilterCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Save(ctx context.Context, input commands.SaveDashboardInput) error {
	return e.SaveCmd.Execute(ctx, input)
}

// Handlers exposes plain net/http endpoints backed by the executor.
type Handlers struct {
	API Executor
}

func (h *Handlers) HandleAddWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.AddWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Add(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleRemoveWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	if err := h.API.Remove(r.Context(), commands.RemoveWidgetInput{WidgetID: widgetID}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleMoveWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.MoveWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Move(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleResizeWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.ResizeWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Resize(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleBindColumn(w http.ResponseWriter, r *http.Request) {
	var payload commands.BindColumnInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Bind(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleToggleFilter(w http.ResponseWriter, r *http.Request) {
	var payload commands.ToggleFilterInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.ToggleFilter(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleSaveDashboard(w http.ResponseWriter, r *http.Request) {
	var payload commands.SaveDashboardInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Save(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
