package goadmin

import (
	"context"
	"errors"

	builderpkg "github.com/glintlab/go-canvas/pkg/builder"
)

// MenuBuilder ensures builder entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures builder link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the canvas session + feature flags into an admin shell.
type Config struct {
	EnableBuilder   bool
	MenuCode        string
	MenuBuilder     MenuBuilder
	Session         *builderpkg.Session
	DefaultMenuItem MenuItem
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed builder menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableBuilder && cfg.Session == nil {
		return nil, errors.New("goadmin: canvas session is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.DefaultMenuItem.Label == "" {
		cfg.DefaultMenuItem.Label = "Dashboard Builder"
	}
	if cfg.DefaultMenuItem.Route == "" {
		cfg.DefaultMenuItem.Route = "admin.builder"
	}
	if cfg.DefaultMenuItem.Icon == "" {
		cfg.DefaultMenuItem.Icon = "layout"
	}
	return &Admin{cfg: cfg}, nil
}

// Builder exposes the configured canvas session when enabled.
func (a *Admin) Builder() *builderpkg.Session {
	if !a.cfg.EnableBuilder {
		return nil
	}
	return a.cfg.Session
}

// Bootstrap seeds menu entries when builder support is enabled.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableBuilder || a.cfg.MenuBuilder == nil {
		return nil
	}
	return a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, a.cfg.DefaultMenuItem)
}
