package goadmin_test

import (
	"context"
	"testing"

	builderpkg "github.com/glintlab/go-canvas/pkg/builder"
	"github.com/glintlab/go-canvas/pkg/goadmin"
)

type stubMenuBuilder struct {
	calls int
	items []goadmin.MenuItem
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, _ string, item goadmin.MenuItem) error {
	s.calls++
	s.items = append(s.items, item)
	return nil
}

func TestAdminBootstrapSeedsMenu(t *testing.T) {
	menu := &stubMenuBuilder{}
	session := builderpkg.NewSession(builderpkg.SessionOptions{})
	admin, err := goadmin.New(goadmin.Config{
		EnableBuilder: true,
		Session:       session,
		MenuBuilder:   menu,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if menu.calls != 1 {
		t.Fatalf("expected 1 call, got %d", menu.calls)
	}
	if menu.items[0].Label != "Dashboard Builder" || menu.items[0].Route != "admin.builder" {
		t.Fatalf("unexpected menu item %+v", menu.items[0])
	}
	if admin.Builder() == nil {
		t.Fatalf("expected canvas session")
	}
}

func TestAdminDisabledSkipsBootstrap(t *testing.T) {
	menu := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableBuilder: false,
		MenuBuilder:   menu,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if menu.calls != 0 {
		t.Fatalf("expected 0 calls, got %d", menu.calls)
	}
	if admin.Builder() != nil {
		t.Fatalf("expected nil session when disabled")
	}
}

func TestAdminRequiresSessionWhenEnabled(t *testing.T) {
	if _, err := goadmin.New(goadmin.Config{EnableBuilder: true}); err == nil {
		t.Fatalf("expected error without a session")
	}
}
