package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"toolbox-backend/internal/authorization"
	"toolbox-backend/pkg/navigation"
)

var navigationServed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "toolbox_navigation_served_total",
	Help: "Menus returned to viewers, by role.",
}, []string{"role"})

// Viewer identifies who a menu is rendered for.
type Viewer struct {
	Username string
	IsAdmin  bool
}

// NavigationService hands out the sidebar menu. The menu is built once by the
// caller and never changes afterwards.
type NavigationService struct {
	menu        *navigation.Config
	permissions *PermissionService
}

func NewNavigationService(menu *navigation.Config, permissions *PermissionService) *NavigationService {
	if menu == nil {
		menu = navigation.Default()
	}
	return &NavigationService{menu: menu, permissions: permissions}
}

func (s *NavigationService) Config() *navigation.Config {
	return s.menu
}

// Menu returns every entry, admin-only ones included.
func (s *NavigationService) Menu() []navigation.Entry {
	return s.menu.Entries()
}

// ForViewer returns the entries the viewer may see. Administrators see the
// whole menu; other users lose admin-only entries and any module explicitly
// switched off for them.
func (s *NavigationService) ForViewer(viewer Viewer) ([]navigation.Entry, error) {
	navigationServed.WithLabelValues(authorization.RoleFor(viewer.IsAdmin).String()).Inc()

	if viewer.IsAdmin {
		return s.menu.VisibleTo(true), nil
	}

	if s.permissions == nil {
		return s.menu.VisibleTo(false), nil
	}

	permissions, err := s.permissions.Get(viewer.Username)
	if err != nil {
		return nil, err
	}

	return s.menu.Filter(func(entry navigation.Entry) bool {
		return navigation.Visible(entry, false) && Allowed(permissions, entry.ID)
	}), nil
}
