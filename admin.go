package worksite

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/worksite/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return RenderNode(c, views.AdminLogin(a.Config.siteInfo(), false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	a.Logger.Warn("admin login failed", zap.String("remote_ip", ip))
	return RenderNodeStatus(c, http.StatusUnauthorized, views.AdminLogin(a.Config.siteInfo(), true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// handleAdminRefresh re-syncs content from the CMS and drops the cached
// bundle so the next page view renders it.
func (a *App) handleAdminRefresh(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	snap, err := a.Sync(c.Request().Context())
	if err != nil {
		a.Logger.Error("content refresh failed", zap.Error(err))
		return a.renderAdminDashboard(c, "Refresh failed: "+err.Error())
	}
	return a.renderAdminDashboard(c, "Content refreshed from "+snap.Source+".")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	snaps, err := a.Store.ListSnapshots(c.Request().Context(), a.Config.SnapshotRetention)
	if err != nil {
		return err
	}
	rows := make([]views.SnapshotRow, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, views.SnapshotRow{
			ID:        s.ID,
			FetchedAt: s.FetchedAt.Format(time.RFC3339),
			Source:    s.Source,
			Size:      s.Size,
		})
	}
	return RenderNode(c, views.AdminDashboard(a.Config.siteInfo(), rows, msg, CsrfToken(c)))
}
