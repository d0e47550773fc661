// admin.go - privacy-conscious visitor metrics and contact inbox
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const adminCookie = "admin_token"

// VisitorMetric is one tracked page view. The IP is stored hashed.
type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Lang      string    `json:"lang"`
	Timestamp time.Time `json:"timestamp"`
}

type LangCount struct {
	Lang  string `json:"lang"`
	Count int64  `json:"count"`
}

type AdminStats struct {
	TotalVisitors       int64           `json:"total_visitors"`
	UniqueVisitors      int64           `json:"unique_visitors"`
	VisitorsToday       int64           `json:"visitors_today"`
	VisitorsThisWeek    int64           `json:"visitors_this_week"`
	TotalSubmissions    int64           `json:"total_submissions"`
	SubmissionsThisWeek int64           `json:"submissions_this_week"`
	Languages           []LangCount     `json:"languages"`
	RecentVisitors      []VisitorMetric `json:"recent_visitors"`
	RecentSubmissions   []Submission    `json:"recent_submissions"`
}

type adminAuth struct {
	token    string
	salt     string
	username string
	password string
}

func newAdminAuth(cfg *Config, log *zap.SugaredLogger) (*adminAuth, error) {
	token, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("admin token: %w", err)
	}
	salt, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("hashing salt: %w", err)
	}

	a := &adminAuth{
		token:    token,
		salt:     salt,
		username: cfg.AdminUsername,
		password: cfg.AdminPassword,
	}

	// Default credentials only outside release mode.
	if cfg.GinMode != gin.ReleaseMode {
		if a.username == "" {
			a.username = "admin"
			log.Warn("admin: using default username, set ADMIN_USERNAME")
		}
		if a.password == "" {
			a.password = "admin123"
			log.Warn("admin: using default password, set ADMIN_PASSWORD")
		}
		log.Debugw("admin: dev token", "token", a.token)
	}
	if a.username == "" || a.password == "" {
		log.Warn("admin: ADMIN_USERNAME/ADMIN_PASSWORD not set, admin login disabled")
	}
	log.Info("privacy: visitor tracking enabled with hashed IP addresses")
	return a, nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hashIP hashes ip with the per-process salt. Same IP, same hash, until restart.
func (a *adminAuth) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + a.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func (a *adminAuth) checkCredentials(username, password string) bool {
	if a.username == "" || a.password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

// secureCookies reports whether admin cookies carry the Secure flag.
func (s *Server) secureCookies() bool {
	return s.cfg.GinMode == gin.ReleaseMode
}

func (s *Server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.admin.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/admin/",
	"/favicon",
	"/privacy",
	"/placeholder",
	"/healthz",
	"/lang/",
}

// visitorTracking records full page views. Fragments, assets and visitors
// sending Do Not Track are skipped.
func (s *Server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || isHTMXRequest(c.Request) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		hashed := s.admin.hashIP(c.ClientIP())
		ua := c.GetHeader("User-Agent")
		lang := langFrom(c).Lang
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.store.RecordVisit(ctx, hashed, ua, path, lang, time.Now()); err != nil {
				s.log.Errorw("tracking: recording visitor failed", "error", err)
			}
		}()
		c.Next()
	}
}

// CleanupOldVisitors removes visitor rows past the retention window.
func (s *Server) CleanupOldVisitors(ctx context.Context) {
	n, err := s.store.PruneVisitors(ctx, s.cfg.VisitorRetention)
	if err != nil {
		s.log.Errorw("privacy cleanup failed", "error", err)
		return
	}
	if n > 0 {
		s.log.Infow("privacy cleanup: removed old visitor records", "rows", n, "retention", s.cfg.VisitorRetention)
	}
}

// AdminStats gathers the dashboard figures.
func (s *Server) AdminStats(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}
	now := time.Now()

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, "SELECT COUNT(*) FROM visitors", nil},
		{&stats.UniqueVisitors, "SELECT COUNT(DISTINCT hashed_ip) FROM visitors", nil},
		{&stats.VisitorsToday, "SELECT COUNT(*) FROM visitors WHERE timestamp >= ?", []any{sqliteTime(startOfDay(now))}},
		{&stats.VisitorsThisWeek, "SELECT COUNT(*) FROM visitors WHERE timestamp >= ?", []any{sqliteTime(now.Add(-7 * 24 * time.Hour))}},
		{&stats.TotalSubmissions, "SELECT COUNT(*) FROM contact_submissions", nil},
		{&stats.SubmissionsThisWeek, "SELECT COUNT(*) FROM contact_submissions WHERE created_at >= ?", []any{sqliteTime(now.Add(-7 * 24 * time.Hour))}},
	}
	for _, q := range counts {
		if err := s.store.QueryRowContext(ctx, q.query, q.args...).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("admin stats: %w", err)
		}
	}

	rows, err := s.store.QueryContext(ctx, `
		SELECT COALESCE(lang, ''), COUNT(*) FROM visitors
		GROUP BY lang
		ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("admin stats: languages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var lc LangCount
		if err := rows.Scan(&lc.Lang, &lc.Count); err != nil {
			return nil, fmt.Errorf("admin stats: scan language: %w", err)
		}
		stats.Languages = append(stats.Languages, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("admin stats: languages: %w", err)
	}

	if stats.RecentVisitors, err = s.store.ListVisitors(ctx, 50); err != nil {
		return nil, err
	}
	if stats.RecentSubmissions, err = s.store.ListSubmissions(ctx, 10); err != nil {
		return nil, err
	}
	return stats, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Server) setupAdminRoutes(r *gin.RouterGroup) {
	r.GET("/privacy", func(c *gin.Context) {
		state := langFrom(c)
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"L":         state,
			"title":     s.tr.T(state.Lang, "privacy_title", nil),
			"retention": s.cfg.VisitorRetention,
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if s.admin.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			c.SetCookie(adminCookie, s.admin.token, 3600*24, "/admin", "", s.secureCookies(), true)
			s.log.Infow("admin login successful", "client", s.admin.hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		s.log.Warnw("failed admin login attempt", "client", s.admin.hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", s.secureCookies(), true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuthMiddleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.AdminStats(c.Request.Context())
		if err != nil {
			s.log.Errorw("loading admin stats failed", "error", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.AdminStats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/submissions", func(c *gin.Context) {
		subs, err := s.store.ListSubmissions(c.Request.Context(), 200)
		if err != nil {
			s.log.Errorw("loading submissions failed", "error", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load submissions",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-submissions.html", gin.H{
			"submissions": subs,
		})
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.store.ListVisitors(c.Request.Context(), 200)
		if err != nil {
			s.log.Errorw("loading visitors failed", "error", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		go s.CleanupOldVisitors(context.Background())
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.AdminStats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		s.log.Infow("admin stats exported", "client", s.admin.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
