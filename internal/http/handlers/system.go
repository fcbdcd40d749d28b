package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	intconfig "ridesboard/internal/config"
	intdb "ridesboard/internal/db"
	"ridesboard/internal/domain"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for /api/routes.
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "ridesboard is running"})
}

func (a *API) DBCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if a.DB == nil {
		if err := intconfig.EnsureDB(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database not connected: " + err.Error()})
			return
		}
	}
	db := a.db()
	if db == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database not connected"})
		return
	}
	if !intdb.HasTable(ctx, db, "rides") {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rides table missing"})
		return
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rides").Scan(&count); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database OK", "rides_in_db": count})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method": rt.Method,
			"path":   rt.Path,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}

// Destinations lists the preset destination filters, sentinel first.
func Destinations(c *gin.Context) {
	out := make([]string, 0, len(domain.Destinations)+1)
	out = append(out, domain.AllDestinations)
	out = append(out, domain.Destinations...)
	c.JSON(http.StatusOK, gin.H{"destinations": out})
}
