package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"newsdesk/internal/model"
	"newsdesk/internal/newsapi"
	"newsdesk/internal/service"
)

// NewsSource is the upstream news API surface the handlers call.
type NewsSource interface {
	TopHeadlines(ctx context.Context, category model.Category, query string, page, pageSize int) (*newsapi.Response, error)
	Everything(ctx context.Context, query string, page, pageSize int) (*newsapi.Response, error)
}

type Handler struct {
	news      NewsSource
	feed      *service.FeedController
	favorites *service.FavoritesService
	prefs     *service.PrefsService
	sessions  *service.SessionService
	videos    *service.VideosService
	status    *service.StatusService
	scheduler interface {
		NextRefreshTime() time.Time
	}
}

func NewHandler(
	news NewsSource,
	feed *service.FeedController,
	favorites *service.FavoritesService,
	prefs *service.PrefsService,
	sessions *service.SessionService,
	videos *service.VideosService,
	status *service.StatusService,
) *Handler {
	return &Handler{
		news:      news,
		feed:      feed,
		favorites: favorites,
		prefs:     prefs,
		sessions:  sessions,
		videos:    videos,
		status:    status,
	}
}

// SetScheduler wires the cron scheduler for status reporting.
func (h *Handler) SetScheduler(scheduler interface {
	NextRefreshTime() time.Time
}) {
	h.scheduler = scheduler
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		// News passthroughs
		api.GET("/news", h.GetNews)
		api.GET("/search", h.SearchNews)
		api.GET("/videos", h.GetVideos)
		api.GET("/article", h.GetArticle)

		// Session
		api.POST("/auth/login", h.Login)
		api.POST("/auth/signup", h.Signup)
		api.POST("/auth/logout", h.Logout)
		api.GET("/auth/session", h.GetSession)

		// Favorites
		api.GET("/favorites", h.ListFavorites)
		api.POST("/favorites", h.AddFavorite)
		api.DELETE("/favorites", h.RemoveFavorite)

		// Preferences
		api.GET("/preferences", h.GetPreferences)
		api.PUT("/preferences/:key", h.SetPreference)
		api.POST("/cache/clear", h.ClearCache)

		// Feed controller
		api.GET("/feed", h.GetFeed)
		api.POST("/feed/category", h.SetFeedCategory)
		api.POST("/feed/more", h.LoadMoreFeed)
		api.POST("/feed/retry", h.RetryFeed)

		// Status
		api.GET("/status", h.GetStatus)
	}
}

// ===== News =====

// articleView augments an article with display metadata the client
// settings ask for.
type articleView struct {
	model.Article
	ReadingTime string `json:"readingTime,omitempty"`
}

// renderArticles attaches a readingTime estimate per article when the
// showReadingTime preference is on. Articles without any text keep no
// estimate.
func (h *Handler) renderArticles(articles []model.Article) any {
	show, err := h.prefs.Bool(model.KeyShowReadingTime)
	if err != nil || !show {
		return articles
	}

	views := make([]articleView, len(articles))
	for i, a := range articles {
		views[i] = articleView{Article: a}
		text := a.Content
		if text == "" {
			text = a.Description
		}
		if minutes := service.ReadingTime(text); minutes > 0 {
			views[i].ReadingTime = service.FormatReadingTime(minutes)
		}
	}
	return views
}

func pageParams(c *gin.Context, defaultPageSize string) (int, int, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, fmt.Errorf("page must be a positive integer")
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", defaultPageSize))
	if err != nil || pageSize < 1 {
		return 0, 0, fmt.Errorf("pageSize must be a positive integer")
	}
	return page, pageSize, nil
}

func (h *Handler) GetNews(c *gin.Context) {
	category, err := model.ParseCategory(c.Query("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	search := c.Query("search")
	page, pageSize, err := pageParams(c, "100")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.news.TopHeadlines(c.Request.Context(), category, search, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":       "error",
			"articles":     []model.Article{},
			"totalResults": 0,
			"message":      err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       resp.Status,
		"totalResults": resp.TotalResults,
		"articles":     h.renderArticles(resp.Articles),
	})
}

func (h *Handler) SearchNews(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"articles": []model.Article{}, "totalResults": 0})
		return
	}

	page, pageSize, err := pageParams(c, "20")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.news.Everything(c.Request.Context(), query, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"articles":     []model.Article{},
			"totalResults": 0,
			"message":      err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles":     h.renderArticles(resp.Articles),
		"totalResults": resp.TotalResults,
	})
}

func (h *Handler) GetVideos(c *gin.Context) {
	category, err := model.ParseCategory(c.Query("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	videos, err := h.videos.List(c.Request.Context(), category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch videos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos, "total": len(videos)})
}

// GetArticle echoes the requested URL back. Article content is carried
// client-side; this endpoint exists for interface completeness only.
func (h *Handler) GetArticle(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": gin.H{"url": url}})
}

// ===== Session =====

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessions.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": session, "isAuthenticated": true})
}

func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessions.Signup(req.Name, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": session, "isAuthenticated": true})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": nil, "isAuthenticated": false})
}

func (h *Handler) GetSession(c *gin.Context) {
	session, err := h.sessions.Current()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": session, "isAuthenticated": session != nil})
}

// ===== Favorites =====

func (h *Handler) ListFavorites(c *gin.Context) {
	favorites, err := h.favorites.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites, "total": len(favorites)})
}

func (h *Handler) AddFavorite(c *gin.Context) {
	if !h.sessions.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrNotAuthenticated.Error()})
		return
	}

	var article model.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if article.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	if err := h.favorites.Add(article); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "added"})
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	if !h.sessions.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrNotAuthenticated.Error()})
		return
	}

	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	if err := h.favorites.Remove(url); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "removed"})
}

// ===== Preferences =====

func (h *Handler) GetPreferences(c *gin.Context) {
	prefs, err := h.prefs.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prefs)
}

type setPreferenceRequest struct {
	Value string `json:"value"`
}

func (h *Handler) SetPreference(c *gin.Context) {
	key := model.KeyPrefix + c.Param("key")

	var req setPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.prefs.Set(key, req.Value); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "saved"})
}

func (h *Handler) ClearCache(c *gin.Context) {
	removed, err := h.prefs.ClearTransient()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// ===== Feed controller =====

func (h *Handler) GetFeed(c *gin.Context) {
	c.JSON(http.StatusOK, h.feed.Snapshot())
}

type setCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

func (h *Handler) SetFeedCategory(c *gin.Context) {
	var req setCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := model.ParseCategory(req.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.feed.SetCategory(c.Request.Context(), category); err != nil {
		// The controller keeps the error in its state; report the
		// snapshot either way so the client sees items it still has.
		c.JSON(http.StatusBadGateway, h.feed.Snapshot())
		return
	}

	c.JSON(http.StatusOK, h.feed.Snapshot())
}

func (h *Handler) LoadMoreFeed(c *gin.Context) {
	if err := h.feed.LoadMore(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, h.feed.Snapshot())
		return
	}
	c.JSON(http.StatusOK, h.feed.Snapshot())
}

func (h *Handler) RetryFeed(c *gin.Context) {
	if err := h.feed.Retry(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, h.feed.Snapshot())
		return
	}
	c.JSON(http.StatusOK, h.feed.Snapshot())
}

// ===== Status =====

func (h *Handler) GetStatus(c *gin.Context) {
	status, err := h.status.GetSystemStatus()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.scheduler != nil {
		status.NextRefreshTime = h.scheduler.NextRefreshTime()
	}

	c.JSON(http.StatusOK, status)
}
