package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"newsdesk/config"
	"newsdesk/internal/handler"
	"newsdesk/internal/model"
	"newsdesk/internal/newsapi"
	"newsdesk/internal/scheduler"
	"newsdesk/internal/service"
	"newsdesk/internal/store"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	gin.SetMode(cfg.Server.Mode)

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatal("Failed to create data dir:", err)
	}

	db, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect database:", err)
	}

	db.AutoMigrate(&model.FavoriteEntry{}, &model.Setting{})

	kv := store.NewGormKV(db)

	news := newsapi.NewClient(cfg.NewsAPI)
	feed := service.NewFeedController(news, 20)
	favorites := service.NewFavoritesService(db)
	prefs := service.NewPrefsService(kv)
	sessions := service.NewSessionService(kv)
	videos := service.NewVideosService(cfg.Videos.Feeds)
	status := service.NewStatusService(favorites, prefs, sessions, feed)

	sched := scheduler.NewScheduler(feed, prefs, kv, cfg.Cron)
	sched.Start()
	defer sched.Stop()

	r := gin.Default()

	h := handler.NewHandler(news, feed, favorites, prefs, sessions, videos, status)
	h.SetScheduler(sched)
	h.RegisterRoutes(r)

	log.Println("Server starting on " + cfg.GetServerAddress())
	r.Run(cfg.GetServerAddress())
}
