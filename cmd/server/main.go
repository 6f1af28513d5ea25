package main

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"video-hosting/cmd/config"
	"video-hosting/pkg/auth"
	"video-hosting/pkg/database"
	"video-hosting/pkg/handlers"
	"video-hosting/pkg/middleware"
	"video-hosting/pkg/realtime"
	"video-hosting/pkg/routes"
	"video-hosting/pkg/storage"
)

func main() {
	config.Load()

	if config.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET is not set")
	}

	ctx := context.Background()

	db, err := database.Connect(ctx, config.MongoURI, config.MongoDB)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close(ctx)

	if err := db.EnsureIndexes(ctx); err != nil {
		logrus.Fatalf("failed to ensure indexes: %v", err)
	}
	logrus.Info("connected to MongoDB")

	media, err := storage.NewS3Store(config.AWSRegion, config.S3Bucket)
	if err != nil {
		logrus.Fatalf("failed to initialize media storage: %v", err)
	}

	tokens := auth.NewManager(config.JWTSecret)

	hub := realtime.NewHub()
	go hub.Run()

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logrus.WithField("panic", recovered).Error("unhandled error in request")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
	}))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	// Video uploads can be large.
	r.MaxMultipartMemory = 400 << 20

	routes.Register(r, routes.Deps{
		Categories: handlers.NewCategoryHandler(db.Categories(), media, hub),
		Videos:     handlers.NewVideoHandler(db.Videos(), media, hub),
		Users:      handlers.NewUserHandler(db.Users(), tokens),
		Hub:        hub,
		Protect:    middleware.Protect(tokens, db.Users()),
		Admin:      middleware.Admin(),
	})

	addr := config.Host + ":" + config.Port
	logrus.Infof("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
