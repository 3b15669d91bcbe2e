package main

import (
	"flag"
	"os"

	"github.com/gin-gonic/gin"

	"dinehall/config"
	"dinehall/database"
	"dinehall/localqueue"
	"dinehall/router"
	"dinehall/services"
	"dinehall/utils"
)

func main() {
	var (
		migrate = flag.Bool("migrate", false, "Run database migration on startup")
		seed    = flag.String("seed", "", "Seed a starter floor plan for the given restaurant id")
	)
	flag.Parse()

	utils.InitLogger()
	cfg := config.LoadConfig()

	db, err := database.InitDB(cfg.DB)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if *migrate {
		if err := database.AutoMigrate(db); err != nil {
			utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
		}
		utils.InfoLogger.Println("Migration completed")
	}
	if *seed != "" {
		if err := database.Seed(db, *seed); err != nil {
			utils.ErrorLogger.Fatalf("Failed to seed: %v", err)
		}
		utils.InfoLogger.Printf("Seeded starter tables for restaurant %s", *seed)
	}

	queue, err := localqueue.Open(cfg.QueuePath)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to open local order queue: %v", err)
	}

	// The menu cache is optional; without redis the catalog is always
	// read from the store.
	var cache services.MenuCache = services.NoopMenuCache{}
	if cfg.Redis.Addr != "" {
		client, err := services.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			utils.ErrorLogger.Printf("Redis unavailable, menu cache disabled: %v", err)
		} else {
			cache = services.NewRedisMenuCache(client)
			utils.InfoLogger.Printf("Menu cache enabled (redis %s)", cfg.Redis.Addr)
		}
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.SetupRouter(db, queue, cache)

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
