package main

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"stockadvisor/db"
	"stockadvisor/internal/handler"
	"stockadvisor/internal/repository"
	"stockadvisor/internal/service"
	"stockadvisor/pkg/llm"
	"stockadvisor/pkg/tools"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// The analysis flow degrades to cache misses when storage is down, so
	// a failed connection is logged rather than fatal.
	if err := db.Connect(); err != nil {
		slog.Error("error connecting to DB, caching degraded", "error", err)
	} else if err := db.Migrate(); err != nil {
		slog.Error("error migrating DB schema", "error", err)
	}
	defer db.Close()

	var hotCache *repository.AnalysisCache
	if os.Getenv("REDIS_URL") != "" {
		if err := db.ConnectRedis(); err != nil {
			slog.Error("error connecting to Redis, hot cache disabled", "error", err)
		} else {
			hotCache = repository.NewAnalysisCache(db.Redis)
			defer db.CloseRedis()
		}
	}

	generator := newGenerator()
	toolset := tools.NewToolSet(buildTools)
	defer toolset.Close()

	stockRepo := repository.NewStockRepository(db.DB)
	stockService := service.NewStockService(
		stockRepo,
		generator,
		hotCache,
		toolset,
		cacheMaxAge(),
		os.Getenv("DISABLE_ANALYSIS_CACHE") != "true",
	)
	stockHandler := handler.NewStockHandler(stockService)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Stock Analysis API is running"})
	})
	r.GET("/api/stock/:company", stockHandler.GetStockAnalysis)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

// newGenerator picks the model provider. OpenAI is the default; set
// LLM_PROVIDER=anthropic to switch.
func newGenerator() llm.Generator {
	if os.Getenv("LLM_PROVIDER") == "anthropic" {
		return llm.NewAnthropicClient(os.Getenv("ANTHROPIC_API_KEY"))
	}
	return llm.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"))
}

// buildTools assembles the process-wide tool collaborators. Missing API
// keys simply leave a tool out; the analysis still runs without it.
func buildTools() []tools.Tool {
	if os.Getenv("ENABLE_WEB_SEARCH") == "false" {
		slog.Info("tool augmentation disabled")
		return nil
	}

	var ts []tools.Tool
	if key := os.Getenv("BRAVE_API_KEY"); key != "" {
		ts = append(ts, tools.NewBraveSearch(key))
	} else {
		slog.Warn("BRAVE_API_KEY not set, web search disabled")
	}
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		ts = append(ts, tools.NewStockQuote(key))
	}
	return ts
}

func cacheMaxAge() time.Duration {
	hours := 24
	if v := os.Getenv("CACHE_MAX_AGE_HOURS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			slog.Warn("invalid CACHE_MAX_AGE_HOURS, using default", "value", v)
		} else {
			hours = parsed
		}
	}
	return time.Duration(hours) * time.Hour
}
