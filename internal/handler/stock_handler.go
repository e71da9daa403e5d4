package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stockadvisor/internal/service"
)

type StockAnalyzer interface {
	Analyze(ctx context.Context, company string) (*service.Result, error)
}

type StockHandler struct {
	service StockAnalyzer
}

func NewStockHandler(service StockAnalyzer) *StockHandler {
	return &StockHandler{service: service}
}

// GetStockAnalysis handles GET /api/stock/:company. The path parameter is
// a free-form company name or ticker, e.g. "테슬라" or "TSLA".
func (h *StockHandler) GetStockAnalysis(c *gin.Context) {
	company := c.Param("company")
	if strings.TrimSpace(company) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company name or symbol is required"})
		return
	}

	res, err := h.service.Analyze(c.Request.Context(), company)
	if err != nil {
		slog.Error("error analyzing stock", "company", company, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Error: %v", err)})
		return
	}

	if res.CacheHit {
		c.Header("X-Cache", "hit")
	} else {
		c.Header("X-Cache", "miss")
	}
	if res.CacheWriteFailed {
		c.Header("X-Cache-Write", "failed")
	}

	c.JSON(http.StatusOK, toStockResponse(res.Analysis))
}
