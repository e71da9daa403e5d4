package handler

import "stockadvisor/internal/model"

type RecommendationResponse struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}

type StockResponse struct {
	Symbol      string                 `json:"symbol"`
	CompanyName string                 `json:"company_name"`
	ShortTerm   RecommendationResponse `json:"short_term"`
	MidTerm     RecommendationResponse `json:"mid_term"`
	LongTerm    RecommendationResponse `json:"long_term"`
	Analysis    string                 `json:"analysis"`
}

func toStockResponse(a *model.StockAnalysis) StockResponse {
	return StockResponse{
		Symbol:      a.Symbol,
		CompanyName: a.CompanyName,
		ShortTerm:   RecommendationResponse(a.ShortTerm),
		MidTerm:     RecommendationResponse(a.MidTerm),
		LongTerm:    RecommendationResponse(a.LongTerm),
		Analysis:    a.Analysis,
	}
}
