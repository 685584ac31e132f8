package server

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/digbiz/insight-engine/internal/model"
	"github.com/digbiz/insight-engine/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "Insight Engine",
		"version": apiVersion,
		"status":  "active",
		"capabilities": []string{
			"Advanced Business Matching",
			"Meeting Success Prediction",
			"Market Intelligence Analysis",
			"Deal Success Prediction",
			"Business Opportunity Detection",
		},
		"endpoints": map[string]string{
			"/match":           "POST - Calculate match score between users",
			"/predict-meeting": "POST - Predict meeting success probability",
			"/market-trends":   "GET - Get market intelligence",
			"/predict-deal":    "POST - Predict deal success",
			"/opportunities":   "POST - Generate business opportunities",
			"/profiles":        "POST/GET/DELETE - Manage stored profiles",
			"/health":          "GET - Service health check",
		},
		"uptime": s.now().Format(time.RFC3339),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	storeStatus := "online"
	if s.profiles == nil {
		storeStatus = "disabled"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": s.now().Format(time.RFC3339),
		"services": map[string]string{
			"matching_engine":     "online",
			"market_intelligence": "online",
			"deal_predictor":      "online",
			"profile_store":       storeStatus,
		},
		"cache": s.market.Cache().Stats(),
	})
}

// pairRequest carries two profiles either inline or by stored ID.
type pairRequest struct {
	User1      map[string]any        `json:"user1"`
	User2      map[string]any        `json:"user2"`
	ProfileAID string                `json:"profile_a_id"`
	ProfileBID string                `json:"profile_b_id"`
	Context    *model.MeetingContext `json:"context"`
}

// resolveProfile prefers the inline record; an empty record falls through
// to a store lookup by ID.
func (s *Server) resolveProfile(r *http.Request, inline map[string]any, id string) (model.Profile, bool, error) {
	if len(inline) > 0 {
		raw, err := json.Marshal(inline)
		if err != nil {
			return model.Profile{}, false, err
		}
		var p model.Profile
		if err := json.Unmarshal(raw, &p); err != nil {
			return model.Profile{}, false, err
		}
		return p, true, nil
	}
	if id != "" && s.profiles != nil {
		p, err := s.profiles.GetProfile(r.Context(), id)
		if err != nil {
			return model.Profile{}, false, err
		}
		if p != nil {
			return *p, true, nil
		}
	}
	return model.Profile{}, false, nil
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req pairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user1, ok1, err1 := s.resolveProfile(r, req.User1, req.ProfileAID)
	user2, ok2, err2 := s.resolveProfile(r, req.User2, req.ProfileBID)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !ok1 || !ok2 {
		writeError(w, http.StatusBadRequest, "Both user1 and user2 data required")
		return
	}

	score := s.matcher.MatchScore(user1, user2)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":             true,
		"match_score":         round2(score),
		"compatibility_level": model.CompatibilityLevel(score),
		"recommendation":      model.ConnectionRecommendation(score),
	})
}

// meetingRecommendations is static advice returned with every prediction.
var meetingRecommendations = []string{
	"Schedule during optimal business hours (10-11 AM)",
	"Meet in professional environment (office/conference room)",
	"Prepare specific collaboration proposals",
	"Research common industry interests beforehand",
}

const meetingConfidence = 87.5

func (s *Server) handlePredictMeeting(w http.ResponseWriter, r *http.Request) {
	var req pairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Missing profiles degrade to defaults rather than erroring.
	user1, _, err1 := s.resolveProfile(r, req.User1, req.ProfileAID)
	user2, _, err2 := s.resolveProfile(r, req.User2, req.ProfileBID)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	prob := s.matcher.MeetingSuccess(user1, user2, req.Context)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":             true,
		"success_probability": round1(prob),
		"confidence":          meetingConfidence,
		"meeting_grade":       model.MeetingGrade(prob),
		"recommendations":     meetingRecommendations,
	})
}

func (s *Server) handleMarketTrends(w http.ResponseWriter, r *http.Request) {
	industry := r.URL.Query().Get("industry")
	if industry == "" {
		industry = "technology"
	}
	location := r.URL.Query().Get("location")

	trends := s.market.MarketTrends(industry, location)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"industry":     industry,
		"location":     location,
		"data":         trends,
		"generated_at": s.now().Format(time.RFC3339),
	})
}

func (s *Server) handlePredictDeal(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(raw) == 0 {
		writeError(w, http.StatusBadRequest, "Deal data required")
		return
	}

	rawJSON, err := json.Marshal(raw)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	var deal model.DealRecord
	if err := json.Unmarshal(rawJSON, &deal); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid deal data")
		return
	}

	prediction := s.predictor.Predict(deal)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"prediction": prediction,
		"deal_analysis": map[string]string{
			"risk_level":         model.RiskLevel(prediction.SuccessProbability),
			"recommended_action": model.RecommendedAction(prediction.SuccessProbability),
		},
	})
}

func (s *Server) handleOpportunities(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(raw) == 0 {
		writeError(w, http.StatusBadRequest, "User profile required")
		return
	}

	rawJSON, err := json.Marshal(raw)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	var profile model.Profile
	if err := json.Unmarshal(rawJSON, &profile); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user profile")
		return
	}

	opportunities := s.market.BusinessOpportunities(profile)
	now := s.now()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"opportunities": opportunities,
		"total_count":   len(opportunities),
		"generated_at":  now.Format(time.RFC3339),
		"next_refresh":  now.Add(24 * time.Hour).Format(time.RFC3339),
	})
}

// --- profile management ---

func (s *Server) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	if s.profiles == nil {
		writeError(w, http.StatusServiceUnavailable, "Profile store not configured")
		return
	}

	var p model.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if p.ID == "" {
		writeError(w, http.StatusBadRequest, "Profile id required")
		return
	}

	if err := s.profiles.UpsertProfile(r.Context(), p); err != nil {
		zap.L().Error("upsert profile", zap.String("id", p.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": p.ID})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	if s.profiles == nil {
		writeError(w, http.StatusServiceUnavailable, "Profile store not configured")
		return
	}

	id := chi.URLParam(r, "id")
	p, err := s.profiles.GetProfile(r.Context(), id)
	if err != nil {
		zap.L().Error("get profile", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "profile": p})
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	if s.profiles == nil {
		writeError(w, http.StatusServiceUnavailable, "Profile store not configured")
		return
	}

	q := r.URL.Query()
	filter := store.ProfileFilter{
		Industry: q.Get("industry"),
		Location: q.Get("location"),
	}

	profiles, err := s.profiles.ListProfiles(r.Context(), filter)
	if err != nil {
		zap.L().Error("list profiles", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if profiles == nil {
		profiles = []model.Profile{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"profiles":    profiles,
		"total_count": len(profiles),
	})
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	if s.profiles == nil {
		writeError(w, http.StatusServiceUnavailable, "Profile store not configured")
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.profiles.DeleteProfile(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
