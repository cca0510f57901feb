package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rihla/internal/models/request_models"
	"rihla/internal/models/response_models"
	"rihla/internal/services"
	"rihla/pkg/middleware"
	"rihla/pkg/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubPlanner struct {
	gotOwner string
	gotGuest bool
	gotReq   request_models.ChatRequest
	err      error
}

func (s *stubPlanner) SendMessage(_ context.Context, ownerID string, isGuest bool, req request_models.ChatRequest) (*response_models.ChatResponse, error) {
	s.gotOwner, s.gotGuest, s.gotReq = ownerID, isGuest, req
	if s.err != nil {
		return nil, s.err
	}
	return &response_models.ChatResponse{
		ConversationID: "c-1",
		MessageID:      "m-1",
		Reply:          response_models.ParsedAIReply{Content: "Enjoy!", Source: response_models.SourceProse},
	}, nil
}

func (s *stubPlanner) Interpret(message string) request_models.TravelRequest {
	return services.Interpret(message)
}

type stubConversations struct {
	services.ConversationServiceInterface
	err error
}

func (s *stubConversations) ListConversations(_ context.Context, ownerID string) ([]response_models.ConversationResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []response_models.ConversationResponse{{ID: "c-1", Title: "Trip for " + ownerID}}, nil
}

func (s *stubConversations) SaveItinerary(_ context.Context, _, conversationID string, req request_models.SaveItineraryRequest) (*response_models.ItineraryResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &response_models.ItineraryResponse{ConversationID: conversationID, City: req.City, Days: req.Days}, nil
}

func newTestRouter(planner services.PlannerServiceInterface, conversations services.ConversationServiceInterface) *gin.Engine {
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	auth := r.Group("/", middleware.AuthMiddleware(utils.NewTokenValidator("")))

	chat := NewChatController(planner)
	r.POST("/interpret", chat.Interpret)
	auth.POST("/chat", chat.SendMessage)

	conv := NewConversationController(conversations)
	auth.GET("/conversations", conv.List)

	itin := NewItineraryController(conversations)
	auth.PUT("/conversations/:id/itinerary", itin.Save)
	return r
}

func doJSON(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, into interface{}) utils.APIResponse {
	t.Helper()
	var envelope struct {
		utils.APIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	if into != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, into))
	}
	return envelope.APIResponse
}

func TestChatController_SendMessage(t *testing.T) {
	t.Parallel()
	guest := map[string]string{middleware.SessionHeader: "s-1"}

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		planner := &stubPlanner{}
		r := newTestRouter(planner, &stubConversations{})

		w := doJSON(r, http.MethodPost, "/chat", `{"message":"3 days in Cairo"}`, guest)
		require.Equal(t, http.StatusOK, w.Code)

		var resp response_models.ChatResponse
		envelope := decodeData(t, w, &resp)
		assert.Equal(t, "success", envelope.Status)
		assert.NotEmpty(t, envelope.TraceID)
		assert.Equal(t, "Enjoy!", resp.Reply.Content)
		assert.Equal(t, "guest:s-1", planner.gotOwner)
		assert.True(t, planner.gotGuest)
		assert.Equal(t, "3 days in Cairo", planner.gotReq.Message)
	})

	t.Run("missing message", func(t *testing.T) {
		t.Parallel()
		r := newTestRouter(&stubPlanner{}, &stubConversations{})
		w := doJSON(r, http.MethodPost, "/chat", `{}`, guest)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()
		r := newTestRouter(&stubPlanner{}, &stubConversations{})
		w := doJSON(r, http.MethodPost, "/chat", `{"message":"hi"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("forbidden conversation", func(t *testing.T) {
		t.Parallel()
		r := newTestRouter(&stubPlanner{err: utils.ErrForbidden}, &stubConversations{})
		w := doJSON(r, http.MethodPost, "/chat", `{"message":"hi","conversation_id":"x"}`, guest)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestChatController_Interpret(t *testing.T) {
	t.Parallel()
	r := newTestRouter(&stubPlanner{}, &stubConversations{})

	w := doJSON(r, http.MethodPost, "/interpret", `{"message":"أريد رحلة لمدة 5 أيام إلى باريس"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var req request_models.TravelRequest
	decodeData(t, w, &req)
	assert.Equal(t, "Paris", req.Destination)
	assert.Equal(t, 5, req.Days)
	assert.Equal(t, request_models.LanguageArabic, req.Language)
}

func TestConversationController_List(t *testing.T) {
	t.Parallel()

	r := newTestRouter(&stubPlanner{}, &stubConversations{})
	w := doJSON(r, http.MethodGet, "/conversations", "", map[string]string{middleware.SessionHeader: "s-9"})
	require.Equal(t, http.StatusOK, w.Code)

	var list []response_models.ConversationResponse
	decodeData(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Trip for guest:s-9", list[0].Title)

	failing := newTestRouter(&stubPlanner{}, &stubConversations{err: utils.ErrDatabaseError})
	w = doJSON(failing, http.MethodGet, "/conversations", "", map[string]string{middleware.SessionHeader: "s-9"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestItineraryController_SaveSanitizesCosts(t *testing.T) {
	t.Parallel()

	r := newTestRouter(&stubPlanner{}, &stubConversations{})
	body := `{"city":"Rome","days":[{"day":1,"items":[{"activity":"Forum","cost":"12"},{"activity":"Gelato","cost":"cheap"}]}]}`
	w := doJSON(r, http.MethodPut, "/conversations/c-7/itinerary", body, map[string]string{middleware.SessionHeader: "s-1"})
	require.Equal(t, http.StatusOK, w.Code)

	var saved response_models.ItineraryResponse
	decodeData(t, w, &saved)
	assert.Equal(t, "c-7", saved.ConversationID)
	require.Len(t, saved.Days, 1)
	require.Len(t, saved.Days[0].Items, 2)
	assert.EqualValues(t, 12, saved.Days[0].Items[0].Cost)
	assert.EqualValues(t, 0, saved.Days[0].Items[1].Cost)
}
