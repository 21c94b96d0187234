package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"companion-matcher/internal/config"
	"companion-matcher/internal/matching"
	"companion-matcher/internal/models"
	"companion-matcher/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Directory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Load()
	directory := store.NewDirectory()
	conversations := store.NewConversationStore(directory)
	messages := store.NewMessageStore(directory, conversations, cfg.MaxMessageLength)
	engine := matching.NewEngine(directory)
	shortlist := store.NewMemoryShortlist()

	RegisterValidators()
	userHandler := NewUserHandler(directory, shortlist, cfg)
	matchHandler := NewMatchHandler(engine)
	messageHandler := NewMessageHandler(messages, conversations, directory, cfg, nil)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/users", userHandler.CreateUser)
	api.GET("/matches/:username", matchHandler.GetMatches)
	api.POST("/shortlist", userHandler.AddToShortlist)
	api.GET("/shortlist/:username", userHandler.GetShortlist)
	api.POST("/messages/:username", messageHandler.SendMessage)
	api.GET("/conversations/:username", messageHandler.GetConversations)
	api.GET("/messages/:username/:conversationId", messageHandler.GetMessages)
	api.PUT("/messages/:username/:conversationId/read", messageHandler.MarkAsRead)

	return router, directory
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func seedUser(t *testing.T, directory *store.Directory, name string, interests ...string) {
	t.Helper()
	require.NoError(t, directory.Create(&models.UserProfile{
		Name:      name,
		Age:       30,
		Interests: interests,
	}))
}
