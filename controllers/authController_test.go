package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCurrentUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("valid hex id", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		want := primitive.NewObjectID()
		c.Set("user_id", want.Hex())

		got, ok := currentUserID(c)
		if !ok {
			t.Fatal("currentUserID rejected a valid id")
		}
		if got != want {
			t.Errorf("currentUserID = %v, want %v", got, want)
		}
	})

	t.Run("missing identity", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		if _, ok := currentUserID(c); ok {
			t.Error("currentUserID accepted a request with no identity")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("non-string claim", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", 42)

		if _, ok := currentUserID(c); ok {
			t.Error("currentUserID accepted a numeric user_id claim")
		}
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("malformed hex", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", "not-a-hex-id")

		if _, ok := currentUserID(c); ok {
			t.Error("currentUserID accepted a malformed id")
		}
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}
