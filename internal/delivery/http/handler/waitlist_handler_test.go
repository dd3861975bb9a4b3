package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/onoja123/Modi-backend/internal/delivery/http/middleware"
	"github.com/onoja123/Modi-backend/internal/domain/waitlist"
	"github.com/onoja123/Modi-backend/internal/usecase"
)

type stubWaitlistUsecase struct {
	entry waitlist.Entry
	err   error
}

func (s stubWaitlistUsecase) AddUser(context.Context, string) (waitlist.Entry, error) {
	return s.entry, s.err
}

func newWaitlistTestApp(uc usecase.WaitlistUsecase) *fiber.App {
	app := fiber.New(fiber.Config{})
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	NewWaitlistHandler(uc).RegisterRoutes(app.Group("/waitlist"))
	return app
}

func postAddUser(t *testing.T, app *fiber.App, email string) (int, map[string]json.RawMessage) {
	t.Helper()

	b, _ := json.Marshal(map[string]string{"email": email})
	req := httptest.NewRequest("POST", "/waitlist/adduser", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return resp.StatusCode, body
}

func TestWaitlistHandler_AddUser_OK(t *testing.T) {
	entry := waitlist.Entry{ID: uuid.New(), Email: "jane@example.com", CreatedAt: time.Now().UTC()}
	app := newWaitlistTestApp(stubWaitlistUsecase{entry: entry})

	status, body := postAddUser(t, app, "jane@example.com")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(body["data"], &data); err != nil {
		t.Fatalf("data unmarshal error: %v", err)
	}
	if _, ok := data["newUser"]; !ok {
		t.Fatalf("expected newUser in data, got %s", body["data"])
	}
}

func TestWaitlistHandler_AddUser_Duplicate(t *testing.T) {
	app := newWaitlistTestApp(stubWaitlistUsecase{err: usecase.ErrAlreadyOnWaitlist})

	status, body := postAddUser(t, app, "jane@example.com")
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}

	var msg string
	if err := json.Unmarshal(body["message"], &msg); err != nil {
		t.Fatalf("message unmarshal error: %v", err)
	}
	if msg != "You are already on the waitlist. See you at launch!" {
		t.Fatalf("unexpected message: %q", msg)
	}
}
