package middleware

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"linkhub/internal/bridge"
	"linkhub/internal/store"
)

// newTestApp wires the session middleware and auth middleware around two
// probe routes: /login establishes a session, /whoami requires one.
func newTestApp(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()

	hub := store.Open(context.Background(), bridge.NewMemory())

	app := fiber.New()
	sessionMiddleware, _ := session.NewWithStore(session.Config{})
	app.Use(sessionMiddleware)

	authMiddleware := NewAuthMiddleware(hub)

	app.Post("/login/:id", func(c fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.ErrBadRequest
		}
		sess := session.FromContext(c)
		if sess == nil {
			return fiber.ErrInternalServerError
		}
		sess.Set(SessionUserID, id)
		return c.SendString("ok")
	})
	app.Get("/whoami", authMiddleware.RequireAuth, func(c fiber.Ctx) error {
		sess := c.Locals("session").(*store.Session)
		return c.SendString(sess.Actor.Username)
	})
	app.Get("/maybe", authMiddleware.OptionalAuth, func(c fiber.Ctx) error {
		sess := c.Locals("session").(*store.Session)
		if sess.Actor == nil {
			return c.SendString("anonymous")
		}
		return c.SendString(sess.Actor.Username)
	})

	return app, hub
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	app, _ := newTestApp(t)

	req, _ := http.NewRequest("GET", "/whoami", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRequireAuthResolvesSessionUser(t *testing.T) {
	app, hub := newTestApp(t)
	user, err := hub.Register(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatal(err)
	}

	req, _ := http.NewRequest("POST", "/login/"+strconv.FormatInt(user.ID, 10), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("login returned no session cookie")
	}

	req2, _ := http.NewRequest("GET", "/whoami", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	resp2, err := app.Test(req2)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp2.Body)
	if resp2.StatusCode != 200 || string(body) != "alice" {
		t.Errorf("got %d %q, want 200 alice", resp2.StatusCode, body)
	}
}

func TestRequireAuthHonorsRememberCookie(t *testing.T) {
	app, hub := newTestApp(t)
	user, err := hub.Register(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatal(err)
	}

	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{
		Name:  RememberCookie,
		Value: strconv.FormatInt(user.ID, 10),
	})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 || string(body) != "alice" {
		t.Errorf("got %d %q, want 200 alice", resp.StatusCode, body)
	}
}

func TestRememberCookieWithBogusValue(t *testing.T) {
	app, _ := newTestApp(t)

	for _, value := range []string{"", "abc", "-4", "0"} {
		req, _ := http.NewRequest("GET", "/whoami", nil)
		if value != "" {
			req.AddCookie(&http.Cookie{Name: RememberCookie, Value: value})
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("value %q: status = %d, want 401", value, resp.StatusCode)
		}
	}
}

func TestOptionalAuthPassesAnonymous(t *testing.T) {
	app, _ := newTestApp(t)

	req, _ := http.NewRequest("GET", "/maybe", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 || string(body) != "anonymous" {
		t.Errorf("got %d %q, want 200 anonymous", resp.StatusCode, body)
	}
}

func TestSessionForMissingUserIsRejected(t *testing.T) {
	app, _ := newTestApp(t)

	// Establish a session naming an account that does not exist, as happens
	// after the account behind a live session is deleted.
	req, _ := http.NewRequest("POST", "/login/999", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	cookies := resp.Cookies()

	req2, _ := http.NewRequest("GET", "/whoami", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	resp2, err := app.Test(req2)
	if err != nil {
		t.Fatal(err)
	}
	if resp2.StatusCode != http.StatusUnauthorized {
		t.Errorf("stale session: status = %d, want 401", resp2.StatusCode)
	}
}
