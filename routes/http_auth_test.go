package routes

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestConnectRejectsMissingCSRFHeader(t *testing.T) {
	r, _, _ := newTestApp(t)
	cl := newClient(t, r)
	state := cl.fetchState()

	req := httptest.NewRequest(http.MethodPost, "/gconnect?state="+state, strings.NewReader("auth-code"))
	w := cl.do(req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("got %d, want 403", w.Code)
	}
}

func TestConnectRejectsBadStateToken(t *testing.T) {
	r, _, google := newTestApp(t)
	cl := newClient(t, r)
	google.profile = averyProfile
	cl.fetchState()

	w := cl.connect("/gconnect", "forged-state", "auth-code")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid state token.") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	// No authenticated session was established.
	if w := cl.get("/my-noodles"); w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Fatalf("session established despite bad state: %d", w.Code)
	}
}

func TestConnectWithoutLoginPageHasNoState(t *testing.T) {
	r, _, _ := newTestApp(t)
	cl := newClient(t, r)

	// No GET /login first, so the session has no state token at all.
	w := cl.connect("/gconnect", "anything", "auth-code")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", w.Code)
	}
}

func TestConnectCreatesUserOnFirstLogin(t *testing.T) {
	r, st, google := newTestApp(t)
	cl := newClient(t, r)

	cl.login(google, averyProfile)

	user, err := st.UserByEmail("avery@example.com")
	if err != nil {
		t.Fatalf("user not created: %v", err)
	}
	if user.Name != "Avery Chen" || user.Picture != "https://example.com/avery.png" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if w := cl.get("/my-noodles"); w.Code != http.StatusOK {
		t.Fatalf("protected page after login: got %d", w.Code)
	}
}

func TestConnectReusesExistingUserByEmail(t *testing.T) {
	r, st, google := newTestApp(t)
	existing := mustCreateUser(t, st, "Avery Chen", "avery@example.com")

	cl := newClient(t, r)
	cl.login(google, averyProfile)

	user, err := st.UserByEmail("avery@example.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if user.ID != existing.ID {
		t.Fatalf("a second user was created: %d != %d", user.ID, existing.ID)
	}
}

func TestRepeatLoginWithSameAccountIsANoOp(t *testing.T) {
	r, _, google := newTestApp(t)
	cl := newClient(t, r)
	cl.login(google, averyProfile)

	w := cl.connect("/gconnect", cl.fetchState(), "auth-code")
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "already logged in") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestConnectExchangeFailureYields401(t *testing.T) {
	r, _, google := newTestApp(t)
	cl := newClient(t, r)
	google.exchangeErr = errors.New("provider unreachable")

	w := cl.connect("/gconnect", cl.fetchState(), "auth-code")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", w.Code)
	}
}

func TestConnectProfileFailureLeavesSessionUnauthenticated(t *testing.T) {
	r, st, google := newTestApp(t)
	cl := newClient(t, r)
	google.profile = averyProfile
	google.profileErr = errors.New("profile endpoint down")

	w := cl.connect("/gconnect", cl.fetchState(), "auth-code")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("got %d, want 500", w.Code)
	}

	if _, err := st.UserByEmail("avery@example.com"); err == nil {
		t.Fatal("a user was persisted despite the profile failure")
	}
	if w := cl.get("/my-noodles"); w.Code != http.StatusFound {
		t.Fatalf("session authenticated despite the profile failure: %d", w.Code)
	}
}

func TestFacebookConnectUsesItsOwnEndpoint(t *testing.T) {
	facebook := &fakeProvider{name: "facebook", profile: blakeProfile}
	r, st := newTestAppWith(t, &fakeProvider{name: "google"}, facebook)
	cl := newClient(t, r)

	w := cl.connect("/fbconnect", cl.fetchState(), "short-lived-token")
	if w.Code != http.StatusOK {
		t.Fatalf("got %d: %s", w.Code, w.Body.String())
	}
	if _, err := st.UserByEmail("blake@example.com"); err != nil {
		t.Fatalf("facebook user not created: %v", err)
	}
}

func TestLogoutNoticesDistinguishSessionState(t *testing.T) {
	r, _, google := newTestApp(t)
	cl := newClient(t, r)

	w := cl.postForm("/logout", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout while logged out: got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "You were not logged in.") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	cl.login(google, averyProfile)
	w = cl.postForm("/logout", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout while logged in: got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "You have been logged out.") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	// The session really is gone.
	if w := cl.get("/my-noodles"); w.Code != http.StatusFound {
		t.Fatalf("still authenticated after logout: %d", w.Code)
	}
}
