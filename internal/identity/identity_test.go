package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

func TestFromHeadersGuestDefault(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	u := FromHeaders(r)
	if u.ID != model.GuestUserID {
		t.Fatalf("id = %q, want guest", u.ID)
	}
	if !u.IsGuest() {
		t.Fatal("expected guest")
	}
}

func TestFromHeadersResolvesUser(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderUserID, "user-42")
	r.Header.Set(HeaderName, "Nova")
	r.Header.Set(HeaderEmail, "nova@example.com")
	r.Header.Set(HeaderCountry, "DE")

	u := FromHeaders(r)
	if u.ID != "user-42" || u.Name != "Nova" || u.Country != "DE" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.IsGuest() {
		t.Fatal("should not be guest")
	}
}

func TestFromHeadersDefaultName(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderUserID, "user-7")
	if got := FromHeaders(r).Name; got != "Explorer" {
		t.Fatalf("name = %q, want Explorer", got)
	}
}

func TestMiddlewareStoresUser(t *testing.T) {
	var got model.User
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = UserFromRequest(r)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderUserID, "user-9")
	h.ServeHTTP(httptest.NewRecorder(), r)

	if got.ID != "user-9" {
		t.Fatalf("id = %q", got.ID)
	}
}

func TestUserFromContextWithoutMiddleware(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if u := UserFromRequest(r); !u.IsGuest() {
		t.Fatalf("expected guest, got %+v", u)
	}
}
