package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/olanest/olanest/api"
	dbfiles "github.com/olanest/olanest/db"
	dbpkg "github.com/olanest/olanest/internal/db"
	"github.com/olanest/olanest/internal/repository/sqlite"
)

func newAuthHandler(t *testing.T, name, secret string) (*api.AuthHandler, *sqlite.SQLiteRepo) {
	t.Helper()
	ctx := context.Background()
	d, err := dbpkg.New(ctx, "file:"+name+"?mode=memory&cache=shared", nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	if err := dbpkg.Migrate(ctx, d, dbfiles.Migrations); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := sqlite.New(d, nil)
	return api.NewAuthHandler(repo, repo, secret, time.Hour), repo
}

func TestAuthHandlers(t *testing.T) {
	secret := "testsecret"

	tests := []struct {
		name       string
		path       string
		body       any
		prepare    func(t *testing.T, h *api.AuthHandler)
		wantStatus int
		checkBody  func(t *testing.T, body []byte)
	}{
		{
			name:       "Signup_InvalidRequest",
			path:       "/signup",
			body:       "not a json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signup_MissingFields_Name",
			path:       "/signup",
			body:       map[string]string{"email": "alice@example.com", "password": "s3cret", "role": "homeowner"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signup_MissingFields_Password",
			path:       "/signup",
			body:       map[string]string{"name": "Alice", "email": "alice@example.com", "role": "homeowner"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signup_InvalidRole",
			path:       "/signup",
			body:       map[string]string{"name": "Mallory", "email": "m@example.com", "password": "pw", "role": "admin"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signup_MissingRole",
			path:       "/signup",
			body:       map[string]string{"name": "Alice", "email": "alice@example.com", "password": "s3cret"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signup_Homeowner_Success",
			path:       "/signup",
			body:       map[string]string{"name": "Alice", "email": "alice@example.com", "password": "s3cret", "role": "homeowner"},
			wantStatus: http.StatusCreated,
			checkBody: func(t *testing.T, b []byte) {
				checkToken(t, b, secret)
			},
		},
		{
			name:       "Signup_Contractor_Success",
			path:       "/signup",
			body:       map[string]string{"name": "Bob", "email": "bob@example.com", "password": "hunter2", "role": "contractor"},
			wantStatus: http.StatusCreated,
			checkBody: func(t *testing.T, b []byte) {
				checkToken(t, b, secret)
			},
		},
		{
			name: "Signup_DuplicateEmail",
			path: "/signup",
			body: map[string]string{"name": "Dup", "email": "dup@example.com", "password": "pw", "role": "homeowner"},
			prepare: func(t *testing.T, h *api.AuthHandler) {
				signup(t, h, map[string]string{"name": "First", "email": "dup@example.com", "password": "pw", "role": "homeowner"})
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "Signin_InvalidRequest",
			path:       "/signin",
			body:       "not a json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signin_MissingUser",
			path:       "/signin",
			body:       map[string]string{"email": "missing@example.com", "password": "nop"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "Signin_Success",
			path: "/signin",
			body: map[string]string{"email": "carol@example.com", "password": "hunter2"},
			prepare: func(t *testing.T, h *api.AuthHandler) {
				signup(t, h, map[string]string{"name": "Carol", "email": "carol@example.com", "password": "hunter2", "role": "homeowner"})
			},
			wantStatus: http.StatusOK,
			checkBody: func(t *testing.T, b []byte) {
				checkToken(t, b, secret)
			},
		},
		{
			name: "Signin_WrongPassword",
			path: "/signin",
			body: map[string]string{"email": "dave@example.com", "password": "wrongpw"},
			prepare: func(t *testing.T, h *api.AuthHandler) {
				signup(t, h, map[string]string{"name": "Dave", "email": "dave@example.com", "password": "rightpw", "role": "homeowner"})
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Signout_OK",
			path:       "/signout",
			wantStatus: http.StatusOK,
			checkBody: func(t *testing.T, b []byte) {
				if !bytes.Contains(b, []byte("signed out")) {
					t.Fatalf("unexpected body: %s", string(b))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newAuthHandler(t, "auth_"+tt.name, secret)
			if tt.prepare != nil {
				tt.prepare(t, handler)
			}

			var bodyReader io.Reader
			if tt.body != nil {
				b, _ := json.Marshal(tt.body)
				bodyReader = bytes.NewReader(b)
			}
			req := httptest.NewRequest(http.MethodPost, tt.path, bodyReader)
			w := httptest.NewRecorder()

			switch tt.path {
			case "/signup":
				handler.Signup(w, req)
			case "/signin":
				handler.Signin(w, req)
			case "/signout":
				handler.Signout(w, req)
			default:
				t.Fatalf("unknown path %s", tt.path)
			}

			res := w.Result()
			defer res.Body.Close()
			data, _ := io.ReadAll(res.Body)
			if res.StatusCode != tt.wantStatus {
				t.Fatalf("%s: expected status %d got %d body=%s", tt.name, tt.wantStatus, res.StatusCode, string(data))
			}
			if tt.checkBody != nil {
				tt.checkBody(t, data)
			}
		})
	}
}

func TestSignupContractorCreatesSkeletonProfile(t *testing.T) {
	secret := "testsecret"
	handler, repo := newAuthHandler(t, "auth_skeleton", secret)

	token := signup(t, handler, map[string]string{"name": "Bob", "email": "bob@example.com", "password": "pw", "role": "contractor"})

	tok, err := jwt.Parse(token, func(token *jwt.Token) (any, error) { return []byte(secret), nil })
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	if sub == "" {
		t.Fatalf("missing sub claim")
	}

	profile, err := repo.ProfileByID(context.Background(), sub)
	if err != nil {
		t.Fatalf("profile lookup: %v", err)
	}
	if profile == nil {
		t.Fatalf("expected skeleton profile for contractor %s", sub)
	}
	if profile.Name != "Bob" || profile.Email != "bob@example.com" {
		t.Fatalf("unexpected skeleton profile: %+v", profile)
	}
	if len(profile.ServiceCategories) == 0 {
		t.Fatalf("skeleton profile must carry at least one category")
	}
}

func signup(t *testing.T, h *api.AuthHandler, body map[string]string) string {
	t.Helper()
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.Signup(w, req)
	res := w.Result()
	defer res.Body.Close()
	data, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("signup failed: status %d body=%s", res.StatusCode, string(data))
	}
	var ar struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &ar); err != nil {
		t.Fatalf("unmarshal token: %v", err)
	}

	return ar.Token
}

func checkToken(t *testing.T, body []byte, secret string) {
	t.Helper()
	var ar struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &ar); err != nil {
		t.Fatalf("unmarshal token: %v", err)
	}
	if ar.Token == "" {
		t.Fatalf("empty token")
	}
	tok, err := jwt.Parse(ar.Token, func(token *jwt.Token) (any, error) { return []byte(secret), nil })
	if err != nil {
		t.Fatalf("invalid token: %v", err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("unexpected claims type")
	}
	if sub, _ := claims["sub"].(string); sub == "" {
		t.Fatalf("missing sub claim")
	}
	if _, ok := claims["email"]; !ok {
		t.Fatalf("missing email claim")
	}
	if expF, ok := claims["exp"].(float64); !ok || int64(expF) < time.Now().Unix() {
		t.Fatalf("invalid exp claim")
	}
}
