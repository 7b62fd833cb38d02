package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blindbox-labs/backend/internal/model"
	"github.com/blindbox-labs/backend/pkg/errorx"
	"github.com/blindbox-labs/backend/pkg/testutil"
	"github.com/blindbox-labs/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_AuthVerifier_Middleware(t *testing.T) {
	ctx := testutil.MockContext()
	middleware := NewAuthVerifier().WithAccessToken().Middleware()

	token, err := xcontext.TokenEngine(ctx).Generate(
		time.Minute, model.AccessToken{ID: "user1", Name: "user1"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/getMe", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	newCtx, err := middleware(xcontext.WithHTTPRequest(ctx, req))
	require.NoError(t, err)
	require.Equal(t, "user1", xcontext.RequestUserID(newCtx))
}

func Test_AuthVerifier_Middleware_cookie(t *testing.T) {
	ctx := testutil.MockContext()
	middleware := NewAuthVerifier().WithAccessToken().Middleware()

	token, err := xcontext.TokenEngine(ctx).Generate(
		time.Minute, model.AccessToken{ID: "user2", Name: "user2"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/getMe", nil)
	req.AddCookie(&http.Cookie{
		Name:  xcontext.Configs(ctx).Auth.AccessToken.Name,
		Value: token,
	})

	newCtx, err := middleware(xcontext.WithHTTPRequest(ctx, req))
	require.NoError(t, err)
	require.Equal(t, "user2", xcontext.RequestUserID(newCtx))
}

func Test_AuthVerifier_Middleware_session(t *testing.T) {
	ctx := testutil.MockContext()
	middleware := NewAuthVerifier().WithAccessToken().Middleware()

	sessionName := xcontext.Configs(ctx).Session.Name
	store := xcontext.SessionStore(ctx)

	// Establish a session the way a login handler would.
	loginReq := httptest.NewRequest("POST", "/login", nil)
	session, err := store.Get(loginReq, sessionName)
	require.NoError(t, err)

	session.Values["user_id"] = "user3"
	w := httptest.NewRecorder()
	require.NoError(t, session.Save(loginReq, w))

	req := httptest.NewRequest("GET", "/getMe", nil)
	for _, cookie := range w.Result().Cookies() {
		req.AddCookie(cookie)
	}

	newCtx, err := middleware(xcontext.WithHTTPRequest(ctx, req))
	require.NoError(t, err)
	require.Equal(t, "user3", xcontext.RequestUserID(newCtx))
}

func Test_AuthVerifier_Middleware_invalidToken(t *testing.T) {
	ctx := testutil.MockContext()
	middleware := NewAuthVerifier().WithAccessToken().Middleware()

	req := httptest.NewRequest("GET", "/getMe", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	_, err := middleware(xcontext.WithHTTPRequest(ctx, req))
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)

	// No credentials at all.
	req = httptest.NewRequest("GET", "/getMe", nil)
	_, err = middleware(xcontext.WithHTTPRequest(ctx, req))
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)
}
