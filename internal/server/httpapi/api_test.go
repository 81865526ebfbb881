package httpapi

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenario walks the documented happy path: A and B sign up, A posts a
// recipe, B cannot delete it, A can, after which it is gone.
func TestScenario_OwnershipLifecycle(t *testing.T) {
	f := newAPI(t, fakeImages{})

	userA, tokenA := f.signupAndLogin(t, "A", "a@x.com")
	_, tokenB := f.signupAndLogin(t, "B", "b@x.com")

	w := f.do(t, http.MethodPost, "/api/recipes", tokenA, recipeRequest{
		Name: "Pancakes", Category: "Breakfast", Type: "Veg",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	r := decode[RecipeResponse](t, w)
	assert.Equal(t, userA.ID, r.OwnerID)
	assert.Equal(t, r.ID, r.LegacyID)

	w = f.do(t, http.MethodGet, "/api/recipes?category=Breakfast", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]RecipeResponse](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, r.ID, list[0].ID)

	w = f.do(t, http.MethodDelete, "/api/recipes/"+r.ID, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", decode[ErrorResponse](t, w).Error)

	w = f.do(t, http.MethodDelete, "/api/recipes/"+r.ID, tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[messageResponse](t, w).Message)

	w = f.do(t, http.MethodGet, "/api/recipes/"+r.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodDelete, "/api/recipes/"+r.ID, tokenA, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSignup(t *testing.T) {
	f := newAPI(t, nil)

	w := f.do(t, http.MethodPost, "/api/auth/signup", "", signupRequest{Name: "Ann", Email: "Ann@X.com", Password: "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)
	u := decode[UserResponse](t, w)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "ann@x.com", u.Email)
	assert.NotContains(t, w.Body.String(), "password")

	w = f.do(t, http.MethodPost, "/api/auth/signup", "", signupRequest{Name: "Ann", Email: "ANN@x.com", Password: "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "duplicate_email", decode[ErrorResponse](t, w).Error)

	w = f.do(t, http.MethodPost, "/api/auth/signup", "", signupRequest{Name: "", Email: "c@x.com", Password: "secret1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/auth/signup", "", signupRequest{Name: "C", Email: "c@x.com", Password: "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/auth/signup", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_input", decode[ErrorResponse](t, w).Error)
}

func TestLogin_SameErrorForUnknownAndWrong(t *testing.T) {
	f := newAPI(t, nil)
	f.signupAndLogin(t, "Ann", "a@x.com")

	wrong := f.do(t, http.MethodPost, "/api/auth/login", "", loginRequest{Email: "a@x.com", Password: "nope-nope"})
	unknown := f.do(t, http.MethodPost, "/api/auth/login", "", loginRequest{Email: "z@x.com", Password: "secret1"})

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.JSONEq(t, wrong.Body.String(), unknown.Body.String())
}

func TestRefreshLogoutMe(t *testing.T) {
	f := newAPI(t, nil)
	f.do(t, http.MethodPost, "/api/auth/signup", "", signupRequest{Name: "Ann", Email: "a@x.com", Password: "secret1"})

	w := f.do(t, http.MethodPost, "/api/auth/login", "", loginRequest{Email: "a@x.com", Password: "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[LoginResponse](t, w)
	assert.Equal(t, "Ann", login.User.Name)
	assert.False(t, login.ExpiresAt.IsZero())

	w = f.do(t, http.MethodGet, "/api/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, login.User, decode[UserResponse](t, w))

	w = f.do(t, http.MethodPost, "/api/auth/refresh", "", refreshRequest{RefreshToken: login.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)
	pair := decode[TokenResponse](t, w)
	assert.NotEqual(t, login.RefreshToken, pair.RefreshToken)

	w = f.do(t, http.MethodPost, "/api/auth/refresh", "", refreshRequest{RefreshToken: login.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodPost, "/api/auth/logout", "", refreshRequest{RefreshToken: pair.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/api/auth/refresh", "", refreshRequest{RefreshToken: pair.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	f := newAPI(t, nil)

	for _, tc := range []struct{ method, path, token string }{
		{http.MethodGet, "/api/recipes/user/recipes", ""},
		{http.MethodPost, "/api/recipes", ""},
		{http.MethodPost, "/api/recipes", "garbage"},
		{http.MethodPut, "/api/recipes/x", ""},
		{http.MethodDelete, "/api/recipes/x", ""},
		{http.MethodPost, "/api/recipes/images", ""},
		{http.MethodGet, "/api/auth/me", ""},
	} {
		w := f.do(t, tc.method, tc.path, tc.token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.method+" "+tc.path)
		assert.Equal(t, "invalid_token", decode[ErrorResponse](t, w).Error)
	}
}

func TestRecipes_ListFiltersAndMine(t *testing.T) {
	f := newAPI(t, nil)
	_, tokenA := f.signupAndLogin(t, "A", "a@x.com")
	_, tokenB := f.signupAndLogin(t, "B", "b@x.com")

	for _, rr := range []struct {
		token string
		req   recipeRequest
	}{
		{tokenA, recipeRequest{Name: "Pancakes", Category: "Breakfast", Type: "Veg"}},
		{tokenB, recipeRequest{Name: "Chicken Curry", Category: "Dinner", Type: "Non-Veg"}},
		{tokenA, recipeRequest{Name: "Pancake Tower", Category: "Dessert", Type: "Veg"}},
	} {
		w := f.do(t, http.MethodPost, "/api/recipes", rr.token, rr.req)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	names := func(path string) []string {
		w := f.do(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var out []string
		for _, r := range decode[[]RecipeResponse](t, w) {
			out = append(out, r.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Pancakes", "Chicken Curry", "Pancake Tower"}, names("/api/recipes"))
	assert.Equal(t, []string{"Pancakes", "Chicken Curry", "Pancake Tower"}, names("/api/recipes?category=All&type=All"))
	assert.Equal(t, []string{"Chicken Curry"}, names("/api/recipes?type=Non-Veg"))
	assert.Equal(t, []string{"Pancakes", "Pancake Tower"}, names("/api/recipes?search=pancake"))
	assert.Equal(t, []string{"Pancake Tower"}, names("/api/recipes?search=PAN&category=Dessert"))

	w := f.do(t, http.MethodGet, "/api/recipes?category=Lunch", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = f.do(t, http.MethodGet, "/api/recipes/user/recipes", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[[]RecipeResponse](t, w)
	require.Len(t, mine, 1)
	assert.Equal(t, "Chicken Curry", mine[0].Name)
}

func TestRecipes_CreateValidationAndUpdate(t *testing.T) {
	f := newAPI(t, nil)
	_, tokenA := f.signupAndLogin(t, "A", "a@x.com")
	_, tokenB := f.signupAndLogin(t, "B", "b@x.com")

	w := f.do(t, http.MethodPost, "/api/recipes", tokenA, recipeRequest{Description: "no name"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[ErrorResponse](t, w).Message, "name")

	w = f.do(t, http.MethodPost, "/api/recipes", tokenA, recipeRequest{Name: "Soup", Category: "Brunch"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/recipes", tokenA, recipeRequest{Name: "Soup"})
	require.Equal(t, http.StatusCreated, w.Code)
	r := decode[RecipeResponse](t, w)

	w = f.do(t, http.MethodPut, "/api/recipes/"+r.ID, tokenB, recipeRequest{Name: "Stolen"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, http.MethodPut, "/api/recipes/"+r.ID, tokenA, recipeRequest{Name: "Tomato Soup", Category: "Lunch"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tomato Soup", decode[RecipeResponse](t, w).Name)

	w = f.do(t, http.MethodPut, "/api/recipes/not-an-id", tokenA, recipeRequest{Name: "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, "/api/recipes/not-an-id", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImages(t *testing.T) {
	f := newAPI(t, fakeImages{})
	_, token := f.signupAndLogin(t, "A", "a@x.com")

	w := f.do(t, http.MethodPost, "/api/recipes/images", token, imageUploadRequest{ContentType: "image/jpeg"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	up := decode[ImageUploadResponse](t, w)
	assert.True(t, strings.HasSuffix(up.Key, ".jpg"))
	assert.Equal(t, "/api/images/"+up.Key, up.ImageURL)

	w = f.do(t, http.MethodGet, up.ImageURL, "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://s3.example/get/"+up.Key, w.Header().Get("Location"))

	w = f.do(t, http.MethodPost, "/api/recipes/images", token, imageUploadRequest{ContentType: "application/pdf"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodGet, "/api/images/etc/passwd", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImages_NotConfigured(t *testing.T) {
	f := newAPI(t, nil)
	_, token := f.signupAndLogin(t, "A", "a@x.com")

	w := f.do(t, http.MethodPost, "/api/recipes/images", token, imageUploadRequest{ContentType: "image/png"})
	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Equal(t, "not_configured", decode[ErrorResponse](t, w).Error)
}

func TestHealthAndNoRoute(t *testing.T) {
	f := newAPI(t, nil)

	w := f.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORS_Preflight(t *testing.T) {
	f := newAPI(t, nil)

	req := newPreflight("http://localhost:5173")
	w := record(f.router, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	w = record(f.router, newPreflight("http://evil.example"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
