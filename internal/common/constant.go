package common

// AuthorizationHeaderName carries the bearer access token on HTTP requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the auth scheme expected in AuthorizationHeaderName.
const BearerScheme = "Bearer"

// FilterAll disables a category or type filter when listing recipes.
const FilterAll = "All"
