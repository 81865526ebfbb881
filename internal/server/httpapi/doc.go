// Package httpapi is the JSON gateway of RecipeHub. It binds requests,
// calls the services and is the only place where service errors become
// HTTP status codes.
package httpapi
