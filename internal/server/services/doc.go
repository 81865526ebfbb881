// Package services contains the server-side business logic: the auth
// service (signup, login, token verification and rotation) and the recipe
// service (CRUD with owner-only mutation and image upload presigning).
// Services return sentinel errors from internal/common; the HTTP layer is
// the only place they become status codes.
package services
