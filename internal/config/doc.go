// Package config resolves the backend's settings snapshot.
//
// Values come from three layers, lowest precedence first: the defaults
// declared on the Settings fields, an optional .env file, and the process
// environment.  Two values are derived after the merge: the allowed
// cross-origin list (BACKEND_CORS_ORIGINS extended with ALLOWED_ORIGINS)
// and the Postgres connection URI.
//
// The snapshot is created once in main and passed to the components that
// need it; there is no package-level instance.
package config
