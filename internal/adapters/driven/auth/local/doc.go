// Package local implements the AuthProvider port without a remote
// identity service. Accounts live in the document store under the
// auth_users collection with salted password digests, and the active
// session is persisted through the config store so sign-in survives
// process restarts.
package local
