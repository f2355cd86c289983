// Package services contains server-side business logic: authentication,
// challenge and entry management, statistics and the public portfolio.
// Services own transaction boundaries; repositories are bound per call
// through the RepositoryManager.
package services
