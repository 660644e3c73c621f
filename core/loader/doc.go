// Package loader registers the HTTP features of the verification server.
//
// A feature bundles a service and a handler and mounts its routes on the
// shared router:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Manager.LoadAll loads enabled features in registration order and returns
// their names so the server can log what it serves. The first failing feature
// stops loading.
package loader
