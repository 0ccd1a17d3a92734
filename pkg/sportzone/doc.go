// Package sportzone is a typed client for the SportZone REST backend.
//
// # Overview
//
// The backend owns every committed entity: venues ("escenarios") with their
// image records, users, reservations and damage reports. This package only
// shapes requests and parses responses; identifiers are always assigned by the
// server and responses are treated as the source of truth.
//
// # Wire Format
//
// All bodies are JSON. Field names follow the backend's Spanish schema
// (nombre, descripcion, direccion, latitud, ...). Decimal columns such as
// latitude, longitude and price may arrive either as JSON numbers or as
// strings; Decimal accepts both.
//
// # Usage Example
//
//	client, err := sportzone.NewClient(sportzone.DefaultBaseURL,
//		sportzone.WithTimeout(30*time.Second),
//		sportzone.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//
//	venues, err := client.ListVenues(ctx)
//	if err != nil {
//		return err
//	}
//
//	venue, err := client.GetVenue(ctx, venues[0].ID)
//	if sportzone.IsNotFound(err) {
//		// venue was deleted in between
//	}
//
// # Validation
//
// Every input type carries a Validate method. The client validates inputs
// before sending them, so a validation failure never costs a network call.
package sportzone
