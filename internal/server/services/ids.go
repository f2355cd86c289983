package services

import "github.com/google/uuid"

// validID reports whether id can address a row. Anything else is treated as
// not found so malformed ids never reach the database.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
