// Package models defines the domain types shared by the storage and service
// layers.
//
// There is a single entity, Flavor. Its id and timestamps are always assigned
// by the store; callers only ever supply a FlavorInput.
package models
