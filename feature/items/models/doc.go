// Package models defines the item data structures shared by the item store
// backends, the items HTTP feature and the stats aggregator.
package models
