// Package models defines the statistics snapshot and cache introspection payloads.
package models
