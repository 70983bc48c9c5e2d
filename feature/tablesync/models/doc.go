// Package models defines the destination entities kept in sync and their field accessor tables.
package models
