// Package models defines the recipe record and the data passed between packages.
package models
