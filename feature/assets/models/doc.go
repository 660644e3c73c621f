// Package models defines the GORM models of the verification history.
package models
