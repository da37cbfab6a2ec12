// Package queue provides the generic binary heap behind k-way merges.
package queue
