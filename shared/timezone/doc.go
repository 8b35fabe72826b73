// Package timezone centralizes time handling in the configured application
// timezone. Reservation dates and times are timezone-naive in the store; this
// package makes "today" and parsing behave consistently for the restaurant's
// local calendar.
package timezone
