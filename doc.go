// Package main provides the entry point for the QuickFix-Booking service.
// It runs a web server using the Fiber framework that serves the public
// repair-booking intake API, the admin dashboard API for managing repair
// requests and form options, and an integration API for external platforms.
// The service uses gorm for data persistence and mirrors bookings to an
// optional Supabase store and a Laravel backend on a best-effort basis.
package main
