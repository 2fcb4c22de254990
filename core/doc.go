// Package core defines the domain model and service layer interfaces for Murmur.
//
// # Architecture Overview
//
// The core package provides:
//   - Domain types (Account, Message)
//   - Service layer interfaces following Interface Segregation Principle
//   - Validation constants shared by services and handlers
//
// # Design Principles
//
// Service interfaces are designed following these principles:
//  1. Interfaces defined where used (consumer package), not where implemented
//  2. Small, focused interfaces
//  3. Accept interfaces, return concrete types
//  4. context.Context as first parameter for cancellation support
//  5. Typed errors (sentinel errors in storage package, wrapped with context in services)
//
// See services.go for complete service interface definitions.
package core
