// Package model contains the domain types shared by the repositories, services
// and HTTP handlers. It holds no business logic beyond value validation.
package model
