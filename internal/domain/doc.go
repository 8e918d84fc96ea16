// Package domain contains the core business entities, value objects, and
// domain logic of the application: providers (tattoo artists), their
// clients, consultations, appointments, conversations, and the
// BusinessTask values produced by the prioritization engine. It is
// independent of any specific infrastructure or delivery mechanism.
package domain
