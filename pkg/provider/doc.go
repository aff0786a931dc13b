// Package provider exposes realistic scalar values ("email", "city", "uuid")
// behind the Provider capability. The Faker implementation wraps gofakeit and
// shares one seeded math/rand stream with callers, so seeding a Faker makes an
// entire generation run reproducible.
package provider
