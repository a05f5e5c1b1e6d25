// Package timezones ships a deterministic IANA timezone list and a form
// decorator that offers it as the choices of timezone settings.
//
// The list is embedded from data/iana_timezones.txt.
package timezones
