// Package mail sends plain or HTML email through a configured provider.
//
// Callers depend on the Mail interface and the Message payload only. SMTP and
// the Brevo transactional API are the available drivers; NewFromDriver picks
// one from configuration.
package mail
