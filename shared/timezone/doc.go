// Package timezone keeps two kinds of time apart.
//
// Instants (audit stamps, payment times, token expiry) live in the property's
// zone, read from APP_TIMEZONE when the package loads and falling back to UTC:
//
//	paidAt := timezone.Now()
//	stamp := timezone.Format(paidAt, time.RFC3339)
//
// Stay dates are calendar days with no zone. They are parsed from YYYY-MM-DD
// as midnight UTC and never converted, so a stay booked for 2024-01-01 stays
// on 2024-01-01 whatever APP_TIMEZONE says:
//
//	checkIn, err := timezone.ParseDate("2024-01-01")
//	nights := timezone.Nights(checkIn, checkOut)
//
// Today returns the property's current calendar day in the same UTC-midnight form.
package timezone
