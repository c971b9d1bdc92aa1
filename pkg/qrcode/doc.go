// Package qrcode renders QR code PNGs for the MFA enrollment flow.
//
// It wraps github.com/skip2/go-qrcode with input validation and a
// data-URI helper so an otpauth enrollment URI can go straight into an
// <img> tag or a PNG response body.
package qrcode
