// Package jwt issues and verifies the HS512 bearer tokens handed to admins
// after a successful OTP login, and carries verified claims through a context.
package jwt
