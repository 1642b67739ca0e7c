package utils

import "os"

// VerifyAdminSecret compares a client-supplied secret against the configured
// one. Plain string equality by protocol; an unset ADMIN_SECRET disables all
// privileged operations rather than allowing them.
func VerifyAdminSecret(secret string) bool {
	configured := os.Getenv("ADMIN_SECRET")
	return configured != "" && secret == configured
}
