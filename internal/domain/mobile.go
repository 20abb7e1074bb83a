package domain

// ValidMobile reports whether s is all digits within the accepted length
func ValidMobile(s string) bool {
	if len(s) < MinMobileLength || len(s) > MaxMobileLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
