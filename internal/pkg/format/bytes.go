package format

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Bytes formats bytes to human-readable format
func Bytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// ParseRateLimit parses a rate limit string with units (e.g., "100MB/s", "1GB/s", "500KB/s")
// Returns bytes per second, or -1 for unlimited speed
func ParseRateLimit(rateStr string) (int64, error) {
	rateStr = strings.TrimSpace(rateStr)
	if rateStr == "" || rateStr == "0" {
		return 0, nil
	}
	if rateStr == "-1" {
		return -1, nil
	}

	rateStr = strings.TrimSuffix(strings.ToUpper(rateStr), "/S")
	return ParseSize(rateStr)
}

// ParseSize parses a size string with units (e.g., "100MB", "1GB", "500KB")
// Supported units: B, KB, MB, GB, TB (case insensitive, base 1024)
func ParseSize(sizeStr string) (int64, error) {
	sizeStr = strings.ToUpper(strings.TrimSpace(sizeStr))
	if sizeStr == "" || sizeStr == "0" {
		return 0, nil
	}

	// Find where the number ends
	var numEnd int
	for i, r := range sizeStr {
		if !unicode.IsDigit(r) && r != '.' {
			numEnd = i
			break
		}
		numEnd = i + 1
	}

	if numEnd == 0 {
		return 0, fmt.Errorf("invalid size format: %s", sizeStr)
	}

	numStr := sizeStr[:numEnd]
	value, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number in size: %s", numStr)
	}

	if value <= 0 {
		return 0, nil
	}

	unitStr := strings.TrimSpace(sizeStr[numEnd:])
	var multiplier float64
	switch unitStr {
	case "", "B", "BYTE", "BYTES":
		multiplier = 1
	case "KB", "K":
		multiplier = 1024
	case "MB", "M":
		multiplier = 1024 * 1024
	case "GB", "G":
		multiplier = 1024 * 1024 * 1024
	case "TB", "T":
		multiplier = 1024 * 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported unit: %s (supported: B, KB, MB, GB, TB)", unitStr)
	}

	return int64(value * multiplier), nil
}
