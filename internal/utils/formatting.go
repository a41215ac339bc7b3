package utils

import "fmt"

// HumanSize renders a byte count with a binary unit suffix (KiB, MiB...).
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// ShortHash keeps the first n hex chars of a digest for table output.
func ShortHash(h string, n int) string {
	if len(h) <= n {
		return h
	}
	return h[:n]
}
