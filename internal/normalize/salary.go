package normalize

import (
	"regexp"
	"strconv"
)

var salaryPattern = regexp.MustCompile(`\$(\d{1,2})\.(\d)K`)

// DecodeSalary converts shorthand like "$8.7K" into whole dollars (8700)
func DecodeSalary(shorthand string) (int, error) {
	m := salaryPattern.FindStringSubmatch(shorthand)
	if m == nil {
		return 0, malformed("salary", shorthand, "expected $<thousands>.<hundreds>K")
	}
	thousands, _ := strconv.Atoi(m[1])
	hundreds, _ := strconv.Atoi(m[2])
	return thousands*1000 + hundreds*100, nil
}
