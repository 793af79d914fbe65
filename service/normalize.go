package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/TejasDeepLearning/tenant-dashboard-3/model"
)

var (
	intPattern     = regexp.MustCompile(`\d+`)
	decimalPattern = regexp.MustCompile(`\d+\.?\d*`)
	percentPattern = regexp.MustCompile(`(\d+\.?\d*)%?`)
)

// NormalizeMonths converts a free-text rental/lock-in period to a month
// count ("2 years" -> "24", "1 quarter" -> "3"). A bare number is taken
// as months already. Unrecognizable input normalizes to "".
func NormalizeMonths(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return ""
	}

	match := intPattern.FindString(v)
	if match == "" {
		return ""
	}
	num, err := strconv.Atoi(match)
	if err != nil {
		return ""
	}

	switch {
	case strings.Contains(v, "year"):
		num *= 12
	case strings.Contains(v, "quarter"):
		num *= 3
	}
	return strconv.Itoa(num)
}

// NormalizeAmount extracts the first numeric value from an amount string
// ("Rs 72 per sqft per month" -> "72").
func NormalizeAmount(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	return decimalPattern.FindString(v)
}

// NormalizeMaintenance sums every numeric component so composite charges
// like "Rs.11 + Rs. 2 for canteen" normalize to "13".
func NormalizeMaintenance(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}

	parts := decimalPattern.FindAllString(v, -1)
	if len(parts) == 0 {
		return ""
	}

	var total float64
	for _, part := range parts {
		n, err := strconv.ParseFloat(part, 64)
		if err != nil {
			continue
		}
		total += n
	}

	if total == float64(int64(total)) {
		return strconv.FormatInt(int64(total), 10)
	}
	return strconv.FormatFloat(total, 'f', -1, 64)
}

// NormalizeEscalation extracts the percentage from an escalation clause,
// always rendered with a trailing % ("5% annually" -> "5%").
func NormalizeEscalation(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}

	match := percentPattern.FindStringSubmatch(v)
	if match == nil {
		return ""
	}
	return match[1] + "%"
}

// NormalizeBoolFlag maps the extractor's yes/no variants onto the
// canonical "True"/"False" strings, defaulting to "False" when unclear.
func NormalizeBoolFlag(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "1":
		return "True"
	default:
		return "False"
	}
}

// NormalizeAgreement applies every field normalization in place. Used on
// freshly extracted records and again on reads so legacy data converges
// to the same shape.
func NormalizeAgreement(rec *model.Agreement) {
	rec.PeriodOfRent = NormalizeMonths(rec.PeriodOfRent)
	rec.LockInPeriod = NormalizeMonths(rec.LockInPeriod)
	rec.RentAmount = NormalizeAmount(rec.RentAmount)
	rec.Maintenance = NormalizeMaintenance(rec.Maintenance)
	rec.RentEscalation = NormalizeEscalation(rec.RentEscalation)
	rec.RentalPeriodGreaterThanLockInPeriod = NormalizeBoolFlag(rec.RentalPeriodGreaterThanLockInPeriod)
}
