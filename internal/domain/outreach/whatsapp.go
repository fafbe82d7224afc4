package outreach

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// messageTemplate is the outreach text sent to patients, kept verbatim
// from the panel the contact team already uses.
const messageTemplate = "Olá, %s. Vimos que sua última consulta com o %s foi no dia %s. " +
	"É muito importante que você faça um check-up anual para garantir qualidade na sua saúde. " +
	"Posso agendar uma consulta pra você nessa semana?"

// NormalizePhone strips every non-digit character and removes a
// redundant leading country code so the prefix is never doubled in the
// wa.me link.
func NormalizePhone(phone, countryCode string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if countryCode != "" && strings.HasPrefix(digits, countryCode) {
		digits = digits[len(countryCode):]
	}
	return digits
}

// MessageLink builds the wa.me deep link an operator opens to contact a
// patient. Returns "" when the phone has no digits.
func MessageLink(name, specialty, phone string, lastVisit time.Time, countryCode string) string {
	digits := NormalizePhone(phone, countryCode)
	if digits == "" {
		return ""
	}
	msg := fmt.Sprintf(messageTemplate, name, specialty, lastVisit.Format("02/01/2006"))
	return fmt.Sprintf("https://wa.me/%s%s?text=%s", countryCode, digits, url.QueryEscape(msg))
}
