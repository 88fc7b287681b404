// Package format - чистые функции преобразования сырых значений в строки для отображения.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dateLayout = "Jan 2, 2006"

// FormatNumber группирует разряды по-английски: 450000 -> "450,000".
func FormatNumber(n int64) string {
	return message.NewPrinter(language.AmericanEnglish).Sprintf("%d", n)
}

// FormatPrice - цена в целых долларах. Нулевое (или не заданное) значение дает "$0".
func FormatPrice(price int64) string {
	if price == 0 {
		return "$0"
	}
	if price < 0 {
		return "-$" + FormatNumber(-price)
	}
	return "$" + FormatNumber(price)
}

// FormatDate - "Oct 18, 2026"; нулевое время дает пустую строку.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// FormatRelativeDate описывает давность даты относительно now.
func FormatRelativeDate(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))

	switch {
	case days <= 1:
		return "Today"
	case days == 2:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days-1)
	case days <= 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	case days <= 365:
		return fmt.Sprintf("%d months ago", days/30)
	}
	return FormatDate(t)
}

// FormatPhoneNumber форматирует ровно десять цифр как "(123) 456-7890".
// Любой другой ввод возвращается без изменений.
func FormatPhoneNumber(phone string) string {
	if phone == "" {
		return ""
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if len(digits) != 10 {
		return phone
	}
	return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
}

// TruncateText обрезает текст до maxLength символов и добавляет "...".
func TruncateText(text string, maxLength int) string {
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLength]) + "..."
}

// CapitalizeFirst - первая буква заглавная, остальные строчные.
func CapitalizeFirst(s string) string {
	if s == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(s)
	upper := cases.Upper(language.English)
	lower := cases.Lower(language.English)
	return upper.String(string(first)) + lower.String(s[size:])
}

var amenityLabels = map[string]string{
	"air-conditioning": "Air Conditioning",
	"security":         "Security System",
	"pet-friendly":     "Pet Friendly",
}

// AmenityLabel - человекочитаемое название тега удобства.
func AmenityLabel(tag string) string {
	if label, ok := amenityLabels[tag]; ok {
		return label
	}
	return CapitalizeFirst(strings.ReplaceAll(tag, "-", " "))
}

func TypeLabel(t domain.PropertyType) string {
	return CapitalizeFirst(string(t))
}

func StatusLabel(s domain.PropertyStatus) string {
	return CapitalizeFirst(string(s))
}

// RecipientLabel - подпись карточки контакта на странице объявления.
func RecipientLabel(t domain.RecipientType) string {
	switch t {
	case domain.RecipientAgent:
		return "Real Estate Agent"
	case domain.RecipientOwner:
		return "Property Owner"
	}
	return "Support"
}
