// Package payparse recognizes and parses the Uzbek payment notification
// template posted by the payment provider into monitored groups.
package payparse

import (
	"regexp"
	"strings"
	"time"
)

// markers are the template phrases used for recognition. A message qualifies
// when at least minMarkers of them are present, case-insensitively.
var markers = []string{
	"to'lov muvaffaqiyatli o'tdi",
	"operatsiya raqami",
	"tranzaksiya idsi",
	"terminal id",
	"merchant id",
	"vaqt",
	"mijozning telefon raqami",
	"mijozning ismi",
	"muddat",
	"summa",
	"hisobingizga o'tkaziladi",
}

const minMarkers = 9

var (
	reOperatsiya  = regexp.MustCompile(`(?i)Operatsiya raqami:\s*(\d+)`)
	reTranzaksiya = regexp.MustCompile(`(?i)Tranzaksiya IDsi:\s*(\d+)`)
	reTerminal    = regexp.MustCompile(`(?i)Terminal ID:\s*([A-Z0-9]+)`)
	reMerchant    = regexp.MustCompile(`(?i)Merchant ID:\s*(\d+)`)
	reVaqt        = regexp.MustCompile(`(?i)Vaqt:.*?(\d{2}\.\d{2}\.\d{4}\s+\d{2}:\d{2})`)
	reTelefon     = regexp.MustCompile(`(?i)Mijozning telefon raqami:\s*(\d+)`)
	reIsm         = regexp.MustCompile(`(?im)Mijozning ismi:[ \t]*([A-Z \-]+?)[ \t]*$`)
	reMuddat      = regexp.MustCompile(`(?i)Muddat:[ \t]*([^\n]+)`)
	reSumma       = regexp.MustCompile(`(?i)Summa:\s*([\d,.\s]+?)\s*UZS`)
	reHisobga     = regexp.MustCompile(`(?i)Hisobingizga o'tkaziladi:\s*([\d,.\s]+?)\s*UZS`)
	reDokon       = regexp.MustCompile(`(?i)Do'kon manzili:[ \t]*([^\n]+)`)

	apostrophes = strings.NewReplacer("’", "'", "ʼ", "'", "`", "'")
)

// Parsed holds the fields extracted from one payment message.
// DokonManzili is the only optional field.
type Parsed struct {
	OperatsiyaRaqami       string
	TranzaksiyaID          string
	TerminalID             string
	MerchantID             string
	Vaqt                   time.Time
	MijozTelefon           string
	MijozIsmi              string
	Muddat                 string
	Summa                  string
	HisobgaOtkazilganSumma string
	DokonManzili           string
	OriginalMessage        string
}

// IsPaymentMessage reports whether text matches the payment template closely
// enough to attempt a full parse.
func IsPaymentMessage(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(apostrophes.Replace(text))
	found := 0
	for _, marker := range markers {
		if strings.Contains(lower, marker) {
			found++
		}
	}
	return found >= minMarkers
}

// Parse extracts the payment fields from text. It fails closed: any missing
// mandatory field makes the whole parse fail.
func Parse(text string) (*Parsed, bool) {
	if !IsPaymentMessage(text) {
		return nil, false
	}

	clean := strings.TrimSpace(strings.ReplaceAll(apostrophes.Replace(text), "🕗", ""))

	p := &Parsed{
		OperatsiyaRaqami:       firstGroup(reOperatsiya, clean),
		TranzaksiyaID:          firstGroup(reTranzaksiya, clean),
		TerminalID:             firstGroup(reTerminal, clean),
		MerchantID:             firstGroup(reMerchant, clean),
		MijozTelefon:           firstGroup(reTelefon, clean),
		MijozIsmi:              firstGroup(reIsm, clean),
		Muddat:                 firstGroup(reMuddat, clean),
		Summa:                  firstGroup(reSumma, clean),
		HisobgaOtkazilganSumma: firstGroup(reHisobga, clean),
		DokonManzili:           firstGroup(reDokon, clean),
		OriginalMessage:        text,
	}

	vaqtRaw := firstGroup(reVaqt, clean)
	if vaqtRaw != "" {
		// Collapse repeated whitespace between date and time.
		vaqtRaw = strings.Join(strings.Fields(vaqtRaw), " ")
		if t, err := time.ParseInLocation("02.01.2006 15:04", vaqtRaw, time.Local); err == nil {
			p.Vaqt = t
		}
	}

	if p.OperatsiyaRaqami == "" || p.TranzaksiyaID == "" || p.TerminalID == "" ||
		p.MerchantID == "" || p.Vaqt.IsZero() || p.MijozTelefon == "" ||
		p.MijozIsmi == "" || p.Muddat == "" || p.Summa == "" ||
		p.HisobgaOtkazilganSumma == "" {
		return nil, false
	}
	return p, true
}

func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}
