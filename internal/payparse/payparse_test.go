package payparse

import (
	"strings"
	"testing"
	"time"
)

const sampleMessage = `To'lov muvaffaqiyatli o'tdi

Operatsiya raqami: 666247
Tranzaksiya IDsi: 181818244
Terminal ID: 92A0012
Merchant ID: 907123456
🕗 Vaqt: 14.01.2026 17:15
Mijozning telefon raqami: 998901234567
Mijozning ismi: AZIZBEK KARIMOV
Muddat: 12 oy
Summa: 4,800,000.00 UZS
Hisobingizga o'tkaziladi: 4,320,000.00 UZS
Do'kon manzili: Toshkent sh., Chilonzor tumani`

func TestParseFullTemplate(t *testing.T) {
	p, ok := Parse(sampleMessage)
	if !ok {
		t.Fatal("full template message not parsed")
	}
	if p.OperatsiyaRaqami != "666247" {
		t.Errorf("OperatsiyaRaqami = %q", p.OperatsiyaRaqami)
	}
	if p.TranzaksiyaID != "181818244" {
		t.Errorf("TranzaksiyaID = %q", p.TranzaksiyaID)
	}
	if p.TerminalID != "92A0012" {
		t.Errorf("TerminalID = %q", p.TerminalID)
	}
	if p.MerchantID != "907123456" {
		t.Errorf("MerchantID = %q", p.MerchantID)
	}
	want := time.Date(2026, time.January, 14, 17, 15, 0, 0, time.Local)
	if !p.Vaqt.Equal(want) {
		t.Errorf("Vaqt = %v, want %v", p.Vaqt, want)
	}
	if p.MijozTelefon != "998901234567" {
		t.Errorf("MijozTelefon = %q", p.MijozTelefon)
	}
	if p.MijozIsmi != "AZIZBEK KARIMOV" {
		t.Errorf("MijozIsmi = %q", p.MijozIsmi)
	}
	if p.Muddat != "12 oy" {
		t.Errorf("Muddat = %q", p.Muddat)
	}
	if p.Summa != "4,800,000.00" {
		t.Errorf("Summa = %q", p.Summa)
	}
	if p.HisobgaOtkazilganSumma != "4,320,000.00" {
		t.Errorf("HisobgaOtkazilganSumma = %q", p.HisobgaOtkazilganSumma)
	}
	if p.DokonManzili != "Toshkent sh., Chilonzor tumani" {
		t.Errorf("DokonManzili = %q", p.DokonManzili)
	}
	if p.OriginalMessage != sampleMessage {
		t.Errorf("OriginalMessage not kept verbatim")
	}
}

func TestParseCurlyApostrophes(t *testing.T) {
	msg := strings.ReplaceAll(sampleMessage, "'", "’")
	if _, ok := Parse(msg); !ok {
		t.Error("message with typographic apostrophes not parsed")
	}
}

func TestMarkerThreshold(t *testing.T) {
	// Nine template phrases present: recognized, but the full parse fails
	// closed because the sum fields are missing.
	nine := `To'lov muvaffaqiyatli o'tdi
Operatsiya raqami: 1
Tranzaksiya IDsi: 2
Terminal ID: A3
Merchant ID: 4
Vaqt: 14.01.2026 17:15
Mijozning telefon raqami: 998901234567
Mijozning ismi: TEST USER
Muddat: 6 oy`
	if !IsPaymentMessage(nine) {
		t.Error("nine markers should pass the threshold")
	}
	if _, ok := Parse(nine); ok {
		t.Error("parse must fail when mandatory fields are missing")
	}

	eight := strings.Replace(nine, "Muddat: 6 oy", "", 1)
	if IsPaymentMessage(eight) {
		t.Error("eight markers must not pass the threshold")
	}
}

func TestIsPaymentMessageOrdinaryText(t *testing.T) {
	if IsPaymentMessage("salom, qalaysiz?") {
		t.Error("ordinary chat text classified as payment")
	}
	if IsPaymentMessage("") {
		t.Error("empty text classified as payment")
	}
}

func TestParseMissingDate(t *testing.T) {
	msg := strings.Replace(sampleMessage, "14.01.2026 17:15", "sanasi yo'q", 1)
	if _, ok := Parse(msg); ok {
		t.Error("parse must fail without a valid date")
	}
}
