package sellerbot

import (
	"fmt"
	"strings"

	"github.com/savdohub/savdobot/internal/bots/dialog"
	"github.com/savdohub/savdobot/internal/domain"
	"github.com/savdohub/savdobot/internal/money"
	"github.com/savdohub/savdobot/internal/period"
	"github.com/savdohub/savdobot/internal/service"
)

const (
	btnOrders      = "📦 Buyurtmalar"
	btnMyOrders    = "📋 Mening buyurtmalarim"
	btnAddOrder    = "➕ Buyurtma qo'shish"
	btnPickDealer  = "🔄 Diller tanlash"
	btnStats       = "📊 Statistika"
	btnSettings    = "⚙️ Sozlamalar"
	btnMainMenu    = "🔙 Asosiy menyu"
	btnCancel      = "❌ Bekor qilish"
	btnRetry       = "🔄 Qayta so'rash"
	btnConfirm     = "✅ Tasdiqlash"
	btnSendContact = "📱 Telefon raqamni yuborish"

	btnStatsToday     = "📊 Bugungi"
	btnStatsYesterday = "📊 Kechagi"
	btnStatsWeek      = "📊 Haftalik"
	btnStatsMonth     = "📊 Oylik"
)

// Callback uniques for the transaction picker.
const (
	cbSelectTransaction = "select_transaction"
	cbCancelSelection   = "cancel_transaction_selection"
)

const (
	msgStartRegistration = "👋 Salom! Ro'yxatdan o'tish uchun quyidagi ma'lumotlarni kiriting:\n\n" +
		"📝 Ismingizni kiriting:"
	msgAskIsm      = "📝 Ismingizni kiriting:"
	msgAskFamiliya = "📝 Familiyangizni kiriting:"
	msgAskPhone    = "📱 Telefon raqamingizni yuboring:"
	msgIsmShort    = "❌ Ism kamida 2 ta belgidan iborat bo'lishi kerak. Qayta kiriting:"
	msgFamShort    = "❌ Familiya kamida 2 ta belgidan iborat bo'lishi kerak. Qayta kiriting:"
	msgPhoneFormat = "❌ Telefon raqam formati noto'g'ri. Qayta yuboring:"
	msgPhoneAbsent = "❌ Telefon raqam topilmadi. Iltimos, telefon raqamingizni yuboring:"

	msgPhoneUnknown = "❌ Bu telefon raqam bazada topilmadi. Iltimos, admin bilan bog'laning."
	msgPhoneTaken   = "❌ Bu telefon raqam boshqa Telegram akkaunt bilan bog'langan."

	msgCancelled = "❌ Amal bekor qilindi."
	msgMainMenu  = "🏠 Asosiy menyu:"
	msgSettings  = "⚙️ Sozlamalar bo'limi hozircha mavjud emas."
	msgGenErr    = "❌ Xatolik yuz berdi."

	msgOrdersNoDealer = "📦 Sizga hozircha diller biriktirilmagan.\n\n" +
		"Iltimos, diller bilan bog'laning."
	msgListNoDealer = "📋 Sizga hozircha diller biriktirilmagan.\n\n" +
		"Iltimos, diller bilan bog'laning."
	msgStatsNoDealer = "📊 Sizga hozircha diller biriktirilmagan.\n\n" +
		"Iltimos, diller bilan bog'laning."
	msgOrdersMenu       = "📦 Buyurtmalar bo'limi:"
	msgOnlyOneDealer    = "ℹ️ Sizga faqat bitta diller biriktirilgan."
	msgPickDealerOrders = "📦 Buyurtmalar bo'limi uchun dillerni tanlang:"
	msgPickDealerList   = "📋 Buyurtmalarni ko'rish uchun dillerni tanlang:"
	msgPickDealerStats  = "📊 Statistika ko'rish uchun dillerni tanlang:"
	msgBadDealerChoice  = "❌ Noto'g'ri diller tanlandi. Qayta tanlang:"
	msgStatsPeriod      = "📊 Statistika davrini tanlang:"

	msgAskOrderPhone = "➕ Yangi buyurtma qo'shish:\n\n" +
		"📱 Mijoz telefon raqamini kiriting:\n" +
		"Masalan: 901234567 (998 qo'shilmaydi)"
	msgOrderPhoneEmpty = "❌ Telefon raqam kiritilmadi. Qayta kiriting:\n" +
		"Masalan: 901234567"
	msgOrderPhoneFormat = "❌ Noto'g'ri format. Telefon raqam 9 ta raqamdan iborat bo'lishi kerak.\n" +
		"Masalan: 901234567"
	msgAskOrderPhoneShort = "📱 Mijoz telefon raqamini kiriting:\n" +
		"Masalan: 901234567 (998 qo'shilmaydi)"

	msgConfirmPrompt = "✅ Bu tranzaksiyani o'zingizga biriktirishni tasdiqlaysizmi?"
	msgClaimSuccess  = "✅ Buyurtma muvaffaqiyatli biriktirildi!"
	msgClaimCancel   = "❌ Buyurtma biriktirish bekor qilindi."
	msgSelectCancel  = "❌ Tranzaksiya tanlash bekor qilindi."
	msgTxNotFound    = "❌ Tranzaksiya topilmadi."
	msgAlreadyMine   = "ℹ️ Bu tranzaksiya allaqachon sizga biriktirilgan."
	msgUseButtons    = "ℹ️ Iltimos, yuqoridagi tugmalardan birini tanlang yoki bekor qiling."

	alertStaleAction = "❌ Amal muddati o'tgan. Qayta urinib ko'ring."
	alertBadTx       = "❌ Noto'g'ri tranzaksiya tanlandi."
	alertTxNotFound  = "❌ Tranzaksiya topilmadi."
	alertTxTaken     = "❌ Bu tranzaksiya allaqachon biriktirilgan."
)

var (
	mainMenuRows = [][]string{{btnOrders}, {btnStats, btnSettings}}
	backRows     = [][]string{{btnMainMenu}}
	cancelRows   = [][]string{{btnCancel}}
	retryRows    = [][]string{{btnRetry}, {btnCancel}}
	confirmRows  = [][]string{{btnConfirm}, {btnCancel}}
	statsRows    = [][]string{
		{btnStatsToday, btnStatsYesterday},
		{btnStatsWeek, btnStatsMonth},
		{btnMainMenu},
	}
)

var periodByButton = map[string]period.Period{
	btnStatsToday:     period.Today,
	btnStatsYesterday: period.Yesterday,
	btnStatsWeek:      period.Week,
	btnStatsMonth:     period.Month,
}

// ordersMenuRows includes the dealer switcher only when the seller is linked
// to more than one dealer.
func ordersMenuRows(multiDealer bool) [][]string {
	rows := [][]string{{btnMyOrders}, {btnAddOrder}}
	if multiDealer {
		rows = append(rows, []string{btnPickDealer})
	}
	return append(rows, []string{btnMainMenu})
}

func dealerSelectionRows(dealers []domain.Diller) [][]string {
	var rows [][]string
	var row []string
	for _, d := range dealers {
		row = append(row, dealerButton(d))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return append(rows, []string{btnMainMenu})
}

func dealerButton(d domain.Diller) string {
	return fmt.Sprintf("📋 %s (%s)", d.FullName(), d.TartibRaqami)
}

func greeting(s *domain.Sotuvchi) string {
	return fmt.Sprintf("👋 Salom, %s!\n\nSiz allaqachon ro'yxatdan o'tgansiz.", s.FullName())
}

func registered(s *domain.Sotuvchi) string {
	return "✅ Ro'yxatdan o'tish muvaffaqiyatli yakunlandi!\n\n" +
		fmt.Sprintf("👤 Ism: %s\n", s.Ism) +
		fmt.Sprintf("👤 Familiya: %s\n", s.Familiya) +
		fmt.Sprintf("📱 Telefon: %s\n", s.TelefonRaqam) +
		fmt.Sprintf("🆔 Tartib raqami: %s\n\n", s.TartibRaqami) +
		"Asosiy menyu:"
}

func formatVaqt(p domain.Payment) string {
	return p.Vaqt.Format("02.01.2006 15:04")
}

func transactionDetails(p *domain.Payment) string {
	return "📋 Buyurtma ma'lumotlari:\n\n" +
		fmt.Sprintf("👤 Mijoz ismi: %s\n", p.MijozIsmi) +
		fmt.Sprintf("📱 Mijoz telefon raqami: %s\n", p.MijozTelefon) +
		fmt.Sprintf("📅 Muddat: %s\n", p.Muddat) +
		fmt.Sprintf("🕐 Vaqt: %s\n", formatVaqt(*p)) +
		fmt.Sprintf("💰 Summa: %s UZS\n", p.Summa) +
		fmt.Sprintf("💵 Hisobga o'tkazilgan summa: %s UZS\n", p.HisobgaOtkazilganSumma) +
		fmt.Sprintf("🆔 Tranzaksiya ID: %s\n", p.TranzaksiyaID) +
		fmt.Sprintf("🖥️ Terminal ID: %s\n", p.TerminalID) +
		fmt.Sprintf("📦 Operatsiya raqami: %s", p.OperatsiyaRaqami)
}

func noOrdersForDealer(d domain.Diller) string {
	return fmt.Sprintf("📋 \"%s\" dilleri uchun hozircha buyurtmalar mavjud emas.\n\n", d.FullName()) +
		"Buyurtma qo'shish uchun \"➕ Buyurtma qo'shish\" tugmasini bosing."
}

func orderList(d domain.Diller, orders []domain.Payment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 \"%s\" dilleri buyurtmalari:\n\n", d.FullName())
	for i, o := range orders {
		fmt.Fprintf(&b, "%d. %s\n", i+1, o.MijozIsmi)
		fmt.Fprintf(&b, "   📱 %s\n", o.MijozTelefon)
		fmt.Fprintf(&b, "   💰 %s UZS\n", o.Summa)
		fmt.Fprintf(&b, "   🕐 %s\n", formatVaqt(o))
		fmt.Fprintf(&b, "   🆔 %s\n\n", o.TranzaksiyaID)
	}
	return b.String()
}

func noTransactions(query string) string {
	return fmt.Sprintf("❌ Bu telefon raqam bo'yicha tranzaksiya topilmadi.\n\nQidirilgan raqam: %s", query)
}

func allTransactionsClaimed(query string) string {
	return fmt.Sprintf("ℹ️ Bu telefon raqam bo'yicha barcha tranzaksiyalar allaqachon biriktirilgan.\n\nQidirilgan raqam: %s", query)
}

func candidateList(candidates []domain.Payment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 Bu telefon raqam bo'yicha %d ta tasdiqlanmagan tranzaksiya topildi:\n\n", len(candidates))
	for i, c := range candidates {
		fmt.Fprintf(&b, "%d. Operatsiya: %s\n", i+1, c.OperatsiyaRaqami)
		fmt.Fprintf(&b, "   👤 %s\n", c.MijozIsmi)
		fmt.Fprintf(&b, "   💰 %s UZS\n", c.Summa)
		fmt.Fprintf(&b, "   🕐 %s\n\n", formatVaqt(c))
	}
	b.WriteString("Quyidagilardan birini tanlang:")
	return b.String()
}

func candidateButtons(candidates []domain.Payment) [][]dialog.Button {
	rows := make([][]dialog.Button, 0, len(candidates)+1)
	for i, c := range candidates {
		rows = append(rows, []dialog.Button{{
			Text:   fmt.Sprintf("%d. Operatsiya: %s (%s UZS)", i+1, c.OperatsiyaRaqami, c.Summa),
			Unique: cbSelectTransaction,
			Data:   fmt.Sprintf("%d", c.ID),
		}})
	}
	return append(rows, []dialog.Button{{Text: btnCancel, Unique: cbCancelSelection}})
}

func takenByOther(claimant *domain.Sotuvchi) string {
	name := "Boshqa sotuvchi"
	if claimant != nil {
		name = fmt.Sprintf("%s (%s)", claimant.FullName(), claimant.TartibRaqami)
	}
	return "❌ Bu tranzaksiya allaqachon boshqa sotuvchiga biriktirilgan.\n\n" +
		fmt.Sprintf("👤 Biriktirilgan sotuvchi: %s\n\n", name) +
		"ℹ️ Har bir tranzaksiya faqat bitta sotuvchiga biriktirilishi mumkin."
}

func dealerChosen(d domain.Diller) string {
	return fmt.Sprintf("✅ \"%s\" dilleri tanlandi.\n\n📦 Buyurtmalar bo'limi:", d.FullName())
}

func statsMessage(d domain.Diller, sellerCode string, stats *service.DealerStats) string {
	return fmt.Sprintf("📊 Statistika (%s) - %s:\n\n", d.FullName(), period.Title(stats.Davr)) +
		fmt.Sprintf("🆔 Tartib raqami: %s\n", sellerCode) +
		fmt.Sprintf("📦 Buyurtmalar: %d\n", stats.Buyurtmalar) +
		fmt.Sprintf("💰 Umumiy summa: %s\n", money.FormatUZS(stats.Summa)) +
		fmt.Sprintf("💵 Hisobga o'tkazilgan: %s", money.FormatUZS(stats.Hisobga))
}
