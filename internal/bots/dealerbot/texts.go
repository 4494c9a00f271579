package dealerbot

import (
	"fmt"
	"strings"

	"github.com/savdohub/savdobot/internal/domain"
	"github.com/savdohub/savdobot/internal/money"
	"github.com/savdohub/savdobot/internal/period"
	"github.com/savdohub/savdobot/internal/service"
)

// Menu button labels. The engine matches incoming text against these, so they
// must stay byte-identical to what the keyboards send.
const (
	btnSellers     = "👥 Sotuvchilar"
	btnMySellers   = "📋 Mening sotuvchilarim"
	btnAddSeller   = "➕ Sotuvchi qo'shish"
	btnStats       = "📊 Statistika"
	btnSettings    = "⚙️ Sozlamalar"
	btnMainMenu    = "🔙 Asosiy menyu"
	btnCancel      = "❌ Bekor qilish"
	btnRetry       = "🔄 Qayta so'rash"
	btnSendContact = "📱 Telefon raqamni yuborish"

	btnStatsToday     = "📊 Bugungi"
	btnStatsYesterday = "📊 Kechagi"
	btnStatsWeek      = "📊 Haftalik"
	btnStatsMonth     = "📊 Oylik"
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

	msgSellersMenu = "👥 Sotuvchilar bo'limi:"
	msgNoSellers   = "📋 Hozircha sotuvchilar mavjud emas.\n\n" +
		"Sotuvchi qo'shish uchun \"➕ Sotuvchi qo'shish\" tugmasini bosing."
	msgAskSellerCode = "➕ Yangi sotuvchi qo'shish:\n\n" +
		"📝 Sotuvchi kodini (tartib raqamini) kiriting:\n" +
		"Masalan: S1, S2, S3..."
	msgSellerCodeEmpty = "❌ Sotuvchi kodi kiritilmadi. Qayta kiriting:\n" +
		"Masalan: S1, S2, S3..."
	msgSellerCodeFormat = "❌ Noto'g'ri format. Sotuvchi kodi \"S\" harfi va raqamdan iborat bo'lishi kerak.\n" +
		"Masalan: S1, S2, S3..."

	msgStatsPeriod = "📊 Statistika davrini tanlang:"
)

var (
	mainMenuRows    = [][]string{{btnSellers}, {btnStats, btnSettings}}
	sellersMenuRows = [][]string{{btnMySellers}, {btnAddSeller}, {btnMainMenu}}
	backRows        = [][]string{{btnMainMenu}}
	cancelRows      = [][]string{{btnCancel}}
	retryRows       = [][]string{{btnRetry}, {btnCancel}}
	statsRows       = [][]string{
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

func greeting(d *domain.Diller) string {
	return fmt.Sprintf("👋 Salom, %s!\n\nSiz allaqachon ro'yxatdan o'tgansiz.", d.FullName())
}

func registered(d *domain.Diller) string {
	return "✅ Ro'yxatdan o'tish muvaffaqiyatli yakunlandi!\n\n" +
		fmt.Sprintf("👤 Ism: %s\n", d.Ism) +
		fmt.Sprintf("👤 Familiya: %s\n", d.Familiya) +
		fmt.Sprintf("📱 Telefon: %s\n", d.TelefonRaqam) +
		fmt.Sprintf("🆔 Tartib raqami: %s\n\n", d.TartibRaqami) +
		"Asosiy menyu:"
}

func sellerList(sellers []domain.Sotuvchi) string {
	var b strings.Builder
	b.WriteString("📋 Mening sotuvchilarim:\n\n")
	for i, s := range sellers {
		status := "✅ Faol"
		if s.Status != domain.StatusActive {
			status = "❌ Nofaol"
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, s.FullName())
		fmt.Fprintf(&b, "   📱 %s\n", s.TelefonRaqam)
		fmt.Fprintf(&b, "   🆔 %s\n", s.TartibRaqami)
		fmt.Fprintf(&b, "   📊 Status: %s\n\n", status)
	}
	return b.String()
}

func sellerNotFound(code string) string {
	return fmt.Sprintf("❌ Sotuvchi \"%s\" topilmadi.\n\nIltimos, to'g'ri kodni kiriting.", code)
}

func sellerAlreadyLinked(code string, s *domain.Sotuvchi) string {
	return fmt.Sprintf("ℹ️ Sotuvchi \"%s\" allaqachon sizga biriktirilgan.\n\n👤 %s", code, s.FullName())
}

func sellerLinked(s *domain.Sotuvchi) string {
	return "✅ Sotuvchi muvaffaqiyatli qo'shildi!\n\n" +
		fmt.Sprintf("👤 Ism: %s\n", s.Ism) +
		fmt.Sprintf("👤 Familiya: %s\n", s.Familiya) +
		fmt.Sprintf("📱 Telefon: %s\n", s.TelefonRaqam) +
		fmt.Sprintf("🆔 Tartib raqami: %s", s.TartibRaqami)
}

func statsMessage(d *domain.Diller, stats *service.DealerStats) string {
	return fmt.Sprintf("📊 Statistika - %s:\n\n", period.Title(stats.Davr)) +
		fmt.Sprintf("🆔 Tartib raqami: %s\n", d.TartibRaqami) +
		fmt.Sprintf("👥 Sotuvchilar: %d\n", stats.Sotuvchilar) +
		fmt.Sprintf("📦 Buyurtmalar: %d\n", stats.Buyurtmalar) +
		fmt.Sprintf("💰 Umumiy summa: %s\n", money.FormatUZS(stats.Summa)) +
		fmt.Sprintf("💵 Hisobga o'tkazilgan: %s", money.FormatUZS(stats.Hisobga))
}
