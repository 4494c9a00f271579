package watcher

import (
	"fmt"

	"github.com/savdohub/savdobot/internal/ingest"
)

const (
	msgStart = "👋 Salom! Men to'lov tranzaksiyalarini avtomatik yig'uvchi botman.\n\n" +
		"Men guruhlardan to'lov xabarlarini o'qib, bazaga saqlayman.\n\n" +
		"Bot guruhga qo'shilganidan keyin, barcha to'lov xabarlari avtomatik saqlanadi.\n\n" +
		"Bot guruhda hech qanday javob bermaydi - faqat ma'lumotlarni yig'adi."

	msgHelp = "📖 Bot buyruqlari:\n\n" +
		"/start - Botni ishga tushirish\n" +
		"/get_chat_id - Joriy chat ID ni olish\n" +
		"/stats - Tranzaksiyalar statistikasi\n" +
		"/help - Yordam\n\n" +
		"Bot avtomatik ravishda to'lov xabarlarini kuzatadi va saqlaydi.\n\n" +
		"Bot guruhga qo'shilganda avtomatik barcha mavjud xabarlarni qayta ishlaydi.\n\n" +
		"Bot guruhda hech qanday javob bermaydi - faqat ma'lumotlarni yig'adi."

	msgProcessOld = "⏳ Eski xabarlarni qayta ishlash...\n\n" +
		"Eslatma: Bot faqat guruhga qo'shilgandan keyin yuborilgan xabarlarni ko'radi.\n" +
		"Bot guruhga qo'shilganda avtomatik barcha xabarlarni qayta ishlaydi."
)

func statsMessage(total, last24h int, c ingest.Snapshot) string {
	return "📊 Statistika:\n\n" +
		fmt.Sprintf("Jami tranzaksiyalar: %d\n", total) +
		fmt.Sprintf("So'nggi 24 soatda: %d\n\n", last24h) +
		"Joriy sessiya:\n" +
		fmt.Sprintf("Tekshirilgan xabarlar: %d\n", c.Checked) +
		fmt.Sprintf("Topilgan to'lovlar: %d\n", c.Found) +
		fmt.Sprintf("Saqlangan: %d\n", c.Saved) +
		fmt.Sprintf("Dublikatlar: %d\n", c.Duplicates) +
		fmt.Sprintf("Xatolar: %d", c.ParseErrors)
}

func chatInfo(title string, chatID int64, chatType string) string {
	if title == "" {
		title = "Shaxsiy chat"
	}
	return "📋 Chat ma'lumotlari:\n\n" +
		fmt.Sprintf("Chat nomi: %s\n", title) +
		fmt.Sprintf("Chat ID: %d\n", chatID) +
		fmt.Sprintf("Chat turi: %s\n\n", chatType) +
		"Bu ID ni .env faylida ALLOWED_CHAT_IDS ga qo'shing:\n" +
		fmt.Sprintf("ALLOWED_CHAT_IDS=%d", chatID)
}
