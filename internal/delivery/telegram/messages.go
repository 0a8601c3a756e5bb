// messages.go contains message templates and formatting helpers for Telegram.

package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Error and notice messages.
const (
	msgInternalError   = "Terjadi kesalahan. Silakan coba lagi nanti."
	msgUnknownCommand  = "Perintah tidak dikenal. Perintah yang tersedia:\n\n/quiz - tampilkan kuis\n/topic MATERI - tentukan materi sendiri\n/count N - jumlah pertanyaan kustom\n/restart - mulai kuis baru"
	msgUseCount        = "Gunakan: /count 12"
	msgUseTopic        = "Gunakan: /topic Sejarah peradaban Islam"
	msgUseButtons      = "Kuis sedang berjalan. Gunakan tombol di bawah pertanyaan atau /restart."
	msgOutdatedButton  = "Tombol ini sudah tidak berlaku."
	msgLoading         = "Sedang memproses, tunggu sebentar..."
	msgCreatingQuiz    = "Membuat kuis..."
	msgLoadingFiles    = "Memuat daftar file..."
	msgQuizTitle       = "Pilih Materi Kuis"
	msgResultTitle     = "Hasil Kuis"
	msgReviewTitle     = "Review Jawaban:"
	msgNoFiles         = "Belum ada file yang diunggah."
	msgCustomCountHint = "💡 Ketik materi sendiri atau gunakan /count N untuk jumlah kustom (maks. 50)."
)

const msgWelcome = "Assalamu'alaikum! 👋\n\n" +
	"Bot ini membuat kuis pilihan ganda dari materi atau file yang sudah diunggah.\n\n" +
	"1. Pilih materi atau file.\n" +
	"2. Pilih jumlah pertanyaan.\n" +
	"3. Tekan «Mulai Kuis» dan jawab pertanyaan satu per satu."

// Button labels.
const (
	btnSourceTopic = "📚 Materi"
	btnSourceFile  = "📄 File"
	btnStart       = "▶️ Mulai Kuis"
	btnStarting    = "⏳ Membuat Kuis..."
	btnNext        = "Pertanyaan Berikutnya ➡️"
	btnFinish      = "Lihat Hasil 🏁"
	btnRestart     = "🔄 Mulai Kuis Baru"
	markSelected   = "✅ "
)

const (
	maxButtonRunes  = 60
	maxMessageRunes = 3500
	progressBarLen  = 20
)

// esc escapes plain text for HTML parse mode.
func esc(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}

func bold(s string) string {
	return "<b>" + esc(s) + "</b>"
}

// newMessage creates a message with HTML parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

// newPlainMessage creates a plain message without parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with HTML parse mode.
func newEdit(chatID int64, msgID int, text string, kb tgbotapi.InlineKeyboardMarkup) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, text, kb)
	edit.ParseMode = tgbotapi.ModeHTML
	return edit
}

// optionLabel returns "A", "B", ... for an option index.
func optionLabel(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// verdict returns the encouragement line for a score percentage.
func verdict(percentage int) string {
	switch {
	case percentage >= 80:
		return "🎉 Luar biasa!"
	case percentage >= 60:
		return "👍 Bagus!"
	default:
		return "💪 Terus belajar!"
	}
}

// buildProgressBar creates a text progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	empty := length - filled

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", empty) + "]"
}
